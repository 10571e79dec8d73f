package transform

import (
	"context"

	"github.com/aretw0/workbench/pkg/ports"
	"github.com/stretchr/testify/mock"
)

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) Render(ctx context.Context, text string, size ports.PageSize) (ports.Document, error) {
	args := m.Called(ctx, text, size)
	return args.Get(0).(ports.Document), args.Error(1)
}

type mockCodec struct{ mock.Mock }

func (m *mockCodec) Convert(ctx context.Context, src []byte, target ports.ImageFormat) ([]byte, error) {
	args := m.Called(ctx, src, target)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type mockQR struct{ mock.Mock }

func (m *mockQR) Encode(ctx context.Context, text string, size int) (ports.Symbol, error) {
	args := m.Called(ctx, text, size)
	return args.Get(0).(ports.Symbol), args.Error(1)
}

type mockRasterizer struct{ mock.Mock }

func (m *mockRasterizer) Render(ctx context.Context, text string) ([]byte, error) {
	args := m.Called(ctx, text)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
