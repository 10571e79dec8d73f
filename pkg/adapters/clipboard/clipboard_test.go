package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Write(t *testing.T) {
	var got string
	s := &System{
		write:       func(text string) error { got = text; return nil },
		unsupported: func() bool { return false },
	}
	require.NoError(t, s.Write(context.Background(), "hello"))
	assert.Equal(t, "hello", got)
}

func TestSystem_Unsupported(t *testing.T) {
	s := &System{
		write:       func(string) error { t.Fatal("write must not be called"); return nil },
		unsupported: func() bool { return true },
	}
	assert.ErrorIs(t, s.Write(context.Background(), "x"), ErrUnsupported)
}

func TestSystem_WriteFailure(t *testing.T) {
	boom := errors.New("xclip exited 1")
	s := &System{
		write:       func(string) error { return boom },
		unsupported: func() bool { return false },
	}
	err := s.Write(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestSystem_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, New().Write(ctx, "x"), context.Canceled)
}

func TestMemory(t *testing.T) {
	m := &Memory{}
	require.NoError(t, m.Write(context.Background(), "copied"))
	assert.Equal(t, "copied", m.Text)

	m.Err = errors.New("denied")
	assert.Error(t, m.Write(context.Background(), "again"))
	assert.Equal(t, "copied", m.Text)
}
