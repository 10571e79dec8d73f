// Package qr encodes QR codes with skip2/go-qrcode.
package qr

import (
	"context"
	"fmt"

	"github.com/aretw0/workbench/pkg/ports"
	qrcode "github.com/skip2/go-qrcode"
)

// Encoder implements ports.QREncoder.
type Encoder struct {
	level qrcode.RecoveryLevel
}

// New returns an encoder using medium error correction.
func New() *Encoder {
	return &Encoder{level: qrcode.Medium}
}

// Encode returns a size×size PNG and a compact terminal rendering.
func (e *Encoder) Encode(ctx context.Context, text string, size int) (ports.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return ports.Symbol{}, err
	}
	code, err := qrcode.New(text, e.level)
	if err != nil {
		return ports.Symbol{}, fmt.Errorf("qrcode: %w", err)
	}
	png, err := code.PNG(size)
	if err != nil {
		return ports.Symbol{}, fmt.Errorf("qrcode png: %w", err)
	}
	return ports.Symbol{PNG: png, Text: code.ToSmallString(false)}, nil
}
