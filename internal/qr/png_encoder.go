package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

var _ Encoder = (*PNGEncoder)(nil)

// PNGEncoder renders QR codes as PNG images using low error correction,
// matching the presentation the view pages expect: a quiet-zone border
// around dark-on-light modules, scaled to a fixed pixel size.
type PNGEncoder struct {
	size int
}

// NewPNGEncoder creates an encoder that renders size x size pixel images.
func NewPNGEncoder(size int) *PNGEncoder {
	if size <= 0 {
		size = 330
	}
	return &PNGEncoder{size: size}
}

// Encode implements Encoder. The returned string is a data:image/png
// URI carrying the base64-encoded PNG.
func (e *PNGEncoder) Encode(content string) (string, error) {
	code, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		// The only constructor failure for well-formed input is symbol
		// capacity; surface it as the domain condition.
		return "", fmt.Errorf("%w: %v", ErrContentTooLarge, err)
	}

	png, err := code.PNG(e.size)
	if err != nil {
		return "", fmt.Errorf("render QR PNG: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
