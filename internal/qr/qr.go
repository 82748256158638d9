// Package qr exposes a minimal interface for rendering text into a
// scannable QR code image.
package qr

import "errors"

// ErrContentTooLarge is returned when the content does not fit into the
// QR symbol capacity for the configured parameters.
var ErrContentTooLarge = errors.New("content exceeds QR code capacity")

// Encoder is the contract for a QR code renderer.
type Encoder interface {
	// Encode renders content into a PNG image and returns it as a
	// base64 data URI suitable for inline embedding in HTML.
	Encode(content string) (dataURI string, err error)
}
