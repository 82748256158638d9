// Package message holds the domain model and invariants for QR messages.
package message

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxTextLength is the maximum allowed length for message text.
	MaxTextLength = 1000

	// IDLength is the length of a minted message id. Ids are the first
	// 8 characters of a random UUID, which is enough for casual use.
	IDLength = 8

	// DefaultPreviewLength is the number of characters kept in list previews.
	DefaultPreviewLength = 50
)

var (
	// ErrEmptyText is returned when the message text is empty after trimming.
	ErrEmptyText = errors.New("message text is required")
	// ErrTextTooLong is returned when the message text exceeds MaxTextLength.
	ErrTextTooLong = errors.New("message text exceeds maximum length")
	// ErrNotFound is returned when no message exists for the given id.
	ErrNotFound = errors.New("message not found")
	// ErrStoreUnavailable is returned when the store cannot be reached.
	ErrStoreUnavailable = errors.New("message store unavailable")
)

// Message is the core domain entity: a short text note reachable through
// a QR code that encodes its view URL.
type Message struct {
	ID        string
	Text      string
	ViewURL   string
	QRImage   string // PNG data URI
	CreatedAt time.Time
}

// NewMessage validates the text and constructs a Message with a fresh id.
// ViewURL and QRImage are filled in by the service once the id is known.
func NewMessage(text string) (*Message, error) {
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, ErrEmptyText
	}
	if len(text) > MaxTextLength {
		return nil, ErrTextTooLong
	}

	return &Message{
		ID:        NewID(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewID mints a short message id from a random UUID.
func NewID() string {
	return uuid.New().String()[:IDLength]
}

// Preview returns the first max characters of the text, with "..." appended
// when this truncates. Truncation is by runes so multi-byte text stays valid.
func (m *Message) Preview(max int) string {
	if max <= 0 {
		max = DefaultPreviewLength
	}
	runes := []rune(m.Text)
	if len(runes) <= max {
		return m.Text
	}
	return string(runes[:max]) + "..."
}
