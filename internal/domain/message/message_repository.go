package message

import "context"

// Repository defines the persistence operations for Message records.
//
// It is implemented by infrastructure layers (e.g. GORM, sqlc, etc.)
// while the domain and service layers depend only on this interface.
type Repository interface {
	// Insert persists a new message record.
	Insert(ctx context.Context, m *Message) error

	// FindByID returns the message with the given id,
	// or ErrNotFound if no such record exists.
	FindByID(ctx context.Context, id string) (*Message, error)

	// FindRecent returns up to limit messages ordered by creation time,
	// newest first.
	FindRecent(ctx context.Context, limit int) ([]*Message, error)

	// DeleteByID removes the message with the given id. It reports whether
	// a record existed; a missing id is not an error.
	DeleteByID(ctx context.Context, id string) (bool, error)
}
