package messagegorm

import (
	"context"
	"errors"

	"github.com/oggyb/qr-message-service/internal/db"
	"github.com/oggyb/qr-message-service/internal/domain/message"
	"gorm.io/gorm"
)

// Repository is a GORM-backed implementation of the message.Repository interface.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a message repository using the given DB adapter.
func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// Insert persists a new message record.
func (r *Repository) Insert(ctx context.Context, m *message.Message) error {
	dbModel := fromDomain(m)
	return r.db.WithContext(ctx).Create(dbModel).Error
}

// FindByID returns the message with the given id, mapping a missing row
// to the domain-level ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id string) (*message.Message, error) {
	var model MessageModel

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, message.ErrNotFound
		}
		return nil, err
	}

	return toDomain(&model), nil
}

// FindRecent returns up to limit messages ordered by creation time, newest first.
func (r *Repository) FindRecent(ctx context.Context, limit int) ([]*message.Message, error) {
	var models []MessageModel

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error

	if err != nil {
		return nil, err
	}

	return toDomainMany(models), nil
}

// DeleteByID removes the message with the given id and reports whether
// a row was actually deleted.
func (r *Repository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&MessageModel{})

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

// compile-time interface check
var _ message.Repository = (*Repository)(nil)
