package messagegorm

import (
	"time"
)

// MessageModel is the GORM persistence model for messages.
// It maps directly to the "messages" table in Postgres.
type MessageModel struct {
	ID        string    `gorm:"size:8;primaryKey"`
	Text      string    `gorm:"size:1000;not null"`
	ViewURL   string    `gorm:"size:255;not null"`
	QRImage   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName overrides the default table name used by GORM.
func (MessageModel) TableName() string {
	return "messages"
}
