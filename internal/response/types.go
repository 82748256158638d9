package response

import (
	"time"

	domain "github.com/oggyb/qr-message-service/internal/domain/message"
)

// CreatePayload is returned by POST /api/create.
type CreatePayload struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	Message   string `json:"message"`
	ViewURL   string `json:"view_url"`
	QRImage   string `json:"qr_image"`
	CreatedAt string `json:"created_at"`
}

// MessageSummary is one item of the recent-messages listing. Message holds
// a short preview of the text, not the full content.
type MessageSummary struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
	ViewURL   string `json:"view_url"`
	QRImage   string `json:"qr_image"`
}

// MessagesPayload is returned by GET /api/messages.
type MessagesPayload struct {
	Success  bool             `json:"success"`
	Messages []MessageSummary `json:"messages"`
}

// DeletePayload is returned by DELETE /api/delete/{id}.
type DeletePayload struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
}

// HealthPayload is returned by GET /health.
type HealthPayload struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// FromDomainMessage builds the create response for a freshly persisted message.
func FromDomainMessage(m *domain.Message) CreatePayload {
	return CreatePayload{
		Success:   true,
		ID:        m.ID,
		Message:   m.Text,
		ViewURL:   m.ViewURL,
		QRImage:   m.QRImage,
		CreatedAt: FormatTime(m.CreatedAt),
	}
}

// FromDomainMessages converts domain messages into listing summaries,
// truncating each text to previewLen characters.
func FromDomainMessages(msgs []*domain.Message, previewLen int) []MessageSummary {
	out := make([]MessageSummary, len(msgs))
	for i, m := range msgs {
		out[i] = MessageSummary{
			ID:        m.ID,
			Message:   m.Preview(previewLen),
			CreatedAt: FormatTime(m.CreatedAt),
			ViewURL:   m.ViewURL,
			QRImage:   m.QRImage,
		}
	}
	return out
}

// FormatTime renders a timestamp in the wire format used everywhere:
// RFC 3339 in UTC, which also sorts lexicographically.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
