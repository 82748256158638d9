package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/oggyb/qr-message-service/internal/cache"
	domain "github.com/oggyb/qr-message-service/internal/domain/message"
	"github.com/oggyb/qr-message-service/internal/qr"
)

// MessageService is the application-facing contract for working with messages.
type MessageService interface {
	// Create validates text, mints an id, derives the view URL from the
	// requesting host, renders the QR image and persists the record.
	Create(ctx context.Context, text, host string) (*domain.Message, error)

	// Get returns the message with the given id or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Message, error)

	// List returns up to limit recent messages, newest first. A zero or
	// out-of-range limit is clamped to the configured cap.
	List(ctx context.Context, limit int) ([]*domain.Message, error)

	// Delete removes the message with the given id and reports whether it
	// existed. A missing id is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}

type messageService struct {
	repo    domain.Repository
	encoder qr.Encoder
	cache   cache.Cache

	// Operational limits, injected from config at startup.
	listLimit int
	opTimeout time.Duration
	viewTTL   time.Duration
}

// NewMessageService creates a message service with the given dependencies
// and limits. The config values are passed explicitly from the caller
// (e.g. main) so this package does not depend on env.
func NewMessageService(
	repo domain.Repository,
	encoder qr.Encoder,
	cache cache.Cache,
	listLimit int,
	opTimeout time.Duration,
	viewTTL time.Duration,
) MessageService {
	// Apply sane defaults if config values are missing or invalid.
	if listLimit <= 0 {
		listLimit = 20
	}
	if opTimeout <= 0 {
		opTimeout = 10 * time.Second
	}
	if viewTTL <= 0 {
		viewTTL = 24 * time.Hour
	}

	return &messageService{
		repo:      repo,
		encoder:   encoder,
		cache:     cache,
		listLimit: listLimit,
		opTimeout: opTimeout,
		viewTTL:   viewTTL,
	}
}

// withTimeout wraps the context with the per-operation store timeout if it
// doesn't already carry a deadline.
func (s *messageService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *messageService) Create(ctx context.Context, text, host string) (*domain.Message, error) {
	msg, err := domain.NewMessage(text)
	if err != nil {
		return nil, err
	}

	msg.ViewURL = ViewURL(host, msg.ID)

	image, err := s.encoder.Encode(msg.ViewURL)
	if err != nil {
		return nil, fmt.Errorf("encode QR for %s: %w", msg.ID, err)
	}
	msg.QRImage = image

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// A create without a durable write is a failure, never a silent success.
	if err := s.repo.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	s.cacheSet(ctx, msg)

	return msg, nil
}

func (s *messageService) Get(ctx context.Context, id string) (*domain.Message, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if msg := s.cacheGet(ctx, id); msg != nil {
		return msg, nil
	}

	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, msg)

	return msg, nil
}

func (s *messageService) List(ctx context.Context, limit int) ([]*domain.Message, error) {
	if limit <= 0 || limit > s.listLimit {
		limit = s.listLimit
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.FindRecent(ctx, limit)
}

func (s *messageService) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}

	if s.cache != nil {
		if cErr := s.cache.Del(ctx, cache.ViewMessages.Key(id)); cErr != nil {
			log.Printf("[Service] Failed to invalidate cache for %s: %v", id, cErr)
		}
	}

	return deleted, nil
}

// cacheSet stores the message in the view cache, best-effort.
func (s *messageService) cacheSet(ctx context.Context, msg *domain.Message) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	key := cache.ViewMessages.Key(msg.ID)
	if err := s.cache.Set(ctx, key, string(data), s.viewTTL); err != nil {
		log.Printf("[Service] Failed to cache message %s: %v", msg.ID, err)
	}
}

// cacheGet returns the cached message for id, or nil on any miss or error.
func (s *messageService) cacheGet(ctx context.Context, id string) *domain.Message {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, cache.ViewMessages.Key(id))
	if err != nil {
		return nil
	}

	var msg domain.Message
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		return nil
	}
	if msg.ID != id {
		return nil
	}

	return &msg
}

// ViewURL builds the public view link for a message id as seen from the
// requesting host. Loopback and local development hosts get plain http,
// everything else https.
func ViewURL(host, id string) string {
	scheme := "https"
	if isLocalHost(host) {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/view/%s", scheme, host, id)
}

// isLocalHost reports whether host (optionally host:port) denotes a local
// development address.
func isLocalHost(host string) bool {
	h := host
	if stripped, _, err := net.SplitHostPort(host); err == nil {
		h = stripped
	}
	h = strings.ToLower(strings.Trim(h, "[]"))

	switch h {
	case "localhost", "127.0.0.1", "::1", "0.0.0.0":
		return true
	}

	if strings.HasSuffix(h, ".localhost") || strings.HasSuffix(h, ".local") {
		return true
	}

	if ip := net.ParseIP(h); ip != nil && ip.IsLoopback() {
		return true
	}

	return false
}
