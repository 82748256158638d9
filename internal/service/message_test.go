package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/oggyb/qr-message-service/internal/cache"
	domain "github.com/oggyb/qr-message-service/internal/domain/message"
)

// fakeRepo is an in-memory implementation of the message repository.
type fakeRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Message
	insertErr error
	findErr   error
	findCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*domain.Message)}
}

func (f *fakeRepo) Insert(ctx context.Context, m *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return f.insertErr
	}

	cp := *m
	f.byID[m.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}

	m, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) FindRecent(ctx context.Context, limit int) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.Message, 0, len(f.byID))
	for _, m := range f.byID {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

// fakeEncoder returns a fixed marker image for whatever it is given.
type fakeEncoder struct {
	err   error
	calls []string
}

func (f *fakeEncoder) Encode(content string) (string, error) {
	f.calls = append(f.calls, content)
	if f.err != nil {
		return "", f.err
	}
	return "data:image/png;base64,FAKE", nil
}

// fakeCache is a map-backed cache that records deletions.
type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (f *fakeCache) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	f.deleted = append(f.deleted, key)
	return nil
}

var _ cache.Cache = (*fakeCache)(nil)

func newTestService(repo *fakeRepo, enc *fakeEncoder, c cache.Cache) MessageService {
	return NewMessageService(repo, enc, c, 20, time.Second, time.Minute)
}

func TestCreate_PersistsFullRecord(t *testing.T) {
	repo := newFakeRepo()
	enc := &fakeEncoder{}
	svc := newTestService(repo, enc, newFakeCache())

	msg, err := svc.Create(context.Background(), "  hello  ", "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Text != "hello" {
		t.Errorf("expected trimmed text %q, got %q", "hello", msg.Text)
	}
	if len(msg.ID) != domain.IDLength {
		t.Errorf("expected %d-char id, got %q", domain.IDLength, msg.ID)
	}
	if want := "https://example.com/view/" + msg.ID; msg.ViewURL != want {
		t.Errorf("expected view URL %q, got %q", want, msg.ViewURL)
	}
	if msg.QRImage == "" {
		t.Errorf("expected QR image to be set")
	}

	// The QR encodes exactly the view URL, no truncation.
	if len(enc.calls) != 1 || enc.calls[0] != msg.ViewURL {
		t.Errorf("expected encoder to receive %q, got %v", msg.ViewURL, enc.calls)
	}

	// Create must be followed by a readable record.
	got, err := svc.Get(context.Background(), msg.ID)
	if err != nil {
		t.Fatalf("Get after Create failed: %v", err)
	}
	if got.Text != "hello" || got.ID != msg.ID {
		t.Errorf("Get returned wrong record: %+v", got)
	}
}

func TestCreate_Validation(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEncoder{}, newFakeCache())

	if _, err := svc.Create(context.Background(), "   ", "example.com"); !errors.Is(err, domain.ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}

	long := strings.Repeat("a", domain.MaxTextLength+1)
	if _, err := svc.Create(context.Background(), long, "example.com"); !errors.Is(err, domain.ErrTextTooLong) {
		t.Errorf("expected ErrTextTooLong, got %v", err)
	}

	if len(repo.byID) != 0 {
		t.Errorf("invalid input must not reach the store")
	}
}

func TestCreate_StoreDownIsAFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = errors.New("connection refused")
	svc := newTestService(repo, &fakeEncoder{}, newFakeCache())

	_, err := svc.Create(context.Background(), "hello", "example.com")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestCreate_EncoderFailurePreventsWrite(t *testing.T) {
	repo := newFakeRepo()
	enc := &fakeEncoder{err: errors.New("content too large")}
	svc := newTestService(repo, enc, newFakeCache())

	if _, err := svc.Create(context.Background(), "hello", "example.com"); err == nil {
		t.Fatalf("expected error when encoding fails")
	}
	if len(repo.byID) != 0 {
		t.Errorf("failed encode must not persist a record")
	}
}

func TestGet_Unknown(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeEncoder{}, newFakeCache())

	_, err := svc.Get(context.Background(), "nope1234")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_ServesFromCache(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	svc := newTestService(repo, &fakeEncoder{}, c)

	cached := &domain.Message{
		ID:        "abc12345",
		Text:      "cached text",
		ViewURL:   "https://example.com/view/abc12345",
		CreatedAt: time.Now().UTC(),
	}
	data, _ := json.Marshal(cached)
	_ = c.Set(context.Background(), cache.ViewMessages.Key(cached.ID), string(data), time.Minute)

	got, err := svc.Get(context.Background(), cached.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "cached text" {
		t.Errorf("expected cached record, got %+v", got)
	}
	if repo.findCalls != 0 {
		t.Errorf("cache hit must not reach the store, saw %d calls", repo.findCalls)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	svc := newTestService(repo, &fakeEncoder{}, c)

	msg, err := svc.Create(context.Background(), "to be deleted", "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), msg.ID)
	if err != nil || !deleted {
		t.Fatalf("expected deleted=true, got deleted=%v err=%v", deleted, err)
	}

	// The cache entry must go with the record.
	if len(c.deleted) != 1 || c.deleted[0] != cache.ViewMessages.Key(msg.ID) {
		t.Errorf("expected cache invalidation for %s, got %v", msg.ID, c.deleted)
	}

	// Delete is effective and immediate.
	if _, err := svc.Get(context.Background(), msg.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// A second delete reports false, never an error.
	deleted, err = svc.Delete(context.Background(), msg.ID)
	if err != nil {
		t.Fatalf("delete of missing id must not fail: %v", err)
	}
	if deleted {
		t.Errorf("expected deleted=false for missing id")
	}
}

func TestList_CapAndOrder(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEncoder{}, newFakeCache())

	// Insert records with strictly increasing timestamps.
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 30; i++ {
		m := &domain.Message{
			ID:        domain.NewID(),
			Text:      strings.Repeat("m", i+1),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Insert(context.Background(), m); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	msgs, err := svc.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(msgs) != 20 {
		t.Fatalf("expected list capped at 20, got %d", len(msgs))
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i].CreatedAt.After(msgs[i-1].CreatedAt) {
			t.Fatalf("expected newest-first ordering at index %d", i)
		}
	}

	// An oversized requested limit is clamped to the cap as well.
	msgs, err = svc.List(context.Background(), 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 20 {
		t.Errorf("expected oversized limit clamped to 20, got %d", len(msgs))
	}
}

func TestViewURL_SchemeSelection(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"example.com", "https://example.com/view/abc12345"},
		{"qr.example.com:8443", "https://qr.example.com:8443/view/abc12345"},
		{"localhost:5000", "http://localhost:5000/view/abc12345"},
		{"localhost", "http://localhost/view/abc12345"},
		{"127.0.0.1:8080", "http://127.0.0.1:8080/view/abc12345"},
		{"[::1]:8080", "http://[::1]:8080/view/abc12345"},
		{"0.0.0.0:8080", "http://0.0.0.0:8080/view/abc12345"},
		{"myapp.localhost:3000", "http://myapp.localhost:3000/view/abc12345"},
		{"dev.local", "http://dev.local/view/abc12345"},
	}

	for _, tc := range cases {
		if got := ViewURL(tc.host, "abc12345"); got != tc.want {
			t.Errorf("ViewURL(%q): expected %q, got %q", tc.host, tc.want, got)
		}
	}
}
