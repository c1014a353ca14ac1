package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brickengine/publisher/cmd/publisher/models"
)

// fakeRequestStore is an in-memory RequestStore enforcing the same
// constraints as the Postgres implementation.
type fakeRequestStore struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*models.GameRequest

	createErr  error
	approveErr error
	rejectErr  error
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[uuid.UUID]*models.GameRequest)}
}

func (f *fakeRequestStore) Create(_ context.Context, req *models.GameRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	for _, existing := range f.requests {
		if existing.GameID == req.GameID && existing.Version == req.Version {
			return fmt.Errorf("insert game request: %w", models.ErrDuplicateVersion)
		}
	}

	req.ID = uuid.New()
	req.CreatedAt = time.Now()
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRequestStore) GetByID(_ context.Context, id uuid.UUID) (*models.GameRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	req, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("get game request %s: %w", id, models.ErrRequestNotFound)
	}

	copied := *req
	return &copied, nil
}

func (f *fakeRequestStore) MarkApproved(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.approveErr != nil {
		return false, f.approveErr
	}

	req, ok := f.requests[id]
	if !ok || req.Terminal() {
		return false, nil
	}

	req.ApprovedAt = &at
	return true, nil
}

func (f *fakeRequestStore) MarkRejected(_ context.Context, id uuid.UUID, at time.Time, reason string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rejectErr != nil {
		return false, f.rejectErr
	}

	req, ok := f.requests[id]
	if !ok || req.Terminal() {
		return false, nil
	}

	req.RejectedAt = &at
	req.RejectionReason = &reason
	return true, nil
}

func (f *fakeRequestStore) add(req *models.GameRequest) *models.GameRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	f.requests[req.ID] = req
	return req
}

// fakeGameStore is an in-memory GameStore
type fakeGameStore struct {
	mu    sync.Mutex
	games []*models.Game

	createErr error
	listErr   error
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{}
}

func (f *fakeGameStore) Create(_ context.Context, game *models.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	game.ID = uuid.New()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = time.Now()
	}
	f.games = append(f.games, game)
	return nil
}

func (f *fakeGameStore) GetByGameVersion(_ context.Context, gameID, version string) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, game := range f.games {
		if game.GameID == gameID && game.Version == version {
			copied := *game
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeGameStore) ListByNewest(_ context.Context) ([]*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	sorted := make([]*models.Game, len(f.games))
	copy(sorted, f.games)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].CreatedAt.After(sorted[i].CreatedAt) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	return sorted, nil
}

func (f *fakeGameStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.games)
}

// fakeBundleStore is an in-memory objstore.Store
type fakeBundleStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	base    string

	uploadErr error
	deleteErr error
}

func newFakeBundleStore() *fakeBundleStore {
	return &fakeBundleStore{
		objects: make(map[string][]byte),
		base:    "http://storage.internal:9000/game-bundles",
	}
}

func (f *fakeBundleStore) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		return f.uploadErr
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = content
	return nil
}

func (f *fakeBundleStore) PublicURL(key string) string {
	return f.base + "/" + key
}

func (f *fakeBundleStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBundleStore) Close() error { return nil }

func (f *fakeBundleStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

// fakeMailer records dispatched messages on a channel so tests can await
// asynchronous notifications
type sentMail struct {
	To      string
	Subject string
	HTML    string
}

type fakeMailer struct {
	sent chan sentMail
	err  error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentMail, 8)}
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	f.sent <- sentMail{To: to, Subject: subject, HTML: html}
	if f.err != nil {
		return f.err
	}
	return nil
}

var errStoreDown = errors.New("store unavailable")
