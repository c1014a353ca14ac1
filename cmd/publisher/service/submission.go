package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brickengine/publisher/cmd/publisher/models"
	"github.com/brickengine/publisher/common/config"
	"github.com/brickengine/publisher/common/logger"
	"github.com/brickengine/publisher/common/mailer"
	"github.com/brickengine/publisher/common/objstore"
)

// SubmissionService owns the publish/approve/reject lifecycle of a game
// submission. All state lives in the backing stores; each operation is a
// short sequence of store calls with compensation on partial failure.
type SubmissionService struct {
	requests RequestStore
	games    GameStore
	bundles  objstore.Store
	mail     mailer.Mailer
	cfg      *config.Config
	log      *logger.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	requests RequestStore,
	games GameStore,
	bundles objstore.Store,
	mail mailer.Mailer,
	cfg *config.Config,
	log *logger.Logger,
) *SubmissionService {
	return &SubmissionService{
		requests: requests,
		games:    games,
		bundles:  bundles,
		mail:     mail,
		cfg:      cfg,
		log:      log,
	}
}

// PublishInput carries one submission attempt
type PublishInput struct {
	GameID         string
	GameName       string
	Version        string
	DeveloperEmail string
	BundleName     string
	Bundle         io.Reader
}

// Publish uploads the bundle, records the pending request and notifies the
// admin. A duplicate (game_id, version) surfaces as
// models.ErrDuplicateVersion whether it was detected at the object write
// (access policy rejection) or at the row insert (unique constraint). When
// the insert fails after a successful upload, the uploaded object is
// removed so no orphan survives.
func (s *SubmissionService) Publish(ctx context.Context, in PublishInput) (*models.GameRequest, error) {
	if in.GameID == "" || in.GameName == "" || in.Version == "" || in.Bundle == nil {
		return nil, fmt.Errorf("missing required fields (game_id, game_name, version, bundle): %w", models.ErrInvalidInput)
	}
	if in.BundleName != models.BundleFilename {
		return nil, fmt.Errorf("the uploaded file must be named %q: %w", models.BundleFilename, models.ErrInvalidInput)
	}

	log := s.log.WithGame(in.GameID, in.Version)
	key := models.BundleKey(in.GameID, in.Version)

	// 1. Upload with overwrite. A policy rejection means this version
	// already has an accepted artifact.
	if err := s.bundles.Upload(ctx, key, in.Bundle, models.BundleContentType); err != nil {
		if errors.Is(err, objstore.ErrPermissionDenied) {
			return nil, fmt.Errorf("version %s of the game %q already exists: %w", in.Version, in.GameName, models.ErrDuplicateVersion)
		}
		return nil, fmt.Errorf("upload bundle: %w", err)
	}

	// 2. Resolve the public URL, rewritten to the externally reachable host
	bundleURL := s.externalBundleURL(s.bundles.PublicURL(key))

	req := &models.GameRequest{
		GameID:    in.GameID,
		GameName:  in.GameName,
		Version:   in.Version,
		BundleURL: bundleURL,
	}
	if in.DeveloperEmail != "" {
		email := in.DeveloperEmail
		req.DeveloperEmail = &email
	}

	// 3. Record the pending request; 4. compensate the upload on failure
	if err := s.requests.Create(ctx, req); err != nil {
		if delErr := s.bundles.Delete(ctx, key); delErr != nil {
			log.Warn("failed to clean up uploaded bundle, leaving orphan object", "key", key, "error", delErr)
		}

		if errors.Is(err, models.ErrDuplicateVersion) {
			return nil, fmt.Errorf("version %s of the game %q has already been published or is under review: %w",
				in.Version, in.GameName, models.ErrDuplicateVersion)
		}
		return nil, fmt.Errorf("save game request: %w", err)
	}

	log.Info("game submission recorded", "request_id", req.ID, "bundle_url", req.BundleURL)

	// 5. Best-effort admin notification
	s.notifyAdminSubmission(req)

	return req, nil
}

// Approve publishes a pending request into the catalog. The Game insert is
// the authoritative step; marking the request approved afterwards is
// bookkeeping and a failure there is tolerated rather than rolled back.
// Re-invoking after such a partial failure skips the existing Game row and
// only retries the timestamp update.
func (s *SubmissionService) Approve(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Terminal() {
		return nil, fmt.Errorf("game request %s: %w", id, models.ErrAlreadyProcessed)
	}

	log := s.log.WithRequest(id.String()).WithGame(req.GameID, req.Version)

	game, err := s.games.GetByGameVersion(ctx, req.GameID, req.Version)
	if err != nil {
		return nil, fmt.Errorf("check for existing game: %w", err)
	}

	if game == nil {
		game = &models.Game{
			GameID:    req.GameID,
			Name:      req.GameName,
			Version:   req.Version,
			BundleURL: req.BundleURL,
		}
		// Hard failure: the request stays pending
		if err := s.games.Create(ctx, game); err != nil {
			return nil, fmt.Errorf("approve game: %w", err)
		}
		log.Info("game published to catalog", "game_row_id", game.ID)
	} else {
		log.Info("game row already exists, retrying approval bookkeeping", "game_row_id", game.ID)
	}

	ok, err := s.requests.MarkApproved(ctx, id, time.Now().UTC())
	if err != nil {
		// The catalog entry is authoritative; keep it and report success
		log.Error("failed to mark request approved, but game was published", "error", err)
	} else if !ok {
		log.Warn("request was decided concurrently, keeping catalog entry")
	}

	s.notifyDeveloperApproved(req)

	return game, nil
}

// Reject marks a pending request rejected with a reason. No Game row is
// ever created on this path and the terminal state is permanent.
func (s *SubmissionService) Reject(ctx context.Context, id uuid.UUID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("missing rejection_reason: %w", models.ErrInvalidInput)
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Terminal() {
		return fmt.Errorf("game request %s: %w", id, models.ErrAlreadyProcessed)
	}

	ok, err := s.requests.MarkRejected(ctx, id, time.Now().UTC(), reason)
	if err != nil {
		return fmt.Errorf("reject game request: %w", err)
	}
	if !ok {
		// Lost the race against a concurrent decision
		return fmt.Errorf("game request %s: %w", id, models.ErrAlreadyProcessed)
	}

	s.log.WithRequest(id.String()).Info("game submission rejected", "game_id", req.GameID, "version", req.Version)

	s.notifyDeveloperRejected(req, reason)

	return nil
}

// externalBundleURL rewrites the store-reported base to the externally
// reachable one, since the store may only be addressable inside the
// deployment network.
func (s *SubmissionService) externalBundleURL(raw string) string {
	internal := strings.TrimRight(s.cfg.Storage.PublicBaseURL, "/")
	external := strings.TrimRight(s.cfg.Storage.ExternalBaseURL, "/")

	if external == "" || internal == "" || !strings.HasPrefix(raw, internal) {
		return raw
	}

	return external + strings.TrimPrefix(raw, internal)
}
