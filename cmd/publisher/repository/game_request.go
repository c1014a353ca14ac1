package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brickengine/publisher/cmd/publisher/models"
	"github.com/brickengine/publisher/common/db"
)

// Postgres class 23: integrity constraint violation
const uniqueViolationCode = "23505"

// GameRequestRepository handles database operations for submission requests
type GameRequestRepository struct {
	db *db.DB
}

// NewGameRequestRepository creates a new game request repository
func NewGameRequestRepository(db *db.DB) *GameRequestRepository {
	return &GameRequestRepository{db: db}
}

// Create inserts a pending request and fills in the store-assigned id and
// creation time. A duplicate (game_id, version) pair surfaces as
// models.ErrDuplicateVersion.
func (r *GameRequestRepository) Create(ctx context.Context, req *models.GameRequest) error {
	query := `
		INSERT INTO game_requests (game_id, game_name, version, bundle_url, developer_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		req.GameID,
		req.GameName,
		req.Version,
		req.BundleURL,
		req.DeveloperEmail,
	).Scan(&req.ID, &req.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert game request %s/%s: %w", req.GameID, req.Version, models.ErrDuplicateVersion)
		}
		return fmt.Errorf("insert game request: %w", err)
	}

	return nil
}

// GetByID retrieves a request by its id
func (r *GameRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GameRequest, error) {
	query := `
		SELECT id, game_id, game_name, version, bundle_url, developer_email,
		       approved_at, rejected_at, rejection_reason, created_at
		FROM game_requests
		WHERE id = $1
	`

	req := &models.GameRequest{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.GameID,
		&req.GameName,
		&req.Version,
		&req.BundleURL,
		&req.DeveloperEmail,
		&req.ApprovedAt,
		&req.RejectedAt,
		&req.RejectionReason,
		&req.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get game request %s: %w", id, models.ErrRequestNotFound)
		}
		return nil, fmt.Errorf("get game request: %w", err)
	}

	return req, nil
}

// MarkApproved sets approved_at iff the request is still pending.
// Returns false when the conditional update matched no row, i.e. the
// request was decided concurrently.
func (r *GameRequestRepository) MarkApproved(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	query := `
		UPDATE game_requests
		SET approved_at = $2
		WHERE id = $1 AND approved_at IS NULL AND rejected_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("mark game request approved: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkRejected sets rejected_at and the reason iff the request is still
// pending. Returns false when the request was already decided.
func (r *GameRequestRepository) MarkRejected(ctx context.Context, id uuid.UUID, at time.Time, reason string) (bool, error) {
	query := `
		UPDATE game_requests
		SET rejected_at = $2, rejection_reason = $3
		WHERE id = $1 AND approved_at IS NULL AND rejected_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, id, at, reason)
	if err != nil {
		return false, fmt.Errorf("mark game request rejected: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// isUniqueViolation inspects the structured Postgres error code rather
// than the error text.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
