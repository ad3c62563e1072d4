package pairing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// GetUserPlan returns the caller's active plan ID, or "free" when no
	// subscription row exists.
	GetUserPlan(ctx context.Context, userID string) (string, error)

	// GetExcludedUserIDs lists users the caller has swiped, blocked, or
	// ghosted (where the ghost has not expired).
	GetExcludedUserIDs(ctx context.Context, userID string) ([]string, error)

	// GetCandidates pages through profiles eligible for the caller's feed.
	GetCandidates(ctx context.Context, userID string, excluded []string, limit, offset int) ([]*Candidate, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetUserPlan(ctx context.Context, userID string) (string, error) {
	var planID string
	query := `
        SELECT plan_id
        FROM subscriptions
        WHERE user_id = $1 AND status = 'active'
        ORDER BY created_at DESC
        LIMIT 1
    `

	err := r.db.GetContext(ctx, &planID, query, userID)
	if err == sql.ErrNoRows {
		return FreePlanID, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get plan for %s: %w", userID, err)
	}

	return planID, nil
}

func (r *postgresRepository) GetExcludedUserIDs(ctx context.Context, userID string) ([]string, error) {
	var excluded []string
	query := `
        SELECT swiped_id FROM swipes WHERE swiper_id = $1
        UNION
        SELECT blocked_id FROM blocks WHERE blocker_id = $1
        UNION
        SELECT blocker_id FROM blocks WHERE blocked_id = $1
        UNION
        SELECT ghosted_id FROM ghosts
        WHERE ghoster_id = $1 AND (expires_at IS NULL OR expires_at > NOW())
    `

	if err := r.db.SelectContext(ctx, &excluded, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list exclusions for %s: %w", userID, err)
	}

	return excluded, nil
}

func (r *postgresRepository) GetCandidates(ctx context.Context, userID string, excluded []string, limit, offset int) ([]*Candidate, error) {
	// The caller is always excluded from their own feed
	excluded = append(excluded, userID)

	query, args, err := sqlx.In(`
        SELECT user_id, full_name, bio, university, interests,
               COALESCE(total_qcs, 0) AS qcs
        FROM profiles
        WHERE user_id NOT IN (?)
        ORDER BY updated_at DESC
        LIMIT ? OFFSET ?
    `, excluded, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to build candidates query: %w", err)
	}

	var candidates []*Candidate
	if err := r.db.SelectContext(ctx, &candidates, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list candidates for %s: %w", userID, err)
	}

	return candidates, nil
}
