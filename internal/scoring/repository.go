package scoring

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Profiles
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)
	UpdateProfileTotalQCS(ctx context.Context, userID string, score int) error

	// QCS records
	GetQCSRecord(ctx context.Context, userID string) (*QCSRecord, error)
	UpsertQCSRecord(ctx context.Context, record *QCSRecord) error

	// Pairwise compatibility scores
	GetCompatibility(ctx context.Context, user1ID, user2ID string) (*CompatibilityScore, error)
	UpsertCompatibility(ctx context.Context, score *CompatibilityScore) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// Profile Methods

func (r *postgresRepository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	query := `
        SELECT user_id, full_name, date_of_birth, bio, interests, university,
               height, body_type, skin_tone, face_type,
               personality_type, values, mindset, lifestyle,
               qualities, requirements, total_qcs, created_at, updated_at
        FROM profiles
        WHERE user_id = $1
    `

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}

	return &profile, nil
}

func (r *postgresRepository) ListProfiles(ctx context.Context) ([]*Profile, error) {
	var profiles []*Profile
	query := `
        SELECT user_id, full_name, date_of_birth, bio, interests, university,
               height, body_type, skin_tone, face_type,
               personality_type, values, mindset, lifestyle,
               qualities, requirements, total_qcs, created_at, updated_at
        FROM profiles
        ORDER BY created_at
    `

	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

func (r *postgresRepository) UpdateProfileTotalQCS(ctx context.Context, userID string, score int) error {
	query := `
        UPDATE profiles
        SET total_qcs = $2, updated_at = CURRENT_TIMESTAMP
        WHERE user_id = $1
    `

	result, err := r.db.ExecContext(ctx, query, userID, score)
	if err != nil {
		return fmt.Errorf("failed to update total_qcs for %s: %w", userID, err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// QCS Record Methods

func (r *postgresRepository) GetQCSRecord(ctx context.Context, userID string) (*QCSRecord, error) {
	var record QCSRecord
	query := `
        SELECT user_id, total_score, logic_score, ai_score, per_category, updated_at
        FROM qcs_scores
        WHERE user_id = $1
    `

	err := r.db.GetContext(ctx, &record, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrQCSNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get QCS record %s: %w", userID, err)
	}

	return &record, nil
}

func (r *postgresRepository) UpsertQCSRecord(ctx context.Context, record *QCSRecord) error {
	query := `
        INSERT INTO qcs_scores (user_id, total_score, logic_score, ai_score, per_category, updated_at)
        VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
        ON CONFLICT (user_id)
        DO UPDATE SET
            total_score = $2,
            logic_score = $3,
            ai_score = $4,
            per_category = $5,
            updated_at = CURRENT_TIMESTAMP
        RETURNING updated_at
    `

	err := r.db.QueryRowxContext(
		ctx, query,
		record.UserID, record.TotalScore, record.LogicScore,
		record.AIScore, record.PerCategory,
	).Scan(&record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert QCS record %s: %w", record.UserID, err)
	}

	return nil
}

// Compatibility Methods

func (r *postgresRepository) GetCompatibility(ctx context.Context, user1ID, user2ID string) (*CompatibilityScore, error) {
	user1ID, user2ID = CanonicalPair(user1ID, user2ID)

	var score CompatibilityScore
	query := `
        SELECT user1_id, user2_id, compatibility_score, physical_score, mental_score, calculated_at
        FROM compatibility_scores
        WHERE user1_id = $1 AND user2_id = $2
    `

	err := r.db.GetContext(ctx, &score, query, user1ID, user2ID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get compatibility %s/%s: %w", user1ID, user2ID, err)
	}

	return &score, nil
}

func (r *postgresRepository) UpsertCompatibility(ctx context.Context, score *CompatibilityScore) error {
	// Ensure user1_id < user2_id for consistency
	score.User1ID, score.User2ID = CanonicalPair(score.User1ID, score.User2ID)

	query := `
        INSERT INTO compatibility_scores (
            user1_id, user2_id, compatibility_score, physical_score, mental_score, calculated_at
        ) VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
        ON CONFLICT (user1_id, user2_id)
        DO UPDATE SET
            compatibility_score = $3,
            physical_score = $4,
            mental_score = $5,
            calculated_at = CURRENT_TIMESTAMP
        RETURNING calculated_at
    `

	err := r.db.QueryRowxContext(
		ctx, query,
		score.User1ID, score.User2ID,
		score.Score, score.PhysicalScore, score.MentalScore,
	).Scan(&score.CalculatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert compatibility %s/%s: %w", score.User1ID, score.User2ID, err)
	}

	return nil
}
