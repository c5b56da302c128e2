package store

import (
	"context"
	"fmt"

	"github.com/padraicbc/gridpredict/models"
)

// GetUserByUsername returns the user with the given login, or nil.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	ok, err := scanOne(ctx, s.db.NewSelect().Model(u).Where("username = ?", username), "user")
	if !ok {
		return nil, err
	}
	return u, nil
}

// ListUsers returns every user ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.NewSelect().Model(&users).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpsertUser creates u or, when the username exists, updates its password,
// display name and admin flag. The id of an existing row is kept.
func (s *Store) UpsertUser(ctx context.Context, u *models.User) error {
	_, err := s.db.NewInsert().Model(u).
		On("CONFLICT (username) DO UPDATE SET password = EXCLUDED.password, display_name = EXCLUDED.display_name, is_admin = EXCLUDED.is_admin").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", u.Username, err)
	}
	return nil
}

// AddPointAdjustment records a manual season correction.
func (s *Store) AddPointAdjustment(ctx context.Context, a *models.PointAdjustment) error {
	if _, err := s.db.NewInsert().Model(a).Exec(ctx); err != nil {
		return fmt.Errorf("insert point adjustment: %w", err)
	}
	return nil
}

// ListPointAdjustments returns every adjustment in the order they were made.
func (s *Store) ListPointAdjustments(ctx context.Context) ([]models.PointAdjustment, error) {
	var adj []models.PointAdjustment
	if err := s.db.NewSelect().Model(&adj).Order("created_at ASC", "id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list point adjustments: %w", err)
	}
	return adj, nil
}

// UpsertUserScores writes the score cache rows in a single statement.
func (s *Store) UpsertUserScores(ctx context.Context, scores []models.UserScore) error {
	if len(scores) == 0 {
		return nil
	}
	_, err := s.db.NewInsert().Model(&scores).
		On("CONFLICT (user_id, gp_id) DO UPDATE SET gp_name = EXCLUDED.gp_name, total_points = EXCLUDED.total_points, breakdown = EXCLUDED.breakdown, updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert user scores: %w", err)
	}
	return nil
}

// ListUserScores returns a user's cached per-GP scores ordered by GP.
func (s *Store) ListUserScores(ctx context.Context, userID string) ([]models.UserScore, error) {
	var scores []models.UserScore
	err := s.db.NewSelect().Model(&scores).
		Where("user_id = ?", userID).
		Order("gp_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list user scores %s: %w", userID, err)
	}
	return scores, nil
}
