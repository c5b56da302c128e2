package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/gridpredict/models"
)

const predictionConflict = "CONFLICT (user_id, gp_id) DO UPDATE SET " +
	"pole = EXCLUDED.pole, sprint_pole = EXCLUDED.sprint_pole, " +
	"sprint_podium = EXCLUDED.sprint_podium, race_podium = EXCLUDED.race_podium, " +
	"fastest_lap = EXCLUDED.fastest_lap, driver_of_the_day = EXCLUDED.driver_of_the_day, " +
	"submitted_at = EXCLUDED.submitted_at"

// GetPrediction returns a user's prediction for a GP, or nil.
func (s *Store) GetPrediction(ctx context.Context, userID string, gpID int) (*models.Prediction, error) {
	p := &models.Prediction{}
	q := s.db.NewSelect().Model(p).Where("user_id = ?", userID).Where("gp_id = ?", gpID)
	ok, err := scanOne(ctx, q, "prediction")
	if !ok {
		return nil, err
	}
	return p, nil
}

// UpsertPrediction stores p, replacing any earlier prediction for the same
// user and GP.
func (s *Store) UpsertPrediction(ctx context.Context, p *models.Prediction) error {
	if _, err := s.db.NewInsert().Model(p).On(predictionConflict).Exec(ctx); err != nil {
		return fmt.Errorf("upsert prediction %s/%d: %w", p.UserID, p.GpID, err)
	}
	return nil
}

// ListPredictionsForGP returns every prediction submitted for a GP.
func (s *Store) ListPredictionsForGP(ctx context.Context, gpID int) ([]models.Prediction, error) {
	var ps []models.Prediction
	err := s.db.NewSelect().Model(&ps).
		Where("gp_id = ?", gpID).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list predictions for gp %d: %w", gpID, err)
	}
	return ps, nil
}

// ListPredictionsForGPs returns the predictions of several GPs in one query.
func (s *Store) ListPredictionsForGPs(ctx context.Context, gpIDs []int) ([]models.Prediction, error) {
	if len(gpIDs) == 0 {
		return nil, nil
	}
	var ps []models.Prediction
	err := s.db.NewSelect().Model(&ps).
		Where("gp_id IN (?)", bun.In(gpIDs)).
		Order("gp_id ASC", "user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return ps, nil
}

// ListPredictionsForUser returns a user's predictions ordered by GP.
func (s *Store) ListPredictionsForUser(ctx context.Context, userID string) ([]models.Prediction, error) {
	var ps []models.Prediction
	err := s.db.NewSelect().Model(&ps).
		Where("user_id = ?", userID).
		Order("gp_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list predictions for user %s: %w", userID, err)
	}
	return ps, nil
}
