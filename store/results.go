package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/gridpredict/models"
)

const officialConflict = "CONFLICT (gp_id) DO UPDATE SET " +
	"pole = EXCLUDED.pole, sprint_pole = EXCLUDED.sprint_pole, " +
	"sprint_podium = EXCLUDED.sprint_podium, race_podium = EXCLUDED.race_podium, " +
	"fastest_lap = EXCLUDED.fastest_lap, driver_of_the_day = EXCLUDED.driver_of_the_day, " +
	"published_at = EXCLUDED.published_at, published_sessions = EXCLUDED.published_sessions, " +
	"manual_overrides = EXCLUDED.manual_overrides"

// GetDraftResult returns the admin draft for a GP, or nil.
func (s *Store) GetDraftResult(ctx context.Context, gpID int) (*models.DraftResult, error) {
	r := &models.DraftResult{}
	ok, err := scanOne(ctx, s.db.NewSelect().Model(r).Where("gp_id = ?", gpID), "draft result")
	if !ok {
		return nil, err
	}
	return r, nil
}

// SaveDraftResult replaces the draft for r.GpID.
func (s *Store) SaveDraftResult(ctx context.Context, r *models.DraftResult) error {
	_, err := s.db.NewInsert().Model(r).
		On("CONFLICT (gp_id) DO UPDATE SET " +
			"pole = EXCLUDED.pole, sprint_pole = EXCLUDED.sprint_pole, " +
			"sprint_podium = EXCLUDED.sprint_podium, race_podium = EXCLUDED.race_podium, " +
			"fastest_lap = EXCLUDED.fastest_lap, driver_of_the_day = EXCLUDED.driver_of_the_day, " +
			"updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save draft result %d: %w", r.GpID, err)
	}
	return nil
}

// GetOfficialResult returns the published result for a GP, or nil when
// nothing has been published yet.
func (s *Store) GetOfficialResult(ctx context.Context, gpID int) (*models.OfficialResult, error) {
	r := &models.OfficialResult{}
	ok, err := scanOne(ctx, s.db.NewSelect().Model(r).Where("gp_id = ?", gpID), "official result")
	if !ok {
		return nil, err
	}
	return r, nil
}

// ListOfficialResults returns every published result ordered by GP.
func (s *Store) ListOfficialResults(ctx context.Context) ([]models.OfficialResult, error) {
	var rs []models.OfficialResult
	if err := s.db.NewSelect().Model(&rs).Order("gp_id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list official results: %w", err)
	}
	return rs, nil
}

// SaveOfficialResult writes r as the published result of its GP.
func (s *Store) SaveOfficialResult(ctx context.Context, r *models.OfficialResult) error {
	return saveOfficial(ctx, s.db, r)
}

func saveOfficial(ctx context.Context, db bun.IDB, r *models.OfficialResult) error {
	if _, err := db.NewInsert().Model(r).On(officialConflict).Exec(ctx); err != nil {
		return fmt.Errorf("save official result %d: %w", r.GpID, err)
	}
	return nil
}

// PublishResult copies the draft fields of groups into the official result
// of gpID inside one transaction and returns the stored result.
func (s *Store) PublishResult(ctx context.Context, gpID int, groups []models.SessionGroup,
	overrides map[string]models.ManualOverride, at time.Time) (*models.OfficialResult, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin publish: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	draft := &models.DraftResult{}
	if err := tx.NewSelect().Model(draft).Where("gp_id = ?", gpID).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDraft
		}
		return nil, fmt.Errorf("select draft result %d: %w", gpID, err)
	}

	official := &models.OfficialResult{}
	err = tx.NewSelect().Model(official).Where("gp_id = ?", gpID).For("UPDATE").Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		official = &models.OfficialResult{GpID: gpID, PublishedSessions: []models.SessionGroup{}}
	case err != nil:
		return nil, fmt.Errorf("select official result %d: %w", gpID, err)
	}

	official.Publish(draft.Picks, groups, overrides, at)
	if err := saveOfficial(ctx, tx, official); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit publish: %w", err)
	}
	committed = true

	return official, nil
}
