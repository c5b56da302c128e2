package store

import (
	"context"
	"fmt"

	"github.com/padraicbc/gridpredict/models"
)

// ListSchedule returns the GPs of a season ordered by round. Season 0 lists
// every season.
func (s *Store) ListSchedule(ctx context.Context, season int) ([]models.GrandPrix, error) {
	var gps []models.GrandPrix
	q := s.db.NewSelect().Model(&gps).Order("season ASC", "round ASC")
	if season != 0 {
		q = q.Where("season = ?", season)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	return gps, nil
}

// GetGrandPrix returns one GP, or nil if it does not exist.
func (s *Store) GetGrandPrix(ctx context.Context, id int) (*models.GrandPrix, error) {
	gp := &models.GrandPrix{}
	ok, err := scanOne(ctx, s.db.NewSelect().Model(gp).Where("id = ?", id), "grand prix")
	if !ok {
		return nil, err
	}
	return gp, nil
}

// UpsertGrandPrix inserts gp or replaces every column of an existing row.
func (s *Store) UpsertGrandPrix(ctx context.Context, gp *models.GrandPrix) error {
	_, err := s.db.NewInsert().Model(gp).
		On("CONFLICT (id) DO UPDATE SET season = EXCLUDED.season, round = EXCLUDED.round, name = EXCLUDED.name, has_sprint = EXCLUDED.has_sprint, events = EXCLUDED.events").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert grand prix %d: %w", gp.ID, err)
	}
	return nil
}

// ListDrivers returns drivers ordered by id, optionally only active ones.
func (s *Store) ListDrivers(ctx context.Context, activeOnly bool) ([]models.Driver, error) {
	var drivers []models.Driver
	q := s.db.NewSelect().Model(&drivers).Order("id ASC")
	if activeOnly {
		q = q.Where("is_active")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

// UpsertDriver inserts d or updates an existing driver with the same id.
func (s *Store) UpsertDriver(ctx context.Context, d *models.Driver) error {
	_, err := s.db.NewInsert().Model(d).
		On("CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, team = EXCLUDED.team, number = EXCLUDED.number, is_active = EXCLUDED.is_active").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert driver %s: %w", d.ID, err)
	}
	return nil
}
