package store

import (
	"context"
	"fmt"

	"github.com/padraicbc/gridpredict/models"
)

// CreateLeague inserts l and makes its owner the first member.
func (s *Store) CreateLeague(ctx context.Context, l *models.League) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create league: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.NewInsert().Model(l).Exec(ctx); err != nil {
		return fmt.Errorf("insert league %s: %w", l.Name, err)
	}
	owner := &models.LeagueMember{LeagueID: l.ID, UserID: l.OwnerID, JoinedAt: l.CreatedAt}
	if _, err := tx.NewInsert().Model(owner).Exec(ctx); err != nil {
		return fmt.Errorf("insert league owner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create league: %w", err)
	}
	committed = true
	return nil
}

// GetLeague returns a league by id, or nil.
func (s *Store) GetLeague(ctx context.Context, id string) (*models.League, error) {
	l := &models.League{}
	ok, err := scanOne(ctx, s.db.NewSelect().Model(l).Where("id = ?", id), "league")
	if !ok {
		return nil, err
	}
	return l, nil
}

// AddLeagueMember adds m. Joining twice is a no-op.
func (s *Store) AddLeagueMember(ctx context.Context, m *models.LeagueMember) error {
	_, err := s.db.NewInsert().Model(m).
		On("CONFLICT (league_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("add league member: %w", err)
	}
	return nil
}

// ListLeagueMembers returns the user ids in a league.
func (s *Store) ListLeagueMembers(ctx context.Context, leagueID string) ([]string, error) {
	var ids []string
	err := s.db.NewSelect().
		Model((*models.LeagueMember)(nil)).
		Column("user_id").
		Where("league_id = ?", leagueID).
		Order("user_id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("list league members %s: %w", leagueID, err)
	}
	return ids, nil
}
