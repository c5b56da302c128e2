// Package jobs holds background work that derives data from published
// results.
package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/padraicbc/gridpredict/metrics"
	"github.com/padraicbc/gridpredict/models"
	"github.com/padraicbc/gridpredict/scoring"
)

// ScoreStore is the storage the Rescorer reads from and writes to.
type ScoreStore interface {
	GetGrandPrix(ctx context.Context, id int) (*models.GrandPrix, error)
	GetOfficialResult(ctx context.Context, gpID int) (*models.OfficialResult, error)
	ListPredictionsForGP(ctx context.Context, gpID int) ([]models.Prediction, error)
	UpsertUserScores(ctx context.Context, scores []models.UserScore) error
}

// Rescorer rebuilds the per-user score cache of a GP from its official
// result using the scoring package.
type Rescorer struct {
	store   ScoreStore
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewRescorer creates a Rescorer. m may be nil.
func NewRescorer(store ScoreStore, log *zap.Logger, m *metrics.Metrics) *Rescorer {
	return &Rescorer{store: store, log: log, metrics: m, now: time.Now}
}

// RescoreGP recomputes every prediction of gpID and upserts the cache rows.
// It returns the number of rows written; a GP without an official result
// writes nothing.
func (r *Rescorer) RescoreGP(ctx context.Context, gpID int) (int, error) {
	start := time.Now()

	result, err := r.store.GetOfficialResult(ctx, gpID)
	if err != nil {
		return 0, err
	}
	if result == nil {
		r.log.Debug("rescore skipped, nothing published", zap.Int("gp_id", gpID))
		return 0, nil
	}
	res := result.Scoring()

	gp, err := r.store.GetGrandPrix(ctx, gpID)
	if err != nil {
		return 0, err
	}
	sgp := scoring.InferredGrandPrix(res)
	if gp != nil {
		sgp = gp.Scoring()
	} else {
		r.log.Warn("rescoring result of unscheduled gp", zap.Int("gp_id", gpID), zap.Bool("inferred_sprint", sgp.HasSprint))
	}

	preds, err := r.store.ListPredictionsForGP(ctx, gpID)
	if err != nil {
		return 0, err
	}

	at := r.now()
	rows := make([]models.UserScore, 0, len(preds))
	for _, p := range preds {
		s := scoring.CalculateGpScore(sgp, p.Scoring(), res)
		rows = append(rows, models.NewUserScore(p.UserID, s, at))
	}

	if err := r.store.UpsertUserScores(ctx, rows); err != nil {
		return 0, err
	}

	if r.metrics != nil {
		r.metrics.RescoreDuration.Observe(time.Since(start).Seconds())
		r.metrics.ScoresWritten.Add(float64(len(rows)))
	}
	r.log.Info("score cache rebuilt", zap.Int("gp_id", gpID), zap.Int("rows", len(rows)))
	return len(rows), nil
}

// RescoreAll rescores each GP with at most concurrency running at once.
// The first failure cancels the remaining work.
func (r *Rescorer) RescoreAll(ctx context.Context, gpIDs []int, concurrency int) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	counts := make([]int, len(gpIDs))
	for i, id := range gpIDs {
		g.Go(func() error {
			n, err := r.RescoreGP(gctx, id)
			if err != nil {
				return fmt.Errorf("rescore gp %d: %w", id, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}
