// cmd/rescore/main.go
// Rebuilds the per-user score cache from every published result.
//
// Usage:
//
//	go run ./cmd/rescore [-gp 3] [-season 2025]
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/padraicbc/gridpredict/config"
	bundb "github.com/padraicbc/gridpredict/db"
	"github.com/padraicbc/gridpredict/jobs"
	applog "github.com/padraicbc/gridpredict/logger"
	"github.com/padraicbc/gridpredict/metrics"
	"github.com/padraicbc/gridpredict/store"
)

func main() {
	gpID := flag.Int("gp", 0, "rescore only this grand prix")
	season := flag.Int("season", 0, "rescore only this season (0 = every published result)")
	flag.Parse()

	cfg := config.Load()
	logger, err := applog.New(applog.Options{Debug: cfg.Debug, Level: cfg.LogLevel, Season: cfg.Season})
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := bundb.Setup(ctx, cfg)
	if err != nil {
		logger.Fatal("database setup failed", zap.Error(err))
	}
	defer db.Close()

	st := store.New(db)
	ids, err := targets(ctx, st, *gpID, *season)
	if err != nil {
		logger.Fatal("select grand prix", zap.Error(err))
	}

	r := jobs.NewRescorer(st, logger, metrics.New())
	n, err := r.RescoreAll(ctx, ids, cfg.RescoreConcurrency)
	if err != nil {
		logger.Fatal("rescore failed", zap.Error(err))
	}
	logger.Info("rescore finished", zap.Int("grand_prix", len(ids)), zap.Int("rows", n))
}

// targets picks the GPs to rescore: one GP, the published GPs of a season,
// or every published GP.
func targets(ctx context.Context, st *store.Store, gpID, season int) ([]int, error) {
	if gpID != 0 {
		return []int{gpID}, nil
	}

	results, err := st.ListOfficialResults(ctx)
	if err != nil {
		return nil, err
	}

	var keep map[int]bool
	if season != 0 {
		gps, err := st.ListSchedule(ctx, season)
		if err != nil {
			return nil, err
		}
		keep = make(map[int]bool, len(gps))
		for _, gp := range gps {
			keep[gp.ID] = true
		}
	}

	ids := make([]int, 0, len(results))
	for _, r := range results {
		if keep == nil || keep[r.GpID] {
			ids = append(ids, r.GpID)
		}
	}
	return ids, nil
}
