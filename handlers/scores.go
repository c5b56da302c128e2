package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mw "github.com/padraicbc/gridpredict/middleware"
	"github.com/padraicbc/gridpredict/models"
	"github.com/padraicbc/gridpredict/scoring"
)

type adjustmentRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
	Points int    `json:"points" validate:"required,gte=-1000,lte=1000"`
	Reason string `json:"reason" validate:"required,max=512"`
}

// GpScore scores the caller's prediction for a GP against its official
// result. A GP the caller did not predict scores zero.
func (h *Handler) GpScore(c echo.Context) error {
	gp, err := h.grandPrix(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	r, err := h.store.GetOfficialResult(ctx, gp.ID)
	if err != nil {
		return internal(err)
	}
	if r == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no result published")
	}

	userID := mw.UserID(c)
	p, err := h.store.GetPrediction(ctx, userID, gp.ID)
	if err != nil {
		return internal(err)
	}
	pred := scoring.Prediction{UserID: userID, GpID: gp.ID}
	if p != nil {
		pred = p.Scoring()
	}

	return c.JSON(http.StatusOK, scoring.CalculateGpScore(gp.Scoring(), pred, r.Scoring()))
}

// MyScores returns the caller's cached per-GP scores.
func (h *Handler) MyScores(c echo.Context) error {
	scores, err := h.store.ListUserScores(c.Request().Context(), mw.UserID(c))
	if err != nil {
		return internal(err)
	}
	if scores == nil {
		scores = []models.UserScore{}
	}
	return c.JSON(http.StatusOK, scores)
}

// Standings returns the season standings of the configured season.
func (h *Handler) Standings(c echo.Context) error {
	st, err := h.seasonStandings(c.Request().Context())
	if err != nil {
		return internal(err)
	}
	return c.JSON(http.StatusOK, st)
}

// AddAdjustment records a manual correction to a user's season total.
func (h *Handler) AddAdjustment(c echo.Context) error {
	var req adjustmentRequest
	if err := h.bindValid(c, &req); err != nil {
		return err
	}

	a := &models.PointAdjustment{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Points:    req.Points,
		Reason:    req.Reason,
		AdminID:   mw.UserID(c),
		CreatedAt: h.now(),
	}
	if err := h.store.AddPointAdjustment(c.Request().Context(), a); err != nil {
		return internal(err)
	}
	h.log.Info("point adjustment",
		zap.String("user_id", a.UserID),
		zap.Int("points", a.Points),
		zap.String("admin_id", a.AdminID),
	)
	return c.JSON(http.StatusCreated, a)
}

// seasonStandings loads everything the season aggregation needs and runs it.
// Only results of GPs on the configured season's schedule count.
func (h *Handler) seasonStandings(ctx context.Context) ([]scoring.SeasonTotal, error) {
	gps, err := h.store.ListSchedule(ctx, h.cfg.Season)
	if err != nil {
		return nil, err
	}
	inSeason := make(map[int]struct{}, len(gps))
	schedule := make([]scoring.GrandPrix, 0, len(gps))
	for _, gp := range gps {
		inSeason[gp.ID] = struct{}{}
		schedule = append(schedule, gp.Scoring())
	}

	official, err := h.store.ListOfficialResults(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]scoring.Result, 0, len(official))
	gpIDs := make([]int, 0, len(official))
	for _, r := range official {
		if _, ok := inSeason[r.GpID]; !ok {
			continue
		}
		results = append(results, r.Scoring())
		gpIDs = append(gpIDs, r.GpID)
	}

	preds, err := h.store.ListPredictionsForGPs(ctx, gpIDs)
	if err != nil {
		return nil, err
	}
	predictions := make([]scoring.Prediction, len(preds))
	for i, p := range preds {
		predictions[i] = p.Scoring()
	}

	us, err := h.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]scoring.User, len(us))
	for i, u := range us {
		users[i] = u.Scoring()
	}

	adj, err := h.store.ListPointAdjustments(ctx)
	if err != nil {
		return nil, err
	}
	adjustments := make([]scoring.PointAdjustment, len(adj))
	for i, a := range adj {
		adjustments[i] = a.Scoring()
	}

	return scoring.CalculateSeasonStandings(schedule, users, predictions, results, adjustments), nil
}
