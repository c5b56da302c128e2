package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mw "github.com/padraicbc/gridpredict/middleware"
	"github.com/padraicbc/gridpredict/models"
	"github.com/padraicbc/gridpredict/scoring"
)

type predictionResponse struct {
	*models.Prediction
	Lock scoring.LockStatus `json:"lock"`
}

// GetPrediction returns the caller's prediction for a GP. A GP the caller
// has not predicted yet returns an empty prediction.
func (h *Handler) GetPrediction(c echo.Context) error {
	gp, err := h.grandPrix(c)
	if err != nil {
		return err
	}
	userID := mw.UserID(c)

	p, err := h.store.GetPrediction(c.Request().Context(), userID, gp.ID)
	if err != nil {
		return internal(err)
	}
	if p == nil {
		p = &models.Prediction{UserID: userID, GpID: gp.ID}
	}

	return c.JSON(http.StatusOK, predictionResponse{Prediction: p, Lock: scoring.LockStatusAt(gp.Scoring(), h.now())})
}

// SubmitPrediction stores the caller's picks for a GP. Sections whose form
// is locked must be resent unchanged; any change to them is refused with
// 423 Locked.
func (h *Handler) SubmitPrediction(c echo.Context) error {
	gp, err := h.grandPrix(c)
	if err != nil {
		return err
	}

	var picks models.Picks
	if err := h.bindValid(c, &picks); err != nil {
		h.rejected("invalid")
		return err
	}

	if !gp.HasSprint && picks.Scoring().HasSprintFields() {
		h.rejected("sprint_on_non_sprint")
		return echo.NewHTTPError(http.StatusBadRequest, "sprint picks are not allowed on a non-sprint weekend")
	}
	for _, podium := range [][]scoring.DriverID{picks.RacePodium, picks.SprintPodium} {
		if d, dup := models.DuplicateDriver(podium); dup {
			h.rejected("duplicate_driver")
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("driver %s picked twice on one podium", d))
		}
	}

	ctx := c.Request().Context()
	userID := mw.UserID(c)
	now := h.now()

	prev, err := h.store.GetPrediction(ctx, userID, gp.ID)
	if err != nil {
		return internal(err)
	}
	if prev == nil {
		prev = &models.Prediction{}
	}

	lock := scoring.LockStatusAt(gp.Scoring(), now)
	var changed []scoring.DriverID
	if !picks.MainPicks().Equal(prev.MainPicks()) {
		if lock.IsRaceLocked {
			h.rejected("locked")
			return echo.NewHTTPError(http.StatusLocked, "race predictions are locked")
		}
		changed = append(changed, picks.MainPicks().Drivers()...)
	}
	if !picks.SprintPicks().Equal(prev.SprintPicks()) {
		if lock.IsSprintLocked {
			h.rejected("locked")
			return echo.NewHTTPError(http.StatusLocked, "sprint predictions are locked")
		}
		changed = append(changed, picks.SprintPicks().Drivers()...)
	}

	if err := h.checkActiveDrivers(c, changed); err != nil {
		h.rejected("unknown_driver")
		return err
	}

	p := &models.Prediction{UserID: userID, GpID: gp.ID, Picks: picks, SubmittedAt: now}
	if err := h.store.UpsertPrediction(ctx, p); err != nil {
		return internal(err)
	}

	if h.metrics != nil {
		h.metrics.PredictionsSubmitted.Inc()
	}
	h.log.Debug("prediction saved", zap.String("user_id", userID), zap.Int("gp_id", gp.ID))

	return c.JSON(http.StatusOK, predictionResponse{Prediction: p, Lock: lock})
}

// MyPredictions lists every prediction the caller has made.
func (h *Handler) MyPredictions(c echo.Context) error {
	ps, err := h.store.ListPredictionsForUser(c.Request().Context(), mw.UserID(c))
	if err != nil {
		return internal(err)
	}
	if ps == nil {
		ps = []models.Prediction{}
	}
	return c.JSON(http.StatusOK, ps)
}

// checkActiveDrivers fails with 400 if any id is not an active driver.
func (h *Handler) checkActiveDrivers(c echo.Context, ids []scoring.DriverID) error {
	if len(ids) == 0 {
		return nil
	}
	drivers, err := h.store.ListDrivers(c.Request().Context(), true)
	if err != nil {
		return internal(err)
	}
	return checkDrivers(drivers, ids)
}

func checkDrivers(known []models.Driver, ids []scoring.DriverID) error {
	set := make(map[scoring.DriverID]struct{}, len(known))
	for _, d := range known {
		set[scoring.DriverID(d.ID)] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown driver %s", id))
		}
	}
	return nil
}

func (h *Handler) rejected(reason string) {
	if h.metrics != nil {
		h.metrics.PredictionsRejected.WithLabelValues(reason).Inc()
	}
}
