package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mw "github.com/padraicbc/gridpredict/middleware"
	"github.com/padraicbc/gridpredict/models"
	"github.com/padraicbc/gridpredict/scoring"
	"github.com/padraicbc/gridpredict/store"
)

type publishRequest struct {
	Sessions  []models.SessionGroup            `json:"sessions" validate:"required,min=1,dive,session_group"`
	Overrides map[string]models.ManualOverride `json:"manualOverrides" validate:"omitempty,dive"`
}

// overridable are the result fields a manual override may name.
var overridable = map[string]struct{}{
	"pole":           {},
	"sprintPole":     {},
	"sprintPodium":   {},
	"racePodium":     {},
	"fastestLap":     {},
	"driverOfTheDay": {},
}

// OfficialResult returns the published result of a GP.
func (h *Handler) OfficialResult(c echo.Context) error {
	id, err := gpIDParam(c)
	if err != nil {
		return err
	}
	r, err := h.store.GetOfficialResult(c.Request().Context(), id)
	if err != nil {
		return internal(err)
	}
	if r == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no result published")
	}
	return c.JSON(http.StatusOK, r)
}

// DraftResult returns the admin draft of a GP's result.
func (h *Handler) DraftResult(c echo.Context) error {
	id, err := gpIDParam(c)
	if err != nil {
		return err
	}
	r, err := h.store.GetDraftResult(c.Request().Context(), id)
	if err != nil {
		return internal(err)
	}
	if r == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no draft result")
	}
	return c.JSON(http.StatusOK, r)
}

// SaveDraftResult replaces the draft result of a GP. Nothing is scored
// until the draft is published.
func (h *Handler) SaveDraftResult(c echo.Context) error {
	gp, err := h.grandPrix(c)
	if err != nil {
		return err
	}

	var picks models.Picks
	if err := h.bindValid(c, &picks); err != nil {
		return err
	}
	if !gp.HasSprint && picks.Scoring().HasSprintFields() {
		return echo.NewHTTPError(http.StatusBadRequest, "sprint results are not allowed on a non-sprint weekend")
	}
	for _, podium := range [][]scoring.DriverID{picks.RacePodium, picks.SprintPodium} {
		if d, dup := models.DuplicateDriver(podium); dup {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("driver %s appears twice on one podium", d))
		}
	}

	ctx := c.Request().Context()
	// retired drivers are valid in results of past races
	drivers, err := h.store.ListDrivers(ctx, false)
	if err != nil {
		return internal(err)
	}
	if err := checkDrivers(drivers, picks.Drivers()); err != nil {
		return err
	}

	draft := &models.DraftResult{
		GpID:      gp.ID,
		Picks:     picks,
		UpdatedBy: mw.Username(c),
		UpdatedAt: h.now(),
	}
	if err := h.store.SaveDraftResult(ctx, draft); err != nil {
		return internal(err)
	}
	return c.JSON(http.StatusOK, draft)
}

// PublishResult releases the requested session groups of the draft as the
// official result, then rebuilds the GP's score cache.
func (h *Handler) PublishResult(c echo.Context) error {
	gp, err := h.grandPrix(c)
	if err != nil {
		return err
	}

	var req publishRequest
	if err := h.bindValid(c, &req); err != nil {
		return err
	}
	for _, g := range req.Sessions {
		if g == models.GroupSprint && !gp.HasSprint {
			return echo.NewHTTPError(http.StatusBadRequest, "cannot publish sprint results of a non-sprint weekend")
		}
	}
	for field := range req.Overrides {
		if _, ok := overridable[field]; !ok {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown override field %s", field))
		}
	}

	ctx := c.Request().Context()
	official, err := h.store.PublishResult(ctx, gp.ID, req.Sessions, req.Overrides, h.now())
	if err != nil {
		if errors.Is(err, store.ErrNoDraft) {
			return echo.NewHTTPError(http.StatusConflict, "save a draft result before publishing")
		}
		return internal(err)
	}
	if h.metrics != nil {
		for _, g := range req.Sessions {
			h.metrics.ResultsPublished.WithLabelValues(string(g)).Inc()
		}
	}
	h.log.Info("result published",
		zap.Int("gp_id", gp.ID),
		zap.Any("sessions", req.Sessions),
		zap.String("by", mw.Username(c)),
	)

	n, err := h.rescorer.RescoreGP(ctx, gp.ID)
	if err != nil {
		h.log.Error("rescore after publish", zap.Int("gp_id", gp.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "result published but score cache not rebuilt; publish again to retry")
	}

	return c.JSON(http.StatusOK, map[string]any{"result": official, "scoresWritten": n})
}
