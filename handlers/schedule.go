package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/gridpredict/models"
	"github.com/padraicbc/gridpredict/scoring"
)

type scheduleEntry struct {
	models.GrandPrix
	Lock scoring.LockStatus `json:"lock"`
}

// Schedule lists the configured season's GPs with their current lock state.
func (h *Handler) Schedule(c echo.Context) error {
	gps, err := h.store.ListSchedule(c.Request().Context(), h.cfg.Season)
	if err != nil {
		return internal(err)
	}

	now := h.now()
	out := make([]scheduleEntry, 0, len(gps))
	for _, gp := range gps {
		out = append(out, scheduleEntry{GrandPrix: gp, Lock: scoring.LockStatusAt(gp.Scoring(), now)})
	}
	return c.JSON(http.StatusOK, out)
}

// LockStatus returns the lock state of one GP's prediction forms.
func (h *Handler) LockStatus(c echo.Context) error {
	gp, err := h.grandPrix(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scoring.LockStatusAt(gp.Scoring(), h.now()))
}

// Drivers lists active drivers. ?all=true includes retired ones.
func (h *Handler) Drivers(c echo.Context) error {
	drivers, err := h.store.ListDrivers(c.Request().Context(), c.QueryParam("all") != "true")
	if err != nil {
		return internal(err)
	}
	return c.JSON(http.StatusOK, drivers)
}

// UpsertGrandPrix creates or replaces a calendar entry.
func (h *Handler) UpsertGrandPrix(c echo.Context) error {
	var gp models.GrandPrix
	if err := h.bindValid(c, &gp); err != nil {
		return err
	}
	if _, ok := gp.Events[scoring.SessionQuali]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "events.quali is required")
	}
	if _, ok := gp.Events[scoring.SessionRace]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "events.race is required")
	}
	_, sq := gp.Events[scoring.SessionSprintQuali]
	_, sp := gp.Events[scoring.SessionSprint]
	switch {
	case gp.HasSprint && !sp:
		return echo.NewHTTPError(http.StatusBadRequest, "events.sprint is required on a sprint weekend")
	case !gp.HasSprint && (sq || sp):
		return echo.NewHTTPError(http.StatusBadRequest, "sprint events on a non-sprint weekend")
	}

	if err := h.store.UpsertGrandPrix(c.Request().Context(), &gp); err != nil {
		return internal(err)
	}
	return c.JSON(http.StatusOK, gp)
}

// UpsertDriver creates or updates a driver.
func (h *Handler) UpsertDriver(c echo.Context) error {
	var d models.Driver
	if err := h.bindValid(c, &d); err != nil {
		return err
	}
	if err := h.store.UpsertDriver(c.Request().Context(), &d); err != nil {
		return internal(err)
	}
	return c.JSON(http.StatusOK, d)
}

// grandPrix loads the GP named by the :gpID path param or fails with 404.
func (h *Handler) grandPrix(c echo.Context) (*models.GrandPrix, error) {
	id, err := gpIDParam(c)
	if err != nil {
		return nil, err
	}
	gp, err := h.store.GetGrandPrix(c.Request().Context(), id)
	if err != nil {
		return nil, internal(err)
	}
	if gp == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "grand prix not found")
	}
	return gp, nil
}
