package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/gridpredict/middleware"
	"github.com/padraicbc/gridpredict/models"
	"github.com/padraicbc/gridpredict/scoring"
)

type leagueRequest struct {
	Name string `json:"name" validate:"required,min=3,max=64"`
}

type leagueStandings struct {
	League    *models.League        `json:"league"`
	Standings []scoring.SeasonTotal `json:"standings"`
}

// CreateLeague creates a league owned by the caller, who becomes its first
// member.
func (h *Handler) CreateLeague(c echo.Context) error {
	var req leagueRequest
	if err := h.bindValid(c, &req); err != nil {
		return err
	}

	l := &models.League{
		ID:        uuid.NewString(),
		Name:      req.Name,
		OwnerID:   mw.UserID(c),
		CreatedAt: h.now(),
	}
	if err := h.store.CreateLeague(c.Request().Context(), l); err != nil {
		return internal(err)
	}
	return c.JSON(http.StatusCreated, l)
}

// JoinLeague adds the caller to a league.
func (h *Handler) JoinLeague(c echo.Context) error {
	l, err := h.league(c)
	if err != nil {
		return err
	}

	m := &models.LeagueMember{LeagueID: l.ID, UserID: mw.UserID(c), JoinedAt: h.now()}
	if err := h.store.AddLeagueMember(c.Request().Context(), m); err != nil {
		return internal(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LeagueStandings returns the season standings restricted to a league.
func (h *Handler) LeagueStandings(c echo.Context) error {
	l, err := h.league(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	members, err := h.store.ListLeagueMembers(ctx, l.ID)
	if err != nil {
		return internal(err)
	}
	st, err := h.seasonStandings(ctx)
	if err != nil {
		return internal(err)
	}

	return c.JSON(http.StatusOK, leagueStandings{League: l, Standings: scoring.LeagueStandings(st, members)})
}

func (h *Handler) league(c echo.Context) (*models.League, error) {
	id := c.Param("leagueID")
	if err := uuid.Validate(id); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid leagueID")
	}
	l, err := h.store.GetLeague(c.Request().Context(), id)
	if err != nil {
		return nil, internal(err)
	}
	if l == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "league not found")
	}
	return l, nil
}
