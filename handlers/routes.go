package handlers

import (
	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/gridpredict/middleware"
)

// Register mounts every API route on e.
func (h *Handler) Register(e *echo.Echo) {
	// Public
	e.POST("/api/signin", h.Signin)
	e.GET("/api/health", h.Health)

	// Protected – require valid JWT in Authorization header
	api := e.Group("/api", mw.JWT(h.JWTKey))
	api.GET("/schedule", h.Schedule)
	api.GET("/schedule/:gpID/lock", h.LockStatus)
	api.GET("/drivers", h.Drivers)
	api.GET("/predictions", h.MyPredictions)
	api.GET("/predictions/:gpID", h.GetPrediction)
	api.PUT("/predictions/:gpID", h.SubmitPrediction)
	api.GET("/results/:gpID", h.OfficialResult)
	api.GET("/scores", h.MyScores)
	api.GET("/scores/:gpID", h.GpScore)
	api.GET("/standings", h.Standings)
	api.POST("/leagues", h.CreateLeague)
	api.POST("/leagues/:leagueID/join", h.JoinLeague)
	api.GET("/leagues/:leagueID/standings", h.LeagueStandings)

	admin := api.Group("/admin", mw.RequireAdmin)
	admin.POST("/users", h.CreateUser)
	admin.PUT("/schedule", h.UpsertGrandPrix)
	admin.PUT("/drivers", h.UpsertDriver)
	admin.GET("/results/:gpID/draft", h.DraftResult)
	admin.PUT("/results/:gpID/draft", h.SaveDraftResult)
	admin.POST("/results/:gpID/publish", h.PublishResult)
	admin.POST("/adjustments", h.AddAdjustment)
}
