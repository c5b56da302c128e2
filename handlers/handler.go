package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/padraicbc/gridpredict/config"
	"github.com/padraicbc/gridpredict/metrics"
	"github.com/padraicbc/gridpredict/models"
)

// Store is the persistence the handlers need. *store.Store implements it.
type Store interface {
	Ping(ctx context.Context) error

	ListSchedule(ctx context.Context, season int) ([]models.GrandPrix, error)
	GetGrandPrix(ctx context.Context, id int) (*models.GrandPrix, error)
	UpsertGrandPrix(ctx context.Context, gp *models.GrandPrix) error
	ListDrivers(ctx context.Context, activeOnly bool) ([]models.Driver, error)
	UpsertDriver(ctx context.Context, d *models.Driver) error

	GetPrediction(ctx context.Context, userID string, gpID int) (*models.Prediction, error)
	UpsertPrediction(ctx context.Context, p *models.Prediction) error
	ListPredictionsForGPs(ctx context.Context, gpIDs []int) ([]models.Prediction, error)
	ListPredictionsForUser(ctx context.Context, userID string) ([]models.Prediction, error)

	GetDraftResult(ctx context.Context, gpID int) (*models.DraftResult, error)
	SaveDraftResult(ctx context.Context, r *models.DraftResult) error
	GetOfficialResult(ctx context.Context, gpID int) (*models.OfficialResult, error)
	ListOfficialResults(ctx context.Context) ([]models.OfficialResult, error)
	PublishResult(ctx context.Context, gpID int, groups []models.SessionGroup,
		overrides map[string]models.ManualOverride, at time.Time) (*models.OfficialResult, error)

	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpsertUser(ctx context.Context, u *models.User) error
	AddPointAdjustment(ctx context.Context, a *models.PointAdjustment) error
	ListPointAdjustments(ctx context.Context) ([]models.PointAdjustment, error)
	ListUserScores(ctx context.Context, userID string) ([]models.UserScore, error)

	CreateLeague(ctx context.Context, l *models.League) error
	GetLeague(ctx context.Context, id string) (*models.League, error)
	AddLeagueMember(ctx context.Context, m *models.LeagueMember) error
	ListLeagueMembers(ctx context.Context, leagueID string) ([]string, error)
}

// Rescorer rebuilds the score cache of a GP after publication.
type Rescorer interface {
	RescoreGP(ctx context.Context, gpID int) (int, error)
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store    Store
	rescorer Rescorer
	log      *zap.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
	cfg      *config.Config
	now      func() time.Time

	JWTKey []byte
}

// New creates a Handler.
func New(s Store, r Rescorer, log *zap.Logger, m *metrics.Metrics, cfg *config.Config) *Handler {
	v := validator.New()
	if err := v.RegisterValidation("session_group", validateSessionGroup); err != nil {
		panic(fmt.Sprintf("register session_group validation: %v", err))
	}

	return &Handler{
		store:    s,
		rescorer: r,
		log:      log,
		metrics:  m,
		validate: v,
		cfg:      cfg,
		now:      time.Now,
		JWTKey:   cfg.JWTKey(),
	}
}

func validateSessionGroup(fl validator.FieldLevel) bool {
	return models.ValidGroup(models.SessionGroup(fl.Field().String()))
}
