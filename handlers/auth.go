package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/padraicbc/gridpredict/middleware"
	"github.com/padraicbc/gridpredict/models"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type newUserRequest struct {
	Username    string `json:"username" validate:"required,max=64"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"displayName" validate:"max=128"`
	IsAdmin     bool   `json:"isAdmin"`
}

// HashPasswordForUser validates username/password input and returns a bcrypt hash for storage.
func HashPasswordForUser(username, password string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", errors.New("username is required")
	}
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

// NewUser builds a user with a fresh id and a hashed password. An empty
// display name falls back to the username.
func NewUser(username, password, displayName string, isAdmin bool) (*models.User, error) {
	username = strings.TrimSpace(username)
	hash, err := HashPasswordForUser(username, password)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(displayName) == "" {
		displayName = username
	}
	return &models.User{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: strings.TrimSpace(displayName),
		Password:    hash,
		IsAdmin:     isAdmin,
		CreatedAt:   time.Now(),
	}, nil
}

// Signin validates credentials and returns a JWT token valid for 30 days.
func (h *Handler) Signin(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds.Username = strings.TrimSpace(creds.Username)

	user, err := h.store.GetUserByUsername(c.Request().Context(), creds.Username)
	if err != nil {
		return internal(err)
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect username or password")
	}

	isAdmin := user.IsAdmin || h.cfg.IsAdminUser(user.Username)
	// token expiry is checked against the wall clock, not h.now
	token, err := mw.NewToken(h.JWTKey, user.ID, user.Username, isAdmin, time.Now())
	if err != nil {
		return internal(err)
	}

	return c.JSON(http.StatusOK, map[string]any{"token": token, "userId": user.ID, "isAdmin": isAdmin})
}

// CreateUser registers a user or resets an existing one's password.
// Admin only.
func (h *Handler) CreateUser(c echo.Context) error {
	var req newUserRequest
	if err := h.bindValid(c, &req); err != nil {
		return err
	}

	user, err := NewUser(req.Username, req.Password, req.DisplayName, req.IsAdmin)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	if err := h.store.UpsertUser(ctx, user); err != nil {
		return internal(err)
	}

	// an existing username keeps its original id
	saved, err := h.store.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return internal(err)
	}
	if saved == nil {
		saved = user
	}

	return c.JSON(http.StatusCreated, saved)
}

// Health reports whether the database is reachable.
func (h *Handler) Health(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
