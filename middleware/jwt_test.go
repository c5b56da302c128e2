package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-key")

func serve(t *testing.T, h echo.HandlerFunc, authz string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	return c, h(c)
}

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestJWTValidToken(t *testing.T) {
	token, err := NewToken(testKey, "u1", "alice", true, time.Now())
	require.NoError(t, err)

	for _, authz := range []string{token, "Bearer " + token} {
		c, err := serve(t, JWT(testKey)(ok), authz)
		require.NoError(t, err)
		assert.Equal(t, "u1", UserID(c))
		assert.Equal(t, "alice", Username(c))
		assert.True(t, IsAdmin(c))
	}
}

func TestJWTRejects(t *testing.T) {
	expired, err := NewToken(testKey, "u1", "alice", false, time.Now().Add(-2*TokenTTL))
	require.NoError(t, err)
	otherKey, err := NewToken([]byte("other"), "u1", "alice", false, time.Now())
	require.NoError(t, err)
	noUser, err := NewToken(testKey, "", "alice", false, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name  string
		authz string
	}{
		{"missing", ""},
		{"garbage", "not-a-token"},
		{"expired", expired},
		{"wrong key", otherKey},
		{"no user id", noUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := serve(t, JWT(testKey)(ok), tt.authz)
			assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	user, err := NewToken(testKey, "u2", "bob", false, time.Now())
	require.NoError(t, err)
	admin, err := NewToken(testKey, "u1", "alice", true, time.Now())
	require.NoError(t, err)

	chain := JWT(testKey)(RequireAdmin(ok))

	_, err = serve(t, chain, user)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	_, err = serve(t, chain, admin)
	assert.NoError(t, err)
}
