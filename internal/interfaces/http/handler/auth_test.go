package handler

import (
	"net/http"
	"testing"

	"github.com/donorlink/backend/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody(email, userType string) map[string]any {
	return map[string]any{
		"email":    email,
		"password": "secret123",
		"userData": map[string]any{
			"user_type": userType,
			"name":      "Green Earth",
			"city":      "Chennai",
			"about":     "Tree planting drives",
		},
	}
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates an NGO and returns a token", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/auth/register", registerBody("team@greenearth.org", "ngo"), "")

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decode[AuthResponse](t, w)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "team@greenearth.org", resp.User.Email)
		assert.Equal(t, "ngo", resp.User.UserType)
		assert.Equal(t, "Tree planting drives", resp.User.About)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("donor profile drops NGO narrative", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/auth/register", registerBody("kid@example.com", "donor"), "")

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Empty(t, decode[AuthResponse](t, w).User.About)
	})

	t.Run("duplicate email is a 400", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/auth/register", registerBody("donor@example.com", "donor"), "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User already exists", errorMessage(t, w))
	})

	t.Run("unknown user type fails validation", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/auth/register", registerBody("x@example.com", "admin"), "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, errorMessage(t, w), "user_type")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/auth/register", `{"email":`, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "Donor@Example.com",
		"password": memory.SeedPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[AuthResponse](t, w)
	assert.Equal(t, memory.SeedDonorID, resp.User.ID)
	assert.Equal(t, []uuid.UUID{memory.SeedNGOHelpingHandsID}, resp.User.ConnectedNGOs)

	w = env.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "donor@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", errorMessage(t, w))

	w = env.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": memory.SeedPassword,
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Verify(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing token", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/verify", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Access token required", errorMessage(t, w))
	})

	t.Run("garbage token", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/verify", nil, "not.a.token")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Invalid or expired token", errorMessage(t, w))
	})

	t.Run("valid token", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/verify", nil, env.token(memory.SeedDonorID))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ravi Kumar", decode[UserEnvelope](t, w).User.Name)
	})

	t.Run("account no longer exists", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/auth/verify", nil, env.token(uuid.New()))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", errorMessage(t, w))
	})
}
