package handler

import (
	"net/http"
	"testing"

	"github.com/donorlink/backend/internal/infrastructure/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/users/ngos", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string][]UserResponse](t, w)
	assert.Len(t, body["ngos"], 2)
	for _, ngo := range body["ngos"] {
		assert.Equal(t, "ngo", ngo.UserType)
	}
	assert.NotContains(t, w.Body.String(), "password")

	w = env.do(http.MethodGet, "/api/users/"+memory.SeedNGOHelpingHandsID.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[UserEnvelope](t, w).User
	assert.Equal(t, "Helping Hands Foundation", user.Name)
	assert.Equal(t, []uuid.UUID{memory.SeedDonorID}, user.ConnectedDonors)

	w = env.do(http.MethodGet, "/api/users/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
