package handler

import (
	"net/http"
	"testing"

	"github.com/donorlink/backend/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(items []RequirementResponse) []string {
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.Title)
	}
	return out
}

func TestRequirementHandler_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	ngo := env.token(memory.SeedNGOHelpingHandsID)

	w := env.do(http.MethodPost, "/api/requirements", map[string]any{
		"title":    "Winter Coats",
		"priority": "urgent",
		"category": "clothing",
		"quantity": 40,
		"unit":     "coats",
		"deadline": "2030-11-30",
	}, ngo)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[RequirementEnvelope](t, w).Requirement
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, "Helping Hands Foundation", created.NGOName)

	w = env.do(http.MethodGet, "/api/requirements", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		[]string{"Winter Coats", "School Books for Grade 5", "Rice for Community Kitchen"},
		titles(decode[RequirementListEnvelope](t, w).Requirements))

	inbox := decode[NotificationListResponse](t, env.do(http.MethodGet, "/api/notifications", nil, env.token(memory.SeedDonorID)))
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, "New requirement posted", inbox.Notifications[0].Title)
	assert.Equal(t, "requirement", inbox.Notifications[0].Type)
}

func TestRequirementHandler_Create_Rejections(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/requirements", map[string]any{"title": "Paint"}, env.token(memory.SeedDonorID))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only NGOs can create requirements", errorMessage(t, w))

	w = env.do(http.MethodPost, "/api/requirements", map[string]any{"description": "no title"}, env.token(memory.SeedNGOFoodForAllID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/requirements", map[string]any{"title": "Paint", "priority": "asap"}, env.token(memory.SeedNGOFoodForAllID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "priority")
}

func TestRequirementHandler_Filters(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/requirements/category/food", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Rice for Community Kitchen"}, titles(decode[RequirementListEnvelope](t, w).Requirements))

	w = env.do(http.MethodGet, "/api/requirements?ngo_id="+memory.SeedNGOHelpingHandsID.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"School Books for Grade 5"}, titles(decode[RequirementListEnvelope](t, w).Requirements))

	w = env.do(http.MethodGet, "/api/requirements?status=bogus", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/requirements?ngo_id=nope", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/requirements/"+memory.SeedRequirementRiceID.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Food For All", decode[RequirementEnvelope](t, w).Requirement.NGOName)
}

func TestRequirementHandler_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	path := "/api/requirements/" + memory.SeedRequirementBooksID.String()
	owner := env.token(memory.SeedNGOHelpingHandsID)

	w := env.do(http.MethodPut, path, map[string]any{"status": "fulfilled"}, env.token(memory.SeedNGOFoodForAllID))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to modify this requirement", errorMessage(t, w))

	w = env.do(http.MethodPut, path, map[string]any{}, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No valid fields to update", errorMessage(t, w))

	w = env.do(http.MethodPut, path, map[string]any{"status": "fulfilled"}, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "fulfilled", decode[RequirementEnvelope](t, w).Requirement.Status)

	active := decode[RequirementListEnvelope](t, env.do(http.MethodGet, "/api/requirements", nil, ""))
	assert.NotContains(t, titles(active.Requirements), "School Books for Grade 5")

	all := decode[RequirementListEnvelope](t, env.do(http.MethodGet, "/api/requirements?status=all", nil, ""))
	assert.Contains(t, titles(all.Requirements), "School Books for Grade 5")

	byNGO := decode[RequirementListEnvelope](t, env.do(http.MethodGet, "/api/requirements/ngo/"+memory.SeedNGOHelpingHandsID.String(), nil, ""))
	assert.Len(t, byNGO.Requirements, 1)

	w = env.do(http.MethodDelete, path, nil, owner)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Requirement not found", errorMessage(t, w))
}
