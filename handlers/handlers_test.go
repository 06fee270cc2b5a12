package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go-lifeline/allocation"
	"go-lifeline/db"
	"go-lifeline/intake"
	"go-lifeline/lifecycle"
	"go-lifeline/mockdata"
	"go-lifeline/recorder"
	"go-lifeline/routes"
	"go-lifeline/summarization"
	"go-lifeline/training"
	"go-lifeline/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *db.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := db.NewMemoryStore(nil)
	rec := recorder.New(store)

	mockDir := t.TempDir()
	writeMockFile(t, mockDir, "flood-alerts.json", []types.MockDisaster{
		mockReport("Downtown", "critical", "flood", 5000),
		mockReport("Riverside", "high", "flood", 2000),
	})
	writeMockFile(t, mockDir, "earthquake-alerts.json", []types.MockDisaster{
		mockReport("Hillcrest", "medium", "earthquake", 800),
	})
	writeMockFile(t, mockDir, "social-media-alerts.json", []types.MockDisaster{})

	r := routes.SetupRouter(routes.Deps{
		Store:        store,
		Orchestrator: intake.NewOrchestrator(store, summarization.TemplateSummarizer{}, rec, nil),
		Lifecycle:    lifecycle.NewManager(store, rec),
		Allocator:    allocation.NewEngine(store, allocation.FixedScore),
		MockData:     mockdata.NewLoader(mockDir),
		Training:     training.NewTrigger(store),
	})
	return r, store
}

func mockReport(location, severity, disasterType string, population int) types.MockDisaster {
	report := types.MockDisaster{
		Source:             "test-feed",
		Timestamp:          "2025-01-15T10:00:00Z",
		Severity:           severity,
		DisasterType:       disasterType,
		Message:            "Water levels rising rapidly near the main bridge, several streets impassable.",
		AffectedPopulation: population,
	}
	report.Location.Name = location
	report.Location.Latitude = 37.77
	report.Location.Longitude = -122.42
	return report
}

func writeMockFile(t *testing.T, dir, name string, reports []types.MockDisaster) {
	t.Helper()
	data, err := json.Marshal(reports)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func validPayload() types.DisasterWebhookPayload {
	pop := 10000
	return types.DisasterWebhookPayload{
		Title:              "Major flooding downtown",
		Description:        "River overflowing after sustained rainfall, evacuations underway.",
		DisasterType:       "flood",
		Severity:           "critical",
		Latitude:           37.77,
		Longitude:          -122.42,
		AffectedPopulation: &pop,
	}
}

func TestWebhookCreatesDisasterWithActions(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/webhook/disaster", validPayload())

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])
	disaster := resp["disaster"].(map[string]interface{})
	assert.NotEmpty(t, disaster["id"])
	assert.Equal(t, "active", disaster["status"])
	assert.Len(t, resp["actions"], 4)
	assert.NotNil(t, resp["summary"])
}

func TestWebhookRejectsMissingDescription(t *testing.T) {
	r, store := newTestRouter(t)

	payload := validPayload()
	payload.Description = ""
	w, resp := doJSON(t, r, http.MethodPost, "/api/webhook/disaster", payload)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])

	disasters, err := store.ListDisasters(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, disasters)
}

func TestListDisastersNewestFirst(t *testing.T) {
	r, _ := newTestRouter(t)

	first := validPayload()
	first.Title = "First report"
	doJSON(t, r, http.MethodPost, "/api/webhook/disaster", first)
	second := validPayload()
	second.Title = "Second report"
	doJSON(t, r, http.MethodPost, "/api/webhook/disaster", second)

	w, resp := doJSON(t, r, http.MethodGet, "/api/disasters", nil)

	require.Equal(t, http.StatusOK, w.Code)
	disasters := resp["disasters"].([]interface{})
	require.Len(t, disasters, 2)
	assert.Equal(t, "Second report", disasters[0].(map[string]interface{})["title"])
}

func TestUpdateDisasterStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	_, created := doJSON(t, r, http.MethodPost, "/api/webhook/disaster", validPayload())
	disasterID := created["disaster"].(map[string]interface{})["id"].(string)

	w, resp := doJSON(t, r, http.MethodPatch, "/api/disasters/"+disasterID+"/status",
		map[string]string{"status": "responding"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "responding", resp["disaster"].(map[string]interface{})["status"])

	w, _ = doJSON(t, r, http.MethodPatch, "/api/disasters/"+disasterID+"/status",
		map[string]string{"status": "on-fire"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDisasterActionsSortedByPriority(t *testing.T) {
	r, _ := newTestRouter(t)

	_, created := doJSON(t, r, http.MethodPost, "/api/webhook/disaster", validPayload())
	disasterID := created["disaster"].(map[string]interface{})["id"].(string)

	w, resp := doJSON(t, r, http.MethodGet, "/api/disasters/"+disasterID+"/actions", nil)

	require.Equal(t, http.StatusOK, w.Code)
	actions := resp["actions"].([]interface{})
	require.Len(t, actions, 4)
	prev := 101.0
	for _, raw := range actions {
		score := raw.(map[string]interface{})["priority_score"].(float64)
		assert.LessOrEqual(t, score, prev)
		prev = score
	}
}

func TestListActionsForUnknownDisaster(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/disasters/nope/actions", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestUpdateActionStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	_, created := doJSON(t, r, http.MethodPost, "/api/webhook/disaster", validPayload())
	actions := created["actions"].([]interface{})
	actionID := actions[0].(map[string]interface{})["id"].(string)

	w, resp := doJSON(t, r, http.MethodPatch, "/api/actions/"+actionID+"/status",
		map[string]string{"status": "in_progress"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_progress", resp["action"].(map[string]interface{})["status"])
}

func TestUpdateActionStatusInvalidTransition(t *testing.T) {
	r, _ := newTestRouter(t)

	_, created := doJSON(t, r, http.MethodPost, "/api/webhook/disaster", validPayload())
	actions := created["actions"].([]interface{})
	actionID := actions[0].(map[string]interface{})["id"].(string)

	w, _ := doJSON(t, r, http.MethodPatch, "/api/actions/"+actionID+"/status",
		map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)

	// Cancelled is terminal.
	w, resp := doJSON(t, r, http.MethodPatch, "/api/actions/"+actionID+"/status",
		map[string]string{"status": "in_progress"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestUpdateActionStatusUnknownAction(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPatch, "/api/actions/nope/status",
		map[string]string{"status": "in_progress"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignResource(t *testing.T) {
	r, store := newTestRouter(t)

	_, created := doJSON(t, r, http.MethodPost, "/api/webhook/disaster", validPayload())
	actions := created["actions"].([]interface{})
	actionID := actions[0].(map[string]interface{})["id"].(string)

	resource, err := store.CreateResource(context.Background(), types.Resource{
		ResourceType: "rescue_team",
		Name:         "Team Alpha",
		Capacity:     12,
		Status:       types.ResourceAvailable,
	})
	require.NoError(t, err)

	w, resp := doJSON(t, r, http.MethodPost, "/api/actions/"+actionID+"/assign",
		map[string]string{"resource_id": resource.ID})

	require.Equal(t, http.StatusOK, w.Code)
	alloc := resp["allocation"].(map[string]interface{})
	assert.Equal(t, "assigned", alloc["status"])
	assert.Equal(t, 0.85, alloc["allocation_score"])

	// Second allocation of the same resource must conflict.
	w, resp = doJSON(t, r, http.MethodPost, "/api/actions/"+actionID+"/assign",
		map[string]string{"resource_id": resource.ID})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestListResourcesFiltersByStatus(t *testing.T) {
	r, store := newTestRouter(t)

	_, err := store.CreateResource(context.Background(), types.Resource{Name: "Team Alpha", Status: types.ResourceAvailable})
	require.NoError(t, err)
	_, err = store.CreateResource(context.Background(), types.Resource{Name: "Team Bravo", Status: types.ResourceDeployed})
	require.NoError(t, err)

	w, resp := doJSON(t, r, http.MethodGet, "/api/resources?status=available", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resources := resp["resources"].([]interface{})
	require.Len(t, resources, 1)
	assert.Equal(t, "Team Alpha", resources[0].(map[string]interface{})["name"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/resources", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["resources"], 2)
}

func TestIngestMockDataCategory(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/ingest-mock-data",
		map[string]interface{}{"category": "floods", "delay_ms": 0})

	require.Equal(t, http.StatusOK, w.Code)
	summary := resp["summary"].(map[string]interface{})
	assert.Equal(t, float64(2), summary["total"])
	assert.Equal(t, float64(2), summary["successful"])
	assert.Equal(t, "100.0%", summary["success_rate"])
}

func TestIngestMockDataLimit(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/ingest-mock-data",
		map[string]interface{}{"category": "all", "limit": 1, "delay_ms": 0})

	require.Equal(t, http.StatusOK, w.Code)
	summary := resp["summary"].(map[string]interface{})
	assert.Equal(t, float64(1), summary["total"])
}

func TestIngestMockDataInvalidCategory(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/ingest-mock-data",
		map[string]interface{}{"category": "volcanoes"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestListMockData(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/ingest-mock-data", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), resp["total"])
	categories := resp["categories"].(map[string]interface{})
	assert.Contains(t, categories, "floods")
	assert.Contains(t, categories, "earthquakes")
	assert.Contains(t, categories, "social")
}

func TestTriggerTrainingDefaults(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/rl-train", nil)

	require.Equal(t, http.StatusOK, w.Code)
	result := resp["result"].(map[string]interface{})
	assert.Equal(t, float64(1000), result["episodes"])
	assert.Equal(t, "RL training completed successfully", result["message"])
}

func TestListTrainingSessions(t *testing.T) {
	r, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/rl-train", map[string]int{"episodes": 50})
	doJSON(t, r, http.MethodPost, "/api/rl-train", map[string]int{"episodes": 75})

	w, resp := doJSON(t, r, http.MethodGet, "/api/rl-train", nil)

	require.Equal(t, http.StatusOK, w.Code)
	sessions := resp["sessions"].([]interface{})
	require.Len(t, sessions, 2)
	assert.Equal(t, float64(75), sessions[0].(map[string]interface{})["episodes"])
}
