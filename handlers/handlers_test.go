package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"citypulse/db"
	"citypulse/decision"
	"citypulse/processor"
	"citypulse/routes"
	"citypulse/types"
)

func newTestRouter(t *testing.T) (*gin.Engine, *db.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := db.Open(filepath.Join(t.TempDir(), "incidents.json"), nil)
	engine := decision.NewEngine(nil, nil)
	p := &processor.Processor{Engine: engine, Store: store}
	return routes.SetupRouter(p, engine, store, ""), store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validDecision() types.AIDecision {
	return types.AIDecision{
		IncidentType:      types.IncidentFire,
		Severity:          0.9,
		LocationHint:      "MAIN ST",
		RecommendedAction: "Dispatch fire department immediately. Evacuate area.",
		Confidence:        0.8,
	}
}

func TestCreateIncident_AndQueries(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/incident/create", gin.H{
		"ai_decision": validDecision(),
		"evidence": []types.EvidenceSnippet{
			{Type: types.SnippetFire, Confidence: 0.9, Frame: "frame_01.jpg"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	var created types.Incident
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Status != types.AutoApproved {
		t.Errorf("status = %s, want auto_approved at 0.8 confidence", created.Status)
	}

	w = doJSON(t, r, http.MethodGet, "/api/incident/"+created.IncidentID, nil)
	if w.Code != http.StatusOK {
		t.Errorf("get by id status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/incident/all", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), created.IncidentID) {
		t.Errorf("all status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/incident/stats", nil)
	var stats types.IncidentStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Total != 1 || stats.AutoApproved != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCreateIncident_ValidationRejectsBeforeSideEffects(t *testing.T) {
	r, store := newTestRouter(t)

	bad := []gin.H{
		{},                             // missing ai_decision
		{"ai_decision": gin.H{"incident_type": "volcano", "confidence": 0.5}},  // bad enum
		{"ai_decision": gin.H{"incident_type": "fire", "confidence": 1.5}},     // out of range
		{"ai_decision": gin.H{"incident_type": "fire", "severity": -0.1, "confidence": 0.5}},
	}
	for _, body := range bad {
		w := doJSON(t, r, http.MethodPost, "/api/incident/create", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, want 400", body, w.Code)
		}
	}
	if got := store.Stats().Total; got != 0 {
		t.Errorf("store total = %d, want 0 (no side effects on validation failure)", got)
	}
}

func TestGetIncidentByID_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/incident/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestStatusRoutes(t *testing.T) {
	r, store := newTestRouter(t)
	low := validDecision()
	low.Confidence = 0.2
	store.Create(validDecision(), nil)
	store.Create(low, nil)

	w := doJSON(t, r, http.MethodGet, "/api/incident/status/review", nil)
	if !strings.Contains(w.Body.String(), `"count":1`) {
		t.Errorf("review body = %s", w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/api/incident/status/approved", nil)
	if !strings.Contains(w.Body.String(), `"count":1`) {
		t.Errorf("approved body = %s", w.Body.String())
	}
}

func TestThresholdRoute(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/incident/threshold", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "0.6") {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeRoute_Fallback(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/analysis/analyze", gin.H{
		"snippets": []types.EvidenceSnippet{
			{Type: types.SnippetFire, Confidence: 0.9, Text: "MAIN ST", Frame: "frame_01.jpg"},
			{Type: types.SnippetFire, Confidence: 0.88, Frame: "frame_02.jpg"},
			{Type: types.SnippetSmoke, Confidence: 0.8, Frame: "frame_03.jpg"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Decision types.AIDecision `json:"decision"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Decision.IncidentType != types.IncidentFire {
		t.Errorf("incident_type = %s, want fire", resp.Decision.IncidentType)
	}
	if resp.Decision.Severity != 0.9 {
		t.Errorf("severity = %v, want 0.9", resp.Decision.Severity)
	}
}

func TestUpload_MissingFile(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
