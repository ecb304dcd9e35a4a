package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"citypulse/db"
	"citypulse/types"
)

// createIncidentRequest is validated fully before any side effect runs.
type createIncidentRequest struct {
	AIDecision *types.AIDecision       `json:"ai_decision" binding:"required"`
	Evidence   []types.EvidenceSnippet `json:"evidence"`
}

// CreateIncident gates a caller-supplied decision and persists the record.
func CreateIncident(c *gin.Context, store *db.Store) {
	var req createIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !types.ValidIncidentType(string(req.AIDecision.IncidentType)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident_type"})
		return
	}
	if req.AIDecision.Confidence < 0 || req.AIDecision.Confidence > 1 ||
		req.AIDecision.Severity < 0 || req.AIDecision.Severity > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "severity and confidence must be within [0,1]"})
		return
	}

	incident := store.Create(*req.AIDecision, req.Evidence)
	c.JSON(http.StatusCreated, incident)
}

// GetAllIncidents returns every stored incident.
func GetAllIncidents(c *gin.Context, store *db.Store) {
	incidents := store.All()
	c.JSON(http.StatusOK, gin.H{
		"count":     len(incidents),
		"incidents": incidents,
	})
}

// GetIncidentStats returns counts per approval status.
func GetIncidentStats(c *gin.Context, store *db.Store) {
	c.JSON(http.StatusOK, store.Stats())
}

// GetIncidentByID looks up one incident by its id.
func GetIncidentByID(c *gin.Context, store *db.Store) {
	incident, ok := store.ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
		return
	}
	c.JSON(http.StatusOK, incident)
}

// GetIncidentsNeedingReview lists incidents below the confidence gate.
func GetIncidentsNeedingReview(c *gin.Context, store *db.Store) {
	respondWithStatus(c, store, types.NeedsHumanReview)
}

// GetApprovedIncidents lists auto-approved incidents.
func GetApprovedIncidents(c *gin.Context, store *db.Store) {
	respondWithStatus(c, store, types.AutoApproved)
}

func respondWithStatus(c *gin.Context, store *db.Store, status types.IncidentStatus) {
	incidents := store.ByStatus(status)
	c.JSON(http.StatusOK, gin.H{
		"count":     len(incidents),
		"incidents": incidents,
	})
}

// GetConfidenceThreshold exposes the gate threshold, read-only.
func GetConfidenceThreshold(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"threshold": db.ConfidenceThreshold})
}
