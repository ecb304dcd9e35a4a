package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"citypulse/decision"
	"citypulse/types"
)

type analyzeRequest struct {
	Snippets []types.EvidenceSnippet `json:"snippets"`
}

// Analyze runs the decision engine directly over caller-supplied snippets,
// bypassing the media stages. Useful for review tooling and testing.
func Analyze(c *gin.Context, engine *decision.Engine) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	aiDecision := engine.Analyze(c.Request.Context(), req.Snippets)
	c.JSON(http.StatusOK, gin.H{
		"decision":      aiDecision,
		"snippet_count": len(req.Snippets),
	})
}
