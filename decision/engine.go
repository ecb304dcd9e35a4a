// Package decision turns evidence snippets into a validated incident
// decision, using an external reasoning call when one is configured and a
// deterministic fallback otherwise.
package decision

import (
	"context"
	"io"
	"log/slog"

	"citypulse/types"
)

// Engine is the incident decision engine. A nil Reasoner means every request
// takes the fallback path.
type Engine struct {
	reasoner Reasoner
	log      *slog.Logger
}

func NewEngine(reasoner Reasoner, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{reasoner: reasoner, log: logger}
}

// Analyze produces a validated decision for the given snippets. Reasoning
// failures of any kind (network, malformed response, timeout) downgrade to
// the fallback path and are never surfaced to the caller.
func (e *Engine) Analyze(ctx context.Context, snippets []types.EvidenceSnippet) types.AIDecision {
	if len(snippets) == 0 {
		return types.AIDecision{
			IncidentType:      types.IncidentUnknown,
			Severity:          0.0,
			LocationHint:      "Unknown",
			RecommendedAction: "Insufficient evidence for analysis",
			Confidence:        0.0,
		}
	}

	decision, path := e.decide(ctx, snippets)
	decision.Confidence = adjustConfidence(decision.Confidence, snippets)

	e.log.Info("incident decision",
		"path", path,
		"incident_type", decision.IncidentType,
		"severity", decision.Severity,
		"confidence", decision.Confidence,
	)
	return decision
}

// decide runs the reasoning path when available and falls back on any error.
func (e *Engine) decide(ctx context.Context, snippets []types.EvidenceSnippet) (types.AIDecision, string) {
	if e.reasoner == nil {
		return fallbackDecision(snippets), "fallback"
	}

	response, err := e.reasoner.Reason(ctx, systemPrompt, buildUserPrompt(snippets))
	if err != nil {
		e.log.Warn("reasoning call failed, using fallback", "error", err)
		return fallbackDecision(snippets), "fallback"
	}

	decision, err := parseDecision(response, snippets)
	if err != nil {
		e.log.Warn("reasoning response unparseable, using fallback", "error", err)
		return fallbackDecision(snippets), "fallback"
	}
	return decision, "reasoning"
}
