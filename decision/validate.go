package decision

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"citypulse/types"
)

const (
	// --- Confidence adjustment deltas (summed, then one clamp/round) ---
	singleSnippetPenalty  = -0.15
	noOCRTextPenalty      = -0.1
	lowMeanPenalty        = -0.15
	consistentTypesBonus  = 0.1
	highConfidenceBonus   = 0.1

	lowMeanThreshold        = 0.75
	highConfidenceThreshold = 0.85
	consistentMinSnippets   = 3
	consistentMaxTypes      = 2
	highConfidenceMinCount  = 2
)

// rawDecision tolerates whatever shapes the model returns; every field is
// coerced before use.
type rawDecision struct {
	IncidentType      any `json:"incident_type"`
	Severity          any `json:"severity"`
	LocationHint      any `json:"location_hint"`
	RecommendedAction any `json:"recommended_action"`
	Confidence        any `json:"confidence"`
}

// parseDecision decodes the model response into a fully validated decision.
// Invalid fields fall back per-field to deterministic derivations from the
// snippets; only an unrecoverable decode is an error.
func parseDecision(response string, snippets []types.EvidenceSnippet) (types.AIDecision, error) {
	payload := extractJSON(response)
	if payload == "" {
		return types.AIDecision{}, errors.New("no JSON object in response")
	}

	var raw rawDecision
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return types.AIDecision{}, err
	}

	incidentType := types.IncidentType("")
	if s, ok := raw.IncidentType.(string); ok && types.ValidIncidentType(s) {
		incidentType = types.IncidentType(s)
	} else {
		incidentType = inferIncidentType(snippets)
	}

	location := sanitizeString(raw.LocationHint)
	if location == "" {
		location = extractLocation(snippets)
	}
	action := sanitizeString(raw.RecommendedAction)
	if action == "" {
		action = defaultAction(incidentType)
	}

	return types.AIDecision{
		IncidentType:      incidentType,
		Severity:          clamp01(coerceFloat(raw.Severity)),
		LocationHint:      location,
		RecommendedAction: action,
		Confidence:        clamp01(coerceFloat(raw.Confidence)),
	}, nil
}

// extractJSON returns the response itself when it is a bare JSON object, or
// the first balanced {...} block when the model wrapped it in prose.
func extractJSON(response string) string {
	trimmed := strings.TrimSpace(response)
	if json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	start := strings.IndexByte(trimmed, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(trimmed); i++ {
		c := trimmed[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// brace characters inside strings do not count
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return trimmed[start : i+1]
			}
		}
	}
	return ""
}

// coerceFloat accepts numbers and numeric strings; anything else is 0.
func coerceFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// sanitizeString trims and length-caps string fields; non-strings become "".
func sanitizeString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if len(s) > maxLocationHintLength {
		s = s[:maxLocationHintLength]
	}
	return s
}

// adjustConfidence applies the penalty/bonus pass shared by both decision
// paths. All deltas are summed before the single clamp and round; clamping
// after each delta would change outcomes.
func adjustConfidence(confidence float64, snippets []types.EvidenceSnippet) float64 {
	if len(snippets) == 1 {
		confidence += singleSnippetPenalty
	}

	hasText := false
	highConfidence := 0
	distinct := make(map[types.SnippetType]bool)
	for _, s := range snippets {
		if s.Text != "" {
			hasText = true
		}
		if s.Confidence > highConfidenceThreshold {
			highConfidence++
		}
		distinct[s.Type] = true
	}

	if !hasText {
		confidence += noOCRTextPenalty
	}
	if meanConfidence(snippets) < lowMeanThreshold {
		confidence += lowMeanPenalty
	}
	if len(snippets) >= consistentMinSnippets && len(distinct) <= consistentMaxTypes {
		confidence += consistentTypesBonus
	}
	if highConfidence >= highConfidenceMinCount {
		confidence += highConfidenceBonus
	}

	return round2(clamp01(confidence))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
