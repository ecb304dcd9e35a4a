package decision

import (
	"math"
	"regexp"
	"strings"

	"citypulse/types"
)

const (
	fallbackConfidenceFloor   = 0.3
	fallbackConfidenceScale   = 0.7 // fallback decisions are deliberately penalized
	personSeverityBonus       = 0.1
	vehicleSeverityBonus      = 0.05
	multiHazardSeverityBonus  = 0.1
	maxLocationHintLength     = 200
)

// typePriority decides the incident type when multiple evidence types are
// present: the most dangerous wins.
var typePriority = []struct {
	snippet  types.SnippetType
	incident types.IncidentType
}{
	{types.SnippetFire, types.IncidentFire},
	{types.SnippetFlood, types.IncidentFlood},
	{types.SnippetSmoke, types.IncidentSmoke},
	{types.SnippetVehicle, types.IncidentVehicle},
	{types.SnippetPerson, types.IncidentPerson},
}

var baseSeverity = map[types.IncidentType]float64{
	types.IncidentFire:    0.8,
	types.IncidentFlood:   0.75,
	types.IncidentSmoke:   0.5,
	types.IncidentVehicle: 0.7,
	types.IncidentPerson:  0.85,
	types.IncidentUnknown: 0.4,
}

var defaultActions = map[types.IncidentType]string{
	types.IncidentFire:    "Dispatch fire department immediately. Evacuate area.",
	types.IncidentFlood:   "Dispatch rescue team. Issue flood warning to residents.",
	types.IncidentSmoke:   "Investigate source. Alert fire department on standby.",
	types.IncidentVehicle: "Dispatch ambulance and police. Secure accident scene.",
	types.IncidentPerson:  "Dispatch emergency responders. Prepare medical assistance.",
	types.IncidentUnknown: "Send patrol unit to investigate and assess situation.",
}

// locationPatterns match against the uppercased OCR text, most specific first.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\s+)?[A-Z]+\s+(ROAD|STREET|AVENUE|LANE|DRIVE|BLVD|WAY|HIGHWAY)`),
	regexp.MustCompile(`NEAR\s+[A-Z]+`),
	regexp.MustCompile(`AT\s+[A-Z]+`),
	regexp.MustCompile(`[A-Z]+\s+AREA`),
	regexp.MustCompile(`BLOCK\s+\d+`),
}

// fallbackDecision builds a deterministic decision entirely from the
// snippets. Used when no reasoning service is configured or the call fails.
func fallbackDecision(snippets []types.EvidenceSnippet) types.AIDecision {
	incidentType := inferIncidentType(snippets)
	return types.AIDecision{
		IncidentType:      incidentType,
		Severity:          calculateSeverity(incidentType, snippets),
		LocationHint:      extractLocation(snippets),
		RecommendedAction: defaultAction(incidentType),
		Confidence:        math.Max(fallbackConfidenceFloor, meanConfidence(snippets)*fallbackConfidenceScale),
	}
}

// inferIncidentType picks the highest-priority evidence type present.
func inferIncidentType(snippets []types.EvidenceSnippet) types.IncidentType {
	present := make(map[types.SnippetType]bool, len(snippets))
	for _, s := range snippets {
		present[s.Type] = true
	}
	for _, p := range typePriority {
		if present[p.snippet] {
			return p.incident
		}
	}
	return types.IncidentUnknown
}

// calculateSeverity starts from the per-type base value and applies evidence
// bonuses, capped at 1.0 and rounded to 2 decimals.
func calculateSeverity(incidentType types.IncidentType, snippets []types.EvidenceSnippet) float64 {
	severity := baseSeverity[incidentType]

	hasPerson, hasVehicle := false, false
	hazards := make(map[types.SnippetType]bool)
	for _, s := range snippets {
		switch s.Type {
		case types.SnippetPerson:
			hasPerson = true
		case types.SnippetVehicle:
			hasVehicle = true
		case types.SnippetFire, types.SnippetFlood, types.SnippetSmoke:
			hazards[s.Type] = true
		}
	}

	if hasPerson {
		severity += personSeverityBonus
	}
	if hasVehicle {
		severity += vehicleSeverityBonus
	}
	if len(hazards) >= 2 {
		severity += multiHazardSeverityBonus
	}

	return round2(math.Min(1, severity))
}

// extractLocation scans the first snippet carrying OCR text for a
// location-like pattern, falling back to the raw text, then "Unknown".
func extractLocation(snippets []types.EvidenceSnippet) string {
	for _, s := range snippets {
		if s.Text == "" {
			continue
		}
		upper := strings.ToUpper(s.Text)
		for _, pattern := range locationPatterns {
			if match := pattern.FindString(upper); match != "" {
				return match
			}
		}
		return s.Text
	}
	return "Unknown"
}

func defaultAction(incidentType types.IncidentType) string {
	if action, ok := defaultActions[incidentType]; ok {
		return action
	}
	return defaultActions[types.IncidentUnknown]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
