// Package detection buckets raw label detections into hazard categories and
// derives a severity score and operational recommendations.
package detection

import (
	"strings"

	"citypulse/types"
)

const (
	// --- Severity score weights (per bucketed detection) ---
	fireWeight       = 20
	floodWeight      = 20
	accidentWeight   = 15
	weatherWeight    = 10
	structuralWeight = 15
	maxSeverityScore = 100

	// --- Severity level thresholds (strict: boundary falls to lower tier) ---
	criticalScoreThreshold = 60
	highScoreThreshold     = 30
	mediumScoreThreshold   = 10
)

// categoryOrder is the match priority. A label is tested against each
// category's keywords in this order and lands in the first one that hits.
var categoryOrder = []types.HazardCategory{
	types.HazardFire,
	types.HazardFlood,
	types.HazardAccident,
	types.HazardWeather,
	types.HazardStructural,
}

// categoryKeywords is kept as ordered data so precedence stays auditable.
var categoryKeywords = map[types.HazardCategory][]string{
	types.HazardFire:       {"fire", "flame", "smoke", "burning", "blaze", "inferno", "combustion", "ash"},
	types.HazardFlood:      {"flood", "water", "flooding", "submerged", "inundation", "overflow"},
	types.HazardAccident:   {"accident", "crash", "collision", "wreck", "damage", "debris", "destruction"},
	types.HazardWeather:    {"storm", "lightning", "tornado", "hurricane", "cyclone", "thunder", "wind"},
	types.HazardStructural: {"collapse", "rubble", "broken", "destroyed", "damaged", "ruins", "earthquake"},
}

// Categorize buckets labels into hazard categories and computes the severity
// summary. Labels matching no category are dropped unless the detector
// flagged them high priority, in which case they land in the other bucket.
func Categorize(labels []types.RawLabel) types.DisasterAnalysis {
	buckets := make(map[types.HazardCategory][]types.RawLabel, len(categoryOrder)+1)
	for _, cat := range categoryOrder {
		buckets[cat] = nil
	}
	buckets[types.HazardOther] = nil

	for _, label := range labels {
		if label.Name == "" {
			continue
		}
		lower := strings.ToLower(label.Name)

		categorized := false
		for _, cat := range categoryOrder {
			if matchesAny(lower, categoryKeywords[cat]) {
				buckets[cat] = append(buckets[cat], label)
				categorized = true
				break
			}
		}
		if !categorized && label.Priority == types.PriorityHigh {
			buckets[types.HazardOther] = append(buckets[types.HazardOther], label)
		}
	}

	return types.DisasterAnalysis{
		Buckets: buckets,
		Summary: summarize(buckets),
	}
}

func matchesAny(labelLower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(labelLower, kw) {
			return true
		}
	}
	return false
}

func summarize(buckets map[types.HazardCategory][]types.RawLabel) types.DisasterSummary {
	total := 0
	for _, detections := range buckets {
		total += len(detections)
	}

	score := fireWeight*len(buckets[types.HazardFire]) +
		floodWeight*len(buckets[types.HazardFlood]) +
		accidentWeight*len(buckets[types.HazardAccident]) +
		weatherWeight*len(buckets[types.HazardWeather]) +
		structuralWeight*len(buckets[types.HazardStructural])
	if score > maxSeverityScore {
		score = maxSeverityScore
	}

	return types.DisasterSummary{
		TotalDisasters:   total,
		FireDetected:     len(buckets[types.HazardFire]) > 0,
		FloodDetected:    len(buckets[types.HazardFlood]) > 0,
		AccidentDetected: len(buckets[types.HazardAccident]) > 0,
		WeatherHazard:    len(buckets[types.HazardWeather]) > 0,
		StructuralDamage: len(buckets[types.HazardStructural]) > 0,
		SeverityScore:    score,
		SeverityLevel:    severityLevel(score),
	}
}

func severityLevel(score int) types.Severity {
	switch {
	case score > criticalScoreThreshold:
		return types.Critical
	case score > highScoreThreshold:
		return types.High
	case score > mediumScoreThreshold:
		return types.Medium
	default:
		return types.Low
	}
}
