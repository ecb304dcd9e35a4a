package detection

import "citypulse/types"

// fixed action/resource bundles, one per hazard category
var categoryRecommendations = map[types.HazardCategory]types.Recommendation{
	types.HazardFire: {
		Type:      types.HazardFire,
		Priority:  "critical",
		Action:    "Evacuate immediately. Call fire department (911). Do not use elevators.",
		Resources: []string{"Fire Department", "Emergency Medical Services"},
	},
	types.HazardFlood: {
		Type:      types.HazardFlood,
		Priority:  "critical",
		Action:    "Move to higher ground immediately. Avoid walking or driving through flood water.",
		Resources: []string{"Emergency Services", "Rescue Teams", "Weather Service"},
	},
	types.HazardAccident: {
		Type:      types.HazardAccident,
		Priority:  "high",
		Action:    "Ensure scene safety. Call emergency services. Provide first aid if trained.",
		Resources: []string{"Police", "Ambulance", "Fire Department"},
	},
	types.HazardWeather: {
		Type:      types.HazardWeather,
		Priority:  "high",
		Action:    "Seek shelter immediately. Stay away from windows. Monitor weather alerts.",
		Resources: []string{"Weather Service", "Emergency Management"},
	},
	types.HazardStructural: {
		Type:      types.HazardStructural,
		Priority:  "high",
		Action:    "Evacuate building. Do not enter damaged structures. Call building inspector.",
		Resources: []string{"Building Inspector", "Emergency Services", "Structural Engineers"},
	},
}

// Recommendations emits one bundle per triggered hazard, in category priority
// order. It depends only on the summary booleans, not the underlying counts.
// With nothing triggered it returns a single low-priority no-action entry.
func Recommendations(summary types.DisasterSummary) []types.Recommendation {
	var recs []types.Recommendation

	triggered := map[types.HazardCategory]bool{
		types.HazardFire:       summary.FireDetected,
		types.HazardFlood:      summary.FloodDetected,
		types.HazardAccident:   summary.AccidentDetected,
		types.HazardWeather:    summary.WeatherHazard,
		types.HazardStructural: summary.StructuralDamage,
	}
	for _, cat := range categoryOrder {
		if triggered[cat] {
			recs = append(recs, categoryRecommendations[cat])
		}
	}

	if len(recs) == 0 {
		recs = append(recs, types.Recommendation{
			Type:      "none",
			Priority:  "low",
			Action:    "No immediate emergency detected. Continue monitoring.",
			Resources: []string{},
		})
	}
	return recs
}
