package types

// IncidentType is the decision enum. Anything outside this set coming back
// from the reasoning service is replaced by a deterministic inference.
type IncidentType string

const (
	IncidentFlood    IncidentType = "flood"
	IncidentFire     IncidentType = "fire"
	IncidentSmoke    IncidentType = "smoke"
	IncidentVehicle  IncidentType = "vehicle_accident"
	IncidentPerson   IncidentType = "person_in_danger"
	IncidentUnknown  IncidentType = "unknown"
)

// ValidIncidentType reports whether s is one of the six decision enum values.
func ValidIncidentType(s string) bool {
	switch IncidentType(s) {
	case IncidentFlood, IncidentFire, IncidentSmoke, IncidentVehicle, IncidentPerson, IncidentUnknown:
		return true
	}
	return false
}

// AIDecision is the validated output of the decision engine. Severity and
// Confidence are always within [0,1] after validation.
type AIDecision struct {
	IncidentType      IncidentType `json:"incident_type"`
	Severity          float64      `json:"severity"`
	LocationHint      string       `json:"location_hint"`
	RecommendedAction string       `json:"recommended_action"`
	Confidence        float64      `json:"confidence"`
}
