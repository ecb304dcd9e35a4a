package types

type Severity string

const (
	Low      Severity = "Low"
	Medium   Severity = "Medium"
	High     Severity = "High"
	Critical Severity = "Critical"
)

// HazardCategory buckets raw labels for the categorizer. Order of the
// exported HazardCategories slice is the match priority.
type HazardCategory string

const (
	HazardFire       HazardCategory = "fire"
	HazardFlood      HazardCategory = "flood"
	HazardAccident   HazardCategory = "accident"
	HazardWeather    HazardCategory = "weather"
	HazardStructural HazardCategory = "structural"
	HazardOther      HazardCategory = "other"
)

// DisasterSummary is the boolean/severity roll-up the recommendation engine
// consumes. It carries no per-label detail on purpose.
type DisasterSummary struct {
	TotalDisasters   int      `json:"totalDisasters"`
	FireDetected     bool     `json:"fireDetected"`
	FloodDetected    bool     `json:"floodDetected"`
	AccidentDetected bool     `json:"accidentDetected"`
	WeatherHazard    bool     `json:"weatherHazard"`
	StructuralDamage bool     `json:"structuralDamage"`
	SeverityScore    int      `json:"severityScore"`
	SeverityLevel    Severity `json:"severityLevel"`
}

// DisasterAnalysis holds the categorized buckets plus their summary.
// Computed per request, never persisted.
type DisasterAnalysis struct {
	Buckets map[HazardCategory][]RawLabel `json:"disasters"`
	Summary DisasterSummary               `json:"summary"`
}

// Recommendation is a fixed action/resource bundle for one triggered hazard.
type Recommendation struct {
	Type      HazardCategory `json:"type"`
	Priority  string         `json:"priority"`
	Action    string         `json:"action"`
	Resources []string       `json:"resources"`
}
