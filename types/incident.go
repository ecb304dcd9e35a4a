package types

// IncidentStatus is assigned once by the confidence gate at creation time and
// never recomputed.
type IncidentStatus string

const (
	AutoApproved     IncidentStatus = "auto_approved"
	NeedsHumanReview IncidentStatus = "needs_human_review"
)

// Incident is the persisted record: one decision plus the evidence that
// produced it. Append-only; records are never mutated after creation.
type Incident struct {
	IncidentID string            `json:"incident_id"`
	Status     IncidentStatus    `json:"status"`
	AIDecision AIDecision        `json:"ai_decision"`
	Evidence   []EvidenceSnippet `json:"evidence"`
	Timestamp  string            `json:"timestamp"` // RFC3339 UTC
}

// IncidentStats summarizes the store by status.
type IncidentStats struct {
	Total            int `json:"total"`
	AutoApproved     int `json:"auto_approved"`
	NeedsHumanReview int `json:"needs_human_review"`
}
