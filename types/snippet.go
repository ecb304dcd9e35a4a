package types

// SnippetType is the restricted set of evidence the pipeline cares about.
type SnippetType string

const (
	SnippetFlood   SnippetType = "flood"
	SnippetFire    SnippetType = "fire"
	SnippetSmoke   SnippetType = "smoke"
	SnippetVehicle SnippetType = "vehicle"
	SnippetPerson  SnippetType = "person"
)

// EvidenceSnippet merges one accepted detection with optional OCR text from
// the same frame. Snippets are created once per upload and embedded into
// exactly one incident; they are never mutated afterward.
type EvidenceSnippet struct {
	Type       SnippetType `json:"type"`
	Confidence float64     `json:"confidence"`
	Text       string      `json:"text,omitempty"`
	Frame      string      `json:"frame"`
}
