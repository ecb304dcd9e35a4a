package types

// FrameKind distinguishes how a frame was produced.
type FrameKind string

const (
	FrameImage FrameKind = "image" // uploaded image used as-is
	FrameVideo FrameKind = "video" // video that could not be decoded into frames
	FrameStill FrameKind = "frame" // still extracted from a video
)

// Frame is one unit of media handed to OCR and label detection.
type Frame struct {
	Kind FrameKind `json:"kind"`
	Path string    `json:"path"`
	// Name is the stable frame identifier (e.g. "frame_01.jpg") used to
	// re-associate OCR and label results after concurrent dispatch.
	Name string `json:"name"`
}

// LabelPriority is assigned by the detector based on keyword tiers.
type LabelPriority string

const (
	PriorityHigh   LabelPriority = "high"
	PriorityMedium LabelPriority = "medium"
	PriorityLow    LabelPriority = "low"
	PriorityNone   LabelPriority = "none"
)

// RawLabel is a single detection from the vision service for one frame.
// Confidence is normalized to 0..1 before it enters the pipeline.
type RawLabel struct {
	Frame      string        `json:"frame"`
	Name       string        `json:"label"`
	Confidence float64       `json:"confidence"`
	Category   string        `json:"category"`
	Priority   LabelPriority `json:"priority"`
}

// OCRResult holds the text lines read from one frame.
type OCRResult struct {
	Frame     string   `json:"frame"`
	Lines     []string `json:"text"`
	TextFound bool     `json:"textFound"`
}
