// Package processor runs the upload pipeline: frames, OCR, label detection,
// categorization, snippets, decision, confidence gate, media storage.
package processor

import (
	"context"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"citypulse/db"
	"citypulse/decision"
	"citypulse/detection"
	"citypulse/media"
	"citypulse/ocr"
	"citypulse/snippets"
	"citypulse/storage"
	"citypulse/types"
	"citypulse/vision"
)

// Processor wires the pipeline stages. Detector, OCR and Media may be nil;
// the corresponding stage then degrades (no labels, no text, placeholder
// location) without failing the request.
type Processor struct {
	Detector vision.Detector
	OCR      ocr.Extractor
	Media    storage.MediaStore
	Engine   *decision.Engine
	Store    *db.Store
	Log      *slog.Logger
}

// Emergency is the operational slice of the response.
type Emergency struct {
	Recommendations []types.Recommendation `json:"recommendations"`
	Severity        types.Severity         `json:"severity"`
	ImmediateAction string                 `json:"immediateAction"`
}

// ProcessingSummary carries per-stage counters for the response.
type ProcessingSummary struct {
	OCRFramesProcessed   int `json:"ocrFramesProcessed"`
	VisionLabelsDetected int `json:"visionLabelsDetected"`
	HazardsDetected      int `json:"hazardsDetected"`
	DisastersIdentified  int `json:"disastersIdentified"`
	SnippetsGenerated    int `json:"snippetsGenerated"`
}

// UploadResult is the complete response for one processed upload.
type UploadResult struct {
	Status     string                  `json:"status"`
	MediaType  string                  `json:"mediaType"`
	FrameCount int                     `json:"frameCount"`
	Snippets   []types.EvidenceSnippet `json:"snippets"`
	Labels     []types.RawLabel        `json:"vision"`
	Disasters  types.DisasterAnalysis  `json:"disasters"`
	Emergency  Emergency               `json:"emergency"`
	OCR        []types.OCRResult       `json:"ocr"`
	Incident   types.Incident          `json:"incident"`
	Storage    storage.Location        `json:"storage"`
	Processing ProcessingSummary       `json:"processing"`
}

// ProcessUpload runs the full pipeline for one uploaded file. Only an
// unsupported media type surfaces as an error; every upstream service
// failure degrades to a valid, reduced result.
func (p *Processor) ProcessUpload(ctx context.Context, path, name, mimeType string) (*UploadResult, error) {
	log := p.logger()
	log.Info("pipeline start", "name", name, "mime", mimeType)

	frames, err := media.Preprocess(ctx, path, mimeType)
	if err != nil {
		return nil, err
	}
	log.Info("frames extracted", "count", len(frames))

	ocrResults, labels := p.analyzeFrames(ctx, frames)
	log.Info("frame analysis complete", "labels", len(labels), "ocr_frames", len(ocrResults))

	analysis := detection.Categorize(labels)
	recommendations := detection.Recommendations(analysis.Summary)
	log.Info("hazards categorized",
		"severity", analysis.Summary.SeverityLevel,
		"score", analysis.Summary.SeverityScore,
	)

	evidence := snippets.Generate(labels, ocrResults)
	log.Info("evidence snippets generated", "count", len(evidence))

	aiDecision := p.Engine.Analyze(ctx, evidence)
	incident := p.Store.Create(aiDecision, evidence)

	location := p.saveMedia(ctx, path, name, mimeType)

	media.CleanupFrames(frames)
	media.RemoveFile(path)

	return &UploadResult{
		Status:     "processed",
		MediaType:  mimeType,
		FrameCount: len(frames),
		Snippets:   evidence,
		Labels:     labels,
		Disasters:  analysis,
		Emergency: Emergency{
			Recommendations: recommendations,
			Severity:        analysis.Summary.SeverityLevel,
			ImmediateAction: recommendations[0].Action,
		},
		OCR:      ocrResults,
		Incident: incident,
		Storage:  location,
		Processing: ProcessingSummary{
			OCRFramesProcessed:   countTextFound(ocrResults),
			VisionLabelsDetected: len(labels),
			HazardsDetected:      countHazards(labels),
			DisastersIdentified:  analysis.Summary.TotalDisasters,
			SnippetsGenerated:    len(evidence),
		},
	}, nil
}

// analyzeFrames dispatches OCR and label detection concurrently per frame.
// Results land in frame-indexed slots, so completion order never matters.
// Per-frame failures fail closed: empty text or labels for that frame only.
func (p *Processor) analyzeFrames(ctx context.Context, frames []types.Frame) ([]types.OCRResult, []types.RawLabel) {
	ocrByFrame := make([]types.OCRResult, len(frames))
	labelsByFrame := make([][]types.RawLabel, len(frames))

	g, gctx := errgroup.WithContext(ctx)
	for i, frame := range frames {
		g.Go(func() error {
			lines := p.extractText(gctx, frame)
			ocrByFrame[i] = types.OCRResult{
				Frame:     frame.Name,
				Lines:     lines,
				TextFound: len(lines) > 0,
			}

			labelsByFrame[i] = p.detectLabels(gctx, frame)
			return nil
		})
	}
	_ = g.Wait() // goroutines fail closed, never return an error

	var labels []types.RawLabel
	for _, frameLabels := range labelsByFrame {
		labels = append(labels, frameLabels...)
	}
	return ocrByFrame, labels
}

func (p *Processor) extractText(ctx context.Context, frame types.Frame) []string {
	if p.OCR == nil {
		return nil
	}
	lines, err := p.OCR.Extract(ctx, frame)
	if err != nil {
		p.logger().Warn("OCR failed for frame, continuing without text", "frame", frame.Name, "error", err)
		return nil
	}
	return lines
}

func (p *Processor) detectLabels(ctx context.Context, frame types.Frame) []types.RawLabel {
	if p.Detector == nil {
		return nil
	}
	labels, err := p.Detector.Detect(ctx, frame)
	if err != nil {
		p.logger().Warn("label detection failed for frame, continuing without labels", "frame", frame.Name, "error", err)
		return nil
	}
	return labels
}

// saveMedia uploads the original file, substituting a local placeholder on
// any failure: an already-computed decision is never invalidated by storage.
func (p *Processor) saveMedia(ctx context.Context, path, name, mimeType string) storage.Location {
	if p.Media == nil {
		return storage.LocalPlaceholder(path)
	}
	location, err := p.Media.Save(ctx, path, name, mimeType)
	if err != nil {
		p.logger().Warn("media upload failed, using local placeholder", "name", name, "error", err)
		return storage.LocalPlaceholder(path)
	}
	return location
}

func countTextFound(results []types.OCRResult) int {
	n := 0
	for _, r := range results {
		if r.TextFound {
			n++
		}
	}
	return n
}

func countHazards(labels []types.RawLabel) int {
	n := 0
	for _, l := range labels {
		if l.Category == "hazard" {
			n++
		}
	}
	return n
}

func (p *Processor) logger() *slog.Logger {
	if p.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Log
}
