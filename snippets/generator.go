// Package snippets merges label detections and OCR text into compact,
// explainable evidence items.
package snippets

import (
	"math"
	"sort"
	"strings"

	"citypulse/types"
)

const (
	minLabelConfidence = 0.70
	maxSnippets        = 5
	minSnippets        = 3
)

// allowedTypes is the accepted evidence allow-list. Match order matters: the
// first substring hit wins for labels like "Fire Hydrant".
var allowedTypes = []types.SnippetType{
	types.SnippetFlood,
	types.SnippetFire,
	types.SnippetSmoke,
	types.SnippetVehicle,
	types.SnippetPerson,
}

// Generate filters raw labels against the allow-list, attaches OCR text from
// the same frame when available, and returns at most 5 snippets sorted by
// confidence. If fewer than 3 qualify, all of them are returned; items are
// never fabricated to reach 3. Empty input yields an empty slice.
func Generate(labels []types.RawLabel, ocrResults []types.OCRResult) []types.EvidenceSnippet {
	if len(labels) == 0 {
		return nil
	}

	ocrByFrame := indexOCRByFrame(ocrResults)

	var out []types.EvidenceSnippet
	for _, label := range labels {
		if label.Confidence <= minLabelConfidence {
			continue
		}
		snippetType, ok := matchType(label.Name)
		if !ok {
			continue
		}
		out = append(out, types.EvidenceSnippet{
			Type:       snippetType,
			Confidence: round2(label.Confidence),
			Text:       findOCRText(ocrByFrame, label.Frame),
			Frame:      label.Frame,
		})
	}

	// Highest confidence first; ties keep original order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})

	limit := min(maxSnippets, max(minSnippets, len(out)))
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// matchType maps a free-text detector label onto the allow-list.
func matchType(labelName string) (types.SnippetType, bool) {
	lower := strings.ToLower(labelName)
	for _, t := range allowedTypes {
		if strings.Contains(lower, string(t)) {
			return t, true
		}
	}
	return "", false
}

type frameText struct {
	frame string
	lines []string
}

// indexOCRByFrame keeps only frames with usable text lines, in input order.
// Error markers and undecoded-video placeholders never count as evidence text.
func indexOCRByFrame(ocrResults []types.OCRResult) []frameText {
	var indexed []frameText
	for _, ocr := range ocrResults {
		if !ocr.TextFound || len(ocr.Lines) == 0 {
			continue
		}
		var lines []string
		for _, line := range ocr.Lines {
			if line == "" || strings.HasPrefix(line, "[OCR") || strings.Contains(line, "Video file") {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			indexed = append(indexed, frameText{frame: ocr.Frame, lines: lines})
		}
	}
	return indexed
}

// findOCRText matches OCR results to a label's frame. Frame identifiers may
// differ between the two sources (full path vs. base name), so containment in
// either direction counts as the same frame. First match in input order wins.
func findOCRText(indexed []frameText, frame string) string {
	for _, ft := range indexed {
		if strings.Contains(ft.frame, frame) || strings.Contains(frame, ft.frame) {
			return ft.lines[0]
		}
	}
	return ""
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
