package snippets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"citypulse/types"
)

func label(frame, name string, conf float64) types.RawLabel {
	return types.RawLabel{Frame: frame, Name: name, Confidence: conf}
}

func TestGenerate_EmptyInput(t *testing.T) {
	if got := Generate(nil, nil); len(got) != 0 {
		t.Errorf("Generate(nil, nil) = %v, want empty", got)
	}
	if got := Generate([]types.RawLabel{}, []types.OCRResult{}); len(got) != 0 {
		t.Errorf("Generate on empty slices = %v, want empty", got)
	}
}

func TestGenerate_FiltersLowConfidence(t *testing.T) {
	labels := []types.RawLabel{
		label("frame_01.jpg", "Fire", 0.70), // boundary: <= 0.70 is dropped
		label("frame_01.jpg", "Smoke", 0.69),
		label("frame_01.jpg", "Flood", 0.71),
	}
	got := Generate(labels, nil)
	if len(got) != 1 {
		t.Fatalf("got %d snippets, want 1: %v", len(got), got)
	}
	if got[0].Type != types.SnippetFlood {
		t.Errorf("Type = %s, want flood", got[0].Type)
	}
}

func TestGenerate_AllowListSubstringMatch(t *testing.T) {
	labels := []types.RawLabel{
		label("frame_01.jpg", "Fire Hydrant", 0.95),
		label("frame_01.jpg", "Motor Vehicle", 0.91),
		label("frame_01.jpg", "Building", 0.99), // not on the allow-list
	}
	got := Generate(labels, nil)
	if len(got) != 2 {
		t.Fatalf("got %d snippets, want 2: %v", len(got), got)
	}
	if got[0].Type != types.SnippetFire || got[1].Type != types.SnippetVehicle {
		t.Errorf("types = %s, %s; want fire, vehicle", got[0].Type, got[1].Type)
	}
}

func TestGenerate_SortedByConfidenceDescending(t *testing.T) {
	labels := []types.RawLabel{
		label("frame_01.jpg", "Smoke", 0.75),
		label("frame_02.jpg", "Fire", 0.95),
		label("frame_03.jpg", "Flood", 0.85),
	}
	got := Generate(labels, nil)
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Errorf("snippets not sorted: %v", got)
		}
	}
	if got[0].Type != types.SnippetFire {
		t.Errorf("first snippet = %s, want fire", got[0].Type)
	}
}

func TestGenerate_CapsAtFive(t *testing.T) {
	var labels []types.RawLabel
	for i := 0; i < 8; i++ {
		labels = append(labels, label("frame_01.jpg", "Fire", 0.80))
	}
	got := Generate(labels, nil)
	if len(got) != 5 {
		t.Errorf("got %d snippets, want 5", len(got))
	}
}

func TestGenerate_FewerThanThreeNotPadded(t *testing.T) {
	labels := []types.RawLabel{
		label("frame_01.jpg", "Fire", 0.90),
		label("frame_02.jpg", "Person", 0.85),
	}
	got := Generate(labels, nil)
	if len(got) != 2 {
		t.Errorf("got %d snippets, want 2 (never fabricated)", len(got))
	}
}

func TestGenerate_AttachesOCRTextByFrame(t *testing.T) {
	labels := []types.RawLabel{
		label("frame_01.jpg", "Fire", 0.92),
		label("frame_02.jpg", "Smoke", 0.81),
	}
	ocr := []types.OCRResult{
		{Frame: "tmp/frames/frame_01.jpg", Lines: []string{"MAIN ST", "EXIT"}, TextFound: true},
	}
	got := Generate(labels, ocr)
	want := []types.EvidenceSnippet{
		{Type: types.SnippetFire, Confidence: 0.92, Text: "MAIN ST", Frame: "frame_01.jpg"},
		{Type: types.SnippetSmoke, Confidence: 0.81, Frame: "frame_02.jpg"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_SkipsErrorAndVideoLines(t *testing.T) {
	labels := []types.RawLabel{label("frame_01.jpg", "Flood", 0.88)}
	ocr := []types.OCRResult{
		{Frame: "frame_01.jpg", Lines: []string{"[OCR Error: boom]", "Video file - no frames", "RIVER RD"}, TextFound: true},
	}
	got := Generate(labels, ocr)
	if got[0].Text != "RIVER RD" {
		t.Errorf("Text = %q, want RIVER RD", got[0].Text)
	}
}

func TestGenerate_RoundsConfidenceToTwoDecimals(t *testing.T) {
	labels := []types.RawLabel{label("frame_01.jpg", "Person", 0.8567)}
	got := Generate(labels, nil)
	if got[0].Confidence != 0.86 {
		t.Errorf("Confidence = %v, want 0.86 (rounded, not truncated)", got[0].Confidence)
	}
}
