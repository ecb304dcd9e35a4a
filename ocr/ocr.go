// Package ocr is the thin client for per-frame text extraction.
package ocr

import (
	"context"
	"os/exec"
	"strings"

	"citypulse/types"
)

// Extractor reads text lines from one frame. Failures are caught by the
// pipeline and degrade to an empty result for that frame.
type Extractor interface {
	Extract(ctx context.Context, frame types.Frame) ([]string, error)
}

// TesseractExtractor shells out to the tesseract CLI.
type TesseractExtractor struct{}

// Extract runs OCR on one frame. A video frame that was never decoded into
// images yields no text and no error; an error string is never embedded as
// data.
func (TesseractExtractor) Extract(ctx context.Context, frame types.Frame) ([]string, error) {
	if frame.Kind == types.FrameVideo {
		return nil, nil
	}

	cmd := exec.CommandContext(ctx, "tesseract", frame.Path, "stdout", "-l", "eng")
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
