// Package vision is the thin client for per-frame label detection.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"citypulse/types"
)

// Detector produces raw labels for one frame. Implementations return an
// error on service failure; the pipeline catches it at the point of use and
// continues with an empty label set.
type Detector interface {
	Detect(ctx context.Context, frame types.Frame) ([]types.RawLabel, error)
}

// keyword tiers drive the priority tag on each label; the categorizer's
// other bucket only accepts high-priority detections
var (
	hazardKeywords = []string{
		"fire", "flame", "smoke", "burning", "blaze", "inferno", "combustion",
		"explosion", "flood", "water", "storm", "lightning", "tornado",
		"earthquake", "debris", "damage", "destruction", "emergency",
		"accident", "crash", "collision", "hazard", "danger", "warning",
	}
	importantKeywords = []string{
		"person", "people", "human", "crowd", "pedestrian",
		"car", "vehicle", "truck", "bus", "motorcycle", "bicycle",
		"building", "house", "structure", "architecture",
		"road", "street", "highway", "bridge",
	}
)

// HTTPDetector posts frames to an external vision model endpoint.
type HTTPDetector struct {
	url    string
	client *http.Client
}

// NewHTTPDetector returns nil when no service URL is configured.
func NewHTTPDetector(url string) *HTTPDetector {
	if url == "" {
		return nil
	}
	return &HTTPDetector{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type detectRequest struct {
	Frame    string `json:"frame"`
	ImageB64 string `json:"image_b64"`
}

type detectResponse struct {
	Labels []struct {
		Name       string   `json:"name"`
		Confidence float64  `json:"confidence"`
		Categories []string `json:"categories"`
	} `json:"labels"`
}

// Detect sends the frame image to the vision service. Video frames that were
// never decoded into images yield no labels without a service call.
func (d *HTTPDetector) Detect(ctx context.Context, frame types.Frame) ([]types.RawLabel, error) {
	if frame.Kind == types.FrameVideo {
		return nil, nil
	}

	imageBytes, err := os.ReadFile(frame.Path)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(detectRequest{
		Frame:    frame.Name,
		ImageB64: base64.StdEncoding.EncodeToString(imageBytes),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("vision service returned status: " + resp.Status)
	}

	var decoded detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	labels := make([]types.RawLabel, 0, len(decoded.Labels))
	for _, raw := range decoded.Labels {
		labels = append(labels, Normalize(frame.Name, raw.Name, raw.Confidence))
	}
	return labels, nil
}

// Normalize converts one detection into a RawLabel with a 0..1 confidence
// and a keyword-tier priority. Detectors report confidence on either a 0..1
// or 0..100 scale depending on the backend.
func Normalize(frameName, labelName string, confidence float64) types.RawLabel {
	if confidence > 1 {
		confidence = confidence / 100
	}

	category, priority := classify(labelName)
	return types.RawLabel{
		Frame:      frameName,
		Name:       labelName,
		Confidence: confidence,
		Category:   category,
		Priority:   priority,
	}
}

func classify(labelName string) (string, types.LabelPriority) {
	lower := strings.ToLower(labelName)
	for _, kw := range hazardKeywords {
		if strings.Contains(lower, kw) {
			return "hazard", types.PriorityHigh
		}
	}
	for _, kw := range importantKeywords {
		if strings.Contains(lower, kw) {
			return "important", types.PriorityMedium
		}
	}
	return "other", types.PriorityLow
}
