package decision

import (
	"fmt"
	"strings"

	"citypulse/types"
)

const systemPrompt = `You are an emergency incident analyzer. Your task is to analyze evidence from disaster scenes and make incident decisions.

CRITICAL RULES:
1. Output ONLY valid JSON - no explanations, no markdown, no extra text
2. Be conservative with confidence scores - penalize uncertainty heavily
3. If evidence is weak or conflicting, lower the confidence score significantly
4. Base severity on the potential danger to human life and property
5. Extract location hints from OCR text when available

OUTPUT SCHEMA (STRICT - DO NOT DEVIATE):
{
  "incident_type": "flood|fire|smoke|vehicle_accident|person_in_danger|unknown",
  "severity": 0.0-1.0,
  "location_hint": "extracted from OCR or 'Unknown'",
  "recommended_action": "specific emergency response action",
  "confidence": 0.0-1.0
}

RESPOND WITH JSON ONLY.`

// buildUserPrompt enumerates each snippet plus aggregate statistics so the
// model sees the same evidence the fallback path scores.
func buildUserPrompt(snippets []types.EvidenceSnippet) string {
	var b strings.Builder
	b.WriteString("Analyze the following evidence snippets from a disaster scene and provide an incident decision.\n\nEVIDENCE:\n")

	for i, s := range snippets {
		text := s.Text
		if text == "" {
			text = "None"
		}
		fmt.Fprintf(&b, "Evidence %d:\n- Type: %s\n- Confidence: %.1f%%\n- OCR Text: %s\n- Frame: %s\n\n",
			i+1, s.Type, s.Confidence*100, text, s.Frame)
	}

	fmt.Fprintf(&b, "Total evidence items: %d\n", len(snippets))
	fmt.Fprintf(&b, "Types detected: %s\n", strings.Join(distinctTypes(snippets), ", "))
	fmt.Fprintf(&b, "Average confidence: %.1f%%\n\n", meanConfidence(snippets)*100)
	b.WriteString("Provide your incident decision as JSON only.")

	return b.String()
}

// distinctTypes returns the unique snippet types in first-seen order.
func distinctTypes(snippets []types.EvidenceSnippet) []string {
	seen := make(map[types.SnippetType]bool)
	var out []string
	for _, s := range snippets {
		if !seen[s.Type] {
			seen[s.Type] = true
			out = append(out, string(s.Type))
		}
	}
	return out
}

func meanConfidence(snippets []types.EvidenceSnippet) float64 {
	if len(snippets) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range snippets {
		sum += s.Confidence
	}
	return sum / float64(len(snippets))
}
