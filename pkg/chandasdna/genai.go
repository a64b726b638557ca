package chandasdna

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"google.golang.org/genai"

	"github.com/vedicmetrics/ChandasDNA/pkg/logger"
	"github.com/vedicmetrics/ChandasDNA/pkg/models"
)

const defaultGenAIModel = "gemini-2.0-flash"

const identifyPrompt = `You are an expert in Sanskrit prosody (chandas shastra).
Analyze the following verse and identify its meter.

Verse:
%s
%s
Respond with ONLY a JSON object, no prose, in this exact shape:
{
  "chandas_name": "<meter name, or empty string if unknown>",
  "confidence": <0.0 to 1.0>,
  "laghu_guru_pattern": "<L/G pattern per quarter, space separated>",
  "explanation": "<one or two sentences>",
  "syllable_breakdown": [{"syllable": "...", "weight": "laghu|guru"}]
}`

// ModelIdentifier classifies verses with the Gemini API. It implements
// Identifier, so it composes with the algorithmic engine through Fallback.
type ModelIdentifier struct {
	client *genai.Client
	model  string
	log    Logger
}

func NewModelIdentifier(ctx context.Context, apiKey, model string) (*ModelIdentifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = defaultGenAIModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &ModelIdentifier{
		client: client,
		model:  model,
		log:    logger.GetLogger(),
	}, nil
}

func (m *ModelIdentifier) Identify(ctx context.Context, shloka, hint string) (*models.Identification, error) {
	hintLine := ""
	if hint != "" {
		hintLine = fmt.Sprintf("\nThe caller expects the meter to be %q; verify rather than assume.\n", hint)
	}
	prompt := fmt.Sprintf(identifyPrompt, shloka, hintLine)

	resp, err := m.client.Models.GenerateContent(ctx,
		m.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.1),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}

	out := parseModelResponse(resp.Text())
	m.log.Debugf("model identify: verdict=%s name=%q confidence=%.3f", out.Verdict, out.ChandasName, out.Confidence)
	return out, nil
}

// parseModelResponse extracts an Identification from model output. Models
// wrap JSON in markdown fences or prose often enough that the parse has to
// be tolerant; unusable output degrades to a zero-confidence unidentified
// result rather than an error, so the fallback chain keeps going.
func parseModelResponse(raw string) *models.Identification {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if !gjson.Valid(text) {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start >= 0 && end > start {
			text = text[start : end+1]
		}
	}
	if !gjson.Valid(text) {
		return &models.Identification{
			Verdict:     "unidentified",
			Explanation: "The model returned no parseable analysis.",
			Source:      "model",
		}
	}

	name := gjson.Get(text, "chandas_name").String()
	confidence := gjson.Get(text, "confidence").Float()
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	out := &models.Identification{
		ChandasName:      name,
		Detected:         name != "",
		Confidence:       confidence,
		LaghuGuruPattern: gjson.Get(text, "laghu_guru_pattern").String(),
		Explanation:      gjson.Get(text, "explanation").String(),
		Source:           "model",
	}
	switch {
	case name == "":
		out.Verdict = "unidentified"
	case confidence >= 0.9:
		out.Verdict = "identified"
	default:
		out.Verdict = "probable"
	}

	gjson.Get(text, "syllable_breakdown").ForEach(func(_, item gjson.Result) bool {
		out.SyllableBreakdown = append(out.SyllableBreakdown, models.SyllableInfo{
			Syllable: item.Get("syllable").String(),
			Weight:   item.Get("weight").String(),
			Position: len(out.SyllableBreakdown) + 1,
		})
		return true
	})
	return out
}
