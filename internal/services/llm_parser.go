package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"alfredoptarigan/ats-engine/internal/models"
)

// llmEvaluation is the qualitative half of an evaluation as returned by
// the model. The heuristic scores and skill sets never come from here.
type llmEvaluation struct {
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Summary        string   `json:"summary"`
	Recommendation string   `json:"recommendation"`
	ConfidenceNote string   `json:"confidence_note"`
}

type llmRankingEntry struct {
	CandidateID   string   `json:"candidate_id"`
	CandidateName string   `json:"candidate_name"`
	MatchScore    float64  `json:"match_score"`
	KeyAdvantages []string `json:"key_advantages"`
	KeyGaps       []string `json:"key_gaps"`
}

type llmComparison struct {
	Ranking       []llmRankingEntry `json:"ranking"`
	BestCandidate string            `json:"best_candidate"`
}

const evaluationSchema = `{
  "type": "object",
  "required": ["summary"],
  "properties": {
    "strengths": {"type": "array", "items": {"type": "string"}},
    "weaknesses": {"type": "array", "items": {"type": "string"}},
    "summary": {"type": "string", "minLength": 1},
    "recommendation": {"type": "string"},
    "confidence_note": {"type": "string"}
  }
}`

const comparisonSchema = `{
  "type": "object",
  "required": ["ranking"],
  "properties": {
    "ranking": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["candidate_id", "match_score"],
        "properties": {
          "candidate_id": {"type": "string", "minLength": 1},
          "candidate_name": {"type": "string"},
          "match_score": {"type": "number", "minimum": 0, "maximum": 100},
          "key_advantages": {"type": "array", "items": {"type": "string"}},
          "key_gaps": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "best_candidate": {"type": "string"}
  }
}`

// parseEvaluationResponse is the strict structural parse: extract the JSON
// body, validate it against the schema, then unmarshal. Any failure means
// the response is malformed and the caller should try the text fallback.
func parseEvaluationResponse(raw string) (*llmEvaluation, error) {
	jsonStr := extractJSON(raw)

	if err := validateAgainstSchema(evaluationSchema, jsonStr); err != nil {
		return nil, err
	}

	var eval llmEvaluation
	if err := json.Unmarshal([]byte(jsonStr), &eval); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation: %w", err)
	}

	return &eval, nil
}

func parseComparisonResponse(raw string) (*llmComparison, error) {
	jsonStr := extractJSON(raw)

	if err := validateAgainstSchema(comparisonSchema, jsonStr); err != nil {
		return nil, err
	}

	var comparison llmComparison
	if err := json.Unmarshal([]byte(jsonStr), &comparison); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comparison: %w", err)
	}

	return &comparison, nil
}

func validateAgainstSchema(schema, document string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return fmt.Errorf("response does not match schema: %s", strings.Join(issues, "; "))
	}

	return nil
}

// extractLabeledEvaluation is the best-effort text fallback: pull
// recognizable labeled sections out of a response that was not valid JSON.
// Returns false when nothing usable was found.
func extractLabeledEvaluation(raw string) (*llmEvaluation, bool) {
	eval := &llmEvaluation{}
	found := false

	var current *[]string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		lower := strings.ToLower(trimmed)
		switch {
		case strings.HasPrefix(lower, "strengths"):
			current = &eval.Strengths
			if rest := labelRemainder(trimmed); rest != "" {
				eval.Strengths = append(eval.Strengths, rest)
				found = true
			}
		case strings.HasPrefix(lower, "weaknesses"), strings.HasPrefix(lower, "gaps"):
			current = &eval.Weaknesses
			if rest := labelRemainder(trimmed); rest != "" {
				eval.Weaknesses = append(eval.Weaknesses, rest)
				found = true
			}
		case strings.HasPrefix(lower, "summary"):
			current = nil
			if rest := labelRemainder(trimmed); rest != "" {
				eval.Summary = rest
				found = true
			}
		case strings.HasPrefix(lower, "recommendation"):
			current = nil
			if rest := labelRemainder(trimmed); rest != "" {
				eval.Recommendation = rest
				found = true
			}
		case strings.HasPrefix(lower, "confidence"):
			current = nil
			if rest := labelRemainder(trimmed); rest != "" {
				eval.ConfidenceNote = rest
				found = true
			}
		case strings.HasPrefix(trimmed, "-"), strings.HasPrefix(trimmed, "*"), strings.HasPrefix(trimmed, "•"):
			if current != nil {
				*current = append(*current, strings.TrimSpace(strings.TrimLeft(trimmed, "-*• ")))
				found = true
			}
		}
	}

	return eval, found
}

func labelRemainder(line string) string {
	if idx := strings.Index(line, ":"); idx >= 0 {
		return strings.TrimSpace(line[idx+1:])
	}
	return ""
}

// normalizeRecommendation maps a model-provided label to a canonical
// recommendation. The second return is false for anything unrecognized, in
// which case the threshold rule is authoritative.
func normalizeRecommendation(raw string) (models.Recommendation, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lower, "strong"):
		return models.StrongFit, true
	case strings.Contains(lower, "partial"), strings.Contains(lower, "moderate"):
		return models.PartialFit, true
	case strings.Contains(lower, "weak"):
		return models.WeakFit, true
	default:
		return "", false
	}
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	// Determine if we have an object or array
	if startObj != -1 && endObj != -1 && endObj > startObj {
		// We have a JSON object
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		// We have a JSON array
		return text[startArr : endArr+1]
	}

	return text
}
