package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nebulanotes/constellation/plugin/constellation"
)

// NarrativeRequest carries the analyzed-network summary sent to the
// narrative provider.
type NarrativeRequest struct {
	ThoughtsSummary string                     `json:"thoughts_summary"`
	Patterns        []constellation.Pattern    `json:"patterns"`
	Stats           constellation.NetworkStats `json:"stats"`
}

// NarrativeResult is the provider response. Error is a structured marker;
// when set, Synthesis/Questions hold the fallback-compatible empty values
// and the caller keeps its templated output.
type NarrativeResult struct {
	Synthesis string   `json:"synthesis"`
	Questions []string `json:"questions"`
	Error     string   `json:"error,omitempty"`
}

const narrativeSystemPrompt = `You are a reflective writing companion. Given a summary of a user's thought network, respond with a JSON object: {"synthesis": "...", "questions": ["...", "..."]}. The synthesis is one warm, concrete paragraph about the patterns in their thinking; the questions (at most 3) invite the user further down a path they have started.`

// GenerateNarrative asks the chat model to replace the templated synthesis
// and questions. All failures come back inside the result, never as an
// error: the caller's templated output is the always-available baseline.
func (p *Provider) GenerateNarrative(ctx context.Context, req *NarrativeRequest) *NarrativeResult {
	payload, err := json.Marshal(req)
	if err != nil {
		return &NarrativeResult{Questions: []string{}, Error: fmt.Sprintf("marshal request: %v", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	text, err := p.Chat(ctx, narrativeSystemPrompt, string(payload))
	if err != nil {
		return &NarrativeResult{Questions: []string{}, Error: err.Error()}
	}
	return ParseNarrative(text)
}

// ParseNarrative recovers a structured payload from the provider response.
// Models sometimes wrap the JSON in prose or code fences, so the parser
// scans for an embedded object first; if nothing parses, the whole response
// is treated as the synthesis with no questions. This is recovery, not an
// error.
func ParseNarrative(text string) *NarrativeResult {
	trimmed := strings.TrimSpace(text)

	candidates := []string{trimmed}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			candidates = append(candidates, trimmed[start:end+1])
		}
	}

	for _, candidate := range candidates {
		var result NarrativeResult
		if err := json.Unmarshal([]byte(candidate), &result); err != nil {
			continue
		}
		if result.Synthesis == "" {
			continue
		}
		if result.Questions == nil {
			result.Questions = []string{}
		}
		return &result
	}

	return &NarrativeResult{Synthesis: trimmed, Questions: []string{}}
}
