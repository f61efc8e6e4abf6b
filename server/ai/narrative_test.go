package ai

import (
	"reflect"
	"testing"
)

func TestParseNarrative(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *NarrativeResult
	}{
		{
			name: "clean json",
			text: `{"synthesis": "Your thoughts orbit your garden.", "questions": ["What grows next?"]}`,
			expected: &NarrativeResult{
				Synthesis: "Your thoughts orbit your garden.",
				Questions: []string{"What grows next?"},
			},
		},
		{
			name: "json wrapped in prose",
			text: "Here is the reflection you asked for:\n```json\n{\"synthesis\": \"A quiet week.\", \"questions\": []}\n```\nHope that helps!",
			expected: &NarrativeResult{
				Synthesis: "A quiet week.",
				Questions: []string{},
			},
		},
		{
			name: "missing questions becomes empty slice",
			text: `{"synthesis": "Just one thread so far."}`,
			expected: &NarrativeResult{
				Synthesis: "Just one thread so far.",
				Questions: []string{},
			},
		},
		{
			name: "plain prose falls back to synthesis",
			text: "  Your notes keep returning to the sea.  ",
			expected: &NarrativeResult{
				Synthesis: "Your notes keep returning to the sea.",
				Questions: []string{},
			},
		},
		{
			name: "json without synthesis falls back to raw text",
			text: `{"questions": ["only questions"]}`,
			expected: &NarrativeResult{
				Synthesis: `{"questions": ["only questions"]}`,
				Questions: []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNarrative(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseNarrative() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}
