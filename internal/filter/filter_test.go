package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nebulanotes/constellation/plugin/constellation"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{
			name:       "empty expression",
			expression: "",
			wantErr:    false,
		},
		{
			name:       "document name equality",
			expression: `document_name == "journal"`,
			wantErr:    false,
		},
		{
			name:       "date comparison",
			expression: `document_date > timestamp("2026-01-01T00:00:00Z")`,
			wantErr:    false,
		},
		{
			name:       "text contains",
			expression: `text.contains("garden")`,
			wantErr:    false,
		},
		{
			name:       "syntax error",
			expression: `document_name ==`,
			wantErr:    true,
		},
		{
			name:       "unknown variable",
			expression: `author == "me"`,
			wantErr:    true,
		},
		{
			name:       "non-boolean output",
			expression: `document_name`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	thought := constellation.Thought{
		ID:           "t1",
		Text:         "watering the garden beds",
		Color:        "green",
		DocumentName: "journal",
		DocumentDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name       string
		expression string
		expected   bool
	}{
		{name: "empty matches everything", expression: "", expected: true},
		{name: "name match", expression: `document_name == "journal"`, expected: true},
		{name: "name mismatch", expression: `document_name == "work"`, expected: false},
		{name: "date window", expression: `document_date > timestamp("2026-01-01T00:00:00Z")`, expected: true},
		{name: "text and color", expression: `text.contains("garden") && color == "green"`, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher, err := Compile(tt.expression)
			require.NoError(t, err)
			got, err := matcher.Match(thought)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestApply(t *testing.T) {
	thoughts := []constellation.Thought{
		{ID: "a", DocumentName: "journal", Text: "morning pages"},
		{ID: "b", DocumentName: "work", Text: "sprint planning"},
		{ID: "c", DocumentName: "journal", Text: "evening review"},
	}

	matcher, err := Compile(`document_name == "journal"`)
	require.NoError(t, err)

	got := matcher.Apply(thoughts)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "c", got[1].ID)
}

func TestApplyEmptyMatcherReturnsInput(t *testing.T) {
	thoughts := []constellation.Thought{{ID: "a"}}
	matcher, err := Compile("")
	require.NoError(t, err)
	require.Len(t, matcher.Apply(thoughts), 1)
}
