// Package filter compiles CEL expressions that select the analysis scope:
// which stored thoughts feed one constellation run. Expressions see the
// fields document_name, document_date, text and color, e.g.
//
//	document_name == "journal" && document_date > timestamp("2026-01-01T00:00:00Z")
package filter

import (
	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"

	"github.com/nebulanotes/constellation/plugin/constellation"
)

// Matcher is a compiled scope filter.
type Matcher struct {
	program cel.Program
}

// Compile parses and type-checks the expression. An empty expression
// matches everything.
func Compile(expression string) (*Matcher, error) {
	if expression == "" {
		return &Matcher{}, nil
	}

	env, err := cel.NewEnv(
		cel.Variable("document_name", cel.StringType),
		cel.Variable("document_date", cel.TimestampType),
		cel.Variable("text", cel.StringType),
		cel.Variable("color", cel.StringType),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create filter environment")
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrap(issues.Err(), "invalid filter expression")
	}
	if ast.OutputType() != cel.BoolType {
		return nil, errors.New("filter expression must evaluate to a boolean")
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build filter program")
	}
	return &Matcher{program: program}, nil
}

// Match evaluates the filter against a single thought.
func (m *Matcher) Match(t constellation.Thought) (bool, error) {
	if m.program == nil {
		return true, nil
	}

	out, _, err := m.program.Eval(map[string]any{
		"document_name": t.DocumentName,
		"document_date": t.DocumentDate,
		"text":          t.Text,
		"color":         t.Color,
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to evaluate filter")
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, errors.New("filter did not produce a boolean")
	}
	return matched, nil
}

// Apply returns the thoughts matching the filter, in input order. Thoughts
// that fail evaluation are skipped rather than failing the whole scope.
func (m *Matcher) Apply(thoughts []constellation.Thought) []constellation.Thought {
	if m.program == nil {
		return thoughts
	}
	out := make([]constellation.Thought, 0, len(thoughts))
	for _, t := range thoughts {
		if matched, err := m.Match(t); err == nil && matched {
			out = append(out, t)
		}
	}
	return out
}
