package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sadewadee/phpcodings/internal/config"
)

// ErrUnknownScenario is returned by Lookup for names not in the registry.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is a single-shot procedure whose only effect is what it writes to w.
type Scenario interface {
	Name() string
	Run(ctx context.Context, w io.Writer) error
}

// Registry holds scenarios in registration order.
type Registry struct {
	order  []string
	byName map[string]Scenario
}

// NewRegistry registers the given scenarios. Duplicate names are an error.
func NewRegistry(scenarios ...Scenario) (*Registry, error) {
	r := &Registry{byName: make(map[string]Scenario, len(scenarios))}
	for _, s := range scenarios {
		name := s.Name()
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("duplicate scenario %q", name)
		}
		r.byName[name] = s
		r.order = append(r.order, name)
	}
	return r, nil
}

// FromConfig builds the registry of built-in scenarios.
func FromConfig(cfg *config.Config) (*Registry, error) {
	mode, err := ParseCaseMode(cfg.Scenarios.Uppercase.CaseMode)
	if err != nil {
		return nil, fmt.Errorf("uppercase scenario: %w", err)
	}

	return NewRegistry(
		&Uppercase{
			Input: StringList(cfg.Scenarios.Uppercase.Input),
			Mode:  mode,
		},
		&Construct{
			Count:     cfg.Scenarios.Construct.Count,
			Ratio:     cfg.Scenarios.Construct.Ratio,
			Precision: cfg.Precision(),
		},
	)
}

// Lookup returns the scenario registered under name.
func (r *Registry) Lookup(name string) (Scenario, error) {
	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	return s, nil
}

// Names lists scenario names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
