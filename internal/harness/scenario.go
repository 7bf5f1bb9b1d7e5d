package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario kinds.
const (
	KindMatch = "match"
	KindTeam  = "team"
)

// Scenario is a scripted session against one engine.
// Steps run in order; assertions check the resulting trace and final state.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Kind selects the engine: "match" or "team".
	Kind string `yaml:"kind"`

	// Setup configures the engine before the first step.
	Setup Setup `yaml:"setup,omitempty"`

	// Steps are the actions to apply, each optionally with an expected outcome.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and state.
	// Supported types: trace_contains, trace_order, trace_count, state
	Assertions []Assertion `yaml:"assertions"`
}

// Setup configures the engine under test.
type Setup struct {
	// BestOf is the single-match length (default 5).
	BestOf int `yaml:"best_of,omitempty"`

	// Competitors names the two sides of a single match.
	Competitors []CompetitorSetup `yaml:"competitors,omitempty"`

	// Variant is the team-match round count: "3rounds" or "4rounds".
	Variant string `yaml:"variant,omitempty"`

	// Doubles is the number of doubles rows (default 2).
	Doubles *int `yaml:"doubles,omitempty"`

	// Lineup is a CUE lineup file applied to the team sheet.
	// Relative paths resolve against the scenario file.
	Lineup string `yaml:"lineup,omitempty"`
}

// CompetitorSetup names one side of a single match.
type CompetitorSetup struct {
	Name string `yaml:"name"`
	Club string `yaml:"club,omitempty"`
}

// Step applies one engine action.
type Step struct {
	// Action names the engine action, e.g. "point" or "toggle_sub".
	Action string `yaml:"action"`

	// Args holds the action arguments.
	Args map[string]interface{} `yaml:"args,omitempty"`

	// Expect is the expected outcome. When nil the action must apply.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// Step outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// Outcome is "applied" or "rejected".
	Outcome string `yaml:"outcome"`

	// Code is the expected rejection code, e.g. "MATCH_FINISHED".
	Code string `yaml:"code,omitempty"`

	// Value is the expected action result, e.g. the stored set entry.
	Value interface{} `yaml:"value,omitempty"`
}

// Assertion validates trace or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": Check action appears in trace with args
	// - "trace_order": Check actions appear in order
	// - "trace_count": Check action appears exactly N times
	// - "state": Check the value at a path of the final state view
	Type string `yaml:"type"`

	// Action is the action name (used by trace_contains, trace_count).
	Action string `yaml:"action,omitempty"`

	// Args are the expected action arguments (used by trace_contains).
	// Subset match - only specified fields are validated.
	Args map[string]interface{} `yaml:"args,omitempty"`

	// Outcome optionally restricts trace_contains and trace_count to steps
	// with that outcome.
	Outcome string `yaml:"outcome,omitempty"`

	// Count is the expected number of occurrences (used by trace_count).
	Count int `yaml:"count,omitempty"`

	// Actions is the expected action order (used by trace_order).
	Actions []string `yaml:"actions,omitempty"`

	// Path is a dotted path into the state view, e.g. "rows.2.setsResult"
	// (used by state). List elements are addressed by index.
	Path string `yaml:"path,omitempty"`

	// Equals is the expected value at Path (used by state).
	Equals interface{} `yaml:"equals,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertState         = "state"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative lineup path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if l := scenario.Setup.Lineup; l != "" && !filepath.IsAbs(l) {
		scenario.Setup.Lineup = filepath.Join(filepath.Dir(path), l)
	}
	if l := scenario.Setup.Lineup; l != "" {
		if _, err := os.Stat(l); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: lineup file not found: %s", l)
		}
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML, rejecting unknown fields.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	var known map[string]bool
	switch s.Kind {
	case KindMatch:
		known = matchActionNames
	case KindTeam:
		known = teamActionNames
	default:
		return fmt.Errorf("kind must be %q or %q, got %q", KindMatch, KindTeam, s.Kind)
	}

	if s.Kind == KindMatch && (s.Setup.Variant != "" || s.Setup.Doubles != nil || s.Setup.Lineup != "") {
		return fmt.Errorf("setup: variant, doubles and lineup apply to team scenarios only")
	}
	if s.Kind == KindTeam && (s.Setup.BestOf != 0 || len(s.Setup.Competitors) != 0) {
		return fmt.Errorf("setup: best_of and competitors apply to match scenarios only")
	}
	if len(s.Setup.Competitors) > 2 {
		return fmt.Errorf("setup: at most 2 competitors, got %d", len(s.Setup.Competitors))
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Action == "" {
			return fmt.Errorf("steps[%d]: action is required", i)
		}
		if !known[step.Action] {
			return fmt.Errorf("steps[%d]: unknown %s action %q", i, s.Kind, step.Action)
		}
		if step.Expect != nil {
			switch step.Expect.Outcome {
			case OutcomeApplied:
				if step.Expect.Code != "" {
					return fmt.Errorf("steps[%d].expect: code is only valid for rejected outcomes", i)
				}
			case OutcomeRejected:
			default:
				return fmt.Errorf("steps[%d].expect: outcome must be %q or %q", i, OutcomeApplied, OutcomeRejected)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertState:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
