package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meshforge/csgkit/internal/ir"
)

// Scenario defines a build scenario executed against the model facade.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// SessionToken is an optional fixed session token. If empty, the
	// bridge generates one; golden comparison only covers kernel calls,
	// which never embed the token.
	SessionToken string `yaml:"session_token,omitempty"`

	// CharacteristicLengthMin and CharacteristicLengthMax, when set,
	// are pushed as kernel options at session start.
	CharacteristicLengthMin *float64 `yaml:"characteristic_length_min,omitempty"`
	CharacteristicLengthMax *float64 `yaml:"characteristic_length_max,omitempty"`

	// Steps is the ordered build plan.
	Steps []StepSpec `yaml:"steps"`
}

// StepSpec is one YAML plan step, discriminated by which marker field
// is set: add, boolean, synchronize, flush.
type StepSpec struct {
	// Add defines a primitive and binds it to this label.
	Add      string    `yaml:"add,omitempty"`
	Shape    string    `yaml:"shape,omitempty"`
	Params   []float64 `yaml:"params,omitempty"`
	MeshSize *float64  `yaml:"mesh_size,omitempty"`

	// Boolean runs a boolean operation and binds its result.
	Boolean   string   `yaml:"boolean,omitempty"`
	Action    string   `yaml:"action,omitempty"`
	Inputs    []string `yaml:"inputs,omitempty"`
	Tools     []string `yaml:"tools,omitempty"`
	KeepInput bool     `yaml:"keep_input,omitempty"`
	KeepTool  bool     `yaml:"keep_tool,omitempty"`

	Synchronize bool `yaml:"synchronize,omitempty"`
	Flush       bool `yaml:"flush,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos fail loudly instead of silently dropping steps.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if _, err := step.toStep(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

// Plan converts the scenario steps into an executable plan. Structural
// validation (label binding, shape kinds, boolean arities) happens
// here via ir.Plan.Validate.
func (s *Scenario) Plan() (*ir.Plan, error) {
	plan := &ir.Plan{Name: s.Name}
	for i, spec := range s.Steps {
		step, err := spec.toStep()
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		plan.Steps = append(plan.Steps, step)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (spec StepSpec) toStep() (ir.Step, error) {
	markers := 0
	if spec.Add != "" {
		markers++
	}
	if spec.Boolean != "" {
		markers++
	}
	if spec.Synchronize {
		markers++
	}
	if spec.Flush {
		markers++
	}
	if markers != 1 {
		return ir.Step{}, fmt.Errorf("step must set exactly one of: add, boolean, synchronize, flush")
	}

	switch {
	case spec.Add != "":
		return ir.Step{
			Kind:     ir.StepAdd,
			Label:    spec.Add,
			Shape:    ir.PrimitiveKind(spec.Shape),
			Params:   spec.Params,
			MeshSize: spec.MeshSize,
		}, nil
	case spec.Boolean != "":
		return ir.Step{
			Kind:      ir.StepBoolean,
			Label:     spec.Boolean,
			Action:    spec.Action,
			Inputs:    spec.Inputs,
			Tools:     spec.Tools,
			KeepInput: spec.KeepInput,
			KeepTool:  spec.KeepTool,
		}, nil
	case spec.Synchronize:
		return ir.Step{Kind: ir.StepSynchronize}, nil
	default:
		return ir.Step{Kind: ir.StepFlush}, nil
	}
}
