package ir

import "fmt"

// StepKind distinguishes the operations a plan may perform.
type StepKind string

const (
	StepAdd         StepKind = "add"
	StepBoolean     StepKind = "boolean"
	StepSynchronize StepKind = "synchronize"
	StepFlush       StepKind = "flush"
)

// Boolean actions a plan step may request.
const (
	ActionUnion        = "union"
	ActionDifference   = "difference"
	ActionIntersection = "intersection"
	ActionFragments    = "fragments"
)

// validActions lists the recognized boolean actions.
var validActions = map[string]bool{
	ActionUnion:        true,
	ActionDifference:   true,
	ActionIntersection: true,
	ActionFragments:    true,
}

// Step is one operation of a declarative build plan.
//
// Add steps define a primitive and bind it to Label. Boolean steps
// consume previously bound labels and bind their result. Synchronize
// and flush steps take no operands.
type Step struct {
	Kind StepKind

	// Label binds the step's result for later reference.
	// Required for add and boolean steps.
	Label string

	// Add fields.
	Shape    PrimitiveKind
	Params   []float64
	MeshSize *float64

	// Boolean fields. Tools is only meaningful for fragments and
	// difference; KeepInput/KeepTool suppress the fragments delete
	// flags.
	Action    string
	Inputs    []string
	Tools     []string
	KeepInput bool
	KeepTool  bool
}

// Plan is an ordered sequence of build steps produced by the CUE
// compiler or the scenario harness and executed against the facade.
type Plan struct {
	Name  string
	Steps []Step
}

// Validate checks structural legality before any execution: labels are
// bound before use and never rebound, shape kinds and actions are
// known, and boolean arities hold. Dimensional legality is left to the
// boolean engine, which owns that rule.
func (p *Plan) Validate() error {
	bound := map[string]bool{}
	for i, s := range p.Steps {
		switch s.Kind {
		case StepAdd:
			if s.Label == "" {
				return fmt.Errorf("step %d: add requires a label", i)
			}
			if bound[s.Label] {
				return fmt.Errorf("step %d: label %q already bound", i, s.Label)
			}
			if !s.Shape.Valid() {
				return fmt.Errorf("step %d: unknown shape kind %q", i, s.Shape)
			}
			bound[s.Label] = true
		case StepBoolean:
			if s.Label == "" {
				return fmt.Errorf("step %d: boolean requires a label", i)
			}
			if bound[s.Label] {
				return fmt.Errorf("step %d: label %q already bound", i, s.Label)
			}
			if !validActions[s.Action] {
				return fmt.Errorf("step %d: unknown boolean action %q", i, s.Action)
			}
			if err := p.validateArity(i, s); err != nil {
				return err
			}
			for _, ref := range append(append([]string{}, s.Inputs...), s.Tools...) {
				if !bound[ref] {
					return fmt.Errorf("step %d: reference to unbound label %q", i, ref)
				}
			}
			bound[s.Label] = true
		case StepSynchronize, StepFlush:
			// No operands.
		default:
			return fmt.Errorf("step %d: unknown step kind %q", i, s.Kind)
		}
	}
	return nil
}

func (p *Plan) validateArity(i int, s Step) error {
	switch s.Action {
	case ActionUnion:
		if len(s.Inputs) < 2 {
			return fmt.Errorf("step %d: union requires at least two inputs", i)
		}
	case ActionDifference:
		if len(s.Inputs) != 1 || len(s.Tools) != 1 {
			return fmt.Errorf("step %d: difference requires one input and one tool", i)
		}
	case ActionIntersection:
		if len(s.Inputs) < 1 {
			return fmt.Errorf("step %d: intersection requires at least one input", i)
		}
	case ActionFragments:
		if len(s.Inputs) < 1 {
			return fmt.Errorf("step %d: fragments requires at least one input", i)
		}
	}
	return nil
}
