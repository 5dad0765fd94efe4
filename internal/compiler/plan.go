package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/meshforge/csgkit/internal/ir"
)

// CompilePlan parses a CUE value into an ir.Plan.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The CUE value should be the plan struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`plan: { name: "demo", steps: [...] }`)
//	p, err := CompilePlan(v.LookupPath(cue.ParsePath("plan")))
func CompilePlan(v cue.Value) (*ir.Plan, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	plan := &ir.Plan{}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "plan name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	plan.Name = name

	stepsVal := v.LookupPath(cue.ParsePath("steps"))
	if !stepsVal.Exists() {
		return nil, &CompileError{
			Field:   "steps",
			Message: "at least one step is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := stepsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		step, err := parseStep(iter.Value())
		if err != nil {
			return nil, err
		}
		plan.Steps = append(plan.Steps, step)
	}
	if len(plan.Steps) == 0 {
		return nil, &CompileError{
			Field:   "steps",
			Message: "at least one step is required",
			Pos:     stepsVal.Pos(),
		}
	}

	if err := plan.Validate(); err != nil {
		return nil, &CompileError{
			Field:   "steps",
			Message: err.Error(),
			Pos:     stepsVal.Pos(),
		}
	}
	return plan, nil
}

// parseStep discriminates a step by which of its marker fields is
// present: add, boolean, synchronize, flush.
func parseStep(v cue.Value) (ir.Step, error) {
	if addVal := v.LookupPath(cue.ParsePath("add")); addVal.Exists() {
		return parseAddStep(v, addVal)
	}
	if boolVal := v.LookupPath(cue.ParsePath("boolean")); boolVal.Exists() {
		return parseBooleanStep(v, boolVal)
	}
	if v.LookupPath(cue.ParsePath("synchronize")).Exists() {
		return ir.Step{Kind: ir.StepSynchronize}, nil
	}
	if v.LookupPath(cue.ParsePath("flush")).Exists() {
		return ir.Step{Kind: ir.StepFlush}, nil
	}
	return ir.Step{}, &CompileError{
		Field:   "steps",
		Message: "step must have one of: add, boolean, synchronize, flush",
		Pos:     v.Pos(),
	}
}

func parseAddStep(v, addVal cue.Value) (ir.Step, error) {
	step := ir.Step{Kind: ir.StepAdd}

	label, err := addVal.String()
	if err != nil {
		return step, formatCUEError(err)
	}
	step.Label = label

	shapeVal := v.LookupPath(cue.ParsePath("shape"))
	if !shapeVal.Exists() {
		return step, &CompileError{
			Field:   fmt.Sprintf("steps.%s.shape", label),
			Message: "add step requires a shape",
			Pos:     v.Pos(),
		}
	}
	shape, err := shapeVal.String()
	if err != nil {
		return step, formatCUEError(err)
	}
	step.Shape = ir.PrimitiveKind(shape)

	params, err := parseFloats(v.LookupPath(cue.ParsePath("params")))
	if err != nil {
		return step, err
	}
	if params == nil {
		return step, &CompileError{
			Field:   fmt.Sprintf("steps.%s.params", label),
			Message: "add step requires params",
			Pos:     v.Pos(),
		}
	}
	step.Params = params

	sizeVal := v.LookupPath(cue.ParsePath("mesh_size"))
	if sizeVal.Exists() {
		size, err := sizeVal.Float64()
		if err != nil {
			return step, formatCUEError(err)
		}
		step.MeshSize = &size
	}
	return step, nil
}

func parseBooleanStep(v, boolVal cue.Value) (ir.Step, error) {
	step := ir.Step{Kind: ir.StepBoolean}

	label, err := boolVal.String()
	if err != nil {
		return step, formatCUEError(err)
	}
	step.Label = label

	actionVal := v.LookupPath(cue.ParsePath("action"))
	if !actionVal.Exists() {
		return step, &CompileError{
			Field:   fmt.Sprintf("steps.%s.action", label),
			Message: "boolean step requires an action",
			Pos:     v.Pos(),
		}
	}
	action, err := actionVal.String()
	if err != nil {
		return step, formatCUEError(err)
	}
	step.Action = action

	step.Inputs, err = parseStrings(v.LookupPath(cue.ParsePath("inputs")))
	if err != nil {
		return step, err
	}
	step.Tools, err = parseStrings(v.LookupPath(cue.ParsePath("tools")))
	if err != nil {
		return step, err
	}

	step.KeepInput, err = parseBool(v.LookupPath(cue.ParsePath("keep_input")))
	if err != nil {
		return step, err
	}
	step.KeepTool, err = parseBool(v.LookupPath(cue.ParsePath("keep_tool")))
	if err != nil {
		return step, err
	}
	return step, nil
}

func parseFloats(v cue.Value) ([]float64, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	out := []float64{}
	for iter.Next() {
		f, err := iter.Value().Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, f)
	}
	return out, nil
}

func parseStrings(v cue.Value) ([]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseBool(v cue.Value) (bool, error) {
	if !v.Exists() {
		return false, nil
	}
	b, err := v.Bool()
	if err != nil {
		return false, formatCUEError(err)
	}
	return b, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
