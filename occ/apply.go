package occ

import (
	"fmt"

	"github.com/meshforge/csgkit/internal/ir"
)

// Apply executes a declarative build plan against the model, in step
// order, and returns every labeled entity. The plan is validated
// structurally before the first step runs; dimensional legality is
// enforced per boolean step by the engine, exactly as for direct calls.
func (g *Geometry) Apply(plan *ir.Plan) (map[string]ir.Entity, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("apply plan %q: %w", plan.Name, err)
	}

	bound := make(map[string]ir.Entity)
	for i, step := range plan.Steps {
		switch step.Kind {
		case ir.StepAdd:
			var opts []PrimitiveOption
			if step.MeshSize != nil {
				opts = append(opts, MeshSize(*step.MeshSize))
			}
			p, err := g.addPrimitive(step.Shape, step.Params, opts)
			if err != nil {
				return nil, fmt.Errorf("apply step %d: %w", i, err)
			}
			bound[step.Label] = p

		case ir.StepBoolean:
			out, err := g.applyBoolean(step, bound)
			if err != nil {
				return nil, fmt.Errorf("apply step %d: %w", i, err)
			}
			bound[step.Label] = out

		case ir.StepSynchronize:
			if err := g.Synchronize(); err != nil {
				return nil, fmt.Errorf("apply step %d: %w", i, err)
			}

		case ir.StepFlush:
			if err := g.FlushDeferred(); err != nil {
				return nil, fmt.Errorf("apply step %d: %w", i, err)
			}
		}
	}
	return bound, nil
}

func (g *Geometry) applyBoolean(step ir.Step, bound map[string]ir.Entity) (ir.Entity, error) {
	inputs := resolveLabels(step.Inputs, bound)
	tools := resolveLabels(step.Tools, bound)

	switch step.Action {
	case ir.ActionUnion:
		return g.BooleanUnion(inputs)
	case ir.ActionDifference:
		return g.BooleanDifference(inputs[0], tools[0])
	case ir.ActionIntersection:
		return g.BooleanIntersection(inputs)
	case ir.ActionFragments:
		var opts []BooleanOption
		if step.KeepInput {
			opts = append(opts, KeepInput())
		}
		if step.KeepTool {
			opts = append(opts, KeepTool())
		}
		return g.BooleanFragments(inputs, tools, opts...)
	}
	return nil, fmt.Errorf("unknown boolean action %q", step.Action)
}

// resolveLabels maps bound labels to entities. Plan validation already
// guaranteed every label exists.
func resolveLabels(labels []string, bound map[string]ir.Entity) []ir.Entity {
	out := make([]ir.Entity, len(labels))
	for i, l := range labels {
		out[i] = bound[l]
	}
	return out
}
