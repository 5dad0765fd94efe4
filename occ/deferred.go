package occ

import (
	"fmt"

	"github.com/meshforge/csgkit/internal/ir"
)

// Deferred mesh annotations. Each call validates that its entities are
// still alive and resolvable to kernel handles, then appends one entry
// to the matching FIFO queue. The kernel sees nothing until
// FlushDeferred.

// checkResolvable rejects entities that carry no kernel handles.
// Script-mode results are addressed by name only, so a named group can
// never receive a deferred annotation.
func checkResolvable(op string, entities ...ir.Entity) error {
	for _, e := range entities {
		if len(e.DimTags()) == 0 {
			return fmt.Errorf("%s: entity %q has no kernel handles", op, e.ID())
		}
	}
	return nil
}

// SetMeshSize queues a target mesh size on an entity.
func (g *Geometry) SetMeshSize(e ir.Entity, size float64) error {
	if err := ir.CheckAlive("set_mesh_size", e); err != nil {
		return err
	}
	if err := checkResolvable("set_mesh_size", e); err != nil {
		return err
	}
	g.deferred.AppendSize(ir.SizeEntry{Entity: e, Size: size})
	return nil
}

// SetTransfiniteCurve queues transfinite interpolation on a curve with
// numNodes subdivisions and the given progression coefficient.
func (g *Geometry) SetTransfiniteCurve(curve ir.Entity, numNodes int, coeff float64) error {
	if err := ir.CheckAlive("set_transfinite_curve", curve); err != nil {
		return err
	}
	if err := checkResolvable("set_transfinite_curve", curve); err != nil {
		return err
	}
	g.deferred.AppendTransfiniteCurve(ir.TransfiniteCurveEntry{Curve: curve, NumNodes: numNodes, Coeff: coeff})
	return nil
}

// SetTransfiniteSurface queues transfinite interpolation on a surface.
func (g *Geometry) SetTransfiniteSurface(surface ir.Entity) error {
	if err := ir.CheckAlive("set_transfinite_surface", surface); err != nil {
		return err
	}
	if err := checkResolvable("set_transfinite_surface", surface); err != nil {
		return err
	}
	g.deferred.AppendTransfiniteSurface(ir.TransfiniteSurfaceEntry{Surface: surface})
	return nil
}

// SetRecombine queues recombination of a surface's mesh.
func (g *Geometry) SetRecombine(surface ir.Entity) error {
	if err := ir.CheckAlive("set_recombine", surface); err != nil {
		return err
	}
	if err := checkResolvable("set_recombine", surface); err != nil {
		return err
	}
	g.deferred.AppendRecombine(ir.RecombineEntry{Surface: surface})
	return nil
}

// AddCompound queues grouping of the entities into one meshing
// compound.
func (g *Geometry) AddCompound(entities []ir.Entity) error {
	if err := ir.CheckAlive("add_compound", entities...); err != nil {
		return err
	}
	if err := checkResolvable("add_compound", entities...); err != nil {
		return err
	}
	g.deferred.AppendCompound(ir.CompoundEntry{Entities: entities})
	return nil
}

// Embed queues embedding of an entity into a target entity's mesh.
func (g *Geometry) Embed(e, target ir.Entity) error {
	if err := ir.CheckAlive("embed", e, target); err != nil {
		return err
	}
	if err := checkResolvable("embed", e, target); err != nil {
		return err
	}
	g.deferred.AppendEmbed(ir.EmbedEntry{Entity: e, Target: target})
	return nil
}
