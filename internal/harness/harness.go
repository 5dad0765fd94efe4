package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/meshforge/csgkit/internal/ir"
	"github.com/meshforge/csgkit/internal/testutil"
	"github.com/meshforge/csgkit/occ"
)

// Result holds everything a scenario run produced.
type Result struct {
	// Calls is the complete kernel command stream, one formatted line
	// per call, in issue order. Includes the final session release.
	Calls []string

	// Bound maps plan labels to the entities they ended up bound to.
	Bound map[string]ir.Entity
}

// Run executes a scenario against a fresh facade backed by the
// in-memory fake kernel and returns the recorded command stream.
func Run(scenario *Scenario) (*Result, error) {
	plan, err := scenario.Plan()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	fk := testutil.NewFakeKernel()
	opts := []occ.Option{
		occ.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	if scenario.SessionToken != "" {
		opts = append(opts, occ.WithSessionToken(scenario.SessionToken))
	}
	if scenario.CharacteristicLengthMin != nil {
		opts = append(opts, occ.WithCharacteristicLengthMin(*scenario.CharacteristicLengthMin))
	}
	if scenario.CharacteristicLengthMax != nil {
		opts = append(opts, occ.WithCharacteristicLengthMax(*scenario.CharacteristicLengthMax))
	}

	g, err := occ.New(fk, opts...)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	bound, applyErr := g.Apply(plan)
	if closeErr := g.Close(); closeErr != nil && applyErr == nil {
		applyErr = closeErr
	}
	if applyErr != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, applyErr)
	}

	return &Result{Calls: fk.Calls, Bound: bound}, nil
}
