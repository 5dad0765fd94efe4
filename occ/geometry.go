// Package occ is the public surface of csgkit: a declarative builder
// for constructive-solid-geometry models lowered, on demand, into an
// ordered command stream for an external OpenCASCADE-style kernel.
//
// A Geometry owns one kernel session. Primitives are defined
// immediately but only committed to the kernel's model graph by
// Synchronize; mesh annotations are queued and applied by
// FlushDeferred after a synchronize; boolean operations validate
// dimensional legality before touching the kernel and consume their
// operands according to delete semantics.
//
// Usage:
//
//	g, err := occ.New(k, occ.WithCharacteristicLengthMax(0.1))
//	if err != nil { ... }
//	defer g.Close()
//
//	box, _ := g.AddBox(0, 0, 0, 1, 1, 1, occ.MeshSize(0.05))
//	ball, _ := g.AddBall(0.5, 0.5, 0.5, 0.4)
//	if err := g.Synchronize(); err != nil { ... }
//	cut, err := g.BooleanDifference(box, ball)
//
// All operations are synchronous and single-threaded: mutations happen
// strictly in invocation order, and a Geometry must only be touched
// from one logical thread of control at a time.
package occ

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/meshforge/csgkit/internal/engine"
	"github.com/meshforge/csgkit/internal/ir"
	"github.com/meshforge/csgkit/internal/kernel"
	"github.com/meshforge/csgkit/internal/store"
)

// Kernel option names for the characteristic mesh lengths.
const (
	optCharLengthMin = "Mesh.CharacteristicLengthMin"
	optCharLengthMax = "Mesh.CharacteristicLengthMax"
)

// Geometry is the CSG model facade. It owns the kernel bridge, the
// boolean engine and the deferred-action queues.
type Geometry struct {
	bridge   *kernel.Bridge
	engine   *engine.Engine
	deferred *ir.Deferred
	logger   *slog.Logger

	journal     *store.Journal
	ownsJournal bool

	closeOnce sync.Once
	closeErr  error
}

type config struct {
	clMin, clMax *float64
	journal      *store.Journal
	journalPath  string
	sessionToken string
	logger       *slog.Logger
}

// Option configures a Geometry at construction.
type Option func(*config)

// WithCharacteristicLengthMin pushes the kernel's minimum mesh length
// option at session start.
func WithCharacteristicLengthMin(v float64) Option {
	return func(c *config) { c.clMin = &v }
}

// WithCharacteristicLengthMax pushes the kernel's maximum mesh length
// option at session start.
func WithCharacteristicLengthMax(v float64) Option {
	return func(c *config) { c.clMax = &v }
}

// WithJournal attaches an already-open command journal. The caller
// keeps ownership and closes it.
func WithJournal(j *store.Journal) Option {
	return func(c *config) { c.journal = j }
}

// WithJournalPath opens a command journal at path, owned by the
// Geometry and closed with it. ":memory:" gives an ephemeral journal.
func WithJournalPath(path string) Option {
	return func(c *config) { c.journalPath = path }
}

// WithSessionToken overrides the generated session token for
// deterministic journals in tests and scenario runs.
func WithSessionToken(token string) Option {
	return func(c *config) { c.sessionToken = token }
}

// WithLogger sets the model logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New acquires a kernel session and returns the model facade.
//
// The session is released by Close; if construction itself fails after
// acquisition, the session is released before returning. Characteristic
// length options, when set, are pushed to the kernel before anything
// else.
func New(k kernel.Kernel, opts ...Option) (*Geometry, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	journal := cfg.journal
	ownsJournal := false
	if journal == nil && cfg.journalPath != "" {
		var err error
		journal, err = store.Open(cfg.journalPath)
		if err != nil {
			return nil, err
		}
		ownsJournal = true
	}

	bridgeOpts := []kernel.BridgeOption{
		kernel.WithLogger(cfg.logger),
		kernel.WithJournal(journal),
	}
	if cfg.sessionToken != "" {
		bridgeOpts = append(bridgeOpts, kernel.WithSessionToken(cfg.sessionToken))
	}
	bridge := kernel.NewBridge(k, bridgeOpts...)

	g := &Geometry{
		bridge:      bridge,
		engine:      engine.New(bridge, engine.WithLogger(cfg.logger)),
		deferred:    ir.NewDeferred(),
		logger:      cfg.logger,
		journal:     journal,
		ownsJournal: ownsJournal,
	}

	if cfg.clMin != nil {
		if err := bridge.SetOption(optCharLengthMin, *cfg.clMin); err != nil {
			g.Close()
			return nil, err
		}
	}
	if cfg.clMax != nil {
		if err := bridge.SetOption(optCharLengthMax, *cfg.clMax); err != nil {
			g.Close()
			return nil, err
		}
	}

	g.logger.Info("geometry session opened", "session", bridge.Session())
	return g, nil
}

// Close releases the kernel session and, when owned, the journal.
// Idempotent: only the first call does the work, later calls return the
// same result.
func (g *Geometry) Close() error {
	g.closeOnce.Do(func() {
		errs := []error{g.bridge.Finalize()}
		if g.ownsJournal && g.journal != nil {
			errs = append(errs, g.journal.Close())
		}
		g.closeErr = errors.Join(errs...)
		g.logger.Info("geometry session closed", "session", g.bridge.Session())
	})
	return g.closeErr
}

// Session returns the session token stamped on journal records.
func (g *Geometry) Session() string {
	return g.bridge.Session()
}

// Journal returns the attached command journal, nil when recording is
// off.
func (g *Geometry) Journal() *store.Journal {
	return g.journal
}

// Synchronize commits every primitive definition issued since the
// previous synchronize into the kernel's queryable model graph. This is
// a required precondition for flushing deferred queues and for boolean
// operations to resolve entity handles; there is no implicit
// auto-synchronization.
func (g *Geometry) Synchronize() error {
	return g.bridge.Synchronize()
}

// FlushDeferred applies every queued mesh annotation, one kernel call
// per entry, clearing the queues. Requires a Synchronize after the last
// primitive definition and a live entity behind every entry; a
// NOT_SYNCHRONIZED or USE_AFTER_DELETE error leaves the queues
// untouched, so an entity consumed by a boolean between enqueue and
// flush never has its stale handle resubmitted.
func (g *Geometry) FlushDeferred() error {
	return g.bridge.FlushDeferred(g.deferred)
}

// PendingDeferred returns the number of queued mesh annotations.
func (g *Geometry) PendingDeferred() int {
	return g.deferred.Len()
}
