package store

import (
	"context"
	"fmt"

	"github.com/meshforge/csgkit/internal/ir"
)

// CommandRecord is one journaled kernel command.
type CommandRecord struct {
	Session string
	Seq     int64
	Kind    string
	Payload string

	// ID is the content-addressed hash of the other fields. Filled in
	// by Append; populated on records returned by reads.
	ID string
}

// Append writes one command record.
//
// The record's ID is computed here from its canonical encoding; callers
// leave it empty. Uses ON CONFLICT DO NOTHING on the id for idempotency,
// so re-journaling a replayed session keeps exactly one row per logical
// command.
func (j *Journal) Append(ctx context.Context, rec CommandRecord) error {
	id, err := ir.CommandID(rec.Session, rec.Seq, rec.Kind, rec.Payload)
	if err != nil {
		return fmt.Errorf("append command: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO commands (session, seq, kind, payload, id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.Session,
		rec.Seq,
		rec.Kind,
		rec.Payload,
		id,
	)
	if err != nil {
		return fmt.Errorf("append command: %w", err)
	}

	return nil
}
