package store

import (
	"context"
	"fmt"
)

// Commands returns every record for a session in issue order.
// Ordering is deterministic: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) when the session has no records.
func (j *Journal) Commands(ctx context.Context, session string) ([]CommandRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT session, seq, kind, payload, id
		FROM commands
		WHERE session = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}
	defer rows.Close()

	records := []CommandRecord{}
	for rows.Next() {
		var rec CommandRecord
		if err := rows.Scan(&rec.Session, &rec.Seq, &rec.Kind, &rec.Payload, &rec.ID); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commands: %w", err)
	}

	return records, nil
}

// CommandsByKind returns a session's records of one kind, in issue
// order.
func (j *Journal) CommandsByKind(ctx context.Context, session, kind string) ([]CommandRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT session, seq, kind, payload, id
		FROM commands
		WHERE session = ? AND kind = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, session, kind)
	if err != nil {
		return nil, fmt.Errorf("query commands by kind: %w", err)
	}
	defer rows.Close()

	records := []CommandRecord{}
	for rows.Next() {
		var rec CommandRecord
		if err := rows.Scan(&rec.Session, &rec.Seq, &rec.Kind, &rec.Payload, &rec.ID); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commands: %w", err)
	}

	return records, nil
}
