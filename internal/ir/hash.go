package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for content-addressed journal records.
// Version suffix enables future algorithm migration.
const DomainCommand = "csgkit/command/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CommandID computes the content-addressed identity of one journal
// record. The same logical command always hashes to the same id, which
// lets the journal deduplicate replayed writes.
func CommandID(session string, seq int64, kind, payload string) (string, error) {
	obj := map[string]any{
		"session": session,
		"seq":     seq,
		"kind":    kind,
		"payload": payload,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("CommandID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainCommand, canonical), nil
}
