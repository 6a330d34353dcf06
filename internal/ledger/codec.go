package ledger

import (
	"encoding/json"
	"fmt"
	"io"
)

// Load decodes a persisted ledger. Unreadable or malformed data yields an
// empty ledger rather than an error, so a corrupt store never locks the user out.
func Load(r io.Reader) []Entry {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil || entries == nil {
		return []Entry{}
	}
	return entries
}

// Save writes entries as the single JSON array kept under StorageKey.
func Save(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	return nil
}
