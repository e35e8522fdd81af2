// This file implements JSONL loading at Attach and the shared insert path.
package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/mirror/pkg/types"
)

// loadSnapshots reads the snapshots file of dataDir into db. Loading is
// transactional: either every readable snapshot is loaded or none is.
// Malformed lines and snapshots that violate constraints are skipped.
func loadSnapshots(db *sql.DB, dataDir string) (int, error) {
	records, err := readJSONL(filepath.Join(dataDir, snapshotsFile))
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := 0
	for _, rec := range records {
		var snap snapshotJSON
		if err := json.Unmarshal(rec, &snap); err != nil || snap.SnapshotID == "" {
			continue
		}
		if err := insertSnapshot(tx, snap); err != nil {
			continue
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// insertSnapshot writes snap and all its type rows. A savepoint keeps a
// failing snapshot from leaving partial rows behind.
func insertSnapshot(tx *sql.Tx, snap snapshotJSON) (err error) {
	if _, err := tx.Exec("SAVEPOINT snapshot"); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	defer func() {
		if err != nil {
			_, _ = tx.Exec("ROLLBACK TO snapshot")
		}
		_, _ = tx.Exec("RELEASE snapshot")
	}()

	if _, err = tx.Exec(
		"INSERT INTO snapshots (snapshot_id, label, type_count, created_at) VALUES (?, ?, ?, ?)",
		snap.SnapshotID, snap.Label, len(snap.Types), snap.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snap.SnapshotID, err)
	}

	for i, t := range snap.Types {
		if err = insertType(tx, snap.SnapshotID, i, t); err != nil {
			return err
		}
	}
	return nil
}

func insertType(tx *sql.Tx, snapshotID string, ordinal int, t types.TypeRecord) error {
	if _, err := tx.Exec(
		"INSERT INTO types (snapshot_id, name, go_type, factory, ordinal) VALUES (?, ?, ?, ?, ?)",
		snapshotID, t.Name, t.GoType, t.Factory, ordinal,
	); err != nil {
		return fmt.Errorf("insert type %s: %w", t.Name, err)
	}
	for i, b := range t.Bases {
		if _, err := tx.Exec(
			"INSERT INTO bases (snapshot_id, type_name, base_name, ordinal) VALUES (?, ?, ?, ?)",
			snapshotID, t.Name, b, i,
		); err != nil {
			return fmt.Errorf("insert base %s of %s: %w", b, t.Name, err)
		}
	}
	for i, c := range t.Conversions {
		if _, err := tx.Exec(
			"INSERT INTO conversions (snapshot_id, type_name, target_name, ordinal) VALUES (?, ?, ?, ?)",
			snapshotID, t.Name, c, i,
		); err != nil {
			return fmt.Errorf("insert conversion %s to %s: %w", t.Name, c, err)
		}
	}
	for i, p := range t.Properties {
		if _, err := tx.Exec(
			"INSERT INTO properties (snapshot_id, type_name, name, value_type, readable, writable, ordinal) VALUES (?, ?, ?, ?, ?, ?, ?)",
			snapshotID, t.Name, p.Name, p.Type, p.Readable, p.Writable, i,
		); err != nil {
			return fmt.Errorf("insert property %s of %s: %w", p.Name, t.Name, err)
		}
	}
	return nil
}
