package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/mirror/pkg/types"
)

// dbFile is the SQLite database inside DataDir. It is a query index over
// snapshots.jsonl and is recreated on every Attach.
const dbFile = "catalog.db"

// Backend implements types.Catalog using SQLite as the query engine and a
// JSONL file as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	now      func() time.Time
}

// NewBackend creates a new catalog backend. The backend is not attached;
// call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Attach opens the catalog described by config, creating DataDir if needed
// and loading stored snapshots. Returns ErrAlreadyAttached if already
// attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}
	if _, err := loadSnapshots(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load snapshots: %w", err)
	}

	config.DataDir = dataDir
	b.db = db
	b.config = config
	b.attached = true
	return nil
}

func createSchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// Detach closes the database. Detach is idempotent; after it every other
// operation returns ErrCatalogDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// Save stores records as a new snapshot and returns its ID. The snapshot is
// written to the JSONL file first, then indexed in SQLite.
func (b *Backend) Save(label string, records []types.TypeRecord) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrCatalogDetached
	}

	snap := snapshotJSON{
		SnapshotID: generateUUID(),
		Label:      label,
		CreatedAt:  b.now().UTC().Format(time.RFC3339Nano),
		Types:      records,
	}
	if err := appendSnapshotJSONL(b.config.DataDir, snap); err != nil {
		return "", fmt.Errorf("persist snapshot: %w", err)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()
	if err := insertSnapshot(tx, snap); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save: %w", err)
	}
	return snap.SnapshotID, nil
}

// Snapshots lists stored snapshots, most recent first.
func (b *Backend) Snapshots() ([]types.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}

	rows, err := b.db.Query(
		"SELECT snapshot_id, label, type_count, created_at FROM snapshots ORDER BY created_at DESC, snapshot_id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []types.Snapshot
	for rows.Next() {
		var s types.Snapshot
		var created string
		if err := rows.Scan(&s.SnapshotID, &s.Label, &s.TypeCount, &created); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Load returns the records of the snapshot id in the order they were saved.
func (b *Backend) Load(id string) ([]types.TypeRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, types.ErrInvalidID
	}

	var count int
	err := b.db.QueryRow("SELECT type_count FROM snapshots WHERE snapshot_id = ?", id).Scan(&count)
	if err == sql.ErrNoRows {
		return nil, types.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot %s: %w", id, err)
	}

	records, err := b.loadTypes(id, count)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if err := b.loadEdges(id, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (b *Backend) loadTypes(id string, count int) ([]types.TypeRecord, error) {
	rows, err := b.db.Query("SELECT name, go_type, factory FROM types WHERE snapshot_id = ? ORDER BY ordinal", id)
	if err != nil {
		return nil, fmt.Errorf("query types: %w", err)
	}
	defer rows.Close()

	records := make([]types.TypeRecord, 0, count)
	for rows.Next() {
		var r types.TypeRecord
		if err := rows.Scan(&r.Name, &r.GoType, &r.Factory); err != nil {
			return nil, fmt.Errorf("scan type: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (b *Backend) loadEdges(id string, r *types.TypeRecord) error {
	var err error
	if r.Bases, err = b.queryNames("SELECT base_name FROM bases WHERE snapshot_id = ? AND type_name = ? ORDER BY ordinal", id, r.Name); err != nil {
		return err
	}
	if r.Conversions, err = b.queryNames("SELECT target_name FROM conversions WHERE snapshot_id = ? AND type_name = ? ORDER BY ordinal", id, r.Name); err != nil {
		return err
	}

	rows, err := b.db.Query(
		"SELECT name, value_type, readable, writable FROM properties WHERE snapshot_id = ? AND type_name = ? ORDER BY ordinal",
		id, r.Name,
	)
	if err != nil {
		return fmt.Errorf("query properties of %s: %w", r.Name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var p types.PropertyRecord
		if err := rows.Scan(&p.Name, &p.Type, &p.Readable, &p.Writable); err != nil {
			return fmt.Errorf("scan property: %w", err)
		}
		r.Properties = append(r.Properties, p)
	}
	return rows.Err()
}

func (b *Backend) queryNames(query, id, typeName string) ([]string, error) {
	rows, err := b.db.Query(query, id, typeName)
	if err != nil {
		return nil, fmt.Errorf("query edges of %s: %w", typeName, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// generateUUID generates a new UUID v7 for snapshot IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

var _ types.Catalog = (*Backend)(nil)
