// Package catalog implements the SQLite snapshot store for registered types.
// Implements: Catalog interface (pkg/types); snapshot tables for types,
// bases, conversions and properties; JSONL persistence of snapshots.
package catalog

// Schema DDL for all tables.
const (
	createSnapshots = `CREATE TABLE snapshots (
    snapshot_id TEXT PRIMARY KEY,
    label TEXT NOT NULL,
    type_count INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	createTypes = `CREATE TABLE types (
    snapshot_id TEXT NOT NULL,
    name TEXT NOT NULL,
    go_type TEXT NOT NULL,
    factory INTEGER NOT NULL,
    ordinal INTEGER NOT NULL,
    PRIMARY KEY (snapshot_id, name),
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(snapshot_id) ON DELETE CASCADE
);`

	createBases = `CREATE TABLE bases (
    snapshot_id TEXT NOT NULL,
    type_name TEXT NOT NULL,
    base_name TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    PRIMARY KEY (snapshot_id, type_name, base_name),
    FOREIGN KEY (snapshot_id, type_name) REFERENCES types(snapshot_id, name) ON DELETE CASCADE
);`

	createConversions = `CREATE TABLE conversions (
    snapshot_id TEXT NOT NULL,
    type_name TEXT NOT NULL,
    target_name TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    PRIMARY KEY (snapshot_id, type_name, target_name),
    FOREIGN KEY (snapshot_id, type_name) REFERENCES types(snapshot_id, name) ON DELETE CASCADE
);`

	createProperties = `CREATE TABLE properties (
    snapshot_id TEXT NOT NULL,
    type_name TEXT NOT NULL,
    name TEXT NOT NULL,
    value_type TEXT NOT NULL,
    readable INTEGER NOT NULL,
    writable INTEGER NOT NULL,
    ordinal INTEGER NOT NULL,
    PRIMARY KEY (snapshot_id, type_name, name),
    FOREIGN KEY (snapshot_id, type_name) REFERENCES types(snapshot_id, name) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxSnapshotsCreated = `CREATE INDEX idx_snapshots_created ON snapshots(created_at);`
	idxBasesBase        = `CREATE INDEX idx_bases_base ON bases(snapshot_id, base_name);`
	idxConversionsTo    = `CREATE INDEX idx_conversions_target ON conversions(snapshot_id, target_name);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSnapshots,
	createTypes,
	createBases,
	createConversions,
	createProperties,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxSnapshotsCreated,
	idxBasesBase,
	idxConversionsTo,
}
