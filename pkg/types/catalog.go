package types

import (
	"errors"
	"time"
)

// Catalog stores snapshots of the registered type graph.
// Callers attach to a backend, save or read snapshots, and detach when done.
type Catalog interface {
	// Attach connects the Catalog to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, all other operations return ErrCatalogDetached.
	Detach() error

	// Save stores records as a new snapshot and returns its ID (UUID v7).
	Save(label string, records []TypeRecord) (string, error)

	// Snapshots lists stored snapshots, most recent first.
	Snapshots() ([]Snapshot, error)

	// Load returns the records of the snapshot with the given ID.
	// Returns ErrSnapshotNotFound if no snapshot exists with that ID.
	Load(id string) ([]TypeRecord, error)
}

// Catalog lifecycle errors.
var (
	ErrCatalogDetached  = errors.New("catalog is detached")
	ErrAlreadyAttached  = errors.New("catalog is already attached")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidID        = errors.New("invalid snapshot ID")
)

// Snapshot describes one stored export of the type graph.
type Snapshot struct {
	SnapshotID string    `json:"snapshot_id" yaml:"snapshot_id"`
	Label      string    `json:"label" yaml:"label"`
	TypeCount  int       `json:"type_count" yaml:"type_count"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// TypeRecord is the catalog form of one registered type.
type TypeRecord struct {
	Name        string           `json:"name" yaml:"name"`
	GoType      string           `json:"go_type" yaml:"go_type"`
	Bases       []string         `json:"bases,omitempty" yaml:"bases,omitempty"`
	Conversions []string         `json:"conversions,omitempty" yaml:"conversions,omitempty"`
	Properties  []PropertyRecord `json:"properties,omitempty" yaml:"properties,omitempty"`
	Factory     bool             `json:"factory" yaml:"factory"`
}

// PropertyRecord is the catalog form of one registered property.
type PropertyRecord struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Readable bool   `json:"readable" yaml:"readable"`
	Writable bool   `json:"writable" yaml:"writable"`
}
