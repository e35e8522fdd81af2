// Package catalog exposes the snapshot catalog backend while keeping its
// SQLite and JSONL implementation internal.
//
// Implements: snapshot export, listing and loading for the mirror CLI.
package catalog

import (
	"github.com/mesh-intelligence/mirror/internal/catalog"
	"github.com/mesh-intelligence/mirror/pkg/types"
)

// NewBackend creates a catalog backend. It is not attached; call Attach
// with a Config first.
//
// Example:
//
//	backend := catalog.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".mirror-db",
//	})
//	defer backend.Detach()
func NewBackend() types.Catalog {
	return catalog.NewBackend()
}
