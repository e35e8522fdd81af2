// Package types defines the errors, catalog records, and configuration shared
// by the mirror reflection engine, its façade, and the catalog backend.
// Implements: engine error taxonomy (incompatible access, incompatible
// assignment, constant mutation, property lookup, related-type checks);
//
//	catalog snapshot records and the Catalog interface.
package types
