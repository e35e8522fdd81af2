// Package detail implements the type-erasure engine behind mirror.
//
// A Storage cell holds one value whose type is known only to the Accessor
// that constructed it. Accessors form a closed set (value, reference,
// constant reference, void, property) and are per-type singletons hanging
// off the type's TypeInfo. When a caller asks for a value as a type other
// than the stored one, the engine walks the registered Base and Conversion
// edges of the stored type, adjusting the pointer at each hop.
//
// Registration (names, bases, conversions, properties, factories) is
// append-only and guarded by a single registry lock; everything else is
// plain computation on the caller's goroutine.
package detail
