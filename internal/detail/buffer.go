package detail

import "unsafe"

// Buffer is a scratch cell of a fixed type into which conversions construct
// their result. It is constructed at most once.
type Buffer struct {
	storage  Storage
	typeInfo *TypeInfo
}

// NewBuffer returns an empty buffer for values of type T.
func NewBuffer[T any]() *Buffer {
	return &Buffer{typeInfo: TypeInfoOf[T]()}
}

// NewBufferOf returns an empty buffer for values of type t.
func NewBufferOf(t *TypeInfo) *Buffer {
	return &Buffer{typeInfo: t}
}

// Fill constructs v into b, which must be an empty buffer of type T.
func Fill[T any](b *Buffer, v T) *T {
	if b.typeInfo != TypeInfoOf[T]() {
		panic("detail: buffer of " + b.typeInfo.Name() + " filled with " + TypeInfoOf[T]().Name())
	}
	return Construct(&b.storage, v)
}

// ConstructCopy constructs a copy of the value at p, which must be of the
// buffer's type.
func (b *Buffer) ConstructCopy(p unsafe.Pointer) unsafe.Pointer {
	b.typeInfo.ops.copyInto(&b.storage, p)
	return b.storage.address()
}

// ConstructMove constructs the buffer by moving the value at p, which must
// be of the buffer's type.
func (b *Buffer) ConstructMove(p unsafe.Pointer) unsafe.Pointer {
	b.typeInfo.ops.moveInto(&b.storage, p)
	return b.storage.address()
}

// TypeInfo returns the buffer's type.
func (b *Buffer) TypeInfo() *TypeInfo {
	return b.typeInfo
}

// Constructed reports whether a value has been constructed into b.
func (b *Buffer) Constructed() bool {
	return b.storage.constructed
}

// Value returns the address of the constructed value, or nil.
func (b *Buffer) Value() unsafe.Pointer {
	return b.storage.address()
}

// BufferValue returns the constructed value of a buffer of type T.
func BufferValue[T any](b *Buffer) *T {
	return Get[T](&b.storage)
}
