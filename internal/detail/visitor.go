package detail

import "unsafe"

// Visitor receives the address of an accessed value. constant reports that
// the value must not be modified; temporary reports that it lives in a
// transient produced for this visit (a by-value getter result) and may be
// moved from. The returned pointer is handed back to the Accept caller.
type Visitor interface {
	Visit(value unsafe.Pointer, constant, temporary bool) unsafe.Pointer
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(value unsafe.Pointer, constant, temporary bool) unsafe.Pointer

// Visit calls f.
func (f VisitorFunc) Visit(value unsafe.Pointer, constant, temporary bool) unsafe.Pointer {
	return f(value, constant, temporary)
}

// directVisitor returns the visited value itself, subject to the requested
// access. A temporary is moved into the buffer when one is available.
type directVisitor struct {
	buffer   *Buffer
	mutable  bool
	constant bool
}

func (v *directVisitor) Visit(value unsafe.Pointer, constant, temporary bool) unsafe.Pointer {
	v.constant = constant
	if v.mutable && constant {
		return nil
	}
	if temporary {
		if v.buffer != nil {
			return v.buffer.ConstructMove(value)
		}
		if v.mutable {
			return nil
		}
	}
	return value
}

// conversionVisitor searches the base and conversion edges of source for a
// way to present the visited value as target. constBlocked is set when a
// mutable search failed only because the visited value is constant.
type conversionVisitor struct {
	source       *TypeInfo
	target       *TypeInfo
	buffer       *Buffer
	mutable      bool
	constBlocked bool
}

func (v *conversionVisitor) Visit(value unsafe.Pointer, constant, temporary bool) unsafe.Pointer {
	referable := !temporary
	if v.mutable {
		referable = referable && !constant
	}
	p := v.convert(v.source, value, referable)
	if p == nil && v.mutable && constant && !temporary {
		// Bufferless, so the read-only search constructs nothing.
		ro := conversionVisitor{source: v.source, target: v.target}
		v.constBlocked = ro.convert(v.source, value, true) != nil
	}
	return p
}

// convert returns value presented as the target type, or nil. Direct
// conversions need a buffer; a base equal to the target is returned by
// address when referable and copied into the buffer otherwise.
func (v *conversionVisitor) convert(from *TypeInfo, value unsafe.Pointer, referable bool) unsafe.Pointer {
	if v.buffer != nil {
		for _, c := range from.Conversions() {
			if c.typeInfo == v.target {
				return c.get(value, v.buffer)
			}
		}
	}

	for _, b := range from.Bases() {
		upcast := b.upcast(value)
		if b.typeInfo == v.target {
			if referable {
				return upcast
			}
			if v.buffer != nil {
				return v.buffer.ConstructCopy(upcast)
			}
		}
		if converted := v.convert(b.typeInfo, upcast, referable); converted != nil {
			return converted
		}
	}
	return nil
}

// assignVisitor assigns the visited value to another accessor's storage.
type assignVisitor struct {
	target  Accessor
	storage *Storage
	source  *TypeInfo
	consume bool
	visited bool
	err     error
}

func (v *assignVisitor) Visit(value unsafe.Pointer, constant, temporary bool) unsafe.Pointer {
	v.visited = true
	move := !constant && (temporary || v.consume)
	v.err = assign(v.target, v.storage, v.source, value, move)
	return nil
}
