package detail

// Value semantics hooks. Go assignment copies bits; types that need more
// (counted resources, deep copies, handles) implement these on *T and the
// engine calls them wherever a value is copied, moved, assigned, or dropped.

// Copier is implemented by *T when copying a T needs more than assignment.
type Copier[T any] interface {
	Copy() T
}

// Mover is implemented by *T when a T can hand its contents to a new value,
// leaving the receiver valid but unspecified.
type Mover[T any] interface {
	Move() T
}

// CopyAssigner is implemented by *T to customize copy-assignment.
type CopyAssigner[T any] interface {
	CopyAssign(src *T)
}

// MoveAssigner is implemented by *T to customize move-assignment.
type MoveAssigner[T any] interface {
	MoveAssign(src *T)
}

// Destroyer is implemented by *T to release resources when an owned value
// is destructed.
type Destroyer interface {
	Destroy()
}

// CopyOf returns a copy of *src.
func CopyOf[T any](src *T) T {
	if c, ok := any(src).(Copier[T]); ok {
		return c.Copy()
	}
	return *src
}

// MoveOf returns *src moved into a new value. Types without a Mover are
// copied.
func MoveOf[T any](src *T) T {
	if m, ok := any(src).(Mover[T]); ok {
		return m.Move()
	}
	return CopyOf(src)
}

// AssignCopy copy-assigns *src to *dst.
func AssignCopy[T any](dst, src *T) {
	if a, ok := any(dst).(CopyAssigner[T]); ok {
		a.CopyAssign(src)
		return
	}
	*dst = CopyOf(src)
}

// AssignMove move-assigns *src to *dst. Types without a MoveAssigner fall
// back to their copy-assignment.
func AssignMove[T any](dst, src *T) {
	if a, ok := any(dst).(MoveAssigner[T]); ok {
		a.MoveAssign(src)
		return
	}
	if a, ok := any(dst).(CopyAssigner[T]); ok {
		a.CopyAssign(src)
		return
	}
	*dst = MoveOf(src)
}

func destroy[T any](p *T) {
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
}
