package detail

import "unsafe"

// Storage is an untyped cell holding at most one value. It records no type;
// the Accessor that constructed the value is the only thing that knows it.
//
// Construct (or Reference) and Destruct must alternate strictly. Breaking
// the pairing is a programming error and panics.
type Storage struct {
	ptr         unsafe.Pointer
	constructed bool
}

// Construct allocates a new T holding v in s and returns its address.
// Passing v transfers it into the cell; no copy hook runs.
func Construct[T any](s *Storage, v T) *T {
	s.begin()
	p := new(T)
	*p = v
	s.ptr = unsafe.Pointer(p)
	return p
}

// Reference binds s to the value at p without taking ownership of it.
func Reference[T any](s *Storage, p *T) *T {
	s.begin()
	s.ptr = unsafe.Pointer(p)
	return p
}

// Get returns the address of the T held by s.
// T must be the type s was constructed with.
func Get[T any](s *Storage) *T {
	if !s.constructed {
		panic("detail: access to empty storage")
	}
	return (*T)(s.ptr)
}

// Destruct empties s. Running the value's destroy hook is the job of the
// accessor that owns it.
func (s *Storage) Destruct() {
	if !s.constructed {
		panic("detail: destruct of empty storage")
	}
	s.ptr = nil
	s.constructed = false
}

// Constructed reports whether s currently holds a value.
func (s *Storage) Constructed() bool {
	return s.constructed
}

func (s *Storage) address() unsafe.Pointer {
	return s.ptr
}

func (s *Storage) begin() {
	if s.constructed {
		panic("detail: storage already constructed")
	}
	s.constructed = true
}
