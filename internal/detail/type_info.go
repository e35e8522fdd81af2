package detail

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/mesh-intelligence/mirror/pkg/types"
)

// TypeInfo is the process-wide descriptor of one Go type. Two values have
// the same type exactly when their *TypeInfo pointers are equal.
//
// A TypeInfo is created on first use by TypeInfoOf and lives for the rest of
// the process. Its base, conversion, and property lists only ever grow.
type TypeInfo struct {
	seq   uint64
	rtype reflect.Type

	// Guarded by registry.
	name        string
	bases       []Base
	conversions []Conversion
	properties  []*Property
	factory     func(*Storage) Accessor

	ops      valueOps
	value    Accessor
	ref      Accessor
	constRef Accessor
}

// valueOps constructs a value of the described type from an erased source.
type valueOps struct {
	copyInto func(dst *Storage, src unsafe.Pointer)
	moveInto func(dst *Storage, src unsafe.Pointer)
}

// registry guards creation of TypeInfo instances and every registration.
var registry = struct {
	sync.RWMutex
	seq    uint64
	byType map[reflect.Type]*TypeInfo
	byName map[string]*TypeInfo
}{
	byType: make(map[reflect.Type]*TypeInfo),
	byName: make(map[string]*TypeInfo),
}

// generation increases with every successful registration. Caches derived
// from the type graph compare it to detect staleness.
var generation atomic.Uint64

var voidInfo = func() *TypeInfo {
	t := &TypeInfo{name: "void"}
	t.value = &voidAccessor{qualifiers{typeInfo: t}}
	t.ref = t.value
	t.constRef = t.value
	return t
}()

// TypeInfoOf returns the TypeInfo singleton for T, creating it on first use.
func TypeInfoOf[T any]() *TypeInfo {
	rt := reflect.TypeFor[T]()

	registry.RLock()
	t, ok := registry.byType[rt]
	registry.RUnlock()
	if ok {
		return t
	}

	registry.Lock()
	defer registry.Unlock()
	if t, ok := registry.byType[rt]; ok {
		return t
	}
	registry.seq++
	t = newTypeInfo[T](rt, registry.seq)
	registry.byType[rt] = t
	return t
}

// VoidTypeInfo returns the TypeInfo describing the absence of a value.
func VoidTypeInfo() *TypeInfo {
	return voidInfo
}

func newTypeInfo[T any](rt reflect.Type, seq uint64) *TypeInfo {
	t := &TypeInfo{seq: seq, rtype: rt}
	t.ops = valueOps{
		copyInto: func(dst *Storage, src unsafe.Pointer) { Construct(dst, CopyOf((*T)(src))) },
		moveInto: func(dst *Storage, src unsafe.Pointer) { Construct(dst, MoveOf((*T)(src))) },
	}
	t.value = &valueAccessor[T]{qualifiers{typeInfo: t}}
	t.ref = &refAccessor[T]{qualifiers{typeInfo: t, reference: true}}
	t.constRef = &constRefAccessor[T]{qualifiers{typeInfo: t, constant: true, reference: true}}
	return t
}

// Lookup returns the type registered under name.
func Lookup(name string) (*TypeInfo, bool) {
	registry.RLock()
	defer registry.RUnlock()
	t, ok := registry.byName[name]
	return t, ok
}

// All returns every TypeInfo created so far, in creation order.
func All() []*TypeInfo {
	registry.RLock()
	all := make([]*TypeInfo, 0, len(registry.byType))
	for _, t := range registry.byType {
		all = append(all, t)
	}
	registry.RUnlock()

	slices.SortFunc(all, (*TypeInfo).Compare)
	return all
}

// Generation returns the current registration generation.
func Generation() uint64 {
	return generation.Load()
}

// Name returns the first name the type was registered under, or the Go type
// name when it was never named.
func (t *TypeInfo) Name() string {
	registry.RLock()
	defer registry.RUnlock()
	return t.nameLocked()
}

func (t *TypeInfo) nameLocked() string {
	if t.name != "" || t.rtype == nil {
		return t.name
	}
	return t.rtype.String()
}

// Registered reports whether anything was registered for the type.
func (t *TypeInfo) Registered() bool {
	registry.RLock()
	defer registry.RUnlock()
	return t.name != "" && t != voidInfo ||
		len(t.bases) > 0 || len(t.conversions) > 0 || len(t.properties) > 0 || t.factory != nil
}

// GoType returns the reflect.Type described by t; nil for void.
func (t *TypeInfo) GoType() reflect.Type {
	return t.rtype
}

// Compare orders types by creation. The order is stable for the life of the
// process and may differ between runs.
func (t *TypeInfo) Compare(other *TypeInfo) int {
	return cmp.Compare(t.seq, other.seq)
}

// ValueAccessor returns the accessor for owned values of the type.
func (t *TypeInfo) ValueAccessor() Accessor { return t.value }

// RefAccessor returns the accessor for mutable references to the type.
func (t *TypeInfo) RefAccessor() Accessor { return t.ref }

// ConstRefAccessor returns the accessor for constant references to the type.
func (t *TypeInfo) ConstRefAccessor() Accessor { return t.constRef }

// Bases returns the registered base edges.
func (t *TypeInfo) Bases() []Base {
	registry.RLock()
	defer registry.RUnlock()
	return t.bases
}

// Conversions returns the registered conversion edges.
func (t *TypeInfo) Conversions() []Conversion {
	registry.RLock()
	defer registry.RUnlock()
	return t.conversions
}

// Properties returns the properties registered directly on the type.
func (t *TypeInfo) Properties() []*Property {
	registry.RLock()
	defer registry.RUnlock()
	return t.properties
}

// Property returns the property registered directly on the type under name.
func (t *TypeInfo) Property(name string) (*Property, bool) {
	for _, p := range t.Properties() {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Factory returns the registered factory, or nil.
func (t *TypeInfo) Factory() func(*Storage) Accessor {
	registry.RLock()
	defer registry.RUnlock()
	return t.factory
}

// DerivesFrom reports whether base is t itself or one of its transitive
// bases.
func (t *TypeInfo) DerivesFrom(base *TypeInfo) bool {
	registry.RLock()
	defer registry.RUnlock()
	return t.derivesFromLocked(base)
}

func (t *TypeInfo) derivesFromLocked(base *TypeInfo) bool {
	if t == base {
		return true
	}
	for _, b := range t.bases {
		if b.typeInfo.derivesFromLocked(base) {
			return true
		}
	}
	return false
}

// RegisterName associates name with the type. The first name registered
// becomes the display name; later names act as aliases for Lookup. A name
// already taken by a different type is rejected with ErrNameTaken.
func (t *TypeInfo) RegisterName(name string) error {
	if t == voidInfo {
		return fmt.Errorf("register name %q for void: %w", name, types.ErrNameTaken)
	}

	registry.Lock()
	defer registry.Unlock()

	if owner, ok := registry.byName[name]; ok {
		if owner == t {
			return nil
		}
		log().Warn("name already registered", "name", name, "owner", owner.nameLocked(), "type", t.nameLocked())
		return fmt.Errorf("register name %q for %s: %w", name, t.nameLocked(), types.ErrNameTaken)
	}
	registry.byName[name] = t
	if t.name == "" {
		t.name = name
	}
	generation.Add(1)
	log().Debug("registered name", "name", name, "type", t.rtype.String())
	return nil
}

// RegisterBase appends a base edge. Registering the same base twice is a
// no-op; a base that already derives from t is rejected with ErrCyclicBase.
func (t *TypeInfo) RegisterBase(b Base) error {
	registry.Lock()
	defer registry.Unlock()

	for _, existing := range t.bases {
		if existing.typeInfo == b.typeInfo {
			return nil
		}
	}
	if b.typeInfo.derivesFromLocked(t) {
		log().Warn("rejected cyclic base", "type", t.nameLocked(), "base", b.typeInfo.nameLocked())
		return fmt.Errorf("register base %s of %s: %w", b.typeInfo.nameLocked(), t.nameLocked(), types.ErrCyclicBase)
	}
	t.bases = append(t.bases, b)
	generation.Add(1)
	log().Debug("registered base", "type", t.nameLocked(), "base", b.typeInfo.nameLocked())
	return nil
}

// RegisterConversion appends a conversion edge. Only the first conversion
// to a given target is kept.
func (t *TypeInfo) RegisterConversion(c Conversion) {
	registry.Lock()
	defer registry.Unlock()

	for _, existing := range t.conversions {
		if existing.typeInfo == c.typeInfo {
			return
		}
	}
	t.conversions = append(t.conversions, c)
	generation.Add(1)
	log().Debug("registered conversion", "type", t.nameLocked(), "target", c.typeInfo.nameLocked())
}

// RegisterProperty appends a property. Names are unique per type; a
// duplicate is rejected with ErrDuplicateProperty.
func (t *TypeInfo) RegisterProperty(p *Property) error {
	registry.Lock()
	defer registry.Unlock()

	for _, existing := range t.properties {
		if existing.name == p.name {
			return fmt.Errorf("register property %q of %s: %w", p.name, t.nameLocked(), types.ErrDuplicateProperty)
		}
	}
	t.properties = append(t.properties, p)
	generation.Add(1)
	log().Debug("registered property", "type", t.nameLocked(), "property", p.name)
	return nil
}

// RegisterFactory sets the function constructing a default value of the
// type. The first factory registered wins.
func (t *TypeInfo) RegisterFactory(f func(*Storage) Accessor) {
	registry.Lock()
	defer registry.Unlock()

	if t.factory != nil {
		return
	}
	t.factory = f
	generation.Add(1)
}

// NewFactory returns a factory constructing the value produced by f.
func NewFactory[T any](f func() T) func(*Storage) Accessor {
	return func(s *Storage) Accessor {
		return ConstructValue(s, f())
	}
}
