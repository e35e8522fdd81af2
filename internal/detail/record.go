package detail

import "github.com/mesh-intelligence/mirror/pkg/types"

// Record returns the catalog description of t.
func (t *TypeInfo) Record() types.TypeRecord {
	rec := types.TypeRecord{
		Name:    t.Name(),
		Factory: t.Factory() != nil,
	}
	if t.rtype != nil {
		rec.GoType = t.rtype.String()
	}
	for _, b := range t.Bases() {
		rec.Bases = append(rec.Bases, b.typeInfo.Name())
	}
	for _, c := range t.Conversions() {
		rec.Conversions = append(rec.Conversions, c.typeInfo.Name())
	}
	for _, p := range t.Properties() {
		rec.Properties = append(rec.Properties, types.PropertyRecord{
			Name:     p.name,
			Type:     p.TypeInfo().Name(),
			Readable: p.mutable.Readable(),
			Writable: p.mutable.Writable(),
		})
	}
	return rec
}
