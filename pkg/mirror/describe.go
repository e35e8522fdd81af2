package mirror

import (
	"log/slog"

	"github.com/mesh-intelligence/mirror/internal/detail"
	"github.com/mesh-intelligence/mirror/pkg/types"
)

// Version is the mirror release.
const Version = "0.4.0"

// Describe returns the catalog record of every registered type, in creation
// order.
func Describe() []types.TypeRecord {
	var records []types.TypeRecord
	for _, t := range Types() {
		records = append(records, t.Record())
	}
	return records
}

// SetLogger sets the logger receiving registration events. The default
// discards them; nil restores it.
func SetLogger(l *slog.Logger) {
	detail.SetLogger(l)
}
