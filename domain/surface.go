package domain

// Surface identifies one of the fixed front-end variants that scope the
// remember-me ledger. The set is closed: entries for one surface are never
// visible to another.
type Surface string

const (
	SurfaceTk Surface = "tk"
	SurfaceQt Surface = "qt"
	SurfaceKv Surface = "kv"
)

// Surfaces lists every known surface tag.
var Surfaces = []Surface{SurfaceTk, SurfaceQt, SurfaceKv}

// Valid reports whether s is one of the known surface tags.
func (s Surface) Valid() bool {
	switch s {
	case SurfaceTk, SurfaceQt, SurfaceKv:
		return true
	}
	return false
}

// String returns the canonical tag form.
func (s Surface) String() string { return string(s) }
