package grid

// MaxDenseCells is the largest capacity a grid may have when it uses dense
// storage. Dense grids allocate one slot per addressable cell up front.
const MaxDenseCells = 1 << 24

// Storage selects the occupancy store backing a grid.
type Storage uint8

const (
	// StorageSparse keeps occupied cells in a map with a roaring bitmap of
	// used indices. Memory grows with the number of items.
	StorageSparse Storage = iota
	// StorageDense keeps one slot per addressable cell. Memory is fixed at
	// construction and every access is a slice lookup.
	StorageDense
)

// String returns the storage name.
func (s Storage) String() string {
	switch s {
	case StorageSparse:
		return "sparse"
	case StorageDense:
		return "dense"
	default:
		return "unknown"
	}
}

// Valid reports whether s names a known store.
func (s Storage) Valid() bool {
	return s == StorageSparse || s == StorageDense
}

type options struct {
	storage Storage
}

// Option configures grid construction.
type Option func(*options)

// WithStorage selects the occupancy store. Unknown values fall back to
// StorageSparse.
func WithStorage(s Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithDenseStorage is shorthand for WithStorage(StorageDense).
func WithDenseStorage() Option {
	return WithStorage(StorageDense)
}

func applyOptions(optFns []Option) options {
	o := options{storage: StorageSparse}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if !o.storage.Valid() {
		o.storage = StorageSparse
	}
	return o
}
