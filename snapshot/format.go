// Package snapshot serializes a grid.GridMap into a self-describing,
// checksummed binary blob and restores it.
//
// Layout (little endian):
//
//	magic      "GRDK"
//	version    uint16
//	compress   uint8   Compression of the item blocks
//	storage    uint8   grid.Storage of the source grid
//	scalar     uint8   0 = integral, 1 = floating point coordinates
//	codec      uint8 length + name
//	bounds     6 x uint64 (min xyz, max xyz)
//	items      uint64
//	occupancy  uint32 length + roaring64 bitmap
//	positions  items x 3 x uint64, in occupancy order
//	blockItems uint32
//	blocks     uint32 count, then per block uint32 length + frame
//	checksum   uint32 CRC32C of everything above
//
// Each block frame holds up to blockItems codec-encoded items, each
// prefixed with its uvarint length, compressed as a unit.
package snapshot

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/gridkit/grid"
	"github.com/hupe1980/gridkit/num"
)

// Magic opens every snapshot.
var Magic = [4]byte{'G', 'R', 'D', 'K'}

// Version is the current format version.
const Version uint16 = 1

// DefaultBlockItems is the number of items compressed together.
const DefaultBlockItems = 4096

const (
	scalarIntegral uint8 = 0
	scalarFloat    uint8 = 1
)

var (
	// ErrInvalidMagic is returned when the data is not a snapshot.
	ErrInvalidMagic = errors.New("snapshot: invalid magic")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrChecksumMismatch is returned when the trailing CRC32C does not match.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")

	// ErrUnknownCodec is returned when the recorded codec is not available.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")

	// ErrScalarMismatch is returned when restoring float coordinates into an
	// integer grid or vice versa.
	ErrScalarMismatch = errors.New("snapshot: coordinate type mismatch")

	// ErrCorrupt is returned when the sections of a snapshot disagree.
	ErrCorrupt = errors.New("snapshot: corrupt data")
)

// CorruptError names the section that failed to decode.
type CorruptError struct {
	Section string
	Err     error
}

func (e *CorruptError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("snapshot: corrupt %s section", e.Section)
	}
	return fmt.Sprintf("snapshot: corrupt %s section: %v", e.Section, e.Err)
}

func (e *CorruptError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCorrupt}
	}
	return []error{ErrCorrupt, e.Err}
}

func corrupt(section string, err error) error {
	return &CorruptError{Section: section, Err: err}
}

// Info describes a snapshot without its items.
type Info struct {
	Version     uint16
	Compression Compression
	Storage     grid.Storage
	Float       bool
	Codec       string
	Items       uint64
	Blocks      int
	Size        int64
}

func scalarKind[T num.Scalar]() uint8 {
	var half T = 1
	half /= 2
	if half != 0 {
		return scalarFloat
	}
	return scalarIntegral
}

func encodeScalar[T num.Scalar](v T, kind uint8) uint64 {
	if kind == scalarFloat {
		return math.Float64bits(float64(v))
	}
	return uint64(num.ToInt64(v))
}

func decodeScalar[T num.Scalar](u uint64, kind uint8) T {
	if kind == scalarFloat {
		return num.FromFloat64[T](math.Float64frombits(u))
	}
	return num.FromInt64[T](int64(u))
}
