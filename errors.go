package gridkit

import (
	"errors"
	"fmt"

	"github.com/hupe1980/gridkit/blobstore"
	"github.com/hupe1980/gridkit/grid"
	"github.com/hupe1980/gridkit/snapshot"
)

var (
	// ErrOutOfBounds is returned when a position lies outside the space.
	ErrOutOfBounds = grid.ErrOutOfBounds

	// ErrSpaceOccupied is returned when the target cell already holds an item.
	ErrSpaceOccupied = grid.ErrSpaceOccupied

	// ErrNoSnapshot is returned when a store holds no committed snapshot.
	ErrNoSnapshot = errors.New("gridkit: no snapshot")

	// ErrNoBlobStore is returned by Save when no store was configured.
	ErrNoBlobStore = errors.New("gridkit: no blob store configured")

	// ErrCorruptSnapshot is returned when a snapshot fails validation.
	ErrCorruptSnapshot = snapshot.ErrCorrupt

	// ErrClosed is returned by operations on a closed space.
	ErrClosed = errors.New("gridkit: space is closed")

	// ErrEmptyMesh is returned when indexing a mesh without vertices.
	ErrEmptyMesh = errors.New("gridkit: mesh has no vertices")
)

// ErrInvalidVersion reports a snapshot name that carries no version.
type ErrInvalidVersion struct {
	Name  string
	cause error
}

func (e *ErrInvalidVersion) Error() string {
	return fmt.Sprintf("gridkit: %q is not a versioned snapshot", e.Name)
}

func (e *ErrInvalidVersion) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNoSnapshot, err)
	}

	// Everything that means "these bytes are not a usable snapshot".
	if errors.Is(err, snapshot.ErrCorrupt) {
		return err
	}
	if errors.Is(err, snapshot.ErrChecksumMismatch) ||
		errors.Is(err, snapshot.ErrInvalidMagic) ||
		errors.Is(err, snapshot.ErrUnsupportedVersion) {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	return err
}
