package gridkit

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/gridkit/blobstore"
	"github.com/hupe1980/gridkit/num"
	"github.com/hupe1980/gridkit/snapshot"
)

// CurrentName is the blob that names the newest committed snapshot.
// It lives at the store root so commit stores that serve it specially
// (such as the DynamoDB-backed S3 store) can intercept it.
const CurrentName = "CURRENT"

const snapshotExt = ".grid"

// SnapshotName returns the blob name of a snapshot version under prefix.
func SnapshotName(prefix string, version uint64) string {
	return path.Join(prefix, fmt.Sprintf("%08d%s", version, snapshotExt))
}

// ParseSnapshotName extracts the version from a snapshot blob name.
func ParseSnapshotName(name string) (uint64, error) {
	base := path.Base(name)
	if !strings.HasSuffix(base, snapshotExt) {
		return 0, &ErrInvalidVersion{Name: name}
	}
	v, err := strconv.ParseUint(strings.TrimSuffix(base, snapshotExt), 10, 64)
	if err != nil || v == 0 {
		return 0, &ErrInvalidVersion{Name: name, cause: err}
	}
	return v, nil
}

// Save writes a snapshot of the space as the next version and then points
// CURRENT at it. Readers never observe a half-written snapshot: the blob is
// complete before CURRENT moves. Mutations wait while the grid is encoded.
//
// The next version follows the newest snapshot already in the store, so a
// space created with New over an existing history appends to it.
//
// It returns the name of the new snapshot.
func (s *Space[I, T]) Save(ctx context.Context) (string, error) {
	if s.opts.store == nil {
		return "", ErrNoBlobStore
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	start := time.Now()
	version, err := s.nextVersion(ctx)
	if err != nil {
		return "", err
	}
	name := SnapshotName(s.opts.prefix, version)

	info, err := s.save(ctx, name)
	s.metrics.RecordSnapshot(info.Size, time.Since(start), err)
	s.logger.LogSnapshot(ctx, name, info, err)
	if err != nil {
		return "", err
	}

	s.version = version
	if s.opts.retain > 0 {
		if err := s.prune(ctx, version); err != nil {
			s.logger.WarnContext(ctx, "prune failed", "error", err)
		}
	}
	return name, nil
}

func (s *Space[I, T]) nextVersion(ctx context.Context) (uint64, error) {
	versions, err := Versions(ctx, s.opts.store, s.opts.prefix)
	if err != nil {
		return 0, fmt.Errorf("gridkit: list snapshots: %w", err)
	}
	last := s.version
	if len(versions) > 0 {
		last = max(last, versions[len(versions)-1])
	}
	return last + 1, nil
}

func (s *Space[I, T]) save(ctx context.Context, name string) (snapshot.Info, error) {
	var buf bytes.Buffer

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return snapshot.Info{}, ErrClosed
	}
	info, err := snapshot.Write(ctx, &buf, s.grid,
		snapshot.WithCodec(s.opts.codec),
		snapshot.WithCompression(s.opts.compression),
	)
	s.mu.RUnlock()
	if err != nil {
		return info, err
	}

	if err := s.opts.store.Put(ctx, name, buf.Bytes()); err != nil {
		return info, fmt.Errorf("gridkit: write %s: %w", name, err)
	}
	if err := s.opts.store.Put(ctx, CurrentName, []byte(name)); err != nil {
		return info, fmt.Errorf("gridkit: commit %s: %w", name, err)
	}
	return info, nil
}

// prune deletes all but the newest retain snapshots. current is never
// deleted.
func (s *Space[I, T]) prune(ctx context.Context, current uint64) error {
	versions, err := Versions(ctx, s.opts.store, s.opts.prefix)
	if err != nil {
		return err
	}
	if len(versions) <= s.opts.retain {
		return nil
	}
	for _, v := range versions[:len(versions)-s.opts.retain] {
		if v == current {
			continue
		}
		if err := s.opts.store.Delete(ctx, SnapshotName(s.opts.prefix, v)); err != nil {
			return err
		}
	}
	return nil
}

// Versions lists the snapshot versions saved under prefix, oldest first.
func Versions(ctx context.Context, store blobstore.BlobStore, prefix string) ([]uint64, error) {
	if prefix == "" {
		prefix = DefaultSnapshotPrefix
	}
	names, err := store.List(ctx, prefix+"/")
	if err != nil {
		return nil, err
	}

	var out []uint64
	for _, name := range names {
		if v, err := ParseSnapshotName(name); err == nil {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Load restores the snapshot CURRENT points to. The store is kept for
// later saves, which continue the version sequence.
func Load[I any, T num.Scalar](ctx context.Context, store blobstore.BlobStore, optFns ...Option) (*Space[I, T], error) {
	current, err := blobstore.ReadAll(ctx, store, CurrentName)
	if err != nil {
		return nil, translateError(err)
	}
	return load[I, T](ctx, store, strings.TrimSpace(string(current)), optFns)
}

// LoadVersion restores a specific snapshot version saved under the
// configured prefix. CURRENT is left alone; a later Save still writes the
// version after the newest existing one.
func LoadVersion[I any, T num.Scalar](ctx context.Context, store blobstore.BlobStore, version uint64, optFns ...Option) (*Space[I, T], error) {
	opts := applyOptions(optFns)
	s, err := load[I, T](ctx, store, SnapshotName(opts.prefix, version), optFns)
	if err != nil {
		return nil, err
	}

	versions, err := Versions(ctx, store, opts.prefix)
	if err != nil {
		return nil, err
	}
	if n := len(versions); n > 0 && versions[n-1] > s.version {
		s.version = versions[n-1]
	}
	return s, nil
}

func load[I any, T num.Scalar](ctx context.Context, store blobstore.BlobStore, name string, optFns []Option) (*Space[I, T], error) {
	opts := applyOptions(append([]Option{WithBlobStore(store)}, optFns...))
	logger := opts.logger.WithSpace(opts.name)
	start := time.Now()

	s, err := decode[I, T](ctx, store, name, opts)

	items := 0
	if s != nil {
		items = s.grid.Len()
	}
	opts.metricsCollector.RecordRestore(items, time.Since(start), err)
	logger.LogRestore(ctx, name, uint64(items), err)
	return s, err
}

func decode[I any, T num.Scalar](ctx context.Context, store blobstore.BlobStore, name string, opts options) (*Space[I, T], error) {
	version, err := ParseSnapshotName(name)
	if err != nil {
		return nil, err
	}

	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, translateError(err)
	}

	readOpts := []snapshot.Option{snapshot.WithCodec(opts.codec)}
	if opts.storage != nil {
		readOpts = append(readOpts, snapshot.WithStorage(*opts.storage))
	}

	g, _, err := snapshot.Decode[I, T](ctx, data, readOpts...)
	if err != nil {
		return nil, translateError(err)
	}

	s := newSpace(g, opts)
	s.version = version
	return s, nil
}
