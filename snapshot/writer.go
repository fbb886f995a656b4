package snapshot

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gridkit/codec"
	"github.com/hupe1980/gridkit/grid"
	"github.com/hupe1980/gridkit/internal/hash"
	"github.com/hupe1980/gridkit/num"
)

// Options configures Write and Read.
type Options struct {
	// Codec encodes items. Default: codec.Default.
	Codec codec.Codec

	// Compression of the item blocks. Default: CompressionNone.
	Compression Compression

	// BlockItems is the number of items per compressed block.
	// Default: DefaultBlockItems.
	BlockItems int

	// Concurrency bounds the goroutines encoding or decoding blocks.
	// Default: runtime.GOMAXPROCS(0).
	Concurrency int

	// Storage overrides the occupancy store of a restored grid.
	// nil keeps the storage recorded in the snapshot.
	Storage *grid.Storage
}

// Option configures Write and Read.
type Option func(*Options)

// WithCodec sets the item codec.
func WithCodec(c codec.Codec) Option {
	return func(o *Options) { o.Codec = c }
}

// WithCompression sets the block compression.
func WithCompression(c Compression) Option {
	return func(o *Options) { o.Compression = c }
}

// WithBlockItems sets the number of items per block.
func WithBlockItems(n int) Option {
	return func(o *Options) { o.BlockItems = n }
}

// WithConcurrency bounds the block workers.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

// WithStorage restores into the given occupancy store.
func WithStorage(s grid.Storage) Option {
	return func(o *Options) { o.Storage = &s }
}

func applyOptions(optFns []Option) Options {
	o := Options{
		Codec:       codec.Default,
		BlockItems:  DefaultBlockItems,
		Concurrency: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.Codec == nil {
		o.Codec = codec.Default
	}
	if o.BlockItems <= 0 {
		o.BlockItems = DefaultBlockItems
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	return o
}

// Write serializes g to w. Item blocks are encoded and compressed in
// parallel; the output is identical for every concurrency level.
//
// g must not be mutated while Write runs.
func Write[I any, T num.Scalar](ctx context.Context, w io.Writer, g *grid.GridMap[I, T], optFns ...Option) (Info, error) {
	opts := applyOptions(optFns)
	if !opts.Compression.valid() {
		return Info{}, fmt.Errorf("snapshot: invalid compression %d", opts.Compression)
	}
	name := opts.Codec.Name()
	if len(name) > 255 {
		return Info{}, fmt.Errorf("snapshot: codec name %q too long", name)
	}

	objects := g.Objects()
	occupancy, err := g.Occupancy().ToBytes()
	if err != nil {
		return Info{}, fmt.Errorf("snapshot: encode occupancy: %w", err)
	}

	blocks, err := encodeBlocks(ctx, objects, opts)
	if err != nil {
		return Info{}, err
	}

	kind := scalarKind[T]()
	bw := bufio.NewWriter(w)
	cw := hash.NewWriter(bw)
	e := &encoder{w: cw}

	e.raw(Magic[:])
	e.u16(Version)
	e.u8(uint8(opts.Compression))
	e.u8(uint8(g.Storage()))
	e.u8(kind)
	e.u8(uint8(len(name)))
	e.raw([]byte(name))

	lower, upper := g.Min(), g.Max()
	for _, v := range []T{lower.X, lower.Y, lower.Z, upper.X, upper.Y, upper.Z} {
		e.u64(encodeScalar(v, kind))
	}

	e.u64(uint64(len(objects)))
	e.u32(uint32(len(occupancy)))
	e.raw(occupancy)

	for _, obj := range objects {
		e.u64(encodeScalar(obj.Position.X, kind))
		e.u64(encodeScalar(obj.Position.Y, kind))
		e.u64(encodeScalar(obj.Position.Z, kind))
	}

	e.u32(uint32(opts.BlockItems))
	e.u32(uint32(len(blocks)))
	for _, b := range blocks {
		e.u32(uint32(len(b)))
		e.raw(b)
	}
	if e.err != nil {
		return Info{}, fmt.Errorf("snapshot: write: %w", e.err)
	}

	var sum [4]byte
	binary.LittleEndian.PutUint32(sum[:], cw.Sum32())
	if _, err := bw.Write(sum[:]); err != nil {
		return Info{}, fmt.Errorf("snapshot: write checksum: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return Info{}, fmt.Errorf("snapshot: flush: %w", err)
	}

	return Info{
		Version:     Version,
		Compression: opts.Compression,
		Storage:     g.Storage(),
		Float:       kind == scalarFloat,
		Codec:       name,
		Items:       uint64(len(objects)),
		Blocks:      len(blocks),
		Size:        cw.Len() + int64(len(sum)),
	}, nil
}

func encodeBlocks[I any, T num.Scalar](ctx context.Context, objects []grid.Object[I, T], opts Options) ([][]byte, error) {
	n := (len(objects) + opts.BlockItems - 1) / opts.BlockItems
	blocks := make([][]byte, n)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Concurrency)

	for b := range n {
		lo := b * opts.BlockItems
		hi := min(lo+opts.BlockItems, len(objects))
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var raw []byte
			for _, obj := range objects[lo:hi] {
				data, err := opts.Codec.Marshal(obj.Item)
				if err != nil {
					return fmt.Errorf("snapshot: encode item at %v: %w", obj.Position, err)
				}
				raw = binary.AppendUvarint(raw, uint64(len(data)))
				raw = append(raw, data...)
			}
			frame, err := compressBlock(raw, opts.Compression)
			if err != nil {
				return fmt.Errorf("snapshot: compress block %d: %w", b, err)
			}
			blocks[b] = frame
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// encoder remembers the first write error.
type encoder struct {
	w   io.Writer
	err error
	buf [8]byte
}

func (e *encoder) raw(p []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(p)
}

func (e *encoder) u8(v uint8) {
	e.buf[0] = v
	e.raw(e.buf[:1])
}

func (e *encoder) u16(v uint16) {
	binary.LittleEndian.PutUint16(e.buf[:], v)
	e.raw(e.buf[:2])
}

func (e *encoder) u32(v uint32) {
	binary.LittleEndian.PutUint32(e.buf[:], v)
	e.raw(e.buf[:4])
}

func (e *encoder) u64(v uint64) {
	binary.LittleEndian.PutUint64(e.buf[:], v)
	e.raw(e.buf[:8])
}
