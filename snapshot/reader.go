package snapshot

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gridkit/codec"
	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/grid"
	"github.com/hupe1980/gridkit/internal/hash"
	"github.com/hupe1980/gridkit/num"
)

// Read restores a grid from r. See Decode.
func Read[I any, T num.Scalar](ctx context.Context, r io.Reader, optFns ...Option) (*grid.GridMap[I, T], Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Info{}, fmt.Errorf("snapshot: read: %w", err)
	}
	return Decode[I, T](ctx, data, optFns...)
}

// Inspect validates the checksum and header of data and describes it
// without decoding any item.
func Inspect(data []byte) (Info, error) {
	h, err := parse(data)
	if err != nil {
		return Info{}, err
	}
	return h.info(int64(len(data))), nil
}

// Decode restores a grid from a complete snapshot.
//
// Every item is re-inserted through grid.Add and must land on the index
// the occupancy section recorded for it. Only the Codec (when the snapshot
// used a codec that ByName does not know), Concurrency and Storage options
// apply.
func Decode[I any, T num.Scalar](ctx context.Context, data []byte, optFns ...Option) (*grid.GridMap[I, T], Info, error) {
	h, err := parse(data)
	if err != nil {
		return nil, Info{}, err
	}
	info := h.info(int64(len(data)))

	if h.kind != scalarKind[T]() {
		return nil, info, fmt.Errorf("%w: snapshot float=%t", ErrScalarMismatch, h.kind == scalarFloat)
	}

	opts := applyOptions(optFns)
	c, ok := codec.ByName(h.codec)
	if !ok {
		if opts.Codec.Name() != h.codec {
			return nil, info, fmt.Errorf("%w: %q", ErrUnknownCodec, h.codec)
		}
		c = opts.Codec
	}

	storage := h.storage
	if opts.Storage != nil {
		storage = *opts.Storage
	}

	bounds := geom.NewBoundingBox(
		geom.V3(decodeScalar[T](h.bounds[0], h.kind), decodeScalar[T](h.bounds[1], h.kind), decodeScalar[T](h.bounds[2], h.kind)),
		geom.V3(decodeScalar[T](h.bounds[3], h.kind), decodeScalar[T](h.bounds[4], h.kind), decodeScalar[T](h.bounds[5], h.kind)),
	)
	g, err := grid.FromBoundingBox[I](bounds, grid.WithStorage(storage))
	if err != nil {
		return nil, info, fmt.Errorf("snapshot: rebuild grid: %w", err)
	}

	items, err := decodeBlocks[I](ctx, h, c, opts.Concurrency)
	if err != nil {
		return nil, info, err
	}

	indices := h.occupancy.ToArray()
	for i, want := range indices {
		pos := geom.V3(
			decodeScalar[T](h.positions[3*i], h.kind),
			decodeScalar[T](h.positions[3*i+1], h.kind),
			decodeScalar[T](h.positions[3*i+2], h.kind),
		)
		got, err := g.Add(items[i], pos)
		if err != nil {
			return nil, info, corrupt("positions", err)
		}
		if uint64(got) != want {
			return nil, info, corrupt("occupancy", fmt.Errorf("position %v hashes to %d, recorded %d", pos, got, want))
		}
	}

	return g, info, nil
}

func decodeBlocks[I any](ctx context.Context, h *header, c codec.Codec, concurrency int) ([]I, error) {
	items := make([]I, h.items)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for b, frame := range h.blocks {
		lo := b * h.blockItems
		hi := min(lo+h.blockItems, len(items)) // parse checked the block count
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := decompressBlock(frame, h.compression)
			if err != nil {
				return corrupt("blocks", fmt.Errorf("block %d: %w", b, err))
			}
			for i := lo; i < hi; i++ {
				size, n := binary.Uvarint(raw)
				if n <= 0 || uint64(len(raw)-n) < size {
					return corrupt("blocks", fmt.Errorf("block %d: truncated item %d", b, i))
				}
				raw = raw[n:]
				v, err := codec.Decode[I](c, raw[:size])
				if err != nil {
					return corrupt("blocks", err)
				}
				items[i] = v
				raw = raw[size:]
			}
			if len(raw) != 0 {
				return corrupt("blocks", fmt.Errorf("block %d: %d trailing bytes", b, len(raw)))
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

type header struct {
	version     uint16
	compression Compression
	storage     grid.Storage
	kind        uint8
	codec       string
	bounds      [6]uint64
	items       int
	occupancy   *roaring64.Bitmap
	positions   []uint64
	blockItems  int
	blocks      [][]byte
}

func (h *header) info(size int64) Info {
	return Info{
		Version:     h.version,
		Compression: h.compression,
		Storage:     h.storage,
		Float:       h.kind == scalarFloat,
		Codec:       h.codec,
		Items:       uint64(h.items),
		Blocks:      len(h.blocks),
		Size:        size,
	}
}

func parse(data []byte) (*header, error) {
	if len(data) < len(Magic) || [4]byte(data[:4]) != Magic {
		return nil, ErrInvalidMagic
	}
	if len(data) < len(Magic)+2+4 {
		return nil, corrupt("header", io.ErrUnexpectedEOF)
	}

	body := data[:len(data)-4]
	if want := binary.LittleEndian.Uint32(data[len(data)-4:]); hash.CRC32C(body) != want {
		return nil, ErrChecksumMismatch
	}

	d := &decoder{data: body[len(Magic):]}
	h := &header{}

	h.version = d.u16()
	if d.err == nil && h.version > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.version)
	}
	h.compression = Compression(d.u8())
	h.storage = grid.Storage(d.u8())
	h.kind = d.u8()
	h.codec = string(d.raw(int(d.u8())))
	for i := range h.bounds {
		h.bounds[i] = d.u64()
	}
	if d.err != nil {
		return nil, corrupt("header", d.err)
	}
	if !h.compression.valid() {
		return nil, corrupt("header", fmt.Errorf("compression %d", h.compression))
	}
	if !h.storage.Valid() {
		return nil, corrupt("header", fmt.Errorf("storage %d", h.storage))
	}
	if h.kind > scalarFloat {
		return nil, corrupt("header", fmt.Errorf("scalar kind %d", h.kind))
	}

	items := d.u64()
	occupancy := d.raw(int(d.u32()))
	if d.err != nil {
		return nil, corrupt("occupancy", d.err)
	}
	h.occupancy = roaring64.New()
	if err := h.occupancy.UnmarshalBinary(occupancy); err != nil {
		return nil, corrupt("occupancy", err)
	}
	if h.occupancy.GetCardinality() != items {
		return nil, corrupt("occupancy", fmt.Errorf("%d indices for %d items", h.occupancy.GetCardinality(), items))
	}
	if items > uint64(d.remaining()/24) {
		return nil, corrupt("positions", io.ErrUnexpectedEOF)
	}
	h.items = int(items)

	h.positions = make([]uint64, 3*h.items)
	for i := range h.positions {
		h.positions[i] = d.u64()
	}

	h.blockItems = int(d.u32())
	blocks := int(d.u32())
	if d.err != nil {
		return nil, corrupt("positions", d.err)
	}
	if h.blockItems <= 0 {
		return nil, corrupt("blocks", fmt.Errorf("block size %d", h.blockItems))
	}
	if want := (h.items + h.blockItems - 1) / h.blockItems; blocks != want {
		return nil, corrupt("blocks", fmt.Errorf("%d blocks for %d items", blocks, h.items))
	}
	h.blocks = make([][]byte, blocks)
	for i := range h.blocks {
		h.blocks[i] = d.raw(int(d.u32()))
	}
	if d.err != nil {
		return nil, corrupt("blocks", d.err)
	}
	if d.remaining() != 0 {
		return nil, corrupt("blocks", fmt.Errorf("%d trailing bytes", d.remaining()))
	}

	return h, nil
}

// decoder is a bounds-checked cursor that remembers the first short read.
type decoder struct {
	data []byte
	off  int
	err  error
}

func (d *decoder) remaining() int { return len(d.data) - d.off }

func (d *decoder) raw(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || n > d.remaining() {
		d.err = io.ErrUnexpectedEOF
		return nil
	}
	p := d.data[d.off : d.off+n]
	d.off += n
	return p
}

func (d *decoder) u8() uint8 {
	if p := d.raw(1); p != nil {
		return p[0]
	}
	return 0
}

func (d *decoder) u16() uint16 {
	if p := d.raw(2); p != nil {
		return binary.LittleEndian.Uint16(p)
	}
	return 0
}

func (d *decoder) u32() uint32 {
	if p := d.raw(4); p != nil {
		return binary.LittleEndian.Uint32(p)
	}
	return 0
}

func (d *decoder) u64() uint64 {
	if p := d.raw(8); p != nil {
		return binary.LittleEndian.Uint64(p)
	}
	return 0
}

