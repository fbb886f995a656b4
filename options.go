package gridkit

import (
	"log/slog"

	"github.com/hupe1980/gridkit/blobstore"
	"github.com/hupe1980/gridkit/codec"
	"github.com/hupe1980/gridkit/grid"
	"github.com/hupe1980/gridkit/snapshot"
)

// DefaultSnapshotPrefix is the directory snapshots are saved under.
const DefaultSnapshotPrefix = "grid"

type options struct {
	name             string
	logger           *Logger
	metricsCollector MetricsCollector
	store            blobstore.BlobStore
	codec            codec.Codec
	compression      snapshot.Compression
	storage          *grid.Storage
	prefix           string
	retain           int
}

// Option configures a Space.
type Option func(*options)

func defaultOptions() options {
	return options{
		name:             "default",
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		codec:            codec.Default,
		compression:      snapshot.CompressionZSTD,
		prefix:           DefaultSnapshotPrefix,
	}
}

func (o options) gridOptions() []grid.Option {
	if o.storage == nil {
		return nil
	}
	return []grid.Option{grid.WithStorage(*o.storage)}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// WithName names the space in log records.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithLogLevel enables text logging to stderr at the given level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector sets the metrics sink. If nil is passed, metrics are
// discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithBlobStore sets where Save writes snapshots.
func WithBlobStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCodec configures the codec used for items in snapshots.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the snapshot block compression. Default: zstd.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithDenseStorage backs the grid with one slot per cell instead of a map.
// Only grids up to grid.MaxDenseCells cells qualify. When loading, it
// overrides the storage recorded in the snapshot.
func WithDenseStorage() Option {
	return func(o *options) {
		dense := grid.StorageDense
		o.storage = &dense
	}
}

// WithSnapshotPrefix sets the directory snapshots are saved under.
func WithSnapshotPrefix(prefix string) Option {
	return func(o *options) {
		if prefix == "" {
			prefix = DefaultSnapshotPrefix
		}
		o.prefix = prefix
	}
}

// WithRetain keeps only the newest n snapshots after each save.
// n <= 0 keeps all of them.
func WithRetain(n int) Option {
	return func(o *options) {
		o.retain = n
	}
}
