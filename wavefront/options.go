package wavefront

// Option configures Parse, Export and WriteFile.
type Option func(*options)

type options struct {
	swapYZ  bool
	mtllib  string
	name    string
	comment string
}

// WithSwapYZ exchanges the Y and Z components of every vertex. On import
// this turns a Y-up file into a Z-up mesh; on export it does the reverse.
func WithSwapYZ() Option {
	return func(o *options) { o.swapYZ = true }
}

// WithMaterialLib emits an "mtllib" statement on export.
func WithMaterialLib(name string) Option {
	return func(o *options) { o.mtllib = name }
}

// WithName overrides the object name written on export. Without it the
// mesh name is used.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithComment replaces the header comment written on export.
func WithComment(comment string) Option {
	return func(o *options) { o.comment = comment }
}

func applyOptions(optFns []Option) options {
	o := options{comment: "generated by gridkit"}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
