// Package codec encodes the items stored in grid snapshots.
//
// A snapshot records the name of the codec that wrote it; on restore the
// codec is looked up again with ByName, so renaming a codec breaks existing
// snapshots.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Names lists the names of the built-in codecs.
func Names() []string {
	return []string{JSON{}.Name(), GoJSON{}.Name()}
}

// Decode unmarshals data into a new value of type V.
func Decode[V any](c Codec, data []byte) (V, error) {
	var v V
	if err := c.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return v, nil
}

// MustMarshal is a helper for tests and examples.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
