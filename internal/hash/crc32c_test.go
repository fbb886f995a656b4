package hash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	// Castagnoli check value.
	assert.Equal(t, uint32(0xE3069283), CRC32C([]byte("123456789")))
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := NewWriter(&buf)

	_, _ = cw.Write([]byte("12345"))
	_, _ = cw.Write([]byte("6789"))

	assert.Equal(t, "123456789", buf.String())
	assert.Equal(t, int64(9), cw.Len())
	assert.Equal(t, CRC32C(buf.Bytes()), cw.Sum32())
}
