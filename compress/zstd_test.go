package compress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCodecRoundTrip(t *testing.T) {
	c := NewZstdCodec()
	in := []byte(strings.Repeat("panic: guest function failed\n\tat main.Entry\n", 50))

	compressed, err := c.Compress(in)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(in))

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestZstdCodecDecompressEmpty(t *testing.T) {
	c := NewZstdCodec()
	out, err := c.Decompress(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestZstdCodecDecompressCorrupt(t *testing.T) {
	c := NewZstdCodec()
	_, err := c.Decompress([]byte{0x00, 0x01, 0x02})
	assert.Error(t, err)
}
