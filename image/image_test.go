package image

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryRoundTrip(t *testing.T) {
	assert := assert.New(t)

	im := &Image{Base: 0x00400000, Data: []uint32{0x01094020, 0xdeadbeef}}

	var buf bytes.Buffer
	require.NoError(t, im.SaveBinary(&buf))

	// Word byte order is big-endian.
	assert.Equal([]byte{0x01, 0x09, 0x40, 0x20, 0xde, 0xad, 0xbe, 0xef}, buf.Bytes())

	loaded, err := LoadBinary(&buf, 0x00400000)
	require.NoError(t, err)
	assert.Equal(im, loaded)
}

func TestBinaryTruncated(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadBinary(bytes.NewReader([]byte{1, 2, 3}), 0)
	assert.ErrorIs(err, ErrImageTruncated)
}

func TestHexRoundTrip(t *testing.T) {
	assert := assert.New(t)

	im := &Image{Base: 0x1000, Data: []uint32{0x20080004, 0x00000000}}

	var buf bytes.Buffer
	require.NoError(t, im.SaveHex(&buf))
	assert.Equal("00001000: 20080004\n00001004: 00000000\n", buf.String())

	imgs, err := LoadHex(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, len(imgs))
	assert.Equal(im, imgs[0])
}

func TestHexComments(t *testing.T) {
	assert := assert.New(t)

	listing := strings.Join([]string{
		"# boot words",
		"",
		"bfc00000: 3c081234  # lui $t0, 0x1234",
		"bfc00004: 35085678",
	}, "\n")

	imgs, err := LoadHex(strings.NewReader(listing))
	require.NoError(t, err)
	require.Equal(t, 1, len(imgs))
	assert.Equal(uint32(0xbfc00000), imgs[0].Base)
	assert.Equal([]uint32{0x3c081234, 0x35085678}, imgs[0].Data)
}

func TestHexSegments(t *testing.T) {
	assert := assert.New(t)

	listing := strings.Join([]string{
		"00400000: 00000000",
		"10000000: deadbeef",
		"10000004: 00000001",
	}, "\n")

	imgs, err := LoadHex(strings.NewReader(listing))
	require.NoError(t, err)
	require.Equal(t, 2, len(imgs))
	assert.Equal(uint32(0x00400000), imgs[0].Base)
	assert.Equal(uint32(0x10000000), imgs[1].Base)
	assert.Equal([]uint32{0xdeadbeef, 1}, imgs[1].Data)
}

func TestHexSyntax(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadHex(strings.NewReader("once upon a time"))
	assert.ErrorIs(err, ErrHexSyntax)

	var ehex *ErrHex
	_, err = LoadHex(strings.NewReader("00001000: 20080004\nnot hex"))
	assert.ErrorAs(err, &ehex)
	assert.Equal(2, ehex.LineNo)
}
