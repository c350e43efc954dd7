package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	in := []byte{0x00, 0xFF, 0x5D, 0xA3, 0x01}
	assert.Equal(t, in, ToBytes(FromBytes(in)))
}

func TestFromBytesLSBFirst(t *testing.T) {
	got := FromBytes([]byte{0b0000_0010})
	want := []byte{0, 1, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, want, got)
}
