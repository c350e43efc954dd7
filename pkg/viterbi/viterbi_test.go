package viterbi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

// softFromHard converts hard coded bits to ideal soft values (0 or 255).
func softFromHard(coded []byte) []byte {
	out := make([]byte, len(coded))
	for i, b := range coded {
		if b == 1 {
			out[i] = 255
		} else {
			out[i] = 0
		}
	}
	return out
}

func TestEncodeDecodeRoundTripZeroNoise(t *testing.T) {
	src := rand.New(rand.NewSource(42))
	for _, n := range []int{10, 100, 500} {
		info := make([]byte, n)
		for i := range info {
			info[i] = byte(src.Intn(2))
		}
		// Force the trellis to terminate at state zero.
		for i := n - (ConstraintLength - 1); i < n; i++ {
			info[i] = 0
		}

		coded := Encode(info)
		soft := softFromHard(coded)
		decoded := Decode(soft)

		assert.Equal(t, info, decoded)
	}
}

func TestDecodeToleratesSoftErasures(t *testing.T) {
	src := rand.New(rand.NewSource(99))
	info := make([]byte, 30)
	for i := 0; i < 24; i++ {
		info[i] = byte(src.Intn(2))
	}
	coded := Encode(info)
	soft := softFromHard(coded)
	// Introduce a handful of maximum-uncertainty erasures; the code's
	// redundancy should still recover the original bits.
	soft[3] = 127
	soft[10] = 127

	decoded := Decode(soft)
	assert.Equal(t, info, decoded)
}
