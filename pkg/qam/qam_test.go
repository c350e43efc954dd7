package qam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/dot11a/ofdmphy/pkg/rate"
)

func TestModulateDemodulateHardDecisionRoundTrip(t *testing.T) {
	src := rand.New(rand.NewSource(3))
	for _, r := range rate.All() {
		bpsc := rate.Of(r).Bpsc
		mod := NewModulator(r)
		demod := NewDemodulator(r)

		nSymbols := 20
		bits := make([]byte, nSymbols*bpsc)
		for i := range bits {
			bits[i] = byte(src.Intn(2))
		}

		symbols := mod.Modulate(bits)
		assert.Len(t, symbols, nSymbols)

		soft := demod.Demodulate(symbols)
		assert.Len(t, soft, len(bits))

		for i, b := range bits {
			hard := byte(0)
			if soft[i] >= 128 {
				hard = 1
			}
			assert.Equal(t, b, hard, "bit %d at rate %v", i, r)
		}
	}
}

// TestDemodulateGivesPerBitConfidenceNotUniform exercises the
// recursive sign-and-subtract decoder on 16-QAM: a symbol far from the
// first (sign) bit's decision boundary but close to the second bit's
// must come back with a confident byte on the first bit and a less
// confident one on the second. A demapper that instead reports one
// uniform confidence for every bit of the axis would fail this.
func TestDemodulateGivesPerBitConfidenceNotUniform(t *testing.T) {
	a := axes[2]
	// Halfway between levels -1 and -3: 1.5 levels from the first
	// bit's boundary at 0, half a level from the second bit's
	// boundary at -2.
	x := -1.5 * a.scale
	soft := a.demodulate(x)
	assert.Len(t, soft, 2)

	firstConfidence := abs(128 - int(soft[0]))
	secondConfidence := abs(128 - int(soft[1]))
	assert.Greater(t, firstConfidence, secondConfidence)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
