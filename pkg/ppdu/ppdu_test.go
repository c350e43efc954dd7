package ppdu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dot11a/ofdmphy/pkg/rate"
)

func TestParityRoundTrip(t *testing.T) {
	for rateField := 0; rateField < 16; rateField++ {
		for _, length := range []int{0, 1, 100, 2000} {
			word := PackRateLengthParity(rateField, length)
			assert.True(t, CheckParity(word))

			gotRate, gotLen := UnpackRateLength(word)
			assert.Equal(t, rateField, gotRate)
			assert.Equal(t, length, gotLen)
		}
	}
}

func TestCheckParityRejectsFlippedBit(t *testing.T) {
	word := PackRateLengthParity(0xD, 12)
	flipped := word ^ 1
	assert.False(t, CheckParity(flipped))
}

func TestFrameDataAppendAndReset(t *testing.T) {
	var fd FrameData
	fd.Init(Header{NumSymbols: 2}, rate.Of(rate.R1_2BPSK))
	assert.True(t, fd.Active)
	assert.Equal(t, 96, fd.ExpectedSampleCount)

	complete := fd.Append(make([]complex128, 48))
	assert.False(t, complete)
	complete = fd.Append(make([]complex128, 48))
	assert.True(t, complete)

	fd.Reset()
	assert.False(t, fd.Active)
}
