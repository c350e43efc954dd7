package preamble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreambleLength(t *testing.T) {
	assert.Len(t, Samples, 320)
}

func TestSTSIsPeriodic(t *testing.T) {
	for r := 0; r < STSRepeats; r++ {
		for i := 0; i < STSPeriod; i++ {
			assert.InDelta(t, real(STS[i]), real(Samples[r*STSPeriod+i]), 1e-9)
			assert.InDelta(t, imag(STS[i]), imag(Samples[r*STSPeriod+i]), 1e-9)
		}
	}
}

func TestLTSSymbolsFollowGuard(t *testing.T) {
	guardStart := STSRepeats * STSPeriod
	lts1Start := guardStart + LTSGuard
	lts2Start := lts1Start + LTSSymbolLen
	for i := 0; i < LTSSymbolLen; i++ {
		assert.InDelta(t, real(LTS[i]), real(Samples[lts1Start+i]), 1e-9)
		assert.InDelta(t, real(LTS[i]), real(Samples[lts2Start+i]), 1e-9)
	}
}

func TestPilotPolaritySequence(t *testing.T) {
	assert.Len(t, PilotPolarity, 127)
	assert.Equal(t, [4]float64{1, 1, 1, 1}, [4]float64{PilotPolarity[0], PilotPolarity[1], PilotPolarity[2], PilotPolarity[3]})
}

func TestActiveSubcarrierCount(t *testing.T) {
	count := 0
	for i := 0; i < 64; i++ {
		if IsActive(i) {
			count++
		}
	}
	assert.Equal(t, DataSubcarriers+PilotSubcarriers, count)
}
