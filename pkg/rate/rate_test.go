package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCbpsDbpsRelation(t *testing.T) {
	for _, r := range All() {
		p := Of(r)
		assert.Equal(t, 48*p.Bpsc, p.Cbps())
		num, den := p.RelativeCodingRate()
		assert.Equal(t, p.Cbps()*num/den, p.Dbps())
	}
}

func TestRateFieldBijection(t *testing.T) {
	for _, r := range All() {
		p := Of(r)
		back, ok := FromField(p.RateField)
		assert.True(t, ok)
		assert.Equal(t, r, back)
	}
}

func TestRateFieldMatchesValidRatesTable(t *testing.T) {
	want := map[Rate]int{
		R1_2BPSK:  0xD,
		R2_3BPSK:  0xE,
		R3_4BPSK:  0xF,
		R1_2QPSK:  0x5,
		R2_3QPSK:  0x6,
		R3_4QPSK:  0x7,
		R1_2QAM16: 0x9,
		R2_3QAM16: 0xA,
		R3_4QAM16: 0xB,
		R2_3QAM64: 0x1,
		R3_4QAM64: 0x3,
	}
	assert.Len(t, All(), len(want))
	for r, field := range want {
		assert.Equal(t, field, Of(r).RateField)
	}

	_, ok := FromField(0x8)
	assert.False(t, ok, "rate_field 0x8 (1/2-QAM64) does not exist in the original rate set")
}

func TestInvalidRateFieldRejected(t *testing.T) {
	used := map[int]bool{}
	for _, r := range All() {
		used[Of(r).RateField] = true
	}
	for f := 0; f < 16; f++ {
		if used[f] {
			continue
		}
		_, ok := FromField(f)
		assert.False(t, ok)
	}
}
