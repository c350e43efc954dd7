package blocks

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/dot11a/ofdmphy/pkg/preamble"
	"github.com/dot11a/ofdmphy/pkg/sample"
)

const timingCarryLen = 160

// TimingSync locates the two LTS symbols following each detected STS,
// tagging LTS1/LTS2, and applies a coarse per-sample carrier-frequency
// offset correction derived from the LTS phase ramp.
type TimingSync struct {
	carry [timingCarryLen]sample.Tagged
	phi   float64
	dphi  float64
}

// NewTimingSync returns a TimingSync with no carryover and no CFO estimate.
func NewTimingSync() *TimingSync { return &TimingSync{} }

type ltsPeak struct {
	pos int
	mag float64
}

func (t *TimingSync) Work(in []sample.Tagged) []sample.Tagged {
	combined := make([]sample.Tagged, timingCarryLen+len(in))
	copy(combined[:timingCarryLen], t.carry[:])
	copy(combined[timingCarryLen:], in)

	ltsTag := make([]sample.Tag, len(combined))

	for x, item := range combined {
		if item.Tag != sample.TagSTSEnd {
			continue
		}
		offset, ok := t.findLTSOffset(combined, x)
		if !ok {
			continue
		}
		t.estimateCFO(combined, offset)
		lts1 := offset + 24
		lts2 := offset + 88
		if lts1 >= 0 && lts1 < len(ltsTag) {
			ltsTag[lts1] = sample.TagLTS1
		}
		if lts2 >= 0 && lts2 < len(ltsTag) {
			ltsTag[lts2] = sample.TagLTS2
		}
	}

	out := make([]sample.Tagged, len(in))
	for n := 0; n < len(in); n++ {
		idx := timingCarryLen + n
		item := combined[idx]

		t.phi += t.dphi
		t.phi = wrapPhase(t.phi)

		corrected := item.S * cmplx.Exp(complex(0, -t.phi))

		tag := item.Tag
		if ltsTag[idx] != sample.TagNone {
			tag = ltsTag[idx]
		}
		out[n] = sample.Tagged{S: corrected, Tag: tag}
	}

	copy(t.carry[:], combined[len(combined)-timingCarryLen:])
	return out
}

// findLTSOffset searches the 160-64 positions following an STS_END at
// x for a pair of normalized-correlation peaks exactly 64 samples
// apart, returning lts_offset = min(pair) - 32.
func (t *TimingSync) findLTSOffset(buf []sample.Tagged, x int) (int, bool) {
	var peaks []ltsPeak
	searchLen := timingCarryLen - 64
	for p := x; p < x+searchLen; p++ {
		if p+64 > len(buf) {
			break
		}
		var corr complex128
		var power float64
		for s := 0; s < 64; s++ {
			v := buf[p+s].S
			corr += v * cmplx.Conj(preamble.LTS[s])
			power += real(v)*real(v) + imag(v)*imag(v)
		}
		if power <= 0 {
			continue
		}
		mag := cmplx.Abs(corr) / power
		if mag > plateauThreshold {
			peaks = append(peaks, ltsPeak{pos: p, mag: mag})
		}
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].mag > peaks[j].mag })

	for i := 0; i < len(peaks); i++ {
		for j := 0; j < len(peaks); j++ {
			if i == j {
				continue
			}
			if abs(peaks[i].pos-peaks[j].pos) == 64 {
				lo := min(peaks[i].pos, peaks[j].pos)
				offset := lo - 32
				if offset < 0 {
					return 0, false
				}
				return offset, true
			}
		}
	}
	return 0, false
}

// estimateCFO computes the per-sample phase ramp from the phase
// difference between the two 64-sample LTS bodies starting at
// offset+32, and seeds the phase accumulator from the last LTS sample.
func (t *TimingSync) estimateCFO(buf []sample.Tagged, offset int) {
	base := offset + 32
	if base+128 > len(buf) {
		return
	}
	var sum complex128
	for k := 0; k < 64; k++ {
		sum += buf[base+k].S * cmplx.Conj(buf[base+k+64].S)
	}
	t.dphi = cmplx.Phase(sum) / 64

	ltsEnd := base + 127
	if ltsEnd < len(buf) {
		t.phi = cmplx.Phase(buf[ltsEnd].S * cmplx.Conj(preamble.LTS[63]))
	}
}

func wrapPhase(p float64) float64 {
	for p > math.Pi {
		p -= 2 * math.Pi
	}
	for p <= -math.Pi {
		p += 2 * math.Pi
	}
	return p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
