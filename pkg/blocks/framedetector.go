// Package blocks implements the six stateful receive-chain stages of
// the OFDM pipeline (FrameDetector through FrameDecoder), each a
// block with an input type and an output type and a single Work step
// that consumes the current input chunk and appends to its output,
// carrying state across calls the way the teacher's Decoder/Encoder
// carry a running buffer across successive device callbacks.
package blocks

import (
	"math/cmplx"

	"github.com/dot11a/ofdmphy/pkg/sample"
)

// FrameDetector brackets each preamble on the continuous complex
// sample stream with STS_START/STS_END tags via a sliding
// autocorrelation-to-power ratio.
type FrameDetector struct {
	carry     [16]complex128
	corrBuf   [16]complex128
	powBuf    [16]float64
	corrSum   complex128
	powSum    float64
	pos       int
	plateau   int
	inPlateau bool
}

// NewFrameDetector returns a FrameDetector with a zeroed carryover window.
func NewFrameDetector() *FrameDetector { return &FrameDetector{} }

const plateauThreshold = 0.9
const plateauLen = 16

// Work consumes one chunk of raw complex samples and returns them
// tagged with any STS_START/STS_END events found.
func (f *FrameDetector) Work(in []complex128) []sample.Tagged {
	out := make([]sample.Tagged, len(in))
	extended := make([]complex128, 16+len(in))
	copy(extended[:16], f.carry[:])
	copy(extended[16:], in)

	for n := 0; n < len(in); n++ {
		s := extended[16+n]
		d := extended[n]

		corrTerm := s * cmplx.Conj(d)
		powTerm := real(s)*real(s) + imag(s)*imag(s)

		f.corrSum -= f.corrBuf[f.pos]
		f.powSum -= f.powBuf[f.pos]
		f.corrBuf[f.pos] = corrTerm
		f.powBuf[f.pos] = powTerm
		f.corrSum += corrTerm
		f.powSum += powTerm
		f.pos = (f.pos + 1) % 16

		tag := sample.TagNone
		c := 0.0
		if f.powSum > 0 {
			c = cmplx.Abs(f.corrSum) / f.powSum
		}
		if c > plateauThreshold {
			f.plateau++
			if f.plateau == plateauLen {
				tag = sample.TagSTSStart
				f.inPlateau = true
			}
		} else {
			if f.inPlateau {
				tag = sample.TagSTSEnd
				f.inPlateau = false
			}
			f.plateau = 0
		}

		out[n] = sample.Tagged{S: s, Tag: tag}
	}

	copy(f.carry[:], extended[len(extended)-16:])
	return out
}
