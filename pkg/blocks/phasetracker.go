package blocks

import (
	"math/cmplx"

	"github.com/dot11a/ofdmphy/pkg/preamble"
	"github.com/dot11a/ofdmphy/pkg/sample"
)

// PhaseTracker removes residual per-symbol phase rotation using the
// four pilot subcarriers and emits only the 48 data subcarriers.
type PhaseTracker struct {
	symbolCount int
}

// NewPhaseTracker returns a PhaseTracker at symbol index 0.
func NewPhaseTracker() *PhaseTracker { return &PhaseTracker{} }

func (p *PhaseTracker) Work(in []sample.Vector64) []sample.Vector48 {
	out := make([]sample.Vector48, len(in))
	for n, sym := range in {
		if sym.Tag == sample.TagStartOfFrame {
			p.symbolCount = 0
		}

		var phaseErr complex128
		for i, idx := range preamble.PilotIndices {
			expected := complex(preamble.PilotNominal[i]*preamble.PilotPolarity[p.symbolCount%preamble.PolaritySequenceLen], 0)
			phaseErr += sym.V[idx] * cmplx.Conj(expected) / 4
		}
		theta := cmplx.Phase(phaseErr)
		rot := cmplx.Exp(complex(0, -theta))

		var o sample.Vector48
		for i, idx := range preamble.DataIndices {
			o.V[i] = sym.V[idx] * rot
		}
		o.Tag = sym.Tag
		out[n] = o

		p.symbolCount++
	}
	return out
}
