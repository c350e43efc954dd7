package blocks

import (
	"github.com/dot11a/ofdmphy/pkg/preamble"
	"github.com/dot11a/ofdmphy/pkg/sample"
)

// ChannelEst estimates the per-subcarrier channel gain from the two
// LTS symbols and equalizes every data symbol that follows, marking
// the first post-LTS symbol START_OF_FRAME.
type ChannelEst struct {
	hinv       [64]complex128
	ltsMode    bool
	counter    int
	frameStart bool
}

// NewChannelEst returns a ChannelEst with an identity channel estimate.
func NewChannelEst() *ChannelEst {
	c := &ChannelEst{}
	for k := range c.hinv {
		c.hinv[k] = 1
	}
	return c
}

func (c *ChannelEst) Work(in []sample.Vector64) []sample.Vector64 {
	out := make([]sample.Vector64, 0, len(in))
	for _, sym := range in {
		if sym.Tag == sample.TagLTSStart {
			c.hinv = [64]complex128{}
			c.ltsMode = true
			c.counter = 1
		}

		if c.ltsMode {
			for k := 0; k < 64; k++ {
				if sym.V[k] != 0 {
					c.hinv[k] += preamble.LTSFreq[k] / sym.V[k] / 2
				}
			}
			c.counter++
			if c.counter > 2 {
				c.ltsMode = false
				c.frameStart = true
			}
			continue
		}

		var o sample.Vector64
		for k := 0; k < 64; k++ {
			o.V[k] = c.hinv[k] * sym.V[k]
		}
		if c.frameStart {
			o.Tag = sample.TagStartOfFrame
			c.frameStart = false
		}
		out = append(out, o)
	}
	return out
}
