package blocks

import (
	"github.com/dot11a/ofdmphy/pkg/ofdmfft"
	"github.com/dot11a/ofdmphy/pkg/sample"
)

// FFTSymbols aligns the tagged time-domain stream into 80-sample
// symbol windows, strips the 16-sample cyclic prefix, and transforms
// the remaining 64 samples into the frequency domain.
type FFTSymbols struct {
	offset int
	buf    [64]complex128
	tag    sample.Tag
}

// NewFFTSymbols returns an FFTSymbols block with an empty partial symbol.
func NewFFTSymbols() *FFTSymbols { return &FFTSymbols{} }

func (f *FFTSymbols) Work(in []sample.Tagged) []sample.Vector64 {
	var out []sample.Vector64

	startSymbol := func(tag sample.Tag) {
		if f.offset > 15 {
			out = append(out, f.transform())
		}
		f.buf = [64]complex128{}
		f.offset = 16
		f.tag = tag
	}

	for _, item := range in {
		switch item.Tag {
		case sample.TagLTS1:
			startSymbol(sample.TagLTSStart)
		case sample.TagLTS2:
			startSymbol(sample.TagNone)
		}

		if f.offset >= 16 {
			f.buf[f.offset-16] = item.S
		}
		f.offset++
		if f.offset == 80 {
			out = append(out, f.transform())
			f.buf = [64]complex128{}
			f.offset = 0
			f.tag = sample.TagNone
		}
	}

	return out
}

func (f *FFTSymbols) transform() sample.Vector64 {
	v := f.buf
	ofdmfft.Forward(&v)
	return sample.Vector64{V: v, Tag: f.tag}
}
