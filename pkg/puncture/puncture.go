// Package puncture implements the rate-1/2, 2/3, and 3/4 puncturing
// patterns applied to the convolutionally encoded bit stream, and
// their depuncture inverses (inserting soft erasures at the holes).
package puncture

import "github.com/dot11a/ofdmphy/pkg/rate"

// Erasure is the soft-bit value inserted at a punctured (unknown)
// position during depuncture, representing maximum uncertainty on
// the [0,255] soft scale used throughout the receive chain.
const Erasure = 127

// patternFor returns, for one group of groupLen coded bits, the
// kept-bit indices within that group.
func patternFor(r rate.Rate) (groupLen int, keep []int) {
	switch r {
	case rate.R1_2BPSK, rate.R1_2QPSK, rate.R1_2QAM16:
		return 1, []int{0}
	case rate.R2_3QAM64, rate.R2_3BPSK, rate.R2_3QPSK, rate.R2_3QAM16:
		return 4, []int{0, 2, 3}
	case rate.R3_4BPSK, rate.R3_4QPSK, rate.R3_4QAM16, rate.R3_4QAM64:
		return 6, []int{0, 1, 3, 5}
	default:
		return 1, []int{0}
	}
}

// Puncture drops the non-kept coded bits per r's pattern.
func Puncture(coded []byte, r rate.Rate) []byte {
	groupLen, keep := patternFor(r)
	if groupLen == 1 {
		out := make([]byte, len(coded))
		copy(out, coded)
		return out
	}
	out := make([]byte, 0, len(coded)*len(keep)/groupLen+len(keep))
	for i := 0; i+groupLen <= len(coded)+groupLen-1 && i < len(coded); i += groupLen {
		for _, k := range keep {
			if i+k < len(coded) {
				out = append(out, coded[i+k])
			}
		}
	}
	return out
}

// Depuncture re-inserts Erasure at every punctured position so the
// output has the same length as the original coded stream before
// puncturing; kept positions carry the punctured soft values verbatim.
func Depuncture(punctured []byte, r rate.Rate, codedLen int) []byte {
	groupLen, keep := patternFor(r)
	out := make([]byte, codedLen)
	for i := range out {
		out[i] = Erasure
	}
	if groupLen == 1 {
		copy(out, punctured)
		return out
	}
	keptSet := make(map[int]bool, len(keep))
	for _, k := range keep {
		keptSet[k] = true
	}
	pi := 0
	for i := 0; i < codedLen; i += groupLen {
		for k := 0; k < groupLen && i+k < codedLen; k++ {
			if keptSet[k] && pi < len(punctured) {
				out[i+k] = punctured[pi]
				pi++
			}
		}
	}
	return out
}
