// Package ofdmfft wraps gonum's complex DFT for the fixed 64-point
// transform used on both the transmit IFFT path and the receive
// FFTSymbols stage, and owns the natural <-> centered bin reorder
// permutation that must agree between the two.
package ofdmfft

import "gonum.org/v1/gonum/dsp/fourier"

// Size is the fixed OFDM FFT size for 802.11a: 64 subcarriers.
const Size = 64

var cfft = fourier.NewCmplxFFT(Size)

// Forward performs a 64-point forward DFT in place, then reorders
// bins from natural [0..63] order to the centered layout [32..63,0..31]
// (negative frequencies first) used everywhere else in this module.
func Forward(v *[Size]complex128) {
	out := cfft.Coefficients(nil, v[:])
	reorder(v, out, true)
}

// Inverse reorders bins from centered layout back to natural order
// and performs a 64-point inverse DFT in place.
func Inverse(v *[Size]complex128) {
	natural := make([]complex128, Size)
	reorderSlice(natural, v[:], false)
	out := cfft.Sequence(nil, natural)
	for i := range v {
		// gonum's Sequence already applies the 1/N normalization.
		v[i] = out[i]
	}
}

// reorder copies src (natural DFT order) into dst (centered order) or
// vice versa depending on toCentered.
func reorder(dst *[Size]complex128, src []complex128, toCentered bool) {
	reorderSlice(dst[:], src, toCentered)
}

func reorderSlice(dst, src []complex128, toCentered bool) {
	if toCentered {
		// natural [0..63] -> centered [32..63, 0..31]
		copy(dst[0:32], src[32:64])
		copy(dst[32:64], src[0:32])
	} else {
		// centered [32..63, 0..31] -> natural [0..63]
		copy(dst[32:64], src[0:32])
		copy(dst[0:32], src[32:64])
	}
}

// CenteredIndex converts a signed subcarrier number k (-32..31) to
// its position within the centered 64-bin layout used by every table
// in this module (pilot positions, active map, LTS/STS frequency
// tables).
func CenteredIndex(k int) int {
	return k + 32
}
