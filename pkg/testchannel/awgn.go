// Package testchannel injects additive white Gaussian noise into a
// complex baseband stream for receive-chain test scenarios (spec §8
// scenario 4), using the same golang.org/x/exp/rand source the
// teacher's own device/utils.go draws on for synthetic sample data.
package testchannel

import (
	"math"

	"golang.org/x/exp/rand"
)

// AWGN adds complex Gaussian noise to samples in place, at the sigma
// implied by the target SNR in dB relative to the signal's own mean
// power P: the I and Q components each get sigma =
// sqrt(P/2 * 10^(-SNR/10)), so the total noise power is
// P * 10^(-SNR/10).
func AWGN(samples []complex128, snrDB float64, src *rand.Rand) {
	if src == nil {
		src = rand.New(rand.NewSource(1))
	}
	power := meanPower(samples)
	sigma := math.Sqrt(power / 2 * math.Pow(10, -snrDB/10))
	for i, s := range samples {
		ni := src.NormFloat64() * sigma
		nq := src.NormFloat64() * sigma
		samples[i] = s + complex(ni, nq)
	}
}

func meanPower(samples []complex128) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += real(s)*real(s) + imag(s)*imag(s)
	}
	return sum / float64(len(samples))
}

// InsertAt copies burst into buf starting at offset, overwriting
// whatever was there (used to place a preamble-bearing frame inside a
// noise buffer for detection tests).
func InsertAt(buf, burst []complex128, offset int) {
	copy(buf[offset:], burst)
}
