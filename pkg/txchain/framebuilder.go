// Package txchain builds a complete transmit burst from a payload and
// a rate: PLCP header, service/CRC framing, scrambling, convolutional
// encoding, puncturing, interleaving, modulation, subcarrier mapping,
// IFFT, cyclic prefix, and preamble prepend -- the inverse of the
// receive chain in pkg/blocks, built straight-line per spec §4.7
// rather than as a pipelined block graph.
package txchain

import (
	"github.com/dot11a/ofdmphy/pkg/bits"
	"github.com/dot11a/ofdmphy/pkg/fcs"
	"github.com/dot11a/ofdmphy/pkg/interleaver"
	"github.com/dot11a/ofdmphy/pkg/ofdmfft"
	"github.com/dot11a/ofdmphy/pkg/ppdu"
	"github.com/dot11a/ofdmphy/pkg/preamble"
	"github.com/dot11a/ofdmphy/pkg/puncture"
	"github.com/dot11a/ofdmphy/pkg/qam"
	"github.com/dot11a/ofdmphy/pkg/rate"
	"github.com/dot11a/ofdmphy/pkg/scrambler"
	"github.com/dot11a/ofdmphy/pkg/viterbi"
)

const headerRate = rate.R1_2BPSK
const cyclicPrefixLen = 16
const symbolLen = 64

// tailBits is the 6-bit zero tail that forces the K=7 encoder back to
// state zero at the end of every coded block (header and payload).
const tailBits = viterbi.ConstraintLength - 1

// BuildFrame builds one complete transmit burst for payload at rate r:
// the fixed 320-sample preamble, the BPSK rate-1/2 SIGNAL symbol, and
// the payload symbols at r.
func BuildFrame(payload []byte, r rate.Rate) ([]complex128, error) {
	p := rate.Of(r)
	numSymbols := ppdu.NumSymbolsFor(len(payload), p.Dbps())

	headerSamples := buildHeaderSymbol(r, len(payload))
	payloadSamples := buildPayloadSymbols(payload, r, numSymbols)

	out := make([]complex128, 0, preamble.PreambleLen+len(headerSamples)+len(payloadSamples))
	out = append(out, preamble.Samples[:]...)
	out = append(out, headerSamples...)
	out = append(out, payloadSamples...)
	return out, nil
}

// buildHeaderSymbol encodes the 18-bit SIGNAL word (rate+length+parity,
// one reserved bit, per spec §4.6's decoded-bit-count) at BPSK rate-1/2
// into one 80-sample OFDM symbol.
func buildHeaderSymbol(r rate.Rate, length int) []complex128 {
	word := ppdu.PackRateLengthParity(rate.Of(r).RateField, length)

	info := make([]byte, 18+tailBits)
	for i := 0; i < 17; i++ {
		info[i] = byte((word >> i) & 1)
	}
	// info[17] is the standard's reserved bit, always zero.

	coded := viterbi.Encode(info)
	interleaved := interleaver.For(headerRate).Interleave(coded)
	symbols := qam.NewModulator(headerRate).Modulate(interleaved)

	return symbolsToSamples(symbols, 0)
}

// buildPayloadSymbols composes service||payload||CRC-32, pads to a
// multiple of dbps, scrambles, convolutionally encodes with a 6-bit
// tail, punctures, interleaves, modulates, and maps onto numSymbols
// OFDM symbols.
func buildPayloadSymbols(payload []byte, r rate.Rate, numSymbols int) []complex128 {
	p := rate.Of(r)

	var service [2]byte
	crc := fcs.Compute(service, payload)

	body := make([]byte, 0, 2+len(payload)+4)
	body = append(body, service[:]...)
	body = append(body, payload...)
	body = append(body, crc[:]...)

	infoBits := bits.FromBytes(body)

	totalInfoBits := numSymbols * p.Dbps()
	padded := make([]byte, totalInfoBits-tailBits)
	copy(padded, infoBits)
	// Remaining positions in padded are zero-filled padding.

	scrambler.New().Apply(padded)

	withTail := make([]byte, totalInfoBits)
	copy(withTail, padded)
	// Trailing tailBits positions stay zero, forcing the encoder to state 0.

	coded := viterbi.Encode(withTail)
	punctured := puncture.Puncture(coded, r)
	interleaved := interleaver.For(r).InterleaveBlocks(punctured)
	symbols := qam.NewModulator(r).Modulate(interleaved)

	return symbolsToSamples(symbols, 1)
}

// symbolsToSamples maps a flat stream of modulated QAM symbols onto
// consecutive 64-bin OFDM symbols (inserting pilots and nulls per the
// active map), transforms each to the time domain, and prepends each
// symbol's cyclic prefix. symbolIndex is the polarity-sequence index
// of the first symbol in symbols.
func symbolsToSamples(symbols []complex128, symbolIndex int) []complex128 {
	out := make([]complex128, 0, (len(symbols)/preamble.DataSubcarriers)*(symbolLen+cyclicPrefixLen))

	for off := 0; off+preamble.DataSubcarriers <= len(symbols); off += preamble.DataSubcarriers {
		var freq [symbolLen]complex128
		for i, idx := range preamble.DataIndices {
			freq[idx] = symbols[off+i]
		}
		for i, idx := range preamble.PilotIndices {
			pol := preamble.PilotPolarity[symbolIndex%preamble.PolaritySequenceLen]
			freq[idx] = complex(preamble.PilotNominal[i]*pol, 0)
		}
		symbolIndex++

		ofdmfft.Inverse(&freq)

		out = append(out, freq[symbolLen-cyclicPrefixLen:]...)
		out = append(out, freq[:]...)
	}
	return out
}
