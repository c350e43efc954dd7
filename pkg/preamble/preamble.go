// Package preamble holds the fixed, immutable-after-init tables that
// define the 802.11a preamble, pilot map, and active-subcarrier
// layout: the short/long training sequences (time and frequency
// domain), the pilot polarity sequence, and the 320-sample preamble
// burst shared verbatim by TX and RX.
package preamble

import "github.com/dot11a/ofdmphy/pkg/ofdmfft"

const (
	// STSPeriod is the length of one repeated short-training symbol.
	STSPeriod = 16
	// STSRepeats is how many STSPeriod-length repeats make up the STS.
	STSRepeats = 10
	// LTSGuard is the 32-sample guard interval preceding the two LTS symbols.
	LTSGuard = 32
	// LTSSymbolLen is the length of one long-training symbol body.
	LTSSymbolLen = 64
	// PreambleLen is the total preamble length: 10*16 + 32 + 2*64.
	PreambleLen = STSRepeats*STSPeriod + LTSGuard + 2*LTSSymbolLen

	// DataSubcarriers, PilotSubcarriers, NullSubcarriers partition the
	// 64 OFDM bins per symbol.
	DataSubcarriers  = 48
	PilotSubcarriers = 4
	NullSubcarriers  = ofdmfft.Size - DataSubcarriers - PilotSubcarriers

	// PolaritySequenceLen is the length of the pilot polarity sequence,
	// cycled modulo 127 by symbol index.
	PolaritySequenceLen = 127
)

// PilotIndices are the centered-layout bin positions of the four
// pilot subcarriers (k = -21, -7, 7, 21; index = k+32).
var PilotIndices = [PilotSubcarriers]int{11, 25, 39, 53}

// PilotNominal are the nominal (pre-polarity) pilot values at the
// positions in PilotIndices, in the same order.
var PilotNominal = [PilotSubcarriers]float64{+1, +1, +1, -1}

// DataIndices are the 48 centered-layout bin positions carrying data,
// i.e. all active bins except the 4 pilots.
var DataIndices [DataSubcarriers]int

// activeSet marks which of the 64 centered bins are active (data or
// pilot), leaving the DC bin and the upper/lower band edges null.
var activeSet [ofdmfft.Size]bool

func init() {
	for k := -26; k <= 26; k++ {
		if k == 0 {
			continue
		}
		activeSet[ofdmfft.CenteredIndex(k)] = true
	}
	di := 0
	for i := 0; i < ofdmfft.Size; i++ {
		if !activeSet[i] {
			continue
		}
		isPilot := false
		for _, p := range PilotIndices {
			if p == i {
				isPilot = true
				break
			}
		}
		if !isPilot {
			DataIndices[di] = i
			di++
		}
	}
}

// IsActive reports whether centered bin i (0..63) carries data or a
// pilot (as opposed to being one of the 12 null bins).
func IsActive(i int) bool { return activeSet[i] }

// PilotPolarity is the fixed length-127 pilot polarity sequence
// (values +1/-1), identical on TX and RX, indexed modulo 127 by
// OFDM symbol index. It is the standard 802.11a polarity sequence
// generated by the scrambler-style length-7 LFSR with seed 1111111,
// reinterpreted as a +1/-1 sequence (first four entries +1,+1,+1,+1).
var PilotPolarity [PolaritySequenceLen]float64

func init() {
	// Same LFSR structure as the data scrambler (x^7 + x^4 + 1) but
	// seeded all-ones per 802.11a Annex, used only to generate the
	// polarity sequence -- not related to payload scrambling state.
	state := uint8(0x7F)
	for i := 0; i < PolaritySequenceLen; i++ {
		bit := (state & 1) ^ ((state >> 3) & 1)
		if bit == 0 {
			PilotPolarity[i] = +1
		} else {
			PilotPolarity[i] = -1
		}
		state = (state >> 1) | (bit << 6)
	}
	// The standard fixes the first four polarities to +1,+1,+1,+1
	// regardless of the generator's transient.
	PilotPolarity[0], PilotPolarity[1], PilotPolarity[2], PilotPolarity[3] = 1, 1, 1, 1
}

// stsFreqNonzero are the nonzero centered-layout STS frequency
// coefficients, scaled by sqrt(13/6), at subcarrier multiples of 4 in
// [-24,24]. Keyed by signed subcarrier number k.
var stsFreqNonzero = map[int]complex128{
	-24: 1 + 1i, -20: -1 - 1i, -16: 1 + 1i, -12: -1 - 1i,
	-8: -1 - 1i, -4: 1 + 1i, 4: -1 - 1i, 8: -1 - 1i,
	12: 1 + 1i, 16: 1 + 1i, 20: 1 + 1i, 24: 1 + 1i,
}

const stsScale = 1.4719601 // sqrt(13/6)

// ltsFreqValues are the LTS frequency-domain values for k=-26..26,
// index i corresponds to k = i-26. DC (i=26) is zero.
var ltsFreqValues = [53]float64{
	1, -1, -1, 1, 1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, -1, -1, 1, 1, -1, 1, -1, 1, 1, 1, 1,
	0,
	1, -1, -1, 1, 1, -1, 1, -1, 1, -1, -1, -1, -1, -1, 1, 1, -1, -1, 1, -1, 1, -1, 1, 1, 1, 1,
}

// STSFreq and LTSFreq are the centered-layout (64-bin) frequency
// domain training sequences.
var STSFreq [ofdmfft.Size]complex128
var LTSFreq [ofdmfft.Size]complex128

func init() {
	for k, v := range stsFreqNonzero {
		STSFreq[ofdmfft.CenteredIndex(k)] = complex(stsScale*real(v), stsScale*imag(v))
	}
	for i, v := range ltsFreqValues {
		k := i - 26
		LTSFreq[ofdmfft.CenteredIndex(k)] = complex(v, 0)
	}
}

// STS is one 16-sample period of the short training symbol (time
// domain), and LTS is the 64-sample long training symbol (time
// domain). Both are derived once, at init, from their frequency
// tables via the shared ofdmfft inverse transform.
var STS [STSPeriod]complex128
var LTS [LTSSymbolLen]complex128

func init() {
	full := LTSFreq
	ofdmfft.Inverse(&full)
	copy(LTS[:], full[:])

	// The STS frequency table is nonzero only at multiples of 4, so
	// its 64-point inverse transform is exactly periodic with period
	// 16; take one period.
	stsFull := STSFreq
	ofdmfft.Inverse(&stsFull)
	copy(STS[:], stsFull[:STSPeriod])
}

// Samples is the fixed 320-sample preamble burst: 10 repeats of STS,
// a 32-sample guard, then two LTS symbols.
var Samples [PreambleLen]complex128

func init() {
	n := 0
	for r := 0; r < STSRepeats; r++ {
		copy(Samples[n:], STS[:])
		n += STSPeriod
	}
	// Guard: last 32 samples of the (cyclic) LTS symbol.
	copy(Samples[n:], LTS[LTSSymbolLen-LTSGuard:])
	n += LTSGuard
	copy(Samples[n:], LTS[:])
	n += LTSSymbolLen
	copy(Samples[n:], LTS[:])
	n += LTSSymbolLen
}
