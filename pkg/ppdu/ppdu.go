// Package ppdu defines the PLCP header, PPDU container, and the
// receiver-side per-frame accumulator (FrameData).
package ppdu

import "github.com/dot11a/ofdmphy/pkg/rate"

// MaxFrameSize is the largest payload this implementation will
// accept (spec §7 LengthOutOfRange).
const MaxFrameSize = 2000

// Header is the 802.11a PLCP header: rate, payload length in bytes,
// the number of OFDM symbols the payload occupies at that rate, and
// the 16-bit service field (always zero on TX).
type Header struct {
	Rate       rate.Rate
	Length     int
	NumSymbols int
	Service    uint16
}

// NumSymbolsFor computes ceil((16 + 8*(length+4) + 6) / dbps) per
// spec §4.6: 16 service bits, payload+CRC bytes, 6 tail bits.
func NumSymbolsFor(length, dbps int) int {
	bits := 16 + 8*(length+4) + 6
	return (bits + dbps - 1) / dbps
}

// PackRateLengthParity packs the 4-bit rate field and 12-bit length
// into bits[0:16] (rate in bits[0:4], length in bits[4:16]) and
// returns bit 16 set so the full 17-bit word has even parity.
func PackRateLengthParity(rateField, length int) (word uint32) {
	word = uint32(rateField&0xF) | uint32(length&0xFFF)<<4
	ones := 0
	for i := 0; i < 16; i++ {
		if word&(1<<i) != 0 {
			ones++
		}
	}
	if ones%2 != 0 {
		word |= 1 << 16
	}
	return word
}

// CheckParity reports whether the 17-bit rate+length+parity word has
// even parity.
func CheckParity(word uint32) bool {
	ones := 0
	for i := 0; i < 17; i++ {
		if word&(1<<i) != 0 {
			ones++
		}
	}
	return ones%2 == 0
}

// UnpackRateLength splits a verified 17-bit word back into the
// 4-bit rate field and 12-bit length.
func UnpackRateLength(word uint32) (rateField, length int) {
	rateField = int(word & 0xF)
	length = int((word >> 4) & 0xFFF)
	return
}

// PPDU is the complete physical-layer frame: header plus payload bytes.
type PPDU struct {
	Header  Header
	Payload []byte
}

// FrameData is the receiver-side accumulator for one in-progress frame.
type FrameData struct {
	Active              bool
	Params              rate.Params
	Header              Header
	ExpectedSampleCount int // total complex bins expected (NumSymbols*48)
	SamplesCopied       int
	Buffer              []complex128
}

// Reset clears the accumulator to its zero state.
func (f *FrameData) Reset() {
	*f = FrameData{}
}

// Init arms the accumulator to collect header.NumSymbols*48 bins.
func (f *FrameData) Init(h Header, p rate.Params) {
	f.Active = true
	f.Params = p
	f.Header = h
	f.ExpectedSampleCount = h.NumSymbols * 48
	f.SamplesCopied = 0
	f.Buffer = make([]complex128, 0, f.ExpectedSampleCount)
}

// Append copies up to 48 bins into the accumulator and reports
// whether the frame is now fully accumulated.
func (f *FrameData) Append(bins []complex128) (complete bool) {
	f.Buffer = append(f.Buffer, bins...)
	f.SamplesCopied += len(bins)
	return f.SamplesCopied >= f.ExpectedSampleCount
}
