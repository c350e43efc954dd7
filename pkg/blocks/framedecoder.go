package blocks

import (
	"github.com/dot11a/ofdmphy/pkg/bits"
	"github.com/dot11a/ofdmphy/pkg/fcs"
	"github.com/dot11a/ofdmphy/pkg/interleaver"
	"github.com/dot11a/ofdmphy/pkg/phyerr"
	"github.com/dot11a/ofdmphy/pkg/ppdu"
	"github.com/dot11a/ofdmphy/pkg/puncture"
	"github.com/dot11a/ofdmphy/pkg/qam"
	"github.com/dot11a/ofdmphy/pkg/rate"
	"github.com/dot11a/ofdmphy/pkg/sample"
	"github.com/dot11a/ofdmphy/pkg/scrambler"
	"github.com/dot11a/ofdmphy/pkg/viterbi"
)

// headerRate is the rate the SIGNAL symbol is always carried at.
const headerRate = rate.R1_2BPSK

// FrameDecoder consumes 48-bin data-subcarrier symbols, decodes the
// PLCP header, accumulates and decodes the payload, and verifies its
// CRC-32 before releasing it.
type FrameDecoder struct {
	acc    ppdu.FrameData
	onDrop func(phyerr.Kind)
}

// NewFrameDecoder returns an idle FrameDecoder. onDrop, if non-nil, is
// invoked with the error kind whenever a frame is dropped (spec §7);
// it is the hook telemetry/logging wire into.
func NewFrameDecoder(onDrop func(phyerr.Kind)) *FrameDecoder {
	return &FrameDecoder{onDrop: onDrop}
}

func (d *FrameDecoder) drop(k phyerr.Kind) {
	if d.onDrop != nil {
		d.onDrop(k)
	}
}

func (d *FrameDecoder) Work(in []sample.Vector48) [][]byte {
	var out [][]byte
	for _, sym := range in {
		if d.acc.Active {
			if d.acc.Append(sym.V[:]) {
				if payload, ok := d.decodePayload(); ok {
					out = append(out, payload)
				}
				d.acc.Reset()
			}
		}

		if sym.Tag == sample.TagStartOfFrame {
			if hdr, ok := d.decodeHeader(sym.V); ok {
				d.acc.Init(hdr, rate.Of(hdr.Rate))
			}
		}
	}
	return out
}

// decodeHeader demodulates, deinterleaves, and Viterbi-decodes the
// SIGNAL symbol, then validates parity, rate field, and length.
func (d *FrameDecoder) decodeHeader(bins [48]complex128) (ppdu.Header, bool) {
	demod := qam.NewDemodulator(headerRate)
	soft := demod.Demodulate(bins[:])
	deinterleaved := interleaver.For(headerRate).Deinterleave(soft)
	decoded := viterbi.Decode(deinterleaved)
	if len(decoded) < 18 {
		d.drop(phyerr.InvalidHeaderParity)
		return ppdu.Header{}, false
	}

	var word uint32
	for i := 0; i < 17; i++ {
		word |= uint32(decoded[i]&1) << i
	}
	if !ppdu.CheckParity(word) {
		d.drop(phyerr.InvalidHeaderParity)
		return ppdu.Header{}, false
	}

	rateField, length := ppdu.UnpackRateLength(word)
	r, ok := rate.FromField(rateField)
	if !ok {
		d.drop(phyerr.InvalidRateField)
		return ppdu.Header{}, false
	}
	if length < 0 || length > ppdu.MaxFrameSize {
		d.drop(phyerr.LengthOutOfRange)
		return ppdu.Header{}, false
	}

	params := rate.Of(r)
	numSymbols := ppdu.NumSymbolsFor(length, params.Dbps())
	return ppdu.Header{Rate: r, Length: length, NumSymbols: numSymbols}, true
}

// decodePayload reverses the FrameBuilder body pipeline: demodulate,
// deinterleave, depuncture, Viterbi-decode, descramble, then verify
// the CRC-32 over service||payload.
func (d *FrameDecoder) decodePayload() ([]byte, bool) {
	h := d.acc.Header
	p := d.acc.Params

	demod := qam.NewDemodulator(h.Rate)
	soft := demod.Demodulate(d.acc.Buffer)

	deinterleaved := interleaver.For(h.Rate).DeinterleaveBlocks(soft)

	totalInfoBits := h.NumSymbols * p.Dbps()
	unpuncturedLen := totalInfoBits * 2
	depunctured := puncture.Depuncture(deinterleaved, h.Rate, unpuncturedLen)

	decoded := viterbi.Decode(depunctured)
	if len(decoded) < totalInfoBits {
		d.drop(phyerr.CRCMismatch)
		return nil, false
	}

	descrambler := scrambler.New()
	descrambler.Apply(decoded)

	serviceBits := decoded[0:16]
	payloadBits := decoded[16 : 16+8*h.Length]
	crcEnd := 16 + 8*h.Length + 32
	if crcEnd > len(decoded) {
		d.drop(phyerr.CRCMismatch)
		return nil, false
	}
	crcBits := decoded[16+8*h.Length : crcEnd]

	serviceBytes := bits.ToBytes(serviceBits)
	payloadBytes := bits.ToBytes(payloadBits)
	crcBytes := bits.ToBytes(crcBits)

	var svc [2]byte
	copy(svc[:], serviceBytes)
	var crc [4]byte
	copy(crc[:], crcBytes)

	if !fcs.Verify(svc, payloadBytes, crc) {
		d.drop(phyerr.CRCMismatch)
		return nil, false
	}
	return payloadBytes, true
}
