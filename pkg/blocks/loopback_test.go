package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/dot11a/ofdmphy/pkg/blocks"
	"github.com/dot11a/ofdmphy/pkg/phyerr"
	"github.com/dot11a/ofdmphy/pkg/preamble"
	"github.com/dot11a/ofdmphy/pkg/rate"
	"github.com/dot11a/ofdmphy/pkg/txchain"
)

// decodeOneBurst drives a fresh six-stage receive chain over a single
// complex baseband burst and returns whatever payloads come out.
func decodeOneBurst(t *testing.T, burst []complex128) [][]byte {
	t.Helper()
	fd := blocks.NewFrameDetector()
	ts := blocks.NewTimingSync()
	fft := blocks.NewFFTSymbols()
	ce := blocks.NewChannelEst()
	pt := blocks.NewPhaseTracker()
	var drops []phyerr.Kind
	dec := blocks.NewFrameDecoder(func(k phyerr.Kind) { drops = append(drops, k) })

	out := dec.Work(pt.Work(ce.Work(fft.Work(ts.Work(fd.Work(burst))))))
	if len(out) == 0 && len(drops) > 0 {
		t.Logf("frame dropped: %v", drops)
	}
	return out
}

func TestLoopbackBPSKHelloWorld(t *testing.T) {
	burst, err := txchain.BuildFrame([]byte("Hello World!"), rate.R1_2BPSK)
	assert.NoError(t, err)

	payloads := decodeOneBurst(t, burst)
	assert.Len(t, payloads, 1)
	if len(payloads) == 1 {
		assert.Equal(t, []byte("Hello World!"), payloads[0])
	}
}

func TestLoopbackEveryRateZeroNoise(t *testing.T) {
	src := rand.New(rand.NewSource(123))
	for _, r := range rate.All() {
		payload := make([]byte, 64)
		for i := range payload {
			payload[i] = byte(src.Intn(256))
		}

		burst, err := txchain.BuildFrame(payload, r)
		assert.NoError(t, err)

		payloads := decodeOneBurst(t, burst)
		assert.Len(t, payloads, 1, "rate %v", r)
		if len(payloads) == 1 {
			assert.Equal(t, payload, payloads[0], "rate %v", r)
		}
	}
}

func TestCRCMismatchDropsFrame(t *testing.T) {
	burst, err := txchain.BuildFrame([]byte("integrity check"), rate.R1_2QPSK)
	assert.NoError(t, err)

	// Blank the second payload OFDM symbol (80 samples after the
	// preamble and the SIGNAL symbol), leaving preamble detection and
	// header decode untouched. Its 48 information bits are lost, which
	// the convolutional code cannot recover, so the CRC must fail.
	start := preamble.PreambleLen + 2*80
	for i := start; i < start+80; i++ {
		burst[i] = 0
	}

	payloads := decodeOneBurst(t, burst)
	assert.Empty(t, payloads)
}
