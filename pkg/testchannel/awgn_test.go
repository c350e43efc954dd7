package testchannel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/dot11a/ofdmphy/pkg/blocks"
	"github.com/dot11a/ofdmphy/pkg/phyerr"
	"github.com/dot11a/ofdmphy/pkg/rate"
	"github.com/dot11a/ofdmphy/pkg/txchain"
)

func TestAWGNRaisesSigmaWithLowerSNR(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	low := make([]complex128, 1000)
	high := make([]complex128, 1000)
	for i := range low {
		low[i] = 1 + 0i
		high[i] = 1 + 0i
	}
	AWGN(low, 0, src)
	AWGN(high, 20, src)

	var lowPower, highPower float64
	for i := range low {
		ln := low[i] - 1
		hn := high[i] - 1
		lowPower += real(ln)*real(ln) + imag(ln)*imag(ln)
		highPower += real(hn)*real(hn) + imag(hn)*imag(hn)
	}
	assert.Greater(t, lowPower, highPower)
}

// TestLoopbackSurvivesModerateNoise exercises spec §8 scenario 4: a
// frame embedded in a noise floor should still detect and decode at a
// generous SNR.
func TestLoopbackSurvivesModerateNoise(t *testing.T) {
	src := rand.New(rand.NewSource(42))
	burst, err := txchain.BuildFrame([]byte("noise resilient payload"), rate.R1_2BPSK)
	assert.NoError(t, err)

	buf := make([]complex128, len(burst)+2000)
	InsertAt(buf, burst, 500)
	AWGN(buf, 20, src)

	fd := blocks.NewFrameDetector()
	ts := blocks.NewTimingSync()
	fft := blocks.NewFFTSymbols()
	ce := blocks.NewChannelEst()
	pt := blocks.NewPhaseTracker()
	var drops []phyerr.Kind
	dec := blocks.NewFrameDecoder(func(k phyerr.Kind) { drops = append(drops, k) })

	out := dec.Work(pt.Work(ce.Work(fft.Work(ts.Work(fd.Work(buf))))))
	assert.Len(t, out, 1, "drops: %v", drops)
	if len(out) == 1 {
		assert.Equal(t, []byte("noise resilient payload"), out[0])
	}
}
