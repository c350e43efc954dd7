// loopback-demo builds one frame, feeds it straight into the receive
// chain, and prints whatever payloads come out -- the harness for
// spec §8 scenario 1, wired with pflag the way the teacher's cmd/
// harnesses parse their own flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dot11a/ofdmphy/internal/logctx"
	"github.com/dot11a/ofdmphy/pkg/blocks"
	"github.com/dot11a/ofdmphy/pkg/phyerr"
	"github.com/dot11a/ofdmphy/pkg/rate"
	"github.com/dot11a/ofdmphy/pkg/txchain"
)

func main() {
	payload := pflag.StringP("payload", "p", "Hello World", "payload text to transmit")
	rateName := pflag.StringP("rate", "r", "bpsk12", "rate: bpsk12, qpsk12, qam16-12, qam64-34, ...")
	pflag.Parse()

	r, ok := rateByFlag[*rateName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown rate %q\n", *rateName)
		os.Exit(1)
	}

	burst, err := txchain.BuildFrame([]byte(*payload), r)
	if err != nil {
		logctx.Session().Error("build failed", "error", err)
		os.Exit(1)
	}

	payloads := runReceiveChain(burst)
	for _, p := range payloads {
		fmt.Printf("decoded: %q\n", string(p))
	}
}

var rateByFlag = map[string]rate.Rate{
	"bpsk12":   rate.R1_2BPSK,
	"bpsk23":   rate.R2_3BPSK,
	"bpsk34":   rate.R3_4BPSK,
	"qpsk12":   rate.R1_2QPSK,
	"qpsk23":   rate.R2_3QPSK,
	"qpsk34":   rate.R3_4QPSK,
	"qam16-12": rate.R1_2QAM16,
	"qam16-23": rate.R2_3QAM16,
	"qam16-34": rate.R3_4QAM16,
	"qam64-23": rate.R2_3QAM64,
	"qam64-34": rate.R3_4QAM64,
}

// runReceiveChain drives the six blocks directly over one in-memory
// burst, without a scheduler or radio -- the single-cycle shape of
// spec §8's loopback scenarios.
func runReceiveChain(burst []complex128) [][]byte {
	fd := blocks.NewFrameDetector()
	ts := blocks.NewTimingSync()
	fft := blocks.NewFFTSymbols()
	ce := blocks.NewChannelEst()
	pt := blocks.NewPhaseTracker()
	dec := blocks.NewFrameDecoder(func(k phyerr.Kind) {
		logctx.Stage("framedecoder").Debug("dropped", "kind", k.String())
	})

	tagged := fd.Work(burst)
	synced := ts.Work(tagged)
	symbols := fft.Work(synced)
	equalized := ce.Work(symbols)
	data := pt.Work(equalized)
	return dec.Work(data)
}
