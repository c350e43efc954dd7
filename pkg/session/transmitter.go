package session

import (
	"github.com/dot11a/ofdmphy/internal/logctx"
	"github.com/dot11a/ofdmphy/pkg/radio"
	"github.com/dot11a/ofdmphy/pkg/rate"
	"github.com/dot11a/ofdmphy/pkg/txchain"
)

// Transmitter builds and synchronously transmits frames through a
// SampleSink, applying the configured transmit amplitude.
type Transmitter struct {
	sink radio.SampleSink
	amp  float64
}

// NewTransmitter returns a Transmitter bound to sink, scaling every
// burst by cfg.TxAmp.
func NewTransmitter(sink radio.SampleSink, cfg Config) *Transmitter {
	amp := cfg.TxAmp
	if amp == 0 {
		amp = 1.0
	}
	return &Transmitter{sink: sink, amp: amp}
}

// SendFrame builds one PPDU at rate r from payload and blocks until
// the hardware acknowledges burst-end.
func (t *Transmitter) SendFrame(payload []byte, r rate.Rate) error {
	samples, err := txchain.BuildFrame(payload, r)
	if err != nil {
		logctx.Session().Error("frame build failed", "error", err)
		return err
	}
	if t.amp != 1.0 {
		for i := range samples {
			samples[i] *= complex(t.amp, 0)
		}
	}
	return t.sink.SendBurstSync(samples)
}
