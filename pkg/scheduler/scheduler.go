// Package scheduler orchestrates the six receive-chain blocks behind
// a barrier-style WAKE/DONE rendezvous per cycle: hand a sample chunk
// to stage 1, run every stage concurrently on its current input, wait
// for all six to finish, then pairwise swap each stage's output into
// the next stage's input for the following cycle (spec §5). The WAKE
// fan-out and DONE rendezvous are built from the teacher's own
// async.Job/async.Gather0 primitives rather than hand-rolled condvars
// -- spec §9 treats either as an acceptable implementation of the
// same rendezvous semantics.
package scheduler

import (
	"context"
	"sync"

	"github.com/dot11a/ofdmphy/internal/gate"
	"github.com/dot11a/ofdmphy/internal/logctx"
	"github.com/dot11a/ofdmphy/internal/rtprio"
	"github.com/dot11a/ofdmphy/internal/telemetry"
	"github.com/dot11a/ofdmphy/pkg/async"
	"github.com/dot11a/ofdmphy/pkg/blocks"
	"github.com/dot11a/ofdmphy/pkg/phyerr"
	"github.com/dot11a/ofdmphy/pkg/sample"
)

// SampleSource is the minimal radio-input contract the scheduler
// drives: Fetch blocks until n samples are available, or returns an
// error (spec §6 SampleSource).
type SampleSource interface {
	Fetch(n int) ([]complex128, error)
}

// ChunkSize is the default number of samples the scheduler requests
// from the radio per cycle (spec §5: "~4096-8192 samples").
const ChunkSize = 4096

// PayloadSink receives the batch of payloads decoded during one cycle.
type PayloadSink func(payloads [][]byte)

// Pipeline drives the six receive-chain blocks against a SampleSource
// and delivers decoded payloads to a PayloadSink.
type Pipeline struct {
	source SampleSource
	sink   PayloadSink
	gate   *gate.Gate

	fd  *blocks.FrameDetector
	ts  *blocks.TimingSync
	fft *blocks.FFTSymbols
	ce  *blocks.ChannelEst
	pt  *blocks.PhaseTracker
	dec *blocks.FrameDecoder

	in2 []sample.Tagged
	in3 []sample.Vector64
	in4 []sample.Vector64
	in5 []sample.Vector64
	in6 []sample.Vector48

	mu   sync.Mutex
	halt bool
}

// New builds an idle Pipeline. Run attempts to raise its own OS thread
// to real-time scheduling; a failure there is logged and never fatal.
// The per-cycle stage goroutines started by cycle run at normal
// priority.
func New(source SampleSource, sink PayloadSink) *Pipeline {
	p := &Pipeline{
		source: source,
		sink:   sink,
		gate:   gate.New(),
		fd:     blocks.NewFrameDetector(),
		ts:     blocks.NewTimingSync(),
		fft:    blocks.NewFFTSymbols(),
		ce:     blocks.NewChannelEst(),
		pt:     blocks.NewPhaseTracker(),
	}
	p.dec = blocks.NewFrameDecoder(func(k phyerr.Kind) {
		telemetry.RecordDrop(k)
		if k == phyerr.CRCMismatch {
			logctx.Stage("framedecoder").Info("frame dropped", "kind", k.String())
		} else if k.Local() {
			logctx.Stage("framedecoder").Debug("frame dropped", "kind", k.String())
		} else {
			logctx.Stage("framedecoder").Warn("frame dropped", "kind", k.String())
		}
	})
	return p
}

// Pause blocks stage-1 sample intake; the downstream pipeline drains naturally.
func (p *Pipeline) Pause() { p.gate.Pause() }

// Resume releases a paused sample intake loop.
func (p *Pipeline) Resume() { p.gate.Resume() }

// Halt stops the run loop after its current cycle.
func (p *Pipeline) Halt() {
	p.mu.Lock()
	p.halt = true
	p.mu.Unlock()
}

func (p *Pipeline) halted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.halt
}

// Run drives cycles until Halt is called or ctx is cancelled, or the
// SampleSource returns an error.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := rtprio.Raise(rtprio.DefaultPriority); err != nil {
		logctx.Scheduler().Warn("real-time priority unavailable", "error", err)
	}

	for {
		if p.halted() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p.gate.Wait()

		chunk, err := p.source.Fetch(ChunkSize)
		if err != nil {
			telemetry.RecordDrop(phyerr.RadioOverflow)
			logctx.Scheduler().Error("sample source fetch failed", "error", err)
			return err
		}

		payloads := p.cycle(chunk)
		if p.sink != nil {
			p.sink(payloads)
		}
	}
}

// cycle runs one WAKE/DONE barrier: every stage executes on its
// current input concurrently, then outputs swap into the next stage's
// input for the following cycle.
func (p *Pipeline) cycle(chunk []complex128) [][]byte {
	var out1 []sample.Tagged
	var out2 []sample.Vector64
	var out3 []sample.Vector64
	var out4 []sample.Vector64
	var out5 []sample.Vector48
	var payloads [][]byte

	done := async.Gather0(
		async.Job(func() { out1 = p.fd.Work(chunk) }),
		async.Job(func() { out2 = p.ts.Work(p.in2) }),
		async.Job(func() { out3 = p.fft.Work(p.in3) }),
		async.Job(func() { out4 = p.ce.Work(p.in4) }),
		async.Job(func() { out5 = p.pt.Work(p.in5) }),
		async.Job(func() { payloads = p.dec.Work(p.in6) }),
	)
	async.Await0(done)

	p.in2, p.in3, p.in4, p.in5, p.in6 = out1, out2, out3, out4, out5

	telemetry.SetQueueDepth("timingsync", len(p.in2))
	telemetry.SetQueueDepth("fftsymbols", len(p.in3))
	telemetry.SetQueueDepth("channelest", len(p.in4))
	telemetry.SetQueueDepth("phasetracker", len(p.in5))
	telemetry.SetQueueDepth("framedecoder", len(p.in6))

	for range payloads {
		telemetry.RecordFrameDecoded()
	}
	return payloads
}
