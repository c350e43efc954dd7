package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/dot11a/ofdmphy/internal/logctx"
	"github.com/dot11a/ofdmphy/pkg/radio"
	"github.com/dot11a/ofdmphy/pkg/scheduler"
)

// Receiver owns a running receive-chain pipeline and exposes
// pause/resume/halt per spec §6.
type Receiver struct {
	ID       uuid.UUID
	pipeline *scheduler.Pipeline
	cancel   context.CancelFunc
	done     chan error
}

// New starts the receive pipeline against source, invoking callback
// with every cycle's decoded payload batch, and returns immediately.
func New(source radio.SampleSource, callback func([][]byte)) *Receiver {
	id := uuid.New()
	log := logctx.Session().With("session_id", id.String())

	pipeline := scheduler.New(source, func(payloads [][]byte) {
		if len(payloads) > 0 {
			log.Info("payloads decoded", "count", len(payloads))
		}
		callback(payloads)
	})

	ctx, cancel := context.WithCancel(context.Background())
	r := &Receiver{ID: id, pipeline: pipeline, cancel: cancel, done: make(chan error, 1)}

	go func() {
		r.done <- pipeline.Run(ctx)
	}()

	return r
}

// Pause blocks sample intake; the downstream pipeline drains naturally.
func (r *Receiver) Pause() { r.pipeline.Pause() }

// Resume releases a paused sample intake.
func (r *Receiver) Resume() { r.pipeline.Resume() }

// Halt stops the pipeline and waits for its run loop to exit.
func (r *Receiver) Halt() error {
	r.pipeline.Halt()
	r.cancel()
	return <-r.done
}
