// Package radio adapts a callback-driven audio hardware device
// abstraction, in the shape of the teacher's own device.Device
// (Start(func([]int32,[]int32))), into the blocking pull/push
// SampleSource/SampleSink contract of spec §6, treating two real PCM
// channels as the I and Q rails of a complex baseband stream.
package radio

import (
	"errors"
	"sync"

	"github.com/dot11a/ofdmphy/pkg/phyerr"
)

// Scale is the Q15 fixed-point full-scale divisor used to convert
// between int32 PCM samples and the [-1,1] float64 range, the same
// convention the teacher's fixpoint.ToFloat/FromFloat use.
const Scale = 32768.0

// SampleSource is the radio-input contract: Fetch blocks until n
// complex samples are available, or returns an error.
type SampleSource interface {
	Fetch(n int) ([]complex128, error)
}

// SampleSink is the radio-output contract: SendBurst queues
// asynchronously, SendBurstSync blocks until the hardware acknowledges
// burst-end.
type SampleSink interface {
	SendBurst(samples []complex128)
	SendBurstSync(samples []complex128) error
}

// OverflowHandler receives a report whenever the receive ring drops
// samples because the caller isn't draining fast enough.
type OverflowHandler func(phyerr.Kind)

// StereoDevice is a hardware or simulated backend presenting two real
// PCM channels (I and Q) via a single callback, the two-channel
// generalization of the teacher's device.Device mono contract.
type StereoDevice interface {
	Start(callback func(inI, inQ, outI, outQ []int32))
	Stop()
}

// IQAdapter wraps a StereoDevice's callback-driven I/Q channel pair as
// a complex-sample SampleSource/SampleSink.
type IQAdapter struct {
	dev        StereoDevice
	onOverflow OverflowHandler

	rx chan complex128

	txMu    sync.Mutex
	txQueue [][]complex128
	ackCh   chan struct{}
}

// NewIQAdapter wraps dev with a receive ring of ringSize samples.
func NewIQAdapter(dev StereoDevice, ringSize int, onOverflow OverflowHandler) *IQAdapter {
	return &IQAdapter{
		dev:        dev,
		onOverflow: onOverflow,
		rx:         make(chan complex128, ringSize),
	}
}

// Start begins streaming; must be called once at session open.
func (a *IQAdapter) Start() {
	a.dev.Start(a.callback)
}

// Stop ends streaming; must be called at session close.
func (a *IQAdapter) Stop() {
	a.dev.Stop()
}

func (a *IQAdapter) callback(inI, inQ, outI, outQ []int32) {
	for n := 0; n < len(inI); n++ {
		s := complex(float64(inI[n])/Scale, float64(inQ[n])/Scale)
		select {
		case a.rx <- s:
		default:
			if a.onOverflow != nil {
				a.onOverflow(phyerr.RadioOverflow)
			}
		}
	}

	a.txMu.Lock()
	burstEnded := a.fillOutputLocked(outI, outQ)
	if burstEnded && a.ackCh != nil {
		close(a.ackCh)
		a.ackCh = nil
	}
	a.txMu.Unlock()
}

// fillOutputLocked drains queued bursts into outI/outQ, zero-padding
// any remainder, and reports whether the queue is empty afterwards.
func (a *IQAdapter) fillOutputLocked(outI, outQ []int32) (emptied bool) {
	n := 0
	for n < len(outI) && len(a.txQueue) > 0 {
		cur := a.txQueue[0]
		take := len(outI) - n
		if take > len(cur) {
			take = len(cur)
		}
		for i := 0; i < take; i++ {
			outI[n+i] = int32(real(cur[i]) * Scale)
			outQ[n+i] = int32(imag(cur[i]) * Scale)
		}
		n += take
		if take == len(cur) {
			a.txQueue = a.txQueue[1:]
		} else {
			a.txQueue[0] = cur[take:]
		}
	}
	for i := n; i < len(outI); i++ {
		outI[i] = 0
		outQ[i] = 0
	}
	return len(a.txQueue) == 0
}

// Fetch blocks until n complex samples have arrived from the device.
func (a *IQAdapter) Fetch(n int) ([]complex128, error) {
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		s, ok := <-a.rx
		if !ok {
			return nil, errors.New("radio: sample source closed")
		}
		out[i] = s
	}
	return out, nil
}

// SendBurst queues samples for asynchronous transmission.
func (a *IQAdapter) SendBurst(samples []complex128) {
	a.txMu.Lock()
	a.txQueue = append(a.txQueue, samples)
	a.txMu.Unlock()
}

// SendBurstSync queues samples and blocks until the device callback
// reports the transmit queue has drained past this burst.
func (a *IQAdapter) SendBurstSync(samples []complex128) error {
	a.txMu.Lock()
	ack := make(chan struct{})
	a.ackCh = ack
	a.txQueue = append(a.txQueue, samples)
	a.txMu.Unlock()
	<-ack
	return nil
}
