package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dot11a/ofdmphy/pkg/rate"
	"github.com/dot11a/ofdmphy/pkg/scheduler"
	"github.com/dot11a/ofdmphy/pkg/txchain"
)

// chunkedSource serves a fixed sample buffer in fixed-size chunks,
// zero-padding the final short chunk, the same way a radio reader
// hands the scheduler whole chunks regardless of stream boundaries.
type chunkedSource struct {
	buf []complex128
	pos int
}

func (s *chunkedSource) Fetch(n int) ([]complex128, error) {
	out := make([]complex128, n)
	remaining := len(s.buf) - s.pos
	if remaining > 0 {
		take := n
		if take > remaining {
			take = remaining
		}
		copy(out, s.buf[s.pos:s.pos+take])
		s.pos += take
	}
	return out, nil
}

func TestPipelineDecodesMultipleFramesInOrder(t *testing.T) {
	payload := make([]byte, 72)
	for i := range payload {
		payload[i] = byte(i)
	}
	burst, err := txchain.BuildFrame(payload, rate.R1_2BPSK)
	assert.NoError(t, err)

	var buf []complex128
	for i := 0; i < 10; i++ {
		buf = append(buf, burst...)
		buf = append(buf, make([]complex128, 500)...)
	}
	buf = append(buf, make([]complex128, 1000)...)

	source := &chunkedSource{buf: buf}

	var mu sync.Mutex
	var received [][]byte
	p := scheduler.New(source, func(payloads [][]byte) {
		mu.Lock()
		received = append(received, payloads...)
		mu.Unlock()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go p.Run(ctx)

	deadline := time.After(1500 * time.Millisecond)
	for {
		mu.Lock()
		n := len(received)
		mu.Unlock()
		if n >= 10 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("only decoded %d of 10 frames before deadline", n)
		case <-time.After(10 * time.Millisecond):
		}
	}

	p.Halt()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 10)
	for i, got := range received {
		assert.Equal(t, payload, got, "frame %d", i)
	}
}
