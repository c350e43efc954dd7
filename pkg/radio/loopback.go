package radio

import "time"

// Loopback is a StereoDevice with no hardware backing it: transmitted
// samples are looped straight back as received samples, the same
// ping-pong double-buffer and ticker structure as the teacher's
// device.Loopback (pkg/device/loopback.go), generalized from one real
// channel to an I/Q pair.
type Loopback struct {
	SampleRate float64 // fake sample rate, 0 means no limit
	BufferSize int
	done       chan struct{}
}

func (d *Loopback) bufferSize() int {
	if d.BufferSize > 0 {
		return d.BufferSize
	}
	return 512
}

func (d *Loopback) Start(callback func(inI, inQ, outI, outQ []int32)) {
	d.done = make(chan struct{})
	go func() {
		n := d.bufferSize()
		var bufI, bufQ [2][]int32
		for i := range bufI {
			bufI[i] = make([]int32, n)
			bufQ[i] = make([]int32, n)
		}

		swap := true
		update := func() {
			if swap {
				callback(bufI[0], bufQ[0], bufI[1], bufQ[1])
			} else {
				callback(bufI[1], bufQ[1], bufI[0], bufQ[0])
			}
			swap = !swap
		}

		if d.SampleRate == 0 {
			for {
				select {
				case <-d.done:
					return
				default:
					update()
				}
			}
		} else {
			ticker := time.NewTicker(time.Duration(float64(n) / d.SampleRate * float64(time.Second)))
			defer ticker.Stop()
			for {
				select {
				case <-d.done:
					return
				case <-ticker.C:
					update()
				}
			}
		}
	}()
}

func (d *Loopback) Stop() {
	close(d.done)
}
