//go:build windows

package radio

import "github.com/xsjk/go-asio"

// ASIOStereo is a StereoDevice backed by a real ASIO sound card,
// generalizing the teacher's ASIOMono (pkg/device/asio.go) from one
// real channel to an I/Q channel pair.
type ASIOStereo struct {
	DeviceName string
	SampleRate float64
	IChannel   int
	QChannel   int
	device     asio.Device
}

func (a *ASIOStereo) Start(callback func(inI, inQ, outI, outQ []int32)) {
	a.device.Load(a.DeviceName)
	a.device.SetSampleRate(a.SampleRate)
	a.device.Open()
	a.device.Start(func(in, out [][]int32) {
		callback(in[a.IChannel], in[a.QChannel], out[a.IChannel], out[a.QChannel])
	})
}

func (a *ASIOStereo) Stop() {
	a.device.Stop()
	a.device.Close()
	a.device.Unload()
}
