// Package telemetry exposes prometheus counters/gauges for the
// per-frame drop reasons of spec §7 and basic pipeline health, and an
// HTTP handler to serve them -- the same role client_golang plays in
// the madpsy-ka9q_ubersdr example this dependency is grounded on.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dot11a/ofdmphy/pkg/phyerr"
)

var (
	dropsByKind = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ofdmphy_frame_drops_total",
		Help: "Per-frame drops by error kind (spec §7).",
	}, []string{"kind"})

	framesDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ofdmphy_frames_decoded_total",
		Help: "Payloads successfully delivered to the PayloadSink.",
	})

	queueDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ofdmphy_stage_queue_depth",
		Help: "Items pending in a receive-chain stage's input buffer.",
	}, []string{"stage"})
)

func init() {
	prometheus.MustRegister(dropsByKind, framesDecoded, queueDepth)
}

// RecordDrop increments the drop counter for one error kind.
func RecordDrop(k phyerr.Kind) {
	dropsByKind.WithLabelValues(k.String()).Inc()
}

// RecordFrameDecoded increments the successfully-decoded frame counter.
func RecordFrameDecoded() {
	framesDecoded.Inc()
}

// SetQueueDepth records how many items are pending in a stage's
// input buffer, for pipeline backpressure visibility.
func SetQueueDepth(stage string, n int) {
	queueDepth.WithLabelValues(stage).Set(float64(n))
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
