package pbsmetrics

import (
	"time"

	metrics "github.com/rcrowley/go-metrics"
)

// Metrics is the go-metrics implementation of MetricsEngine.
type Metrics struct {
	MetricsRegistry            metrics.Registry
	ConnectionCounter          metrics.Counter
	ConnectionAcceptErrorMeter metrics.Meter
	ImpMeter                   metrics.Meter
	WinningBidPriceHistogram   metrics.Histogram
	RequestTimer               map[RequestType]metrics.Timer
	RequestStatuses            map[RequestType]map[RequestStatus]metrics.Meter
}

// NewBlankMetrics creates a Metrics object with Nil metrics everywhere. This
// is also useful for testing routines to ensure that no metrics are written
// anywhere.
func NewBlankMetrics(registry metrics.Registry) *Metrics {
	blankMeter := &metrics.NilMeter{}
	newMetrics := &Metrics{
		MetricsRegistry:            registry,
		ConnectionCounter:          metrics.NilCounter{},
		ConnectionAcceptErrorMeter: blankMeter,
		ImpMeter:                   blankMeter,
		WinningBidPriceHistogram:   &metrics.NilHistogram{},
		RequestTimer:               make(map[RequestType]metrics.Timer),
		RequestStatuses:            make(map[RequestType]map[RequestStatus]metrics.Meter),
	}
	for _, t := range RequestTypes() {
		newMetrics.RequestTimer[t] = &metrics.NilTimer{}
		newMetrics.RequestStatuses[t] = make(map[RequestStatus]metrics.Meter)
		for _, s := range RequestStatuses() {
			newMetrics.RequestStatuses[t][s] = blankMeter
		}
	}
	return newMetrics
}

// NewMetrics creates a Metrics object with live metrics registered in the
// given registry.
func NewMetrics(registry metrics.Registry) *Metrics {
	newMetrics := NewBlankMetrics(registry)

	newMetrics.ConnectionCounter = metrics.GetOrRegisterCounter("active_connections", registry)
	newMetrics.ConnectionAcceptErrorMeter = metrics.GetOrRegisterMeter("connection_accept_errors", registry)
	newMetrics.ImpMeter = metrics.GetOrRegisterMeter("imps_requested", registry)
	newMetrics.WinningBidPriceHistogram = metrics.GetOrRegisterHistogram("winning_bid_price", registry, metrics.NewExpDecaySample(1028, 0.015))
	for _, t := range RequestTypes() {
		newMetrics.RequestTimer[t] = metrics.GetOrRegisterTimer("requests."+string(t)+".request_time", registry)
		for _, s := range RequestStatuses() {
			newMetrics.RequestStatuses[t][s] = metrics.GetOrRegisterMeter("requests."+string(t)+"."+string(s), registry)
		}
	}
	return newMetrics
}

func (me *Metrics) RecordRequest(reqType RequestType, status RequestStatus) {
	if statuses, ok := me.RequestStatuses[reqType]; ok {
		if meter, ok := statuses[status]; ok {
			meter.Mark(1)
		}
	}
}

func (me *Metrics) RecordRequestTime(reqType RequestType, length time.Duration) {
	if timer, ok := me.RequestTimer[reqType]; ok {
		timer.Update(length)
	}
}

func (me *Metrics) RecordImps(numImps int) {
	me.ImpMeter.Mark(int64(numImps))
}

func (me *Metrics) RecordWinningBid(price float64) {
	// go-metrics histograms are integer valued; record in centavos to keep
	// sub-peso resolution.
	me.WinningBidPriceHistogram.Update(int64(price * 100))
}

func (me *Metrics) RecordNewConnection() {
	me.ConnectionCounter.Inc(1)
}

func (me *Metrics) RecordClosedConnection() {
	me.ConnectionCounter.Dec(1)
}

func (me *Metrics) RecordConnectionAcceptError() {
	me.ConnectionAcceptErrorMeter.Mark(1)
}
