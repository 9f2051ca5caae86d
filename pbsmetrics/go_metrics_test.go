package pbsmetrics

import (
	"testing"
	"time"

	metrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	registry := metrics.NewRegistry()
	me := NewMetrics(registry)

	me.RecordRequest(ReqTypeBid, RequestStatusOK)
	me.RecordRequest(ReqTypeBid, RequestStatusOK)
	me.RecordRequest(ReqTypeInventory, RequestStatusBadInput)
	me.RecordRequestTime(ReqTypeBid, 250*time.Millisecond)
	me.RecordImps(3)
	me.RecordWinningBid(55.0)

	assert.Equal(t, int64(2), me.RequestStatuses[ReqTypeBid][RequestStatusOK].Count())
	assert.Equal(t, int64(1), me.RequestStatuses[ReqTypeInventory][RequestStatusBadInput].Count())
	assert.Equal(t, int64(0), me.RequestStatuses[ReqTypeInventory][RequestStatusOK].Count())
	assert.Equal(t, int64(1), me.RequestTimer[ReqTypeBid].Count())
	assert.Equal(t, int64(3), me.ImpMeter.Count())
	assert.Equal(t, int64(5500), me.WinningBidPriceHistogram.Sum())
}

func TestConnectionMetrics(t *testing.T) {
	me := NewMetrics(metrics.NewRegistry())

	me.RecordNewConnection()
	me.RecordNewConnection()
	me.RecordClosedConnection()
	me.RecordConnectionAcceptError()

	assert.Equal(t, int64(1), me.ConnectionCounter.Count())
	assert.Equal(t, int64(1), me.ConnectionAcceptErrorMeter.Count())
}

func TestBlankMetricsRecordNothing(t *testing.T) {
	registry := metrics.NewRegistry()
	me := NewBlankMetrics(registry)

	me.RecordRequest(ReqTypeBid, RequestStatusOK)
	me.RecordImps(10)
	me.RecordWinningBid(100)

	registry.Each(func(name string, _ interface{}) {
		t.Errorf("blank metrics should not register anything, found %s", name)
	})
}
