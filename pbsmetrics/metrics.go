package pbsmetrics

import (
	"time"
)

// RequestType classifies the two kinds of exchange requests.
type RequestType string

const (
	ReqTypeInventory RequestType = "inventory"
	ReqTypeBid       RequestType = "bid"
)

// RequestTypes returns all possible request types.
func RequestTypes() []RequestType {
	return []RequestType{
		ReqTypeInventory,
		ReqTypeBid,
	}
}

// RequestStatus is the disposition of one handled request.
type RequestStatus string

const (
	RequestStatusOK       RequestStatus = "ok"
	RequestStatusBadInput RequestStatus = "badinput"
	RequestStatusErr      RequestStatus = "err"
)

// RequestStatuses returns all possible request statuses.
func RequestStatuses() []RequestStatus {
	return []RequestStatus{
		RequestStatusOK,
		RequestStatusBadInput,
		RequestStatusErr,
	}
}

// MetricsEngine is a generic interface to record exchange metrics into the
// desired backend. Implementations must be safe for concurrent use.
type MetricsEngine interface {
	RecordRequest(reqType RequestType, status RequestStatus)
	RecordRequestTime(reqType RequestType, length time.Duration)
	RecordImps(numImps int)
	RecordWinningBid(price float64)
	RecordNewConnection()
	RecordClosedConnection()
	RecordConnectionAcceptError()
}
