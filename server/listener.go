package server

import (
	"net"
	"time"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/pbsmetrics"
)

// monitorableListener feeds the connection counters as connections open,
// close, or fail to accept.
type monitorableListener struct {
	net.Listener
	metrics pbsmetrics.MetricsEngine
}

type monitorableConnection struct {
	net.Conn
	metrics pbsmetrics.MetricsEngine
}

func (ln *monitorableListener) Accept() (net.Conn, error) {
	conn, err := ln.Listener.Accept()
	if err != nil {
		ln.metrics.RecordConnectionAcceptError()
		return conn, err
	}

	if tc, ok := conn.(*net.TCPConn); ok {
		tc.SetKeepAlive(true)
		tc.SetKeepAlivePeriod(3 * time.Minute)
	}

	ln.metrics.RecordNewConnection()
	return &monitorableConnection{conn, ln.metrics}, nil
}

func (conn *monitorableConnection) Close() error {
	conn.metrics.RecordClosedConnection()
	return conn.Conn.Close()
}
