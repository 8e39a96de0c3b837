package http

import (
	"net"

	"go.uber.org/zap"
)

// noDelayListener enables TCP_NODELAY on every accepted connection
type noDelayListener struct {
	net.Listener
	logger *zap.Logger
}

// Accept waits for the next connection and disables Nagle's algorithm on it
func (l *noDelayListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetNoDelay(true); err != nil {
			l.logger.Warn("failed to set TCP_NODELAY",
				zap.String("remote_addr", conn.RemoteAddr().String()),
				zap.Error(err))
		}
	}

	return conn, nil
}
