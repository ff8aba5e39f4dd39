package rudp

import (
	"io"
	"net"
	"time"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
)

type receivedDatagram struct {
	remoteAddr net.Addr
	rcvTime    time.Time
	data       []byte
}

type connection interface {
	ReadDatagram() (*receivedDatagram, error)
	WriteTo([]byte, net.Addr) (int, error)
	LocalAddr() net.Addr
	io.Closer
}

type basicConn struct {
	net.PacketConn

	readBuf []byte
}

var _ connection = &basicConn{}

func newBasicConn(pc net.PacketConn) *basicConn {
	return &basicConn{
		PacketConn: pc,
		readBuf:    make([]byte, protocol.MaxDatagramSize),
	}
}

// ReadDatagram reads the next datagram. The returned data is a copy, the read
// buffer is reused for the next call.
func (c *basicConn) ReadDatagram() (*receivedDatagram, error) {
	n, addr, err := c.PacketConn.ReadFrom(c.readBuf)
	if err != nil {
		return nil, err
	}
	data := make([]byte, n)
	copy(data, c.readBuf[:n])
	return &receivedDatagram{
		remoteAddr: addr,
		rcvTime:    time.Now(),
		data:       data,
	}, nil
}
