package rudp

import "net"

// A sendConn allows sending using a simple Write() on a non-connected packet conn.
type sendConn interface {
	Write([]byte) error
	Close() error
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}

type sconn struct {
	connection

	// remoteAddr is only accessed from the run goroutine.
	// For the sender it is nil until the receiver's handshake arrives.
	remoteAddr net.Addr
}

var _ sendConn = &sconn{}

func newSendConn(c connection, remote net.Addr) *sconn {
	return &sconn{connection: c, remoteAddr: remote}
}

func (c *sconn) Write(p []byte) error {
	_, err := c.WriteTo(p, c.remoteAddr)
	return err
}

func (c *sconn) setRemoteAddr(addr net.Addr) { c.remoteAddr = addr }
func (c *sconn) RemoteAddr() net.Addr        { return c.remoteAddr }
