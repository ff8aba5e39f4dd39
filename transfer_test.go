package rudp

import (
	"bytes"
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/wire"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/stretchr/testify/require"
)

type pipeAddr struct{ name string }

func (a pipeAddr) Network() string { return "pipe" }
func (a pipeAddr) String() string  { return a.name }

type pipeDatagram struct {
	data []byte
	from net.Addr
}

// pipeConn is an in-memory net.PacketConn with UDP semantics: datagrams sent
// to a closed or congested peer are silently discarded.
type pipeConn struct {
	addr      pipeAddr
	incoming  chan pipeDatagram
	closed    chan struct{}
	closeOnce sync.Once

	peer *pipeConn
	// drop reports whether an outgoing datagram should be discarded.
	drop func(b []byte) bool
}

func newPipeConnPair() (senderConn, receiverConn *pipeConn) {
	s := &pipeConn{addr: pipeAddr{"sender"}, incoming: make(chan pipeDatagram, 1024), closed: make(chan struct{})}
	r := &pipeConn{addr: pipeAddr{"receiver"}, incoming: make(chan pipeDatagram, 1024), closed: make(chan struct{})}
	s.peer = r
	r.peer = s
	return s, r
}

func (c *pipeConn) ReadFrom(b []byte) (int, net.Addr, error) {
	select {
	case d := <-c.incoming:
		return copy(b, d.data), d.from, nil
	case <-c.closed:
		return 0, nil, net.ErrClosed
	}
}

func (c *pipeConn) WriteTo(b []byte, _ net.Addr) (int, error) {
	select {
	case <-c.closed:
		return 0, net.ErrClosed
	default:
	}
	if c.drop != nil && c.drop(b) {
		return len(b), nil
	}
	data := make([]byte, len(b))
	copy(data, b)
	select {
	case c.peer.incoming <- pipeDatagram{data: data, from: c.addr}:
	case <-c.peer.closed:
	default:
	}
	return len(b), nil
}

func (c *pipeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *pipeConn) LocalAddr() net.Addr              { return c.addr }
func (c *pipeConn) SetDeadline(time.Time) error      { return nil }
func (c *pipeConn) SetReadDeadline(time.Time) error  { return nil }
func (c *pipeConn) SetWriteDeadline(time.Time) error { return nil }

// dropWrites discards the outgoing datagrams whose (1-based) write count is
// in nums.
func dropWrites(nums ...int) func([]byte) bool {
	dropped := make(map[int]bool, len(nums))
	for _, n := range nums {
		dropped[n] = true
	}
	var count int
	return func([]byte) bool {
		count++
		return dropped[count]
	}
}

func runTransfer(t *testing.T, senderConn, receiverConn *pipeConn, payload []byte, senderConf, receiverConf *Config) []byte {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var received bytes.Buffer
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return Send(ctx, senderConn, bytes.NewReader(payload), senderConf) })
	g.Go(func() error { return Receive(ctx, receiverConn, senderConn.LocalAddr(), &received, receiverConf) })
	require.NoError(t, g.Wait())
	return received.Bytes()
}

func TestTransfer(t *testing.T) {
	data := make([]byte, 5000)
	rand.Read(data)

	senderConn, receiverConn := newPipeConnPair()
	received := runTransfer(t, senderConn, receiverConn, data,
		&Config{ReceiveTimeout: 100 * time.Millisecond},
		&Config{ReceiveTimeout: 100 * time.Millisecond},
	)
	require.Equal(t, data, received)
}

func TestTransferEmptyStream(t *testing.T) {
	senderConn, receiverConn := newPipeConnPair()
	received := runTransfer(t, senderConn, receiverConn, nil,
		&Config{ReceiveTimeout: 100 * time.Millisecond},
		&Config{ReceiveTimeout: 100 * time.Millisecond},
	)
	require.Empty(t, received)
}

func TestTransferLargeStream(t *testing.T) {
	data := make([]byte, 1<<18)
	rand.Read(data)

	senderConn, receiverConn := newPipeConnPair()
	received := runTransfer(t, senderConn, receiverConn, data,
		&Config{ReceiveTimeout: 100 * time.Millisecond},
		&Config{ReceiveTimeout: 100 * time.Millisecond},
	)
	require.Equal(t, data, received)
}

func TestTransferWithDatagramLoss(t *testing.T) {
	data := make([]byte, 1<<16)
	rand.Read(data)

	senderConn, receiverConn := newPipeConnPair()
	// The first write is segment 0, so this exercises a retransmission
	// timeout before any RTT measurement, and two more later on.
	senderConn.drop = dropWrites(1, 5, 20)
	received := runTransfer(t, senderConn, receiverConn, data,
		&Config{InitialRTO: 100 * time.Millisecond, ReceiveTimeout: 100 * time.Millisecond},
		&Config{ReceiveTimeout: 100 * time.Millisecond},
	)
	require.Equal(t, data, received)
}

func TestTransferWithAckLoss(t *testing.T) {
	data := make([]byte, 1<<16)
	rand.Read(data)

	senderConn, receiverConn := newPipeConnPair()
	// The receiver's first write is the handshake. When it is dropped, the
	// sender learns the peer address from a repeated ack instead.
	receiverConn.drop = dropWrites(1, 3, 10)
	received := runTransfer(t, senderConn, receiverConn, data,
		&Config{InitialRTO: 100 * time.Millisecond, ReceiveTimeout: 100 * time.Millisecond},
		&Config{ReceiveTimeout: 100 * time.Millisecond},
	)
	require.Equal(t, data, received)
}

func TestTransferWithUndecodableDatagrams(t *testing.T) {
	data := make([]byte, 5000)
	rand.Read(data)

	senderConn, receiverConn := newPipeConnPair()
	// Neither junk nor an ack for a segment that was never sent is usable.
	// Both are dropped, and the transfer completes on the real messages.
	go func() {
		for i := 0; i < 5; i++ {
			time.Sleep(2 * time.Millisecond)
			senderConn.incoming <- pipeDatagram{data: []byte("garbage"), from: receiverConn.addr}
			senderConn.incoming <- pipeDatagram{data: []byte(`{"ack":999999,"win":4}`), from: receiverConn.addr}
			receiverConn.incoming <- pipeDatagram{data: []byte(`{"seq":"nope"}`), from: senderConn.addr}
		}
	}()
	received := runTransfer(t, senderConn, receiverConn, data,
		&Config{ReceiveTimeout: 100 * time.Millisecond},
		&Config{ReceiveTimeout: 100 * time.Millisecond},
	)
	require.Equal(t, data, received)
}

func TestTransferSegmentation(t *testing.T) {
	data := make([]byte, 5000)
	rand.Read(data)

	senderConn, receiverConn := newPipeConnPair()
	var writes [][]byte
	senderConn.drop = func(b []byte) bool {
		writes = append(writes, append([]byte(nil), b...))
		return false
	}
	received := runTransfer(t, senderConn, receiverConn, data,
		&Config{ReceiveTimeout: 100 * time.Millisecond},
		&Config{ReceiveTimeout: 100 * time.Millisecond},
	)
	require.Equal(t, data, received)

	// 5000 bytes at the default MSS of 1400 are 4 data segments of 1400,
	// 1400, 1400 and 800 bytes. The end of stream message is the last
	// datagram, sent exactly once, after all data was acknowledged.
	require.GreaterOrEqual(t, len(writes), 5)
	lens := map[protocol.SegmentNumber]int{0: 1400, 1: 1400, 2: 1400, 3: 800}
	var fins int
	for i, w := range writes {
		seg, err := wire.ParseSegment(w)
		require.NoError(t, err)
		if seg.Fin {
			fins++
			require.Equal(t, protocol.SegmentNumber(4), seg.SegmentNumber)
			require.Equal(t, len(writes)-1, i)
			continue
		}
		require.Len(t, seg.Data, lens[seg.SegmentNumber])
	}
	require.Equal(t, 1, fins)
}

func TestTransferContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// No receiver ever shows up, so the sender blocks in the handshake.
	senderConn, _ := newPipeConnPair()
	err := Send(ctx, senderConn, bytes.NewReader([]byte("foobar")), nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, IsTimeout(err))
}

func TestTransferInvalidConfig(t *testing.T) {
	senderConn, receiverConn := newPipeConnPair()
	err := Send(context.Background(), senderConn, bytes.NewReader(nil), &Config{MSS: -1})
	require.ErrorContains(t, err, "Config.MSS")
	err = Receive(context.Background(), receiverConn, senderConn.LocalAddr(), &bytes.Buffer{}, &Config{ReceiveWindow: -1})
	require.ErrorContains(t, err, "Config.ReceiveWindow")
}
