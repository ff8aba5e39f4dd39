// Package emulation provides a UDP proxy that degrades the path between a
// receiver and a sender in controlled ways. Integration tests and the
// fairness experiment use it in place of a real lossy network.
package emulation

import (
	"errors"
	"net"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/utils"
)

// connection is the state for one receiver talking to the sender through the
// proxy.
type connection struct {
	ReceiverAddr *net.UDPAddr // address the receiver's datagrams come from
	SenderConn   *net.UDPConn // UDP connection to the sender

	incomingDatagrams chan datagramEntry
	outgoingDatagrams chan datagramEntry

	Incoming *queue
	Outgoing *queue
}

// Direction is the direction a datagram is sent.
type Direction int

const (
	// DirectionIncoming is the direction from the receiver to the sender.
	DirectionIncoming Direction = iota
	// DirectionOutgoing is the direction from the sender to the receiver.
	DirectionOutgoing
	// DirectionBoth is both incoming and outgoing.
	DirectionBoth
)

type datagramEntry struct {
	Time time.Time
	Raw  []byte
}

type datagramEntries []datagramEntry

func (e datagramEntries) Len() int           { return len(e) }
func (e datagramEntries) Less(i, j int) bool { return e[i].Time.Before(e[j].Time) }
func (e datagramEntries) Swap(i, j int)      { e[i], e[j] = e[j], e[i] }

type queue struct {
	sync.Mutex

	timer     *utils.Timer
	Datagrams datagramEntries
}

func newQueue() *queue {
	return &queue{timer: utils.NewTimer()}
}

func (q *queue) Add(e datagramEntry) {
	q.Lock()
	q.Datagrams = append(q.Datagrams, e)
	if len(q.Datagrams) > 1 {
		lastIndex := len(q.Datagrams) - 1
		if q.Datagrams[lastIndex].Time.Before(q.Datagrams[lastIndex-1].Time) {
			sort.Stable(q.Datagrams)
		}
	}
	q.timer.Reset(q.Datagrams[0].Time)
	q.Unlock()
}

func (q *queue) Get() []byte {
	q.Lock()
	raw := q.Datagrams[0].Raw
	q.Datagrams = q.Datagrams[1:]
	if len(q.Datagrams) > 0 {
		q.timer.Reset(q.Datagrams[0].Time)
	}
	q.Unlock()
	return raw
}

func (q *queue) Timer() <-chan time.Time { return q.timer.Chan() }
func (q *queue) SetTimerRead()           { q.timer.SetRead() }

func (q *queue) Close() { q.timer.Stop() }

func (d Direction) String() string {
	switch d {
	case DirectionIncoming:
		return "Incoming"
	case DirectionOutgoing:
		return "Outgoing"
	case DirectionBoth:
		return "both"
	default:
		panic("unknown direction")
	}
}

// Is says if one direction matches another direction.
// For example, incoming matches both incoming and both, but not outgoing.
func (d Direction) Is(dir Direction) bool {
	if d == DirectionBoth || dir == DirectionBoth {
		return true
	}
	return d == dir
}

// DropCallback decides which datagrams get dropped.
type DropCallback func(dir Direction, raw []byte) bool

// DelayCallback decides how much delay to apply to a datagram.
type DelayCallback func(dir Direction, raw []byte) time.Duration

// DuplicateCallback decides which datagrams get delivered twice.
type DuplicateCallback func(dir Direction, raw []byte) bool

// Proxy is a UDP proxy that can drop, delay and duplicate datagrams, and
// squeeze them through a bandwidth bottleneck.
type Proxy struct {
	// Conn is the UDP socket that the proxy listens on for incoming
	// datagrams from receivers.
	Conn *net.UDPConn

	// SenderAddr is the address of the sender that the proxy forwards
	// datagrams to.
	SenderAddr *net.UDPAddr

	// DropPacket decides which datagrams get dropped.
	DropPacket DropCallback

	// DelayPacket decides how much delay to apply to a datagram.
	DelayPacket DelayCallback

	// DuplicatePacket decides which datagrams get delivered twice.
	DuplicatePacket DuplicateCallback

	// RateLimiter models a bottleneck link. Every datagram charges the
	// limiter with its size in bytes, and the resulting reservation delay is
	// added on top of DelayPacket. Sharing one limiter between two proxies
	// gives two transfers a common bottleneck.
	RateLimiter *rate.Limiter

	// MaxQueueDelay bounds the backlog at the bottleneck. A datagram whose
	// bandwidth reservation exceeds this delay is dropped, like a datagram
	// arriving at a full router queue. Zero means the backlog is unbounded.
	MaxQueueDelay time.Duration

	closeChan chan struct{}
	logger    utils.Logger

	// mapping from receiver addresses (as host:port) to connection
	mutex     sync.Mutex
	receivers map[string]*connection
}

// Start starts the proxy. The Conn and SenderAddr fields must be set.
func (p *Proxy) Start() error {
	if p.Conn == nil || p.SenderAddr == nil {
		return errors.New("proxy needs a Conn and a SenderAddr")
	}
	p.receivers = make(map[string]*connection)
	p.closeChan = make(chan struct{})
	p.logger = utils.DefaultLogger.WithPrefix("proxy")

	p.logger.Debugf("Starting UDP proxy %s <-> %s", p.Conn.LocalAddr(), p.SenderAddr)
	go p.runProxy()
	return nil
}

// Close stops the proxy. It doesn't close Conn, that socket belongs to the
// caller.
func (p *Proxy) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	close(p.closeChan)
	for _, c := range p.receivers {
		if err := c.SenderConn.Close(); err != nil {
			return err
		}
		c.Incoming.Close()
		c.Outgoing.Close()
	}
	return nil
}

// LocalAddr is the address the proxy is listening on.
func (p *Proxy) LocalAddr() net.Addr { return p.Conn.LocalAddr() }

func (p *Proxy) newConnection(receiverAddr *net.UDPAddr) (*connection, error) {
	conn, err := net.DialUDP("udp", nil, p.SenderAddr)
	if err != nil {
		return nil, err
	}
	return &connection{
		ReceiverAddr:      receiverAddr,
		SenderConn:        conn,
		incomingDatagrams: make(chan datagramEntry, 10),
		outgoingDatagrams: make(chan datagramEntry, 10),
		Incoming:          newQueue(),
		Outgoing:          newQueue(),
	}, nil
}

// reserveBandwidth charges size bytes against the bottleneck limiter and
// returns the transmission delay for the datagram. ok is false if the
// datagram has to be dropped because the backlog is full.
func (p *Proxy) reserveBandwidth(now time.Time, size int) (delay time.Duration, ok bool) {
	if p.RateLimiter == nil {
		return 0, true
	}
	r := p.RateLimiter.ReserveN(now, size)
	if !r.OK() {
		p.logger.Errorf("Bottleneck burst (%d bytes) is smaller than a %d byte datagram, dropping", p.RateLimiter.Burst(), size)
		return 0, false
	}
	delay = r.DelayFrom(now)
	if p.MaxQueueDelay != 0 && delay > p.MaxQueueDelay {
		r.CancelAt(now)
		return 0, false
	}
	return delay, true
}

// runProxy listens on the proxy address and handles incoming datagrams.
func (p *Proxy) runProxy() error {
	for {
		buffer := make([]byte, protocol.MaxDatagramSize)
		n, receiverAddr, err := p.Conn.ReadFromUDP(buffer)
		if err != nil {
			return err
		}
		raw := buffer[0:n]

		saddr := receiverAddr.String()
		p.mutex.Lock()
		conn, ok := p.receivers[saddr]

		if !ok {
			conn, err = p.newConnection(receiverAddr)
			if err != nil {
				p.mutex.Unlock()
				return err
			}
			p.receivers[saddr] = conn
			go p.runIncomingConnection(conn)
			go p.runOutgoingConnection(conn)
		}
		p.mutex.Unlock()

		if p.DropPacket != nil && p.DropPacket(DirectionIncoming, raw) {
			if p.logger.Debug() {
				p.logger.Debugf("dropping incoming datagram (%d bytes)", n)
			}
			continue
		}

		if err := p.deliverIncoming(conn, raw); err != nil {
			return err
		}
		if p.DuplicatePacket != nil && p.DuplicatePacket(DirectionIncoming, raw) {
			if p.logger.Debug() {
				p.logger.Debugf("duplicating incoming datagram (%d bytes)", n)
			}
			if err := p.deliverIncoming(conn, raw); err != nil {
				return err
			}
		}
	}
}

func (p *Proxy) deliverIncoming(conn *connection, raw []byte) error {
	var delay time.Duration
	if p.DelayPacket != nil {
		delay = p.DelayPacket(DirectionIncoming, raw)
	}
	now := time.Now()
	bottleneck, ok := p.reserveBandwidth(now, len(raw))
	if !ok {
		if p.logger.Debug() {
			p.logger.Debugf("dropping incoming datagram (%d bytes) at the bottleneck queue", len(raw))
		}
		return nil
	}
	delay += bottleneck
	if delay == 0 {
		if p.logger.Debug() {
			p.logger.Debugf("forwarding incoming datagram (%d bytes) to %s", len(raw), conn.SenderConn.RemoteAddr())
		}
		_, err := conn.SenderConn.Write(raw)
		return err
	}
	if p.logger.Debug() {
		p.logger.Debugf("delaying incoming datagram (%d bytes) to %s by %s", len(raw), conn.SenderConn.RemoteAddr(), delay)
	}
	conn.incomingDatagrams <- datagramEntry{Time: now.Add(delay), Raw: raw}
	return nil
}

func (p *Proxy) deliverOutgoing(conn *connection, raw []byte) error {
	var delay time.Duration
	if p.DelayPacket != nil {
		delay = p.DelayPacket(DirectionOutgoing, raw)
	}
	now := time.Now()
	bottleneck, ok := p.reserveBandwidth(now, len(raw))
	if !ok {
		if p.logger.Debug() {
			p.logger.Debugf("dropping outgoing datagram (%d bytes) at the bottleneck queue", len(raw))
		}
		return nil
	}
	delay += bottleneck
	if delay == 0 {
		if p.logger.Debug() {
			p.logger.Debugf("forwarding outgoing datagram (%d bytes) to %s", len(raw), conn.ReceiverAddr)
		}
		_, err := p.Conn.WriteToUDP(raw, conn.ReceiverAddr)
		return err
	}
	if p.logger.Debug() {
		p.logger.Debugf("delaying outgoing datagram (%d bytes) to %s by %s", len(raw), conn.ReceiverAddr, delay)
	}
	conn.outgoingDatagrams <- datagramEntry{Time: now.Add(delay), Raw: raw}
	return nil
}

// runOutgoingConnection handles datagrams from the sender to a single
// receiver.
func (p *Proxy) runOutgoingConnection(conn *connection) error {
	go func() {
		for {
			buffer := make([]byte, protocol.MaxDatagramSize)
			n, err := conn.SenderConn.Read(buffer)
			if err != nil {
				return
			}
			raw := buffer[0:n]

			if p.DropPacket != nil && p.DropPacket(DirectionOutgoing, raw) {
				if p.logger.Debug() {
					p.logger.Debugf("dropping outgoing datagram (%d bytes)", n)
				}
				continue
			}

			if err := p.deliverOutgoing(conn, raw); err != nil {
				return
			}
			if p.DuplicatePacket != nil && p.DuplicatePacket(DirectionOutgoing, raw) {
				if p.logger.Debug() {
					p.logger.Debugf("duplicating outgoing datagram (%d bytes)", n)
				}
				if err := p.deliverOutgoing(conn, raw); err != nil {
					return
				}
			}
		}
	}()

	for {
		select {
		case <-p.closeChan:
			return nil
		case e := <-conn.outgoingDatagrams:
			conn.Outgoing.Add(e)
		case <-conn.Outgoing.Timer():
			conn.Outgoing.SetTimerRead()
			if _, err := p.Conn.WriteTo(conn.Outgoing.Get(), conn.ReceiverAddr); err != nil {
				return err
			}
		}
	}
}

func (p *Proxy) runIncomingConnection(conn *connection) error {
	for {
		select {
		case <-p.closeChan:
			return nil
		case e := <-conn.incomingDatagrams:
			conn.Incoming.Add(e)
		case <-conn.Incoming.Timer():
			conn.Incoming.SetTimerRead()
			if _, err := conn.SenderConn.Write(conn.Incoming.Get()); err != nil {
				return err
			}
		}
	}
}
