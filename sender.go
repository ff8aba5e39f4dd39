package rudp

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/ackhandler"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/utils"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/wire"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/logging"
)

type sender struct {
	conn   *sconn
	config *Config

	source io.Reader
	// sourceDone is set when the source is exhausted.
	sourceDone        bool
	nextSegmentNumber protocol.SegmentNumber

	rttStats *utils.RTTStats
	handler  ackhandler.SentSegmentHandler

	timer     *utils.Timer
	datagrams chan *receivedDatagram
	readErr   chan error
	closing   chan struct{}
	closeOnce sync.Once

	tracer logging.Tracer
	logger utils.Logger
}

// Send waits for a receiver's handshake on pc, then transfers the contents of
// source to it. It blocks until the receiver has acknowledged all data, the
// context is cancelled, or an unrecoverable error occurs.
// The packet conn is closed when Send returns.
func Send(ctx context.Context, pc net.PacketConn, source io.Reader, config *Config) error {
	if err := validateConfig(config); err != nil {
		return err
	}
	config = populateConfig(config)
	rttStats := utils.NewRTTStats()
	rttStats.SetInitialRTO(config.InitialRTO)
	logger := utils.DefaultLogger.WithPrefix("sender")
	s := &sender{
		conn:     newSendConn(newBasicConn(pc), nil),
		config:   config,
		source:   source,
		rttStats: rttStats,
		handler: ackhandler.NewSentSegmentHandler(
			config.InitialCongestionWindow,
			config.InitialSlowStartThreshold,
			config.DupAckThreshold,
			rttStats,
			config.Tracer,
			logger,
		),
		timer:     utils.NewTimer(),
		datagrams: make(chan *receivedDatagram),
		readErr:   make(chan error, 1),
		closing:   make(chan struct{}),
		tracer:    config.Tracer,
		logger:    logger,
	}
	return s.run(ctx)
}

func (s *sender) run(ctx context.Context) error {
	defer s.close()
	defer s.tracer.Close()
	go s.readLoop()

	if err := s.awaitHandshake(ctx); err != nil {
		return err
	}
	s.tracer.StartedTransfer(s.conn.LocalAddr(), s.conn.RemoteAddr())
	s.logger.Infof("Starting transfer to %s", s.conn.RemoteAddr())

	for {
		if err := s.fillWindow(); err != nil {
			return err
		}
		if s.sourceDone && !s.handler.HasOutstandingSegments() {
			return s.sendEndOfStream()
		}
		if err := s.waitForEvent(ctx); err != nil {
			return err
		}
	}
}

func (s *sender) readLoop() {
	for {
		d, err := s.conn.ReadDatagram()
		if err != nil {
			select {
			case s.readErr <- err:
			case <-s.closing:
			}
			return
		}
		select {
		case s.datagrams <- d:
		case <-s.closing:
			return
		}
	}
}

// awaitHandshake blocks until the first datagram from a receiver arrives.
// Its content is not significant, it only establishes the peer address.
func (s *sender) awaitHandshake(ctx context.Context) error {
	s.logger.Infof("Waiting for a receiver on %s", s.conn.LocalAddr())
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-s.readErr:
		return err
	case d := <-s.datagrams:
		s.conn.setRemoteAddr(d.remoteAddr)
		return nil
	}
}

// fillWindow sends new segments until the effective window is used up or the
// source is exhausted.
func (s *sender) fillWindow() error {
	for s.handler.CanSend() && !s.sourceDone {
		seg, err := s.nextSegment()
		if err != nil {
			return err
		}
		if seg == nil {
			return nil
		}
		if err := s.sendSegment(seg); err != nil {
			return err
		}
	}
	return nil
}

// nextSegment reads the next chunk from the source.
// It returns nil once the source is exhausted.
func (s *sender) nextSegment() (*wire.Segment, error) {
	buf := make([]byte, s.config.MSS)
	n, err := io.ReadFull(s.source, buf)
	switch {
	case errors.Is(err, io.EOF):
		s.sourceDone = true
		return nil, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.sourceDone = true
	case err != nil:
		return nil, err
	}
	return &wire.Segment{SegmentNumber: s.nextSegmentNumber, Data: buf[:n]}, nil
}

func (s *sender) sendSegment(seg *wire.Segment) error {
	raw, err := seg.Marshal()
	if err != nil {
		return err
	}
	if err := s.conn.Write(raw); err != nil {
		return err
	}
	wire.LogFrame(s.logger, seg, true)
	size := protocol.ByteCount(len(seg.Data))
	s.handler.SentSegment(&ackhandler.Segment{
		SegmentNumber: seg.SegmentNumber,
		Length:        size,
		Raw:           raw,
		SendTime:      time.Now(),
	})
	s.tracer.SentSegment(seg.SegmentNumber, size, false)
	s.nextSegmentNumber++
	return nil
}

// sendEndOfStream tells the receiver that all data was delivered. The end of
// stream message is sent exactly once, after the last data segment was
// acknowledged. No acknowledgment is expected for it.
func (s *sender) sendEndOfStream() error {
	seg := &wire.Segment{SegmentNumber: s.nextSegmentNumber, Fin: true}
	raw, err := seg.Marshal()
	if err != nil {
		return err
	}
	if err := s.conn.Write(raw); err != nil {
		return err
	}
	wire.LogFrame(s.logger, seg, true)
	s.tracer.SentSegment(seg.SegmentNumber, 0, true)
	s.logger.Infof("Transfer complete, sent %d data segments", s.nextSegmentNumber)
	return nil
}

// waitForEvent blocks until the retransmission timer fires or an
// acknowledgment is processed. Datagrams that can't be handled don't extend
// the timeout.
func (s *sender) waitForEvent(ctx context.Context) error {
	s.timer.Reset(time.Now().Add(s.rttStats.RTO()))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-s.readErr:
			return err
		case <-s.timer.Chan():
			s.timer.SetRead()
			return s.onRetransmissionTimeout()
		case d := <-s.datagrams:
			progress, err := s.handleDatagram(d)
			if err != nil {
				return err
			}
			if progress {
				return nil
			}
		}
	}
}

func (s *sender) handleDatagram(d *receivedDatagram) (bool /* processed an ack */, error) {
	size := protocol.ByteCount(len(d.data))
	if d.remoteAddr.String() != s.conn.RemoteAddr().String() {
		s.logger.Debugf("Ignoring datagram from unexpected address %s", d.remoteAddr)
		s.tracer.DroppedDatagram(size, logging.DropReasonUnexpectedDatagram)
		return false, nil
	}
	if string(d.data) == protocol.HandshakeMessage {
		// a handshake datagram duplicated by the network
		s.logger.Debugf("Ignoring duplicated handshake")
		s.tracer.DroppedDatagram(size, logging.DropReasonUnexpectedDatagram)
		return false, nil
	}
	ack, err := wire.ParseAck(d.data)
	if err != nil {
		s.logger.Debugf("Dropping undecodable datagram (%d bytes): %s", len(d.data), err)
		s.tracer.DroppedDatagram(size, logging.DropReasonParseError)
		return false, nil
	}
	wire.LogFrame(s.logger, ack, false)
	res, err := s.handler.ReceivedAck(ack, d.rcvTime)
	if err != nil {
		s.logger.Errorf("Ignoring ack: %s", err)
		s.tracer.DroppedDatagram(size, logging.DropReasonUnexpectedAck)
		return false, nil
	}
	if res.FastRetransmit != nil {
		if err := s.retransmit(res.FastRetransmit, logging.RetransmissionReasonDuplicateAcks); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *sender) onRetransmissionTimeout() error {
	segments := s.handler.OnRetransmissionTimeout()
	s.logger.Debugf("Retransmission timeout fired, resending %d segments (RTO: %s)", len(segments), s.rttStats.RTO())
	for _, seg := range segments {
		if err := s.retransmit(seg, logging.RetransmissionReasonTimeout); err != nil {
			return err
		}
	}
	return nil
}

func (s *sender) retransmit(seg *ackhandler.Segment, reason logging.RetransmissionReason) error {
	if err := s.conn.Write(seg.Raw); err != nil {
		return err
	}
	s.logger.Debugf("Retransmitted segment %d (%s)", seg.SegmentNumber, reason)
	s.tracer.RetransmittedSegment(seg.SegmentNumber, seg.Length, reason)
	return nil
}

func (s *sender) close() {
	s.closeOnce.Do(func() {
		close(s.closing)
		s.conn.Close()
	})
}
