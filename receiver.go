package rudp

import (
	"context"
	"fmt"
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

type receiver struct {
	conn   *sconn
	config *Config

	sink    io.Writer
	handler ackhandler.ReceivedSegmentHandler

	timer     *utils.Timer
	datagrams chan *receivedDatagram
	readErr   chan error
	closing   chan struct{}
	closeOnce sync.Once

	tracer logging.Tracer
	logger utils.Logger
}

// Receive requests the stream from the sender at remote and writes it to sink.
// It blocks until the complete stream was delivered, the context is
// cancelled, or an unrecoverable error occurs.
// The packet conn is closed when Receive returns.
func Receive(ctx context.Context, pc net.PacketConn, remote net.Addr, sink io.Writer, config *Config) error {
	if err := validateConfig(config); err != nil {
		return err
	}
	config = populateConfig(config)
	logger := utils.DefaultLogger.WithPrefix("receiver")
	r := &receiver{
		conn:      newSendConn(newBasicConn(pc), remote),
		config:    config,
		sink:      sink,
		handler:   ackhandler.NewReceivedSegmentHandler(config.ReceiveWindow, config.Tracer, logger),
		timer:     utils.NewTimer(),
		datagrams: make(chan *receivedDatagram),
		readErr:   make(chan error, 1),
		closing:   make(chan struct{}),
		tracer:    config.Tracer,
		logger:    logger,
	}
	return r.run(ctx)
}

func (r *receiver) run(ctx context.Context) error {
	defer r.close()
	defer r.tracer.Close()
	go r.readLoop()

	if err := r.sendHandshake(); err != nil {
		return err
	}
	r.tracer.StartedTransfer(r.conn.LocalAddr(), r.conn.RemoteAddr())
	r.logger.Infof("Requesting transfer from %s", r.conn.RemoteAddr())

	for {
		r.timer.Reset(time.Now().Add(r.config.ReceiveTimeout))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-r.readErr:
			return err
		case <-r.timer.Chan():
			r.timer.SetRead()
			if err := r.onIdleTimeout(); err != nil {
				return err
			}
		case d := <-r.datagrams:
			if err := r.handleDatagram(d); err != nil {
				return err
			}
			if r.handler.ReceivedFinalSegment() {
				r.logger.Infof("Transfer complete")
				return nil
			}
		}
	}
}

func (r *receiver) readLoop() {
	for {
		d, err := r.conn.ReadDatagram()
		if err != nil {
			select {
			case r.readErr <- err:
			case <-r.closing:
			}
			return
		}
		select {
		case r.datagrams <- d:
		case <-r.closing:
			return
		}
	}
}

// onIdleTimeout repeats the current cumulative acknowledgment. This gets a
// stalled transfer moving again: it replaces acks that were lost in transit,
// and it reestablishes the peer address on the sender if the handshake
// datagram itself was lost.
func (r *receiver) onIdleTimeout() error {
	ack := r.handler.AckFrame()
	r.logger.Debugf("Nothing received for %s, repeating ack %d", r.config.ReceiveTimeout, ack.AckNumber)
	return r.sendAck(ack)
}

func (r *receiver) handleDatagram(d *receivedDatagram) error {
	size := protocol.ByteCount(len(d.data))
	if d.remoteAddr.String() != r.conn.RemoteAddr().String() {
		r.logger.Debugf("Ignoring datagram from unexpected address %s", d.remoteAddr)
		r.tracer.DroppedDatagram(size, logging.DropReasonUnexpectedDatagram)
		return nil
	}
	seg, err := wire.ParseSegment(d.data)
	if err != nil {
		r.logger.Debugf("Dropping undecodable datagram (%d bytes): %s", len(d.data), err)
		r.tracer.DroppedDatagram(size, logging.DropReasonParseError)
		return nil
	}
	wire.LogFrame(r.logger, seg, false)
	for _, payload := range r.handler.ReceivedSegment(seg) {
		if _, err := r.sink.Write(payload); err != nil {
			return fmt.Errorf("writing to sink: %w", err)
		}
	}
	if r.handler.ReceivedFinalSegment() {
		// the sender is already gone, there is no one to ack to
		return nil
	}
	return r.sendAck(r.handler.AckFrame())
}

func (r *receiver) sendHandshake() error {
	r.logger.Debugf("Sending handshake to %s", r.conn.RemoteAddr())
	return r.conn.Write([]byte(protocol.HandshakeMessage))
}

func (r *receiver) sendAck(ack *wire.AckFrame) error {
	raw, err := ack.Marshal()
	if err != nil {
		return err
	}
	if err := r.conn.Write(raw); err != nil {
		return err
	}
	wire.LogFrame(r.logger, ack, true)
	r.tracer.SentAck(ack.AckNumber, ack.ReceiveWindow)
	return nil
}

func (r *receiver) close() {
	r.closeOnce.Do(func() {
		close(r.closing)
		r.conn.Close()
	})
}
