package rudp

import (
	"bytes"
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/emulation"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/wire"

	"github.com/stretchr/testify/require"
)

func newUDPConnLocalhost(t testing.TB) *net.UDPConn {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func runUDPTransfer(t *testing.T, senderConn, receiverConn *net.UDPConn, remote net.Addr, payload []byte, senderConf, receiverConf *Config) []byte {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var received bytes.Buffer
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return Send(gctx, senderConn, bytes.NewReader(payload), senderConf) })
	g.Go(func() error { return Receive(gctx, receiverConn, remote, &received, receiverConf) })
	require.NoError(t, g.Wait())
	return received.Bytes()
}

func TestIntegrationDirectTransfer(t *testing.T) {
	senderConn := newUDPConnLocalhost(t)
	receiverConn := newUDPConnLocalhost(t)

	payload := make([]byte, 1<<18)
	rand.Read(payload)
	received := runUDPTransfer(t, senderConn, receiverConn, senderConn.LocalAddr(), payload, nil, nil)
	require.Equal(t, payload, received)
}

func TestIntegrationTransferWithLoss(t *testing.T) {
	senderConn := newUDPConnLocalhost(t)
	receiverConn := newUDPConnLocalhost(t)

	var counter atomic.Int32
	proxy := emulation.Proxy{
		Conn:       newUDPConnLocalhost(t),
		SenderAddr: senderConn.LocalAddr().(*net.UDPAddr),
		DelayPacket: func(emulation.Direction, []byte) time.Duration {
			return 10 * time.Millisecond
		},
		DropPacket: func(dir emulation.Direction, raw []byte) bool {
			if dir.Is(emulation.DirectionOutgoing) {
				// The end of stream marker is sent exactly once. A transfer
				// that loses it only ends by timeout.
				if seg, err := wire.ParseSegment(raw); err == nil && seg.Fin {
					return false
				}
			}
			return counter.Add(1)%5 == 0
		},
	}
	require.NoError(t, proxy.Start())
	defer proxy.Close()

	payload := make([]byte, 1<<17)
	rand.Read(payload)
	received := runUDPTransfer(t, senderConn, receiverConn, proxy.LocalAddr(), payload,
		&Config{InitialRTO: 200 * time.Millisecond},
		&Config{ReceiveTimeout: 100 * time.Millisecond},
	)
	require.Equal(t, payload, received)
}

func TestIntegrationTransferWithDelay(t *testing.T) {
	senderConn := newUDPConnLocalhost(t)
	receiverConn := newUDPConnLocalhost(t)

	proxy := emulation.Proxy{
		Conn:       newUDPConnLocalhost(t),
		SenderAddr: senderConn.LocalAddr().(*net.UDPAddr),
		DelayPacket: func(emulation.Direction, []byte) time.Duration {
			return 20 * time.Millisecond
		},
	}
	require.NoError(t, proxy.Start())
	defer proxy.Close()

	payload := make([]byte, 1<<16)
	rand.Read(payload)
	received := runUDPTransfer(t, senderConn, receiverConn, proxy.LocalAddr(), payload, nil, nil)
	require.Equal(t, payload, received)
}

func TestIntegrationTransferWithDuplication(t *testing.T) {
	senderConn := newUDPConnLocalhost(t)
	receiverConn := newUDPConnLocalhost(t)

	// every datagram arrives twice: the handshake, all segments and all acks
	proxy := emulation.Proxy{
		Conn:       newUDPConnLocalhost(t),
		SenderAddr: senderConn.LocalAddr().(*net.UDPAddr),
		DuplicatePacket: func(emulation.Direction, []byte) bool {
			return true
		},
	}
	require.NoError(t, proxy.Start())
	defer proxy.Close()

	payload := make([]byte, 1<<16)
	rand.Read(payload)
	received := runUDPTransfer(t, senderConn, receiverConn, proxy.LocalAddr(), payload, nil, nil)
	require.Equal(t, payload, received)
}

func TestIntegrationTransfersShareBottleneck(t *testing.T) {
	payload := make([]byte, 1<<17)
	rand.Read(payload)

	// 2 MB/s, shared between both flows
	bottleneck := rate.NewLimiter(2_000_000, 16*1024)

	type flow struct {
		senderConn, receiverConn *net.UDPConn
		proxy                    *emulation.Proxy
	}
	flows := make([]*flow, 2)
	for i := range flows {
		senderConn := newUDPConnLocalhost(t)
		proxy := &emulation.Proxy{
			Conn:       newUDPConnLocalhost(t),
			SenderAddr: senderConn.LocalAddr().(*net.UDPAddr),
			DelayPacket: func(emulation.Direction, []byte) time.Duration {
				return 5 * time.Millisecond
			},
			RateLimiter: bottleneck,
		}
		require.NoError(t, proxy.Start())
		t.Cleanup(func() { proxy.Close() })
		flows[i] = &flow{senderConn: senderConn, receiverConn: newUDPConnLocalhost(t), proxy: proxy}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	durations := make([]time.Duration, len(flows))
	var g errgroup.Group
	for i, f := range flows {
		g.Go(func() error { return Send(ctx, f.senderConn, bytes.NewReader(payload), nil) })
		g.Go(func() error {
			start := time.Now()
			var received bytes.Buffer
			if err := Receive(ctx, f.receiverConn, f.proxy.LocalAddr(), &received, nil); err != nil {
				return err
			}
			durations[i] = time.Since(start)
			if !bytes.Equal(received.Bytes(), payload) {
				return errors.New("received data differs from the payload")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	t.Logf("transfer durations: %s and %s", durations[0], durations[1])
	index := emulation.FairnessFromDurations(durations)
	t.Logf("Jain's fairness index: %.4f", index)
	// equal-delay flows through the same bottleneck finish in similar time
	require.Greater(t, index, 0.7)
}
