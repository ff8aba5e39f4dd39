// The fairness experiment runs two concurrent transfers through a shared
// bottleneck and reports Jain's fairness index over their completion times.
// The second flow crosses an additional one-way delay, so the two flows
// compete with unequal round-trip times.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	rudp "github.com/1112Yogesh/TCP-like-UDP-Congestion-Control"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/emulation"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/utils"
)

// bottleneckBurst is the number of bytes the bottleneck passes without
// pacing, a few datagrams worth.
const bottleneckBurst = 16 * 1024

func main() {
	size := flag.Int("size", 1<<20, "bytes to transfer per flow")
	bandwidth := flag.Float64("bandwidth", 100, "bottleneck bandwidth in Mbit/s")
	delay := flag.Duration("delay", 15*time.Millisecond, "one-way path delay for both flows")
	extraDelay := flag.Duration("extra-delay", 45*time.Millisecond, "additional one-way delay for the second flow")
	queueDelay := flag.Duration("queue-delay", 200*time.Millisecond, "bottleneck queue depth, as the time to drain it")
	timeout := flag.Duration("timeout", time.Minute, "experiment timeout")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		utils.DefaultLogger.SetLogLevel(utils.LogLevelDebug)
	}

	if err := run(*size, *bandwidth, *delay, *extraDelay, *queueDelay, *timeout); err != nil {
		fmt.Printf("Experiment failed: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(size int, bandwidth float64, delay, extraDelay, queueDelay, timeout time.Duration) error {
	payload := make([]byte, size)
	rand.Read(payload)

	// both flows charge their datagrams against the same token bucket
	bottleneck := rate.NewLimiter(rate.Limit(bandwidth*1e6/8), bottleneckBurst)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	durations := make([]time.Duration, 2)
	results := make([][]byte, 2)
	var g errgroup.Group
	for i := 0; i < 2; i++ {
		oneWay := delay
		if i == 1 {
			oneWay += extraDelay
		}
		g.Go(func() error {
			d, data, err := runFlow(ctx, payload, oneWay, queueDelay, bottleneck)
			if err != nil {
				if rudp.IsTimeout(err) {
					// an unfinished flow counts with the full experiment time
					durations[i] = timeout
					return nil
				}
				return fmt.Errorf("flow %d: %w", i+1, err)
			}
			durations[i] = d
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, data := range results {
		if data != nil && !bytes.Equal(data, payload) {
			return fmt.Errorf("flow %d: received data differs from the payload", i+1)
		}
	}

	fmt.Println("=== Results ===")
	for i, d := range durations {
		fmt.Printf("Duration flow %d: %.2f seconds\n", i+1, d.Seconds())
	}
	fmt.Printf("Jain's fairness index: %.4f\n", emulation.FairnessFromDurations(durations))
	return nil
}

// runFlow moves payload through a fresh sender/receiver pair connected by an
// emulated path: oneWay of propagation delay in each direction, and the
// shared bottleneck. It returns the transfer duration and the received bytes.
func runFlow(ctx context.Context, payload []byte, oneWay, queueDelay time.Duration, bottleneck *rate.Limiter) (time.Duration, []byte, error) {
	senderConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		return 0, nil, err
	}
	defer senderConn.Close()
	proxyConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		return 0, nil, err
	}
	defer proxyConn.Close()
	receiverConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		return 0, nil, err
	}
	defer receiverConn.Close()

	proxy := emulation.Proxy{
		Conn:       proxyConn,
		SenderAddr: senderConn.LocalAddr().(*net.UDPAddr),
		DelayPacket: func(emulation.Direction, []byte) time.Duration {
			return oneWay
		},
		RateLimiter:   bottleneck,
		MaxQueueDelay: queueDelay,
	}
	if err := proxy.Start(); err != nil {
		return 0, nil, err
	}
	defer proxy.Close()

	start := time.Now()
	var received bytes.Buffer
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rudp.Send(ctx, senderConn, bytes.NewReader(payload), nil)
	})
	g.Go(func() error {
		return rudp.Receive(ctx, receiverConn, proxy.LocalAddr(), &received, nil)
	})
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}
	return time.Since(start), received.Bytes(), nil
}
