package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	rudp "github.com/1112Yogesh/TCP-like-UDP-Congestion-Control"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/utils"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/metrics"
)

func main() {
	senderAddr := flag.String("addr", "", "address of the sender")
	prefix := flag.String("prefix", "", "output file name prefix")
	window := flag.Int("window", 0, "receive window in segments")
	timeout := flag.Duration("timeout", 0, "give up after this long (0 means never)")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *senderAddr == "" {
		fmt.Fprintln(os.Stderr, "missing -addr")
		flag.Usage()
		os.Exit(1)
	}
	if *verbose {
		utils.DefaultLogger.SetLogLevel(utils.LogLevelDebug)
	} else if os.Getenv("RUDP_LOG_LEVEL") == "" {
		utils.DefaultLogger.SetLogLevel(utils.LogLevelInfo)
	}

	outfile := *prefix + "received_file.txt"
	if err := run(*senderAddr, outfile, *window, *timeout, *metricsAddr); err != nil {
		fmt.Printf("Receiving failed: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(senderAddr, outfile string, window int, timeout time.Duration, metricsAddr string) error {
	remote, err := net.ResolveUDPAddr("udp", senderAddr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return err
	}
	defer conn.Close()

	f, err := os.Create(outfile)
	if err != nil {
		return err
	}

	config := &rudp.Config{ReceiveWindow: window}
	if metricsAddr != "" {
		config.Tracer = metrics.NewTracer()
		go serveMetrics(metricsAddr)
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := rudp.Receive(ctx, conn, remote, f, config); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fi, err := os.Stat(outfile)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d bytes to %s\n", fi.Size(), outfile)
	return nil
}

func serveMetrics(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("Serving metrics failed: %s\n", err.Error())
	}
}
