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
	listen := flag.String("listen", "0.0.0.0:6555", "address to listen on")
	file := flag.String("file", "", "file to serve")
	mss := flag.Int("mss", 0, "maximum segment payload size in bytes")
	timeout := flag.Duration("timeout", 0, "give up after this long (0 means never)")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "missing -file")
		flag.Usage()
		os.Exit(1)
	}
	if *verbose {
		utils.DefaultLogger.SetLogLevel(utils.LogLevelDebug)
	} else if os.Getenv("RUDP_LOG_LEVEL") == "" {
		utils.DefaultLogger.SetLogLevel(utils.LogLevelInfo)
	}

	if err := run(*listen, *file, *mss, *timeout, *metricsAddr); err != nil {
		fmt.Printf("Sending failed: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(listen, file string, mss int, timeout time.Duration, metricsAddr string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	addr, err := net.ResolveUDPAddr("udp", listen)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	config := &rudp.Config{MSS: mss}
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

	fmt.Printf("Serving %s on %s\n", file, conn.LocalAddr())
	return rudp.Send(ctx, conn, f, config)
}

func serveMetrics(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("Serving metrics failed: %s\n", err.Error())
	}
}
