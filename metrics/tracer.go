// Package metrics provides a logging.Tracer that exposes transfer metrics
// via Prometheus.
package metrics

import (
	"errors"
	"net"
	"time"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/logging"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "rudp"

func getIPVersion(addr net.Addr) string {
	udpAddr, ok := addr.(*net.UDPAddr)
	if !ok {
		return ""
	}
	if udpAddr.IP.To4() != nil {
		return "ipv4"
	}
	return "ipv6"
}

var (
	transfersStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "transfers_started_total",
			Help:      "Transfers Started",
		},
		[]string{"ip_version"},
	)
	transferDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "transfer_duration_seconds",
			Help:      "Duration of a Transfer",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 20),
		},
	)
	segmentsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "sent_segments_total",
			Help:      "Segments Sent",
		},
	)
	bytesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "sent_bytes_total",
			Help:      "Payload Bytes Sent",
		},
	)
	segmentsRetransmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "retransmitted_segments_total",
			Help:      "Segments Retransmitted",
		},
		[]string{"reason"},
	)
	segmentsReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "received_segments_total",
			Help:      "Segments Received",
		},
	)
	segmentsDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "delivered_segments_total",
			Help:      "Segments Delivered in Order",
		},
	)
	bytesDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "delivered_bytes_total",
			Help:      "Payload Bytes Delivered",
		},
	)
	segmentsBuffered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "buffered_segments_total",
			Help:      "Segments Received Out of Order",
		},
	)
	acksSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "sent_acks_total",
			Help:      "Acknowledgments Sent",
		},
	)
	acksReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "received_acks_total",
			Help:      "Acknowledgments Received",
		},
		[]string{"type"},
	)
	datagramsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "dropped_datagrams_total",
			Help:      "Datagrams Dropped",
		},
		[]string{"reason"},
	)
	congestionStateChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "congestion_state_changes_total",
			Help:      "Congestion State Changes",
		},
		[]string{"state"},
	)
	retransmissionTimeouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "retransmission_timeouts_total",
			Help:      "Retransmission Timeouts",
		},
	)
	smoothedRTT = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "smoothed_rtt_seconds",
			Help:      "Smoothed RTT",
		},
	)
	congestionWindow = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "congestion_window_segments",
			Help:      "Congestion Window",
		},
	)
	segmentsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "segments_in_flight",
			Help:      "Segments in Flight",
		},
	)
)

// NewTracer creates a new tracer using the default Prometheus registerer.
// The Tracer returned from this function can be set on the Config.
func NewTracer() logging.Tracer {
	return NewTracerWithRegisterer(prometheus.DefaultRegisterer)
}

// NewTracerWithRegisterer creates a new tracer using a given Prometheus registerer.
func NewTracerWithRegisterer(registerer prometheus.Registerer) logging.Tracer {
	for _, c := range [...]prometheus.Collector{
		transfersStarted,
		transferDuration,
		segmentsSent,
		bytesSent,
		segmentsRetransmitted,
		segmentsReceived,
		segmentsDelivered,
		bytesDelivered,
		segmentsBuffered,
		acksSent,
		acksReceived,
		datagramsDropped,
		congestionStateChanges,
		retransmissionTimeouts,
		smoothedRTT,
		congestionWindow,
		segmentsInFlight,
	} {
		if err := registerer.Register(c); err != nil {
			if ok := errors.As(err, &prometheus.AlreadyRegisteredError{}); !ok {
				panic(err)
			}
		}
	}
	return &tracer{}
}

type tracer struct {
	startTime time.Time
}

var _ logging.Tracer = &tracer{}

func (t *tracer) StartedTransfer(_, remote net.Addr) {
	tags := getStringSlice()
	defer putStringSlice(tags)

	t.startTime = time.Now()

	*tags = append(*tags, getIPVersion(remote))
	transfersStarted.WithLabelValues(*tags...).Inc()
}

func (t *tracer) SentSegment(_ logging.SegmentNumber, size logging.ByteCount, _ bool) {
	segmentsSent.Inc()
	bytesSent.Add(float64(size))
}

func (t *tracer) RetransmittedSegment(_ logging.SegmentNumber, _ logging.ByteCount, reason logging.RetransmissionReason) {
	tags := getStringSlice()
	defer putStringSlice(tags)

	*tags = append(*tags, reason.String())
	segmentsRetransmitted.WithLabelValues(*tags...).Inc()
}

func (t *tracer) ReceivedSegment(logging.SegmentNumber, logging.ByteCount, bool) {
	segmentsReceived.Inc()
}

func (t *tracer) BufferedSegment(logging.SegmentNumber) {
	segmentsBuffered.Inc()
}

func (t *tracer) DeliveredSegment(_ logging.SegmentNumber, size logging.ByteCount) {
	segmentsDelivered.Inc()
	bytesDelivered.Add(float64(size))
}

func (t *tracer) SentAck(logging.SegmentNumber, int) {
	acksSent.Inc()
}

func (t *tracer) ReceivedAck(_ logging.SegmentNumber, _ int, duplicate bool) {
	tags := getStringSlice()
	defer putStringSlice(tags)

	typ := "new"
	if duplicate {
		typ = "duplicate"
	}
	*tags = append(*tags, typ)
	acksReceived.WithLabelValues(*tags...).Inc()
}

func (t *tracer) DroppedDatagram(_ logging.ByteCount, reason logging.DropReason) {
	tags := getStringSlice()
	defer putStringSlice(tags)

	*tags = append(*tags, reason.String())
	datagramsDropped.WithLabelValues(*tags...).Inc()
}

func (t *tracer) UpdatedMetrics(rttStats *logging.RTTStats, cwnd, inFlight int) {
	smoothedRTT.Set(rttStats.SmoothedRTT().Seconds())
	congestionWindow.Set(float64(cwnd))
	segmentsInFlight.Set(float64(inFlight))
}

func (t *tracer) UpdatedCongestionState(state logging.CongestionState) {
	tags := getStringSlice()
	defer putStringSlice(tags)

	*tags = append(*tags, state.String())
	congestionStateChanges.WithLabelValues(*tags...).Inc()
}

func (t *tracer) LossTimerExpired() {
	retransmissionTimeouts.Inc()
}

func (t *tracer) Close() {
	if !t.startTime.IsZero() {
		transferDuration.Observe(time.Since(t.startTime).Seconds())
	}
}
