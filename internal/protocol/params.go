package protocol

import "time"

// DefaultMSS is the maximum number of payload bytes carried by a single data
// segment. Datagrams on the wire are larger: the envelope adds the JSON
// framing and the base64 expansion of the payload.
const DefaultMSS ByteCount = 1400

// MaxMSS is the largest segment size whose encoded datagram still fits into a
// single UDP datagram.
const MaxMSS ByteCount = 48000

// MaxDatagramSize is the size of the buffer used for reading datagrams.
const MaxDatagramSize ByteCount = 65535

// InitialCongestionWindow is the initial congestion window, in segments.
const InitialCongestionWindow = 1

// InitialSlowStartThreshold is the initial slow start threshold, in segments.
const InitialSlowStartThreshold = 64

// MinCongestionWindow is the lower bound the congestion window never drops
// below, in segments.
const MinCongestionWindow = 1

// MinSlowStartThreshold is the lower bound for the slow start threshold after
// a loss event, in segments.
const MinSlowStartThreshold = 2

// DefaultDupAckThreshold is the number of duplicate acknowledgments that
// triggers a fast retransmission.
const DefaultDupAckThreshold = 3

// DefaultReceiveWindow is the flow control window advertised by the receiver,
// in segments.
const DefaultReceiveWindow = 64

// DefaultInitialRTO is the retransmission timeout used before the first RTT
// measurement.
const DefaultInitialRTO = time.Second

// DefaultReceiveTimeout is how long the receiver waits for a segment before
// it re-sends its current cumulative acknowledgment.
const DefaultReceiveTimeout = 2 * time.Second

// TimerGranularity is the lower bound for the retransmission timeout.
const TimerGranularity = time.Millisecond

// HandshakeMessage is the payload of the datagram the receiver sends to open
// a transfer. It also teaches the sender the receiver's address.
const HandshakeMessage = "START"
