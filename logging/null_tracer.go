package logging

import "net"

// The NullTracer is a Tracer that does nothing.
// It is useful for embedding. Don't modify this variable!
var NullTracer Tracer = &nullTracer{}

type nullTracer struct{}

var _ Tracer = &nullTracer{}

func (n nullTracer) StartedTransfer(local, remote net.Addr)                              {}
func (n nullTracer) SentSegment(SegmentNumber, ByteCount, bool)                          {}
func (n nullTracer) RetransmittedSegment(SegmentNumber, ByteCount, RetransmissionReason) {}
func (n nullTracer) ReceivedSegment(SegmentNumber, ByteCount, bool)                      {}
func (n nullTracer) BufferedSegment(SegmentNumber)                                       {}
func (n nullTracer) DeliveredSegment(SegmentNumber, ByteCount)                           {}
func (n nullTracer) SentAck(SegmentNumber, int)                                          {}
func (n nullTracer) ReceivedAck(SegmentNumber, int, bool)                                {}
func (n nullTracer) DroppedDatagram(ByteCount, DropReason)                               {}
func (n nullTracer) UpdatedMetrics(*RTTStats, int, int)                                  {}
func (n nullTracer) UpdatedCongestionState(CongestionState)                              {}
func (n nullTracer) LossTimerExpired()                                                   {}
func (n nullTracer) Close()                                                              {}
