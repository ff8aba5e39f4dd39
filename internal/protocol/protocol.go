// Package protocol contains types and constants used throughout the module.
package protocol

// A SegmentNumber identifies a data segment within a transfer.
// Segment numbers start at 0 and are assigned densely, in send order.
type SegmentNumber int64

// InvalidSegmentNumber is a segment number that is never used.
// It serves as the "no acknowledgment applied yet" sentinel, since 0 is a
// valid segment number.
const InvalidSegmentNumber SegmentNumber = -1

// A ByteCount of payload or datagram bytes.
type ByteCount int64
