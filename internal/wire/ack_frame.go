package wire

import (
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"

	"github.com/francoispqt/gojay"
)

// An AckFrame is a cumulative acknowledgment. It acknowledges every segment
// with a number below AckNumber and advertises the receiver's flow control
// window.
type AckFrame struct {
	AckNumber protocol.SegmentNumber
	// ReceiveWindow is the number of segments the receiver is willing to
	// accept in flight. 0 means that no window was advertised.
	ReceiveWindow int
}

var _ gojay.MarshalerJSONObject = &AckFrame{}

func (f *AckFrame) IsNil() bool { return f == nil }

func (f *AckFrame) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("ack", int64(f.AckNumber))
	enc.IntKey("win", f.ReceiveWindow)
}

// Marshal encodes the acknowledgment into a datagram payload.
func (f *AckFrame) Marshal() ([]byte, error) {
	return gojay.MarshalJSONObject(f)
}

type ackFrameJSON struct {
	frame   *AckFrame
	seenAck bool
}

var _ gojay.UnmarshalerJSONObject = &ackFrameJSON{}

func (j *ackFrameJSON) NKeys() int { return 0 }

func (j *ackFrameJSON) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "ack":
		j.seenAck = true
		var v int64
		if err := dec.Int64(&v); err != nil {
			return err
		}
		j.frame.AckNumber = protocol.SegmentNumber(v)
	case "win":
		return dec.Int(&j.frame.ReceiveWindow)
	}
	return nil
}

// ParseAck decodes a cumulative acknowledgment.
// It returns a *DecodeError if the datagram doesn't contain a valid
// acknowledgment.
func ParseAck(b []byte) (*AckFrame, error) {
	f := &AckFrame{}
	j := ackFrameJSON{frame: f}
	if err := gojay.Unmarshal(b, &j); err != nil {
		return nil, &DecodeError{Reason: "malformed acknowledgment", Cause: err}
	}
	if !j.seenAck {
		return nil, &DecodeError{Reason: "acknowledgment without an ack number"}
	}
	if f.AckNumber < 0 {
		return nil, &DecodeError{Reason: "negative ack number"}
	}
	if f.ReceiveWindow < 0 {
		return nil, &DecodeError{Reason: "negative receive window"}
	}
	return f, nil
}
