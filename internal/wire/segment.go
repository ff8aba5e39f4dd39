package wire

import (
	"encoding/base64"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"

	"github.com/francoispqt/gojay"
)

// maxEnvelopeSize bounds the JSON framing around the base64 payload:
// the three keys, two 19-digit numbers and the optional fin flag.
const maxEnvelopeSize = 128

// A Segment is a data segment or an end-of-stream marker.
// A data segment carries between 1 and MSS payload bytes. An end-of-stream
// marker (Fin set) carries no payload.
type Segment struct {
	SegmentNumber protocol.SegmentNumber
	Data          []byte
	Fin           bool
}

var _ gojay.MarshalerJSONObject = &Segment{}

func (s *Segment) IsNil() bool { return s == nil }

func (s *Segment) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("seq", int64(s.SegmentNumber))
	if s.Fin {
		enc.BoolKey("fin", true)
		return
	}
	enc.IntKey("len", len(s.Data))
	enc.StringKey("data", base64.StdEncoding.EncodeToString(s.Data))
}

// Marshal encodes the segment into a datagram payload.
func (s *Segment) Marshal() ([]byte, error) {
	return gojay.MarshalJSONObject(s)
}

// MaxEncodedSize returns an upper bound for the size of an encoded datagram
// carrying a payload of up to maxPayload bytes. The base64 expansion
// dominates.
func MaxEncodedSize(maxPayload protocol.ByteCount) protocol.ByteCount {
	return protocol.ByteCount(base64.StdEncoding.EncodedLen(int(maxPayload))) + maxEnvelopeSize
}

type segmentJSON struct {
	seg      *Segment
	length   int64
	seenSeq  bool
	seenLen  bool
	seenData bool
}

var _ gojay.UnmarshalerJSONObject = &segmentJSON{}

func (j *segmentJSON) NKeys() int { return 0 }

func (j *segmentJSON) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "seq":
		j.seenSeq = true
		var v int64
		if err := dec.Int64(&v); err != nil {
			return err
		}
		j.seg.SegmentNumber = protocol.SegmentNumber(v)
	case "len":
		j.seenLen = true
		return dec.Int64(&j.length)
	case "data":
		j.seenData = true
		var v string
		if err := dec.String(&v); err != nil {
			return err
		}
		data, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return err
		}
		j.seg.Data = data
	case "fin":
		return dec.Bool(&j.seg.Fin)
	}
	// unknown keys are skipped
	return nil
}

// ParseSegment decodes a data segment or end-of-stream marker.
// It returns a *DecodeError if the datagram doesn't contain a valid segment.
func ParseSegment(b []byte) (*Segment, error) {
	s := &Segment{}
	j := segmentJSON{seg: s}
	if err := gojay.Unmarshal(b, &j); err != nil {
		return nil, &DecodeError{Reason: "malformed segment", Cause: err}
	}
	if !j.seenSeq {
		return nil, &DecodeError{Reason: "segment without a sequence number"}
	}
	if s.SegmentNumber < 0 {
		return nil, &DecodeError{Reason: "negative sequence number"}
	}
	if s.Fin {
		if j.seenData || j.seenLen {
			return nil, &DecodeError{Reason: "end-of-stream marker carrying data"}
		}
		return s, nil
	}
	if !j.seenData {
		return nil, &DecodeError{Reason: "data segment without data"}
	}
	if len(s.Data) == 0 {
		return nil, &DecodeError{Reason: "data segment with an empty payload"}
	}
	if j.seenLen && j.length != int64(len(s.Data)) {
		return nil, &DecodeError{Reason: "payload length mismatch"}
	}
	return s, nil
}
