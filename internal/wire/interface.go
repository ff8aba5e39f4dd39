// Package wire encodes and decodes the datagrams exchanged during a transfer.
//
// Every datagram carries exactly one JSON message: a data segment
// ({"seq": ..., "len": ..., "data": ...}, with "data" holding the base64
// encoded payload), an end-of-stream marker ({"seq": ..., "fin": true}), or
// a cumulative acknowledgment ({"ack": ..., "win": ...}).
package wire

// A Frame is a protocol message that can be encoded into a single datagram.
type Frame interface {
	Marshal() ([]byte, error)
}
