package wire

import (
	"testing"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"

	"github.com/stretchr/testify/require"
)

func TestParseAck(t *testing.T) {
	f, err := ParseAck([]byte(`{"ack":3,"win":64}`))
	require.NoError(t, err)
	require.Equal(t, protocol.SegmentNumber(3), f.AckNumber)
	require.Equal(t, 64, f.ReceiveWindow)
}

func TestParseAckWithoutWindow(t *testing.T) {
	f, err := ParseAck([]byte(`{"ack":0}`))
	require.NoError(t, err)
	require.Equal(t, protocol.SegmentNumber(0), f.AckNumber)
	require.Zero(t, f.ReceiveWindow)
}

func TestParseAckIgnoresUnknownKeys(t *testing.T) {
	f, err := ParseAck([]byte(`{"ack":17,"win":8,"foo":true}`))
	require.NoError(t, err)
	require.Equal(t, protocol.SegmentNumber(17), f.AckNumber)
	require.Equal(t, 8, f.ReceiveWindow)
}

func TestParseAckErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
	}{
		{"empty datagram", ``},
		{"not JSON", `garbage`},
		{"missing ack number", `{"win":64}`},
		{"negative ack number", `{"ack":-2,"win":64}`},
		{"negative window", `{"ack":2,"win":-1}`},
		{"wrong type for ack", `{"ack":true}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAck([]byte(tc.data))
			require.Error(t, err)
			var decErr *DecodeError
			require.ErrorAs(t, err, &decErr)
		})
	}
}

func TestWriteAck(t *testing.T) {
	f := &AckFrame{AckNumber: 3, ReceiveWindow: 64}
	b, err := f.Marshal()
	require.NoError(t, err)
	require.Equal(t, `{"ack":3,"win":64}`, string(b))
}

func TestAckRoundtrip(t *testing.T) {
	f := &AckFrame{AckNumber: 1 << 40, ReceiveWindow: 1}
	b, err := f.Marshal()
	require.NoError(t, err)
	parsed, err := ParseAck(b)
	require.NoError(t, err)
	require.Equal(t, f, parsed)
}
