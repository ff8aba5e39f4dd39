package wire

// A DecodeError is returned when an inbound datagram cannot be parsed into a
// protocol message. Sessions treat such a datagram as if it had never
// arrived.
type DecodeError struct {
	Reason string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return "wire: " + e.Reason + ": " + e.Cause.Error()
	}
	return "wire: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Cause }
