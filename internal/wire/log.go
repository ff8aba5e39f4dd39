package wire

import (
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/utils"
)

// LogFrame logs a frame, either sent or received
func LogFrame(logger utils.Logger, frame Frame, sent bool) {
	if !logger.Debug() {
		return
	}
	dir := "<-"
	if sent {
		dir = "->"
	}
	switch f := frame.(type) {
	case *Segment:
		if f.Fin {
			logger.Debugf("\t%s &wire.Segment{SegmentNumber: %d, Fin: true}", dir, f.SegmentNumber)
		} else {
			logger.Debugf("\t%s &wire.Segment{SegmentNumber: %d, Data length: %d}", dir, f.SegmentNumber, len(f.Data))
		}
	case *AckFrame:
		logger.Debugf("\t%s &wire.AckFrame{AckNumber: %d, ReceiveWindow: %d}", dir, f.AckNumber, f.ReceiveWindow)
	default:
		logger.Debugf("\t%s %#v", dir, frame)
	}
}
