package rudp

import (
	"errors"
	"fmt"

	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/internal/protocol"
	"github.com/1112Yogesh/TCP-like-UDP-Congestion-Control/logging"
)

// Clone clones a Config.
func (c *Config) Clone() *Config {
	copy := *c
	return &copy
}

func validateConfig(config *Config) error {
	if config == nil {
		return nil
	}
	if config.MSS < 0 || config.MSS > int(protocol.MaxMSS) {
		return fmt.Errorf("invalid value for Config.MSS: %d (maximum: %d)", config.MSS, protocol.MaxMSS)
	}
	if config.InitialCongestionWindow < 0 {
		return errors.New("invalid value for Config.InitialCongestionWindow")
	}
	if config.InitialSlowStartThreshold < 0 {
		return errors.New("invalid value for Config.InitialSlowStartThreshold")
	}
	if config.DupAckThreshold < 0 {
		return errors.New("invalid value for Config.DupAckThreshold")
	}
	if config.ReceiveWindow < 0 {
		return errors.New("invalid value for Config.ReceiveWindow")
	}
	if config.InitialRTO < 0 {
		return errors.New("invalid value for Config.InitialRTO")
	}
	if config.ReceiveTimeout < 0 {
		return errors.New("invalid value for Config.ReceiveTimeout")
	}
	return nil
}

// populateConfig populates fields in the Config with their default values, if none are set.
// It may be called with nil.
func populateConfig(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}
	mss := config.MSS
	if mss == 0 {
		mss = int(protocol.DefaultMSS)
	}
	initialCongestionWindow := config.InitialCongestionWindow
	if initialCongestionWindow == 0 {
		initialCongestionWindow = protocol.InitialCongestionWindow
	}
	initialSlowStartThreshold := config.InitialSlowStartThreshold
	if initialSlowStartThreshold == 0 {
		initialSlowStartThreshold = protocol.InitialSlowStartThreshold
	}
	dupAckThreshold := config.DupAckThreshold
	if dupAckThreshold == 0 {
		dupAckThreshold = protocol.DefaultDupAckThreshold
	}
	receiveWindow := config.ReceiveWindow
	if receiveWindow == 0 {
		receiveWindow = protocol.DefaultReceiveWindow
	}
	initialRTO := config.InitialRTO
	if initialRTO == 0 {
		initialRTO = protocol.DefaultInitialRTO
	}
	receiveTimeout := config.ReceiveTimeout
	if receiveTimeout == 0 {
		receiveTimeout = protocol.DefaultReceiveTimeout
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = logging.NullTracer
	}
	return &Config{
		MSS:                       mss,
		InitialCongestionWindow:   initialCongestionWindow,
		InitialSlowStartThreshold: initialSlowStartThreshold,
		DupAckThreshold:           dupAckThreshold,
		ReceiveWindow:             receiveWindow,
		InitialRTO:                initialRTO,
		ReceiveTimeout:            receiveTimeout,
		Tracer:                    tracer,
	}
}
