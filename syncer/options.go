package syncer

import "time"

type Option func(*Syncer)

func WithLogger(log *Logger) Option {
	return func(s *Syncer) {
		s.log = log
	}
}

// WithClock overrides the time source used for file path dates.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) {
		s.now = now
	}
}

// WithConnector overrides how gateways are opened.
func WithConnector(connect Connector) Option {
	return func(s *Syncer) {
		s.connect = connect
	}
}
