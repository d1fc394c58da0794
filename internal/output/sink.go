package output

import (
	"github.com/philipparndt/stlparse/pkg/stl"
)

// Sink is an stl.Handler that encodes records and reports diagnostics.
// Fatal errors are left to the caller, which gets them from the parser.
type Sink struct {
	enc      Encoder
	diag     *Diagnostics
	progress bool

	records int
	err     error
}

// NewSink creates a sink. Progress events are only shown when progress
// is set.
func NewSink(enc Encoder, diag *Diagnostics, progress bool) *Sink {
	return &Sink{enc: enc, diag: diag, progress: progress}
}

func (s *Sink) HandleEvent(e stl.Event) {
	switch e.Type {
	case stl.EventWarning:
		s.diag.Warning(e.Message)
	case stl.EventProgress:
		if s.progress {
			s.diag.Progress(e.Progress)
		}
	case stl.EventError:
	default:
		if s.err != nil {
			return
		}
		if err := s.enc.Encode(e.Record()); err != nil {
			s.err = err
			return
		}
		s.records++
	}
}

// Records returns the number of records written.
func (s *Sink) Records() int {
	return s.records
}

// Err returns the first encoding error.
func (s *Sink) Err() error {
	return s.err
}
