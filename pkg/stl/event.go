package stl

import "fmt"

// Event is one item of the parser's output protocol. Exactly one payload
// field is set, selected by Type.
type Event struct {
	Type EventType

	Format   Format       // EventHeader
	Solid    *SolidHeader // EventModelHeader
	Face     *Face        // EventFace
	Model    *Model       // EventModel
	Message  string       // EventWarning
	Err      error        // EventError
	Progress float64      // EventProgress
}

// EventType represents the kind of an Event.
type EventType uint8

const (
	EventHeader EventType = iota
	EventModelHeader
	EventFace
	EventModel
	EventWarning
	EventError
	EventProgress
)

func (t EventType) String() string {
	switch t {
	case EventHeader:
		return "Header"
	case EventModelHeader:
		return "ModelHeader"
	case EventFace:
		return "Face"
	case EventModel:
		return "Model"
	case EventWarning:
		return "Warning"
	case EventError:
		return "Error"
	case EventProgress:
		return "Progress"
	default:
		return "Unknown"
	}
}

// IsRecord reports whether events of this type carry an output record
// rather than a diagnostic.
func (t EventType) IsRecord() bool {
	switch t {
	case EventHeader, EventModelHeader, EventFace, EventModel:
		return true
	default:
		return false
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	k := string(d)
	pt, ok := map[string]EventType{
		"Header":      EventHeader,
		"ModelHeader": EventModelHeader,
		"Face":        EventFace,
		"Model":       EventModel,
		"Warning":     EventWarning,
		"Error":       EventError,
		"Progress":    EventProgress,
	}[k]
	if ok {
		*t = pt
		return nil
	}
	return fmt.Errorf("unknown event type %q", k)
}

// TypeHeader is the leading record of a streamed parse.
type TypeHeader struct {
	Type Format `json:"type"`
}

// Record returns the serializable payload of a record event, or nil for
// warnings, errors and progress.
func (e Event) Record() any {
	switch e.Type {
	case EventHeader:
		return TypeHeader{Type: e.Format}
	case EventModelHeader:
		return e.Solid
	case EventFace:
		return e.Face
	case EventModel:
		return e.Model
	default:
		return nil
	}
}

func (e Event) String() string {
	switch e.Type {
	case EventHeader:
		return fmt.Sprintf("Header(%s)", e.Format)
	case EventModelHeader:
		if e.Solid.FaceCount != nil {
			return fmt.Sprintf("ModelHeader(%q, %d)", e.Solid.Name, *e.Solid.FaceCount)
		}
		return fmt.Sprintf("ModelHeader(%q)", e.Solid.Name)
	case EventFace:
		return fmt.Sprintf("Face(%d)", e.Face.Number)
	case EventModel:
		return fmt.Sprintf("Model(%q, %s, %d faces)", e.Model.Name, e.Model.Type, len(e.Model.Faces))
	case EventWarning:
		return "Warning(" + e.Message + ")"
	case EventError:
		return fmt.Sprintf("Error(%v)", e.Err)
	case EventProgress:
		return fmt.Sprintf("Progress(%g)", e.Progress)
	default:
		return "Unknown"
	}
}

// Handler receives parser events in order.
type Handler interface {
	HandleEvent(Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(Event)

func (f HandlerFunc) HandleEvent(e Event) {
	f(e)
}

// emitter is the sink the format parsers write to.
type emitter func(Event)

func (emit emitter) warn(format string, args ...any) {
	emit(Event{Type: EventWarning, Message: fmt.Sprintf(format, args...)})
}

func (emit emitter) progress(p float64) {
	emit(Event{Type: EventProgress, Progress: p})
}
