package stl

// recordSink routes finished records. In streaming mode they go straight
// to the emitter; in aggregate mode headers and faces accumulate in a
// pending model that flush emits as a single EventModel.
type recordSink struct {
	emit      emitter
	aggregate bool
	model     *Model
}

func newRecordSink(emit emitter, aggregate bool) *recordSink {
	return &recordSink{emit: emit, aggregate: aggregate}
}

// begin starts a new pending model. It is a no-op when streaming.
func (r *recordSink) begin(format Format) {
	if r.aggregate {
		r.model = NewModel("", format)
	}
}

func (r *recordSink) header(h SolidHeader) {
	if !r.aggregate {
		r.emit(Event{Type: EventModelHeader, Solid: &h})
		return
	}
	if r.model == nil {
		return
	}
	r.model.Name = h.Name
	if h.FaceCount != nil {
		r.model.FaceCount = h.FaceCount
	}
}

func (r *recordSink) face(f Face) {
	if !r.aggregate {
		r.emit(Event{Type: EventFace, Face: &f})
		return
	}
	if r.model != nil {
		r.model.AddFace(f)
	}
}

// flush emits the pending model under the given name and forgets it.
func (r *recordSink) flush(name string) {
	if !r.aggregate || r.model == nil {
		return
	}
	m := r.model
	m.Name = name
	r.model = nil
	r.emit(Event{Type: EventModel, Model: m})
}
