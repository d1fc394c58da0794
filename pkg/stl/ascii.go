package stl

import (
	"math"
	"unicode/utf8"

	"github.com/philipparndt/stlparse/pkg/geometry"
)

// maxNameLength bounds solid names quoted in warnings.
const maxNameLength = 50

// pendingVector is a vector whose components arrive one token at a time.
// Components that never arrive stay zero.
type pendingVector [3]float64

func (v *pendingVector) assign(axis int, value float64) {
	v[axis] = value
}

func (v pendingVector) vector() geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

type pendingFace struct {
	number   int
	normal   pendingVector
	vertices []pendingVector
}

func (f *pendingFace) face() Face {
	vertices := make([]geometry.Vector3, len(f.vertices))
	for i, v := range f.vertices {
		vertices[i] = v.vector()
	}
	return Face{
		Number:   f.number,
		Normal:   f.normal.vector(),
		Vertices: vertices,
	}
}

type solidState struct {
	name     string
	named    bool // name was established, possibly as ""
	endName  string
	endNamed bool
	closed   bool
	line     int // line of the solid keyword
}

func appendName(name *string, set *bool, word string) {
	if *set {
		*name += " " + word
		return
	}
	*name = word
	*set = true
}

// asciiMachine is the ascii grammar. It consumes one word at a time and
// knows nothing about buffers or chunking.
type asciiMachine struct {
	opts Options
	emit emitter
	sink *recordSink

	last   keyword
	solid  solidState
	face   *pendingFace // nil once a face was discarded or emitted
	vertex *pendingVector
	// number of the face in progress, for diagnostics
	faceNumber int
	completed  int
}

func newASCIIMachine(opts Options, emit emitter) *asciiMachine {
	return &asciiMachine{
		opts: opts,
		emit: emit,
		sink: newRecordSink(emit, opts.Aggregate),
		last: kwRoot,
	}
}

// step processes one word read on the given line.
func (m *asciiMachine) step(word string, line int) {
	for m.dispatch(word, line) {
	}
}

// dispatch interprets word relative to the last keyword. It reports true
// when word was not a valid coordinate: the missing component has been
// zeroed and the tag advanced, so the same word must be tried again
// against the next state.
func (m *asciiMachine) dispatch(word string, line int) bool {
	if m.last.isVertexCoordinate() {
		return m.coordinate(word, line)
	}

	switch word {
	case "vertex":
		m.onVertex(line)
		return false
	case "facet":
		m.onFacet(line)
		return false
	case "normal":
		if m.last == kwFacet {
			m.ensureFace().normal = pendingVector{}
		} else {
			m.emit.warn("Unexpected normal after %s", m.last)
		}
		m.last = kwNormal
		return false
	}

	if m.last.isNormalCoordinate() {
		return m.coordinate(word, line)
	}

	switch word {
	case "outer":
		if m.last == kwNormalZ {
			m.last = kwOuter
		} else {
			m.unexpected(word, line)
		}
	case "loop":
		if m.last != kwOuter {
			m.unexpected(word, line)
		}
		m.last = kwLoop
	case "endloop":
		m.onEndloop(line)
	case "endfacet":
		m.onEndfacet(line)
	case "endsolid":
		m.onEndsolid(line)
	case "solid":
		if m.last == kwRoot || m.last == kwEndsolid {
			m.solid = solidState{line: line}
			m.sink.begin(FormatASCII)
		} else {
			m.unexpected(word, line)
		}
		m.last = kwSolid
	default:
		switch m.last {
		case kwSolid:
			appendName(&m.solid.name, &m.solid.named, word)
		case kwEndsolid:
			appendName(&m.solid.endName, &m.solid.endNamed, word)
		}
	}
	return false
}

func (m *asciiMachine) unexpected(word string, line int) {
	m.emit.warn("Unexpected %s after %s in face %d in line %d", word, m.last, m.faceNumber, line)
}

func (m *asciiMachine) ensureFace() *pendingFace {
	if m.face == nil {
		m.face = &pendingFace{number: m.completed + 1}
	}
	return m.face
}

func (m *asciiMachine) coordinate(word string, line int) bool {
	axis, next, _ := m.last.coordinateAxis()
	var target *pendingVector
	if next == kwNormalX || next == kwNormalY || next == kwNormalZ {
		target = &m.ensureFace().normal
	} else {
		target = m.vertex
	}
	m.last = next

	value, err := parseCoordinate(word)
	if err != nil {
		m.emit.warn("Unexpected '%s' instead of %s value in face %d, line %d", word, next, m.faceNumber, line)
		value = 0
	}
	if target != nil {
		target.assign(axis, value)
	}
	return err != nil
}

func (m *asciiMachine) onFacet(line int) {
	m.faceNumber = m.completed + 1
	m.face = &pendingFace{number: m.faceNumber}
	m.vertex = nil

	if m.last == kwSolid {
		if !m.solid.named {
			m.solid.named = true
			m.emit.warn("Solid in line %d does not have a name", m.solid.line)
		}
		m.sink.header(SolidHeader{Name: m.solid.name})
	} else if m.last != kwEndfacet {
		m.unexpected("facet", line)
	}
	m.last = kwFacet
}

func (m *asciiMachine) onVertex(line int) {
	m.vertex = nil
	switch m.last {
	case kwLoop:
		f := m.ensureFace()
		f.vertices = append(f.vertices[:0], pendingVector{})
		m.vertex = &f.vertices[0]
	case kwVertexZ:
		if f := m.face; f != nil {
			f.vertices = append(f.vertices, pendingVector{})
			m.vertex = &f.vertices[len(f.vertices)-1]
		}
	default:
		m.unexpected("vertex", line)
	}
	m.last = kwVertex
}

func (m *asciiMachine) onEndloop(line int) {
	m.vertex = nil
	if m.last != kwVertexZ {
		m.unexpected("endloop", line)
	} else if count := m.vertexCount(); count != 3 {
		m.emit.warn("Face %d has %d instead of 3 vertices", m.faceNumber, count)
		if count > 3 && m.opts.DiscardExcessVertices {
			m.face.vertices = m.face.vertices[:3]
		} else {
			m.face = nil
		}
	}
	m.last = kwEndloop
}

func (m *asciiMachine) vertexCount() int {
	if m.face == nil {
		return 0
	}
	return len(m.face.vertices)
}

func (m *asciiMachine) onEndfacet(line int) {
	if m.last == kwEndloop {
		if m.face != nil {
			m.completed++
			face := m.face.face()
			face.Number = m.completed
			m.face = nil
			m.sink.face(face)
		}
	} else {
		m.unexpected("endfacet", line)
	}
	m.last = kwEndfacet
}

func (m *asciiMachine) onEndsolid(line int) {
	switch {
	case m.opts.Aggregate:
		if m.sink.model == nil {
			m.sink.begin(FormatASCII)
		}
		m.sink.flush(m.solid.name)
	case m.last == kwSolid:
		empty := NewModel(m.solid.name, FormatASCII)
		m.emit(Event{Type: EventModel, Model: empty})
	}

	if m.last == kwEndfacet || m.last == kwSolid {
		m.solid.closed = true
	} else {
		m.unexpected("endsolid", line)
	}
	m.last = kwEndsolid
}

// finish runs the end-of-input checks. tail is the unconsumed text that
// was left in the buffer when input ended.
func (m *asciiMachine) finish(tail string) error {
	s := m.solid

	if !s.closed && m.completed == 0 && !s.named && !s.endNamed {
		m.emit.warn("Provided ascii STL should probably be parsed as a binary STL")
	}

	hasName, hasEndName := s.name != "", s.endName != ""
	if hasName != hasEndName || (hasName && s.name != s.endName) {
		m.emit.warn(`Solid name ("%s") and endsolid name ("%s") do not match`,
			truncate(s.name, maxNameLength), ellipsize(s.endName, maxNameLength))
	}

	if m.completed == 0 {
		label := "<no name>"
		if hasName {
			label = "'" + ellipsize(s.name, maxNameLength) + "'"
		}
		m.emit.warn("Solid %s does not contain any faces", label)
	}

	if !s.named {
		return ErrInvalidSolid
	}
	if !s.closed && tail != "endsolid" {
		return ErrNotClosed
	}

	m.emit.progress(1)
	return nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func ellipsize(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return truncate(s, n) + "…"
}

// asciiParser feeds chunks through the word scanner into the grammar.
type asciiParser struct {
	opts    Options
	emit    emitter
	scanner *wordScanner
	machine *asciiMachine
}

func newASCIIParser(opts Options, emit emitter) *asciiParser {
	return &asciiParser{
		opts:    opts,
		emit:    emit,
		scanner: newWordScanner(),
		machine: newASCIIMachine(opts, emit),
	}
}

func (p *asciiParser) consume(chunk []byte) {
	p.scanner.feed(chunk)
	for {
		word, ok := p.scanner.next()
		if !ok {
			return
		}
		p.reportProgress()
		p.machine.step(word, p.scanner.line)
	}
}

func (p *asciiParser) finish() error {
	tail := p.scanner.rest()
	if tail != "" {
		p.reportProgress()
		p.machine.step(tail, p.scanner.line)
	}
	return p.machine.finish(tail)
}

func (p *asciiParser) reportProgress() {
	if p.opts.Size > 0 {
		p.emit.progress(math.Min(float64(p.scanner.consumed)/float64(p.opts.Size), 1))
	}
}
