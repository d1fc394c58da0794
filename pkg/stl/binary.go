package stl

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/philipparndt/stlparse/pkg/geometry"
)

// Binary layout:
//
//	| header (80 * uint8) |
//	| face count (1 * uint32) |
//
//	face (50 bytes)
//	| normal (3 * float32) |
//	| vertex 1..3 (3 * 3 * float32) |
//	| attribute (1 * uint16) |
const (
	headerByteCount     = 80
	faceCountByteCount  = 4
	coordinateByteCount = 4
	vectorByteCount     = 3 * coordinateByteCount
	attributeByteCount  = 2
	faceByteCount       = 4*vectorByteCount + attributeByteCount
	facesOffset         = headerByteCount + faceCountByteCount
)

// short name, for convenience
var le = binary.LittleEndian

// binaryParser decodes fixed-size structures at absolute offsets as soon
// as enough bytes have arrived. Consumed bytes are dropped from buf; base
// is the absolute offset of buf[0].
type binaryParser struct {
	emit emitter
	sink *recordSink

	buf  []byte
	base int64

	name         string
	haveHeader   bool
	declared     uint32
	haveDeclared bool
	counted      int
}

func newBinaryParser(opts Options, emit emitter) *binaryParser {
	p := &binaryParser{
		emit: emit,
		sink: newRecordSink(emit, opts.Aggregate),
	}
	p.sink.begin(FormatBinary)
	return p
}

// available reports whether the structure [offset, offset+size) is fully
// buffered and returns it.
func (p *binaryParser) available(offset, size int64) ([]byte, bool) {
	start := offset - p.base
	if start < 0 || start+size > int64(len(p.buf)) {
		return nil, false
	}
	return p.buf[start : start+size], true
}

// discard drops everything before the absolute offset.
func (p *binaryParser) discard(offset int64) {
	n := offset - p.base
	if n <= 0 {
		return
	}
	rest := copy(p.buf, p.buf[n:])
	p.buf = p.buf[:rest]
	p.base = offset
}

func (p *binaryParser) consume(chunk []byte) {
	p.buf = append(p.buf, chunk...)

	if !p.haveHeader {
		header, ok := p.available(0, headerByteCount)
		if !ok {
			return
		}
		p.name = trimHeader(header)
		p.haveHeader = true
		p.sink.header(SolidHeader{Name: p.name})
	}

	if !p.haveDeclared {
		counter, ok := p.available(headerByteCount, faceCountByteCount)
		if !ok {
			return
		}
		p.declared = le.Uint32(counter)
		p.haveDeclared = true
		declared := p.declared
		p.sink.header(SolidHeader{Name: p.name, FaceCount: &declared})
		p.discard(facesOffset)
	}

	for {
		// offset of the next face, recomputed from the tally each time
		offset := facesOffset + int64(p.counted)*faceByteCount
		record, ok := p.available(offset, faceByteCount)
		if !ok {
			break
		}
		p.counted++
		p.sink.face(decodeFace(record, p.counted))
	}
	p.discard(facesOffset + int64(p.counted)*faceByteCount)
}

func (p *binaryParser) finish() error {
	if p.counted == 0 {
		return ErrNoFaces
	}
	if int64(p.declared) != int64(p.counted) {
		p.emit.warn("Number of specified faces (%d) and counted number of faces (%d) do not match",
			p.declared, p.counted)
	}
	p.sink.flush(p.name)
	return nil
}

// trimHeader turns the 80 header bytes into a solid name by removing the
// NUL or whitespace padding at the end.
func trimHeader(header []byte) string {
	return string(bytes.TrimRight(header, "\x00 \t\r\n\v\f"))
}

func decodeVector(b []byte) geometry.Vector3 {
	return geometry.NewVector3(
		float64(math.Float32frombits(le.Uint32(b[0:]))),
		float64(math.Float32frombits(le.Uint32(b[4:]))),
		float64(math.Float32frombits(le.Uint32(b[8:]))),
	)
}

func decodeFace(record []byte, number int) Face {
	vertices := make([]geometry.Vector3, 3)
	for i := range vertices {
		start := vectorByteCount * (i + 1)
		vertices[i] = decodeVector(record[start : start+vectorByteCount])
	}
	attribute := le.Uint16(record[4*vectorByteCount:])
	return Face{
		Number:    number,
		Normal:    decodeVector(record[:vectorByteCount]),
		Vertices:  vertices,
		Attribute: &attribute,
	}
}
