package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder keeps every event it receives.
type recorder struct {
	events []Event
}

func (r *recorder) HandleEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) types() []EventType {
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

func (r *recorder) of(t EventType) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) warnings() []string {
	var out []string
	for _, e := range r.of(EventWarning) {
		out = append(out, e.Message)
	}
	return out
}

func (r *recorder) faces() []Face {
	var out []Face
	for _, e := range r.of(EventFace) {
		out = append(out, *e.Face)
	}
	return out
}

func (r *recorder) progress() []float64 {
	var out []float64
	for _, e := range r.of(EventProgress) {
		out = append(out, e.Progress)
	}
	return out
}

// parseChunks feeds input to a fresh parser in chunks of size bytes
// (the whole input at once when size <= 0) and closes it.
func parseChunks(input []byte, size int, opts ...Option) (*recorder, error) {
	rec := &recorder{}
	p := NewParser(rec, opts...)
	if size <= 0 {
		size = len(input)
	}
	for start := 0; start < len(input); start += size {
		end := min(start+size, len(input))
		if _, err := p.Write(input[start:end]); err != nil {
			return rec, err
		}
	}
	return rec, p.Close()
}

func parseString(t *testing.T, input string, opts ...Option) *recorder {
	t.Helper()
	rec, err := parseChunks([]byte(input), 0, opts...)
	require.NoError(t, err)
	return rec
}

type triangle struct {
	normal   [3]float32
	vertices [3][3]float32
	attr     uint16
}

var tetrahedron = []triangle{
	{normal: [3]float32{0, 0, -1}, vertices: [3][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}}},
	{normal: [3]float32{0, -1, 0}, vertices: [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}}},
	{normal: [3]float32{-1, 0, 0}, vertices: [3][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}}},
	{normal: [3]float32{0.57735, 0.57735, 0.57735}, vertices: [3][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}},
}

func formatTriangle(buf *bytes.Buffer, t triangle) {
	binary.Write(buf, le, t.normal)
	for _, v := range t.vertices {
		binary.Write(buf, le, v)
	}
	binary.Write(buf, le, t.attr)
}

// binarySTL encodes triangles with the given header text and declared
// face count.
func binarySTL(header string, declared uint32, tris []triangle) []byte {
	buf := &bytes.Buffer{}
	var h [headerByteCount]byte
	copy(h[:], header)
	buf.Write(h[:])
	binary.Write(buf, le, declared)
	for _, t := range tris {
		formatTriangle(buf, t)
	}
	return buf.Bytes()
}

// asciiSTL writes triangles the way common exporters do.
func asciiSTL(name string, tris []triangle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "solid %s\n", name)
	for _, t := range tris {
		fmt.Fprintf(&b, "  facet normal %g %g %g\n", t.normal[0], t.normal[1], t.normal[2])
		b.WriteString("    outer loop\n")
		for _, v := range t.vertices {
			fmt.Fprintf(&b, "      vertex %g %g %g\n", v[0], v[1], v[2])
		}
		b.WriteString("    endloop\n")
		b.WriteString("  endfacet\n")
	}
	fmt.Fprintf(&b, "endsolid %s\n", name)
	return b.String()
}

func randomMesh(rng *rand.Rand, n int) []triangle {
	coord := func() float32 {
		return float32(rng.Intn(20000)-10000) / 100
	}
	tris := make([]triangle, n)
	for i := range tris {
		tris[i].normal = [3]float32{coord(), coord(), coord()}
		for j := range tris[i].vertices {
			tris[i].vertices[j] = [3]float32{coord(), coord(), coord()}
		}
		tris[i].attr = uint16(rng.Intn(1 << 16))
	}
	return tris
}
