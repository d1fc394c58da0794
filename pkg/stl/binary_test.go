package stl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryTetrahedron(t *testing.T) {
	rec, err := parseChunks(binarySTL("tetra", 4, tetrahedron), 0)
	require.NoError(t, err)

	want := []EventType{EventHeader, EventModelHeader, EventModelHeader, EventFace, EventFace, EventFace, EventFace}
	if diff := cmp.Diff(want, rec.types()); diff != "" {
		t.Fatalf("event types mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, FormatBinary, rec.events[0].Format)

	assert.Equal(t, SolidHeader{Name: "tetra"}, *rec.events[1].Solid)
	counted := rec.events[2].Solid
	assert.Equal(t, "tetra", counted.Name)
	require.NotNil(t, counted.FaceCount)
	assert.EqualValues(t, 4, *counted.FaceCount)

	assert.Empty(t, rec.warnings())
	assert.Empty(t, rec.progress())

	for i, f := range rec.faces() {
		assert.Equal(t, i+1, f.Number)
		require.NotNil(t, f.Attribute)
		assert.EqualValues(t, 0, *f.Attribute)
		for j, v := range f.Vertices {
			want := tetrahedron[i].vertices[j]
			assert.EqualValues(t, want[0], v.X)
			assert.EqualValues(t, want[1], v.Y)
			assert.EqualValues(t, want[2], v.Z)
		}
	}
	assert.InDelta(t, 0.57735, rec.faces()[3].Normal.Z, 1e-6)
}

func TestBinaryHeaderTrim(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"COLOR= 1 2 3", "COLOR= 1 2 3"},
		{"exported by cad   \t", "exported by cad"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			rec, err := parseChunks(binarySTL(tt.header, 1, tetrahedron[:1]), 0)
			require.NoError(t, err)
			headers := rec.of(EventModelHeader)
			require.Len(t, headers, 2)
			assert.Equal(t, tt.want, headers[0].Solid.Name)
			assert.Equal(t, tt.want, headers[1].Solid.Name)
		})
	}
}

func TestBinaryAttributePassThrough(t *testing.T) {
	tri := tetrahedron[0]
	tri.attr = 0xBEEF
	rec, err := parseChunks(binarySTL("attr", 1, []triangle{tri}), 0)
	require.NoError(t, err)

	faces := rec.faces()
	require.Len(t, faces, 1)
	require.NotNil(t, faces[0].Attribute)
	assert.EqualValues(t, 0xBEEF, *faces[0].Attribute)
}

func TestBinaryChunkIndependence(t *testing.T) {
	data := binarySTL("chunks", 4, tetrahedron)

	whole, err := parseChunks(data, 0)
	require.NoError(t, err)

	for _, size := range []int{1, 3, 49, 50, 51, 84, 85} {
		rec, err := parseChunks(data, size)
		require.NoError(t, err)
		if diff := cmp.Diff(whole.events, rec.events); diff != "" {
			t.Errorf("chunk size %d: events mismatch (-whole +chunked):\n%s", size, diff)
		}
	}
}

func TestBinaryCountMismatch(t *testing.T) {
	rec, err := parseChunks(binarySTL("mismatch", 66, tetrahedron), 0)
	require.NoError(t, err)

	assert.Len(t, rec.faces(), 4)
	assert.Equal(t, []string{
		"Number of specified faces (66) and counted number of faces (4) do not match",
	}, rec.warnings())
}

func TestBinaryNoFaces(t *testing.T) {
	for name, data := range map[string][]byte{
		"declared zero": binarySTL("empty", 0, nil),
		"declared one":  binarySTL("empty", 1, nil),
		"header only":   make([]byte, 30),
	} {
		t.Run(name, func(t *testing.T) {
			rec, err := parseChunks(data, 0)
			require.ErrorIs(t, err, ErrNoFaces)
			assert.Equal(t, "No faces were specified in the binary STL", err.Error())
			assert.Empty(t, rec.faces())
			assert.Len(t, rec.of(EventError), 1)
		})
	}
}

func TestBinaryTrailingPartialRecord(t *testing.T) {
	data := binarySTL("partial", 5, tetrahedron)
	data = append(data, make([]byte, faceByteCount-1)...)

	rec, err := parseChunks(data, 17)
	require.NoError(t, err)

	assert.Len(t, rec.faces(), 4)
	assert.Equal(t, []string{
		"Number of specified faces (5) and counted number of faces (4) do not match",
	}, rec.warnings())
}

func TestBinaryAggregate(t *testing.T) {
	rec, err := parseChunks(binarySTL("tetra", 4, tetrahedron), 11, WithAggregate(true))
	require.NoError(t, err)

	require.Equal(t, []EventType{EventModel}, rec.types())
	model := rec.events[0].Model
	assert.Equal(t, "tetra", model.Name)
	assert.Equal(t, FormatBinary, model.Type)
	assert.Len(t, model.Faces, 4)
	require.NotNil(t, model.FaceCount)
	assert.EqualValues(t, 4, *model.FaceCount)
}

func TestBinarySolidPrefixedHeader(t *testing.T) {
	data := binarySTL("solid looking header", 4, tetrahedron)

	rec, err := parseChunks(data, 0, WithFormat(FormatBinary))
	require.NoError(t, err)
	assert.Len(t, rec.faces(), 4)
	assert.Equal(t, "solid looking header", rec.of(EventModelHeader)[0].Solid.Name)
}

func TestBinaryDiscardsConsumedBytes(t *testing.T) {
	var events []Event
	p := newBinaryParser(DefaultOptions(), func(e Event) { events = append(events, e) })

	data := binarySTL("discard", 4, tetrahedron)
	p.consume(data[:facesOffset+faceByteCount+10])
	assert.Len(t, p.buf, 10)
	assert.EqualValues(t, facesOffset+faceByteCount, p.base)

	p.consume(data[facesOffset+faceByteCount+10:])
	assert.Empty(t, p.buf)
	assert.EqualValues(t, len(data), p.base)
	assert.Equal(t, 4, p.counted)

	require.NoError(t, p.finish())
}
