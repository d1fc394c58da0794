package stl

import (
	"github.com/philipparndt/stlparse/pkg/geometry"
)

// Face is one triangle of a solid.
type Face struct {
	Number    int                `json:"number"`
	Normal    geometry.Vector3   `json:"normal"`
	Vertices  []geometry.Vector3 `json:"vertices"`
	Attribute *uint16            `json:"attribute,omitempty"`
}

// Triangle converts the face to a geometry triangle. Missing vertices
// are left at the origin.
func (f Face) Triangle() geometry.Triangle {
	var v [3]geometry.Vector3
	copy(v[:], f.Vertices)
	return geometry.NewTriangle(f.Normal, v[0], v[1], v[2])
}

// SolidHeader is the model-header record: the solid name and, for
// binary input, the face count declared in the file.
type SolidHeader struct {
	Name      string  `json:"name"`
	FaceCount *uint32 `json:"faceCount,omitempty"`
}

// Model is a complete solid as produced in aggregate mode.
type Model struct {
	Name      string  `json:"name"`
	Type      Format  `json:"type"`
	Faces     []Face  `json:"faces"`
	FaceCount *uint32 `json:"faceCount,omitempty"`
}

// NewModel creates an empty model
func NewModel(name string, format Format) *Model {
	return &Model{
		Name:  name,
		Type:  format,
		Faces: make([]Face, 0),
	}
}

// AddFace appends a face to the model
func (m *Model) AddFace(face Face) {
	m.Faces = append(m.Faces, face)
}

// FaceTotal returns the number of faces actually present, which may
// differ from the declared FaceCount of a binary file.
func (m *Model) FaceTotal() int {
	return len(m.Faces)
}

// BoundingBox calculates the bounding box of all vertices
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, face := range m.Faces {
		for _, v := range face.Vertices {
			bbox.Extend(v)
		}
	}
	return bbox
}

// SurfaceArea sums the areas of all faces
func (m *Model) SurfaceArea() float64 {
	total := 0.0
	for _, face := range m.Faces {
		total += face.Triangle().Area()
	}
	return total
}
