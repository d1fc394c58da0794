package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/stlparse/pkg/geometry"
	"github.com/philipparndt/stlparse/pkg/stl"
)

// EdgeInfo contains information about an edge of a face
type EdgeInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Face   int
}

// Summary contains the measurements shown for a parsed solid
type Summary struct {
	Name          string               `yaml:"name"`
	Format        stl.Format           `yaml:"format"`
	FaceCount     int                  `yaml:"faces"`
	DeclaredFaces *uint32              `yaml:"declaredFaces,omitempty"`
	BoundingBox   geometry.BoundingBox `yaml:"boundingBox"`
	Dimensions    geometry.Vector3     `yaml:"dimensions"`
	SurfaceArea   float64              `yaml:"surfaceArea"`
	EdgeCount     int                  `yaml:"edges"`
	MinEdgeLength float64              `yaml:"minEdgeLength"`
	MaxEdgeLength float64              `yaml:"maxEdgeLength"`
	AvgEdgeLength float64              `yaml:"avgEdgeLength"`
	Edges         []EdgeInfo           `yaml:"-"`
}

// Summarize measures a model
func Summarize(model *stl.Model) *Summary {
	s := &Summary{
		Name:          model.Name,
		Format:        model.Type,
		FaceCount:     model.FaceTotal(),
		DeclaredFaces: model.FaceCount,
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		Edges:         make([]EdgeInfo, 0, 3*model.FaceTotal()),
	}
	s.Dimensions = s.BoundingBox.Size()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, face := range model.Faces {
		tri := face.Triangle()
		edges := []struct {
			start, end geometry.Vector3
		}{
			{tri.V1, tri.V2},
			{tri.V2, tri.V3},
			{tri.V3, tri.V1},
		}

		for _, edge := range edges {
			length := edge.start.Distance(edge.end)
			s.Edges = append(s.Edges, EdgeInfo{
				Start:  edge.start,
				End:    edge.end,
				Length: length,
				Face:   face.Number,
			})

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	s.EdgeCount = len(s.Edges)
	if s.EdgeCount > 0 {
		s.MinEdgeLength = minLength
		s.MaxEdgeLength = maxLength
		s.AvgEdgeLength = totalLength / float64(s.EdgeCount)
	}

	return s
}

// LongestEdges returns the n longest edges
func (s *Summary) LongestEdges(n int) []EdgeInfo {
	edges := make([]EdgeInfo, len(s.Edges))
	copy(edges, s.Edges)

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Length > edges[j].Length
	})

	return edges[:min(n, len(edges))]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
