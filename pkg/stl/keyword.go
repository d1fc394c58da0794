package stl

// keyword is the last significant token seen by the ascii grammar.
// The coordinate tags record how far an x/y/z triple has progressed.
type keyword uint8

const (
	kwRoot keyword = iota
	kwSolid
	kwFacet
	kwNormal
	kwNormalX
	kwNormalY
	kwNormalZ
	kwOuter
	kwLoop
	kwVertex
	kwVertexX
	kwVertexY
	kwVertexZ
	kwEndloop
	kwEndfacet
	kwEndsolid
)

var keywordNames = [...]string{
	kwRoot:     "root",
	kwSolid:    "solid",
	kwFacet:    "facet",
	kwNormal:   "normal",
	kwNormalX:  "normal-x",
	kwNormalY:  "normal-y",
	kwNormalZ:  "normal-z",
	kwOuter:    "outer",
	kwLoop:     "loop",
	kwVertex:   "vertex",
	kwVertexX:  "vertex-x",
	kwVertexY:  "vertex-y",
	kwVertexZ:  "vertex-z",
	kwEndloop:  "endloop",
	kwEndfacet: "endfacet",
	kwEndsolid: "endsolid",
}

func (k keyword) String() string {
	if int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return "unknown"
}

// coordinateAxis maps a tag that expects a coordinate next to the axis
// index (0, 1, 2) it expects and the tag the coordinate completes.
func (k keyword) coordinateAxis() (axis int, next keyword, ok bool) {
	switch k {
	case kwNormal:
		return 0, kwNormalX, true
	case kwNormalX:
		return 1, kwNormalY, true
	case kwNormalY:
		return 2, kwNormalZ, true
	case kwVertex:
		return 0, kwVertexX, true
	case kwVertexX:
		return 1, kwVertexY, true
	case kwVertexY:
		return 2, kwVertexZ, true
	}
	return 0, k, false
}

func (k keyword) isVertexCoordinate() bool {
	return k == kwVertex || k == kwVertexX || k == kwVertexY
}

func (k keyword) isNormalCoordinate() bool {
	return k == kwNormal || k == kwNormalX || k == kwNormalY
}
