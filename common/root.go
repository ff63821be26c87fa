package common

import (
	"github.com/pkg/errors"
	"strconv"
)

// RootFace identifies one of the 32 resolution 1 cells of the icosahedral grid: the 12 vertex roots "1" to "12"
// and the 20 face roots "A" to "T". The zero value is not a valid root.
type RootFace uint8

const (
	VertexRootCount = 12
	FaceRootCount   = 20
	RootCount       = VertexRootCount + FaceRootCount

	// InvalidRoot is returned by DecodeRoot for codes that do not name a root face.
	InvalidRoot RootFace = 0xff

	// InvalidCode is returned by EncodeRoot for roots that cannot be encoded.
	InvalidCode byte = 0xff

	facesPerClass = 5
	firstFaceRoot = RootFace(VertexRootCount + 1)
)

// The root classes occupy the first address digit. Vertex roots are split into two classes of six, the face roots
// into four classes of five (A-E, F-J, K-O, P-T).
const (
	classNorthVertices = 1
	classSouthVertices = 2
	classFirstFaces    = 3
	classLastFaces     = 6
)

// VertexRoot returns the root of the given icosahedron vertex (1 to 12).
func VertexRoot(vertex int) RootFace {
	if vertex < 1 || vertex > VertexRootCount {
		return InvalidRoot
	}
	return RootFace(vertex)
}

// FaceRoot returns the root of the given icosahedron face letter ('A' to 'T').
func FaceRoot(face byte) RootFace {
	if face < 'A' || face >= 'A'+FaceRootCount {
		return InvalidRoot
	}
	return firstFaceRoot + RootFace(face-'A')
}

func (r RootFace) IsValid() bool {
	return r >= 1 && r <= RootCount
}

func (r RootFace) IsVertex() bool {
	return r >= 1 && r <= VertexRootCount
}

func (r RootFace) String() string {
	switch {
	case r.IsVertex():
		return strconv.Itoa(int(r))
	case r.IsValid():
		return string(rune('A' + int(r-firstFaceRoot)))
	}
	return "?"
}

// ParseRootFace parses the textual form of a root face, e.g. "3", "12" or "F".
func ParseRootFace(s string) (RootFace, error) {
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		root := FaceRoot(s[0])
		if root == InvalidRoot {
			return InvalidRoot, errors.Errorf("Unknown face root '%s'", s)
		}
		return root, nil
	}

	vertex, err := strconv.Atoi(s)
	if err != nil {
		return InvalidRoot, errors.Wrapf(err, "Unable to parse root face '%s'", s)
	}

	root := VertexRoot(vertex)
	if root == InvalidRoot {
		return InvalidRoot, errors.Errorf("Vertex root %d out of range", vertex)
	}
	return root, nil
}

// EncodeRoot maps a root face to its (class, ordinal) byte: the class in the upper nibble, the 1-based ordinal
// within the class in the lower nibble. Invalid roots yield InvalidCode.
func EncodeRoot(root RootFace) byte {
	switch {
	case root.IsVertex() && root <= 6:
		return classNorthVertices<<4 | byte(root)
	case root.IsVertex():
		return classSouthVertices<<4 | byte(root-6)
	case root.IsValid():
		face := byte(root - firstFaceRoot)
		return (classFirstFaces+face/facesPerClass)<<4 | (face%facesPerClass + 1)
	}
	return InvalidCode
}

// DecodeRoot is the inverse of EncodeRoot. Codes that don't name a root face yield InvalidRoot.
func DecodeRoot(code byte) RootFace {
	class := code >> 4
	ordinal := code & 0x0f

	switch {
	case class == classNorthVertices && ordinal >= 1 && ordinal <= 6:
		return RootFace(ordinal)
	case class == classSouthVertices && ordinal >= 1 && ordinal <= 6:
		return RootFace(ordinal + 6)
	case class >= classFirstFaces && class <= classLastFaces && ordinal >= 1 && ordinal <= facesPerClass:
		return firstFaceRoot + RootFace((class-classFirstFaces)*facesPerClass+ordinal-1)
	}
	return InvalidRoot
}

// AllRoots returns every root face in ascending order.
func AllRoots() []RootFace {
	roots := make([]RootFace, RootCount)
	for i := range roots {
		roots[i] = RootFace(i + 1)
	}
	return roots
}
