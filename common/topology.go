package common

import (
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

// HitResult is the answer of the three-valued segment/cell test.
type HitResult int

const (
	Miss  HitResult = iota // The segment certainly doesn't touch the cell.
	Hit                    // The segment certainly crosses the cell interior.
	Touch                  // The test is unsure, the segment might touch the cell.
)

func (h HitResult) String() string {
	switch h {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Touch:
		return "touch"
	}
	return "?"
}

// SliceMask marks which portion of a target cell's interior a covering cell accounts for. Its width is defined by
// the topology, see Topology.FullSlice.
type SliceMask uint16

// CoveringCell is a coarser cell covering (a part of) some target cell.
type CoveringCell struct {
	Cell  Index
	Slice SliceMask
}

// Topology describes the hierarchy of the grid. Implementations must be deterministic: the order of all returned
// slices is part of the contract as it determines the order in which cells are processed.
type Topology interface {
	// Cells returns every cell of the given resolution.
	Cells(resolution int) []Index

	// Children returns the (up to seven) cells at the next resolution covered by the given cell.
	Children(cell Index) []Index

	// CoveringParents returns the cells at the previous resolution which together cover the given cell. This is
	// only the path parent for a centroid child and several cells for a vertex child.
	CoveringParents(cell Index) []Index

	// CoveringCells returns the strict ancestors of the cell from MinSubResolution on, coarsest first, plus the
	// siblings of every ancestor that is a vertex child. Each entry carries the slice of the target it covers.
	CoveringCells(cell Index) []CoveringCell

	// IsVertexChild is true for cells sharing a vertex of their parent instead of owning a disjoint part of it.
	IsVertexChild(cell Index) bool

	// FullSlice is the mask of a completely covered cell.
	FullSlice() SliceMask
}

// Projection places points and segments onto the grid. Both tests may be conservative: uncertainty must turn into
// "not sure" (false for PointToCell, Touch for IntersectSegment) and never into a wrong certain answer.
type Projection interface {
	// PointToCell returns the cell of the given resolution containing the point and whether the point lies well
	// within it.
	PointToCell(point orb.Point, resolution int) (Index, bool)

	// IntersectSegment tests the segment a->b against the cell. The normal is the unit normal of the segment's great
	// circle plane.
	IntersectSegment(a orb.Point, b orb.Point, normal r3.Vector, cell Index) HitResult
}
