package index

import (
	"dggsvt/common"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"slices"
	"time"
)

// InsertFeatureCurve indexes the curve of the given feature. Starting at MinSubResolution, the fragments of every cell
// are refined into the child cells until they are final or the maximum resolution is reached.
func (t *VectorTree) InsertFeatureCurve(fid FeatureID, points []orb.Point) {
	t.cache.clear()

	if len(points) == 0 {
		sigolo.Debugf("Feature %d has no points, nothing to insert", fid)
		return
	}

	importStartTime := time.Now()

	inserter := &curveInserter{
		tree:    t,
		fid:     fid,
		points:  points,
		normals: segmentNormals(points),
	}
	inserter.run()

	sigolo.Debugf("Inserted feature %d with %d points down to resolution %d in %s", fid, len(points), inserter.resolution, time.Since(importStartTime))
	if sigolo.ShouldLogTrace() {
		sigolo.Tracef("Tree after inserting feature %d:\n%s", fid, t.String())
	}
}

// segmentNormals returns the unit normal of the great circle plane of every segment.
func segmentNormals(points []orb.Point) []r3.Vector {
	if len(points) < 2 {
		return nil
	}

	normals := make([]r3.Vector, len(points)-1)
	previous := s2.PointFromLatLng(s2.LatLngFromDegrees(points[0].Lat(), points[0].Lon()))
	for pid := 1; pid < len(points); pid++ {
		current := s2.PointFromLatLng(s2.LatLngFromDegrees(points[pid].Lat(), points[pid].Lon()))
		normals[pid-1] = previous.PointCross(current).Vector.Normalize()
		previous = current
	}
	return normals
}

// curveInserter holds the state of one InsertFeatureCurve call.
type curveInserter struct {
	tree    *VectorTree
	fid     FeatureID
	points  []orb.Point
	normals []r3.Vector

	resolution  int
	fragments   []Fragment     // Fragments still to process, the last one is processed next.
	cellsToTest []common.Index // Cells of the current resolution the fragments are distributed to.

	refinePrev    map[common.Index]bool // Cells of the previous resolution requiring refinement.
	refineCurrent []common.Index        // Cells of the current resolution still to process.
	touched       map[common.Index]bool // Cells of the current resolution that received fragments.
}

func (c *curveInserter) run() {
	c.resolution = common.MinSubResolution
	c.cellsToTest = c.tree.topology.Cells(c.resolution)
	c.fragments = []Fragment{{Begin: 0, End: len(c.points)}}
	c.touched = map[common.Index]bool{}

	for {
		for len(c.fragments) > 0 {
			fragment := c.fragments[len(c.fragments)-1]
			c.fragments = c.fragments[:len(c.fragments)-1]
			c.processFragment(fragment)
		}

		if len(c.refineCurrent) > 0 {
			c.nextCell()
			continue
		}

		if !c.nextResolution() {
			return
		}
	}
}

// nextCell makes the next refined cell of the current resolution the only cell to test and queues the fragments of
// its covering parents.
func (c *curveInserter) nextCell() {
	cell := c.refineCurrent[0]
	c.refineCurrent = c.refineCurrent[1:]
	c.cellsToTest = []common.Index{cell}

	var fragments []Fragment
	for _, parent := range c.tree.topology.CoveringParents(cell) {
		if !c.refinePrev[parent] {
			continue
		}
		if node := c.tree.queryFeatureNode(c.fid, parent); node != nil {
			fragments = MergeFragments(fragments, node.Fragments, MergeNonFinal)
		}
	}
	fragments = SimplifyFragments(fragments)

	// Processed from the back, so the first fragment goes last.
	slices.Reverse(fragments)
	c.fragments = fragments
}

// nextResolution collects the cells requiring refinement and descends to their children. It returns false when
// nothing is left to refine or the maximum resolution has been reached.
func (c *curveInserter) nextResolution() bool {
	var refineNext []common.Index
	for cell := range c.touched {
		if !c.tree.IsFeatureNodeFinal(c.fid, cell) {
			refineNext = append(refineNext, cell)
		}
	}
	if len(refineNext) == 0 {
		return false
	}

	if c.resolution+1 > c.tree.options.MaxResolution {
		sigolo.Warnf("Feature %d: Maximum resolution %d reached with %d cells still requiring refinement", c.fid, c.tree.options.MaxResolution, len(refineNext))
		return false
	}

	c.resolution++
	c.refinePrev = map[common.Index]bool{}
	c.touched = map[common.Index]bool{}

	var children []common.Index
	for _, cell := range common.SortIndices(refineNext) {
		c.refinePrev[cell] = true
		children = append(children, c.tree.topology.Children(cell)...)
	}

	c.refineCurrent = nil
	for _, child := range common.SortIndices(children) {
		if !c.tree.IsFeatureNodeFullyCovered(c.fid, child) {
			c.refineCurrent = append(c.refineCurrent, child)
		}
	}

	sigolo.Tracef("Feature %d: Refining %d cells into %d cells at resolution %d", c.fid, len(refineNext), len(c.refineCurrent), c.resolution)
	return true
}

// processFragment distributes the points of the fragment into the cells to test. The fragment is widened by the
// neighbouring points, which only serve as segment end points and are never inserted as points themselves.
func (c *curveInserter) processFragment(fragment Fragment) {
	begin, end := fragment.Begin, fragment.End
	widenedBegin := begin > 0
	if widenedBegin {
		begin--
	}
	widenedEnd := end < len(c.points)
	if widenedEnd {
		end++
	}

	prevCell, prevSure := c.tree.projection.PointToCell(c.points[begin], c.resolution)
	// Whether the previous point has been inserted, so the next one may extend its range.
	prevInserted := !widenedBegin
	if prevInserted && c.isCellToTest(prevCell) {
		c.featureNode(prevCell).InsertPoint(begin)
	}

	for pid := begin + 1; pid < end; pid++ {
		cell, sure := c.tree.projection.PointToCell(c.points[pid], c.resolution)
		isBoundary := widenedEnd && pid == end-1

		if prevInserted && !isBoundary && prevSure && sure && prevCell == cell {
			// The whole segment lies within the cell.
			if c.isCellToTest(cell) {
				c.featureNode(cell).ExtendPoint(pid)
			}
		} else {
			for _, testCell := range c.cellsToTest {
				hit := c.tree.projection.IntersectSegment(c.points[pid-1], c.points[pid], c.normals[pid-1], testCell)
				if hit != common.Miss {
					c.featureNode(testCell).InsertSegment(pid)
				}
			}

			if !isBoundary && c.isCellToTest(cell) {
				c.featureNode(cell).InsertPoint(pid)
			}
			prevInserted = !isBoundary
		}

		prevCell, prevSure = cell, sure
	}
}

func (c *curveInserter) isCellToTest(cell common.Index) bool {
	return slices.Contains(c.cellsToTest, cell)
}

func (c *curveInserter) featureNode(cell common.Index) *FeatureNode {
	c.touched[cell] = true
	return c.tree.insertFeatureNode(c.fid, cell)
}
