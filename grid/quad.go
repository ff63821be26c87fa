package grid

import (
	"dggsvt/common"
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/pkg/errors"
)

const (
	rootColumns = 8
	rootRows    = common.RootCount / rootColumns
	rootSize    = 45.0 // Width and height of a root face in degrees.
	childCount  = 4
)

type Options struct {
	// Tolerance is the fraction of the cell size used as safety margin. Points closer to the cell border are not
	// certainly within the cell and segments closer to it are only touching.
	Tolerance float64
	SliceBits int // Width of the slice masks (1 to 16).
}

func DefaultOptions() Options {
	return Options{
		Tolerance: 0.01,
		SliceBits: 12,
	}
}

// QuadGrid is a planar lon/lat grid used as reference implementation of common.Topology and common.Projection. The
// 32 root faces tile the world in 8 columns and 4 rows of 45°x45°, starting at (-180,-90). Each cell is split into
// four children, the digit is 2*y+x with x and y being 1 for the eastern or northern half. Children never share
// vertices with other cells, so there are no vertex children and every cell is covered by its ancestors alone.
type QuadGrid struct {
	options   Options
	fullSlice common.SliceMask
}

func NewQuadGrid(options Options) (*QuadGrid, error) {
	if options.Tolerance <= 0 || options.Tolerance >= 0.5 {
		return nil, errors.Errorf("Tolerance %f out of range (0,0.5)", options.Tolerance)
	}
	if options.SliceBits < 1 || options.SliceBits > 16 {
		return nil, errors.Errorf("Slice width of %d bits out of range [1,16]", options.SliceBits)
	}

	return &QuadGrid{
		options:   options,
		fullSlice: common.SliceMask(uint32(1)<<options.SliceBits - 1),
	}, nil
}

// Cells returns all cells of the resolution, sorted. The number of cells grows by factor four with each resolution.
func (g *QuadGrid) Cells(resolution int) []common.Index {
	var cells []common.Index
	for _, root := range common.AllRoots() {
		cells = appendCells(cells, common.Index{Root: root}, resolution)
	}
	return cells
}

func appendCells(cells []common.Index, cell common.Index, resolution int) []common.Index {
	if cell.Resolution() >= resolution {
		return append(cells, cell)
	}
	for digit := byte(0); digit < childCount; digit++ {
		cells = appendCells(cells, cell.Child(digit), resolution)
	}
	return cells
}

func (g *QuadGrid) Children(cell common.Index) []common.Index {
	if cell.Resolution() >= common.MaxResolution {
		return nil
	}

	children := make([]common.Index, childCount)
	for digit := byte(0); digit < childCount; digit++ {
		children[digit] = cell.Child(digit)
	}
	return children
}

func (g *QuadGrid) CoveringParents(cell common.Index) []common.Index {
	if cell.IsRoot() {
		return nil
	}
	return []common.Index{cell.Parent()}
}

func (g *QuadGrid) CoveringCells(cell common.Index) []common.CoveringCell {
	var covering []common.CoveringCell
	for resolution := common.MinSubResolution; resolution < cell.Resolution(); resolution++ {
		covering = append(covering, common.CoveringCell{
			Cell:  cell.Ancestor(resolution),
			Slice: g.fullSlice,
		})
	}
	return covering
}

func (g *QuadGrid) IsVertexChild(common.Index) bool {
	return false
}

func (g *QuadGrid) FullSlice() common.SliceMask {
	return g.fullSlice
}

// CellBound returns the lon/lat bound of the cell.
func (g *QuadGrid) CellBound(cell common.Index) orb.Bound {
	column := int(cell.Root-1) % rootColumns
	row := int(cell.Root-1) / rootColumns

	minLon := -180 + float64(column)*rootSize
	minLat := -90 + float64(row)*rootSize
	size := rootSize

	for n := 0; n < len(cell.Path); n++ {
		size /= 2
		digit := cell.Digit(n)
		if digit&1 != 0 {
			minLon += size
		}
		if digit&2 != 0 {
			minLat += size
		}
	}

	return orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{minLon + size, minLat + size},
	}
}

// PointToCell determines the cell by descending from the root face. The point is certainly within the cell when it
// keeps a distance of Tolerance*size to the cell border. Points outside the lon/lat range are clamped.
func (g *QuadGrid) PointToCell(point orb.Point, resolution int) (common.Index, bool) {
	lon := clamp(point.Lon(), -180, 180)
	lat := clamp(point.Lat(), -90, 90)

	column := min(int((lon+180)/rootSize), rootColumns-1)
	row := min(int((lat+90)/rootSize), rootRows-1)

	minLon := -180 + float64(column)*rootSize
	minLat := -90 + float64(row)*rootSize
	size := rootSize

	path := make([]byte, 0, max(resolution-1, 0))
	for len(path)+1 < resolution {
		size /= 2
		var digit byte
		if lon >= minLon+size {
			digit |= 1
			minLon += size
		}
		if lat >= minLat+size {
			digit |= 2
			minLat += size
		}
		path = append(path, '0'+digit)
	}

	cell := common.Index{Root: common.RootFace(row*rootColumns + column + 1), Path: string(path)}

	margin := g.options.Tolerance * size
	bound := orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{minLon + size, minLat + size},
	}
	sure := bound.Pad(-margin).Contains(orb.Point{lon, lat})

	return cell, sure
}

// IntersectSegment clips the straight lon/lat segment against the cell bound grown and shrunk by the tolerance
// margin. Segments of this grid are straight in lon/lat, not great circle arcs, so the plane normal would describe a
// different curve and is ignored. Testing against it could report a miss for a segment that crosses the cell.
func (g *QuadGrid) IntersectSegment(a orb.Point, b orb.Point, _ r3.Vector, cell common.Index) common.HitResult {
	bound := g.CellBound(cell)
	margin := g.options.Tolerance * (bound.Max.X() - bound.Min.X())
	segment := orb.LineString{a, b}

	padded := bound.Pad(margin)
	if !segment.Bound().Intersects(padded) || len(clip.LineString(padded, segment)) == 0 {
		return common.Miss
	}

	if len(clip.LineString(bound.Pad(-margin), segment)) > 0 {
		return common.Hit
	}

	return common.Touch
}

func clamp(value float64, lower float64, upper float64) float64 {
	return max(lower, min(upper, value))
}
