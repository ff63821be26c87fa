package osm

import (
	"dggsvt/common"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/osm"
	"sort"
)

// CellDensityAggregator counts the nodes per cell of one resolution.
type CellDensityAggregator struct {
	CellToNodeCount map[common.Index]int
	projection      common.Projection
	resolution      int
}

func NewCellDensityAggregator(projection common.Projection, resolution int) *CellDensityAggregator {
	return &CellDensityAggregator{
		CellToNodeCount: map[common.Index]int{},
		projection:      projection,
		resolution:      resolution,
	}
}

func (a *CellDensityAggregator) Name() string {
	return "CellDensityAggregator"
}

func (a *CellDensityAggregator) Init() error {
	return nil
}

func (a *CellDensityAggregator) HandleNode(node *osm.Node) error {
	cell, _ := a.projection.PointToCell(node.Point(), a.resolution)
	a.CellToNodeCount[cell]++
	return nil
}

func (a *CellDensityAggregator) HandleWay(way *osm.Way) error {
	return nil
}

func (a *CellDensityAggregator) Done() error {
	cells := a.DensestCells(5)
	for _, cell := range cells {
		sigolo.Debugf("Cell %s contains %d nodes", cell, a.CellToNodeCount[cell])
	}
	sigolo.Infof("Found nodes in %d cells of resolution %d", len(a.CellToNodeCount), a.resolution)
	return nil
}

// DensestCells returns up to n cells with the most nodes, the densest first. Cells of equal density are ordered by
// their index.
func (a *CellDensityAggregator) DensestCells(n int) []common.Index {
	cells := make([]common.Index, 0, len(a.CellToNodeCount))
	for cell := range a.CellToNodeCount {
		cells = append(cells, cell)
	}

	sort.Slice(cells, func(i, j int) bool {
		countI, countJ := a.CellToNodeCount[cells[i]], a.CellToNodeCount[cells[j]]
		if countI != countJ {
			return countI > countJ
		}
		return cells[i].Less(cells[j])
	})

	if len(cells) > n {
		cells = cells[:n]
	}
	return cells
}
