package index

import (
	"dggsvt/common"
	"dggsvt/tree"
	"dggsvt/util"
	"github.com/pkg/errors"
)

type Options struct {
	MaxResolution int // Finest resolution the insertion refines to.
	CacheSize     int // Number of cached query results, 0 disables the cache.
}

func DefaultOptions() Options {
	return Options{
		MaxResolution: 38,
		CacheSize:     1024,
	}
}

// VectorTree indexes feature curves by the cells of a grid. Each trie node below the root faces holds, per feature,
// the fragments of the curve within that cell. Refinement stops at cells whose fragments are trivial (final), so the
// geometry of a deeper cell is reconstructed from its covering final cells.
//
// Insertions must be serialized. Queries may run concurrently with each other but not with an insertion.
type VectorTree struct {
	root       *tree.Node[VTreeNode]
	topology   common.Topology
	projection common.Projection
	options    Options
	cache      *lruFragmentCache
}

func NewVectorTree(topology common.Topology, projection common.Projection, options Options) (*VectorTree, error) {
	if options.MaxResolution < common.MinSubResolution || options.MaxResolution > common.MaxResolution {
		return nil, errors.Errorf("Maximum resolution %d out of range [%d,%d]", options.MaxResolution, common.MinSubResolution, common.MaxResolution)
	}
	if options.CacheSize < 0 {
		return nil, errors.Errorf("Invalid cache size %d", options.CacheSize)
	}

	return &VectorTree{
		root:       tree.New[VTreeNode](),
		topology:   topology,
		projection: projection,
		options:    options,
		cache:      newLruCache(options.CacheSize),
	}, nil
}

func (t *VectorTree) Options() Options {
	return t.options
}

func (t *VectorTree) Projection() common.Projection {
	return t.projection
}

// insertFeatureNode returns the feature node of the cell and creates the trie path to it. Every cell on the path from
// MinSubResolution on gets a (possibly empty) node for the feature.
func (t *VectorTree) insertFeatureNode(fid FeatureID, cell common.Index) *FeatureNode {
	if !cell.IsValid() || cell.Resolution() < common.MinSubResolution {
		util.Bug("Cell %s cannot carry feature nodes", cell)
	}

	addr := common.IndexToAddr(cell)
	node := t.root
	var featureNode *FeatureNode
	for n := 0; n < addr.Len(); n++ {
		node = node.Child(addr.Digit(n))
		if n >= common.MinSubResolution {
			featureNode = node.Value().InsertFeatureNode(fid)
		}
	}

	return featureNode
}

// queryFeatureNode returns the feature node of the cell or nil when the feature doesn't reach this cell.
func (t *VectorTree) queryFeatureNode(fid FeatureID, cell common.Index) *FeatureNode {
	if !cell.IsValid() || cell.Resolution() < common.MinSubResolution {
		return nil
	}

	node := tree.QueryPath(t.root, common.IndexToAddr(cell))
	if node == nil {
		return nil
	}
	return node.Value().QueryFeatureNode(fid)
}

// IsFeatureNodeFinal is true when the feature has no node in the cell or the node requires no refinement.
func (t *VectorTree) IsFeatureNodeFinal(fid FeatureID, cell common.Index) bool {
	featureNode := t.queryFeatureNode(fid, cell)
	return featureNode == nil || featureNode.IsFinal()
}

// FeatureNodeFinalSlices returns the slices of the cell covered by final nodes of its covering cells. A covering cell
// without a node for the feature counts as final, the feature just doesn't reach it.
func (t *VectorTree) FeatureNodeFinalSlices(fid FeatureID, cell common.Index) common.SliceMask {
	_, finalSlices := t.finalCoverage(fid, cell, true)
	return finalSlices
}

// finalCoverage walks the covering cells and merges the fragments of every final node covering slices not covered
// yet. Covering cells without a node only count as final when absentIsFinal is set. Cells beyond the maximum
// resolution are skipped since refinement never reaches them.
func (t *VectorTree) finalCoverage(fid FeatureID, cell common.Index, absentIsFinal bool) ([]Fragment, common.SliceMask) {
	var fragments []Fragment
	var finalSlices common.SliceMask

	for _, covering := range t.topology.CoveringCells(cell) {
		if covering.Slice&^finalSlices == 0 || covering.Cell.Resolution() > t.options.MaxResolution {
			continue
		}

		featureNode := t.queryFeatureNode(fid, covering.Cell)
		if featureNode == nil {
			if absentIsFinal {
				finalSlices |= covering.Slice
			}
		} else if featureNode.IsFinal() {
			fragments = MergeFragments(fragments, featureNode.Fragments, MergeAll)
			finalSlices |= covering.Slice
		}
	}

	return fragments, finalSlices
}

// IsFeatureNodeFullyCovered is true when final nodes of coarser cells already describe the whole cell.
func (t *VectorTree) IsFeatureNodeFullyCovered(fid FeatureID, cell common.Index) bool {
	return t.FeatureNodeFinalSlices(fid, cell) == t.topology.FullSlice()
}

// String dumps the trie with the feature nodes of each cell. Leaves still requiring refinement (cut off by the
// maximum resolution) are marked with "<<<".
func (t *VectorTree) String() string {
	return tree.ToString(t.root, func(node *tree.Node[VTreeNode]) string {
		text := node.Value().String()
		if node.IsLeaf() {
			for i := range node.Value().Features {
				if node.Value().Features[i].RequiresRefinement() {
					return text + " <<<"
				}
			}
		}
		return text
	})
}

// Cells returns every cell carrying a node of the given feature, in trie order.
func (t *VectorTree) Cells(fid FeatureID) []common.Index {
	var cells []common.Index
	tree.Walk(t.root, func(addr common.Addr, node *tree.Node[VTreeNode]) bool {
		if node.Value().QueryFeatureNode(fid) != nil {
			cells = append(cells, common.AddrToIndex(addr))
		}
		return true
	})
	return cells
}
