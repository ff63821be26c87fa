package index

import (
	"dggsvt/common"
	"dggsvt/tree"
	"github.com/hauke96/sigolo/v2"
)

// QueryFragments reconstructs the fragments of the feature within the cell. Final nodes of covering cells are merged
// as long as they cover slices of the cell not covered yet. Covering cells without a node for the feature cover
// nothing here, since a sibling that was never refined says nothing about the cell. The cell's own node is only taken into account when the
// covering cells don't already describe the whole cell. The result is empty when the feature doesn't touch the cell.
func (t *VectorTree) QueryFragments(fid FeatureID, cell common.Index) []Fragment {
	if !cell.IsValid() || cell.Resolution() < common.MinSubResolution {
		return nil
	}

	key := cacheKey{fid: fid, cell: cell}
	if fragments, ok := t.cache.get(key); ok {
		return fragments
	}

	fragments := t.queryFragments(fid, cell)
	t.cache.insert(key, fragments)

	return fragments
}

func (t *VectorTree) queryFragments(fid FeatureID, cell common.Index) []Fragment {
	fragments, coveredSlices := t.finalCoverage(fid, cell, false)

	if coveredSlices != t.topology.FullSlice() {
		if featureNode := t.queryFeatureNode(fid, cell); featureNode != nil {
			fragments = MergeFragments(fragments, featureNode.Fragments, MergeAll)
		} else if cell.Resolution() > t.options.MaxResolution {
			fragments = MergeFragments(fragments, t.cutOffFragments(fid, cell), MergeAll)
		}
	}

	sigolo.Tracef("Feature %d in cell %s: %s", fid, cell, FragmentsString(fragments))
	return SimplifyFragments(fragments)
}

// cutOffFragments returns the fragments of the cell at the maximum resolution on the path to the given cell, when the
// refinement of the feature was cut off there.
func (t *VectorTree) cutOffFragments(fid FeatureID, cell common.Index) []Fragment {
	node, reached := tree.DescendPath(t.root, common.IndexToAddr(cell))
	if common.AddrToIndex(reached).Resolution() != t.options.MaxResolution {
		return nil
	}

	featureNode := node.Value().QueryFeatureNode(fid)
	if featureNode == nil || featureNode.IsFinal() {
		return nil
	}
	return featureNode.Fragments
}
