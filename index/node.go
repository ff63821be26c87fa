package index

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

type FeatureID uint64

// FeatureNode holds the fragments of one feature within one cell. The fragments are sorted by their begin and do not
// overlap.
type FeatureNode struct {
	ID        FeatureID
	Fragments []Fragment
}

// InsertPoint adds the point to the fragments and returns the position of the fragment containing it. A placeholder
// [pid,pid) becomes [pid,pid+1), a placeholder [pid+1,pid+1) directly behind the point is implied and removed.
func (n *FeatureNode) InsertPoint(pid int) int {
	i := lowerBoundPoint(n.Fragments, pid)

	if i < len(n.Fragments) && n.Fragments[i].Begin == pid && n.Fragments[i].IsSegment() {
		n.Fragments[i].End++
	} else if i == len(n.Fragments) || pid < n.Fragments[i].Begin {
		n.Fragments = slices.Insert(n.Fragments, i, Fragment{Begin: pid, End: pid + 1})
	}

	if i+1 < len(n.Fragments) && n.Fragments[i+1].IsSegment() && n.Fragments[i+1].Begin == n.Fragments[i].End {
		n.Fragments = slices.Delete(n.Fragments, i+1, i+2)
	}

	return i
}

// InsertSegment adds the placeholder [pid,pid) for the segment pid-1 -> pid unless a fragment already implies this
// segment. It returns the position of the fragment implying the segment.
func (n *FeatureNode) InsertSegment(pid int) int {
	i := lowerBoundPoint(n.Fragments, pid)

	if i > 0 && pid <= n.Fragments[i-1].End {
		return i - 1
	}
	if i < len(n.Fragments) && n.Fragments[i].Begin <= pid {
		return i
	}

	n.Fragments = slices.Insert(n.Fragments, i, Fragment{Begin: pid, End: pid})
	return i
}

// ExtendPoint inserts the point and joins it with a preceding point range ending right before it. This is used when
// the whole segment pid-1 -> pid lies in the cell.
func (n *FeatureNode) ExtendPoint(pid int) int {
	i := n.InsertPoint(pid)

	if i > 0 {
		prev := n.Fragments[i-1]
		if !prev.IsSegment() && prev.End == pid && n.Fragments[i].Begin == pid {
			n.Fragments[i-1].End = n.Fragments[i].End
			n.Fragments = slices.Delete(n.Fragments, i, i+1)
			i--
		}
	}

	return i
}

func (n *FeatureNode) RequiresRefinement() bool {
	return RequiresRefinement(n.Fragments)
}

func (n *FeatureNode) IsFinal() bool {
	return !RequiresRefinement(n.Fragments)
}

func (n *FeatureNode) String() string {
	if len(n.Fragments) == 0 {
		return fmt.Sprintf("#%d", n.ID)
	}
	return fmt.Sprintf("#%d %s", n.ID, FragmentsString(n.Fragments))
}

// VTreeNode is the payload of a trie node: one FeatureNode per feature touching the cell, ordered by feature ID.
type VTreeNode struct {
	Features []FeatureNode
}

func (n *VTreeNode) find(fid FeatureID) int {
	return sort.Search(len(n.Features), func(i int) bool {
		return n.Features[i].ID >= fid
	})
}

// InsertFeatureNode returns the node of the given feature and creates an empty one if needed. The returned pointer
// is invalidated by the next insertion into this VTreeNode.
func (n *VTreeNode) InsertFeatureNode(fid FeatureID) *FeatureNode {
	i := n.find(fid)
	if i == len(n.Features) || n.Features[i].ID != fid {
		n.Features = slices.Insert(n.Features, i, FeatureNode{ID: fid})
	}
	return &n.Features[i]
}

// QueryFeatureNode returns the node of the given feature or nil.
func (n *VTreeNode) QueryFeatureNode(fid FeatureID) *FeatureNode {
	i := n.find(fid)
	if i == len(n.Features) || n.Features[i].ID != fid {
		return nil
	}
	return &n.Features[i]
}

func (n *VTreeNode) String() string {
	var parts []string
	for i := range n.Features {
		parts = append(parts, n.Features[i].String())
	}
	return strings.Join(parts, " ")
}
