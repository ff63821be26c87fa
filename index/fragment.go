package index

import (
	"fmt"
	"sort"
	"strings"
)

// Fragment is a half-open range [Begin, End) of point indices of one feature curve. The points in range lie in the
// cell. A fragment also implies the segments between consecutive points in range and the segments towards the
// neighbouring points outside of it. The zero-length fragment [k,k) is a placeholder for the segment k-1 -> k which
// crosses the cell without any of its end points being in the cell.
type Fragment struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// IsSegment is true for zero-length placeholder fragments.
func (f Fragment) IsSegment() bool {
	return f.Begin == f.End
}

func (f Fragment) Len() int {
	return f.End - f.Begin
}

func (f Fragment) less(other Fragment) bool {
	if f.Begin != other.Begin {
		return f.Begin < other.Begin
	}
	return f.End < other.End
}

func (f Fragment) String() string {
	return fmt.Sprintf("[%d,%d)", f.Begin, f.End)
}

// FragmentsString renders fragments as "[4,5)[6,6)".
func FragmentsString(fragments []Fragment) string {
	var builder strings.Builder
	for _, fragment := range fragments {
		builder.WriteString(fragment.String())
	}
	return builder.String()
}

// lowerBoundPoint returns the position of the fragment that contains the point or the position where a new fragment
// for it would have to be inserted.
func lowerBoundPoint(fragments []Fragment, pid int) int {
	i := sort.Search(len(fragments), func(i int) bool {
		return fragments[i].Begin >= pid
	})
	if i > 0 && pid < fragments[i-1].End {
		i--
	}
	return i
}

// RequiresRefinement is true unless the fragments are trivial enough to stop descending: no fragment at all, one
// fragment of at most two points or the two placeholders [k,k)[k+1,k+1) of a single segment.
func RequiresRefinement(fragments []Fragment) bool {
	switch len(fragments) {
	case 0:
		return false
	case 1:
		return fragments[0].Len() > 2
	case 2:
		first, second := fragments[0], fragments[1]
		return !(first.IsSegment() && second.IsSegment() && first.Begin+1 == second.Begin)
	}
	return true
}

// MergePolicy decides whether MergeFragments takes the source fragments into account.
type MergePolicy int

const (
	MergeAll      MergePolicy = iota
	MergeFinal                // Only merge source fragments not requiring refinement.
	MergeNonFinal             // Only merge source fragments requiring refinement.
)

// MergeFragments returns the sorted union of both lists. Fragments occurring in both lists occur once in the result.
// The result never shares memory with the source list.
func MergeFragments(dst []Fragment, src []Fragment, policy MergePolicy) []Fragment {
	switch policy {
	case MergeFinal:
		if RequiresRefinement(src) {
			return dst
		}
	case MergeNonFinal:
		if !RequiresRefinement(src) {
			return dst
		}
	}

	if len(src) == 0 {
		return dst
	}

	result := make([]Fragment, 0, len(dst)+len(src))
	a, b := 0, 0
	for a < len(dst) && b < len(src) {
		switch {
		case dst[a].less(src[b]):
			result = append(result, dst[a])
			a++
		case src[b].less(dst[a]):
			result = append(result, src[b])
			b++
		default:
			result = append(result, dst[a])
			a++
			b++
		}
	}
	result = append(result, dst[a:]...)
	result = append(result, src[b:]...)

	return result
}

// SimplifyFragments removes placeholders which are implied by an adjacent non-empty fragment, e.g. [6,6) next to
// [4,6) or [6,8). The list is modified in place. A list never becomes empty since a placeholder is only removed next
// to a non-empty fragment.
func SimplifyFragments(fragments []Fragment) []Fragment {
	for n := 0; n < len(fragments); n++ {
		if !fragments[n].IsSegment() {
			continue
		}

		impliedByPrev := n > 0 && !fragments[n-1].IsSegment() && fragments[n-1].End == fragments[n].Begin
		impliedByNext := n+1 < len(fragments) && !fragments[n+1].IsSegment() && fragments[n].End == fragments[n+1].Begin
		if impliedByPrev || impliedByNext {
			fragments = append(fragments[:n], fragments[n+1:]...)
			n--
		}
	}
	return fragments
}

// SimplifyFragmentsToPointRanges turns the fragments into ranges of points that contain the whole implied geometry,
// i.e. each fragment is widened by the neighbouring points. Overlapping ranges are merged. The fragments must be
// sorted.
func SimplifyFragmentsToPointRanges(fragments []Fragment, pointCount int) []Fragment {
	var ranges []Fragment
	for _, fragment := range fragments {
		begin, end := fragment.Begin, fragment.End
		if begin > 0 {
			begin--
		}
		if end > 0 && end < pointCount {
			end++
		}

		if len(ranges) > 0 && begin < ranges[len(ranges)-1].End {
			last := &ranges[len(ranges)-1]
			last.End = max(last.End, end)
			continue
		}
		ranges = append(ranges, Fragment{Begin: begin, End: end})
	}
	return ranges
}
