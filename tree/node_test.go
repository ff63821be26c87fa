package tree

import (
	"dggsvt/util"
	"testing"
)

func TestNode_childCreatesInDigitOrder(t *testing.T) {
	root := New[int]()

	five := root.Child(5)
	one := root.Child(1)
	three := root.Child(3)
	five.SetValue(50)

	util.AssertEqual(t, 3, root.PresentCount())
	util.AssertEqual(t, byte(1), root.DigitAt(0))
	util.AssertEqual(t, byte(3), root.DigitAt(1))
	util.AssertEqual(t, byte(5), root.DigitAt(2))
	util.AssertTrue(t, one == root.ChildAt(0))
	util.AssertTrue(t, three == root.ChildAt(1))
	util.AssertTrue(t, five == root.ChildAt(2))

	// Existing children are returned, not replaced
	util.AssertTrue(t, five == root.Child(5))
	util.AssertEqual(t, 50, *root.Child(5).Value())
	util.AssertEqual(t, 3, root.PresentCount())
}

func TestNode_getChildDoesNotCreate(t *testing.T) {
	root := New[int]()
	root.Child(0)

	util.AssertNotNil(t, root.GetChild(0))
	util.AssertTrue(t, root.GetChild(6) == nil)
	util.AssertEqual(t, 1, root.PresentCount())
}

func TestNode_eraseCompacts(t *testing.T) {
	root := New[int]()
	for _, digit := range []byte{0, 2, 4, 6} {
		root.Child(digit).SetValue(int(digit))
	}

	util.AssertTrue(t, root.Erase(2))
	util.AssertFalse(t, root.Erase(2))
	util.AssertFalse(t, root.Erase(3))

	util.AssertEqual(t, 3, root.PresentCount())
	util.AssertEqual(t, byte(0), root.DigitAt(0))
	util.AssertEqual(t, byte(4), root.DigitAt(1))
	util.AssertEqual(t, byte(6), root.DigitAt(2))
	util.AssertEqual(t, 4, *root.ChildAt(1).Value())
	util.AssertTrue(t, root.GetChild(2) == nil)

	root.Erase(0)
	root.Erase(4)
	root.Erase(6)
	util.AssertEqual(t, 0, root.PresentCount())
	util.AssertTrue(t, root.IsLeaf())
}

func TestNode_valueIsMutableInPlace(t *testing.T) {
	root := New[[]int]()
	child := root.Child(3)

	value := child.Value()
	*value = append(*value, 1, 2)

	util.AssertEqual(t, []int{1, 2}, *root.GetChild(3).Value())
}

func TestNode_invalidDigitIsBug(t *testing.T) {
	root := New[int]()

	util.AssertPanics(t, func() {
		root.Child(7)
	})
	util.AssertPanics(t, func() {
		root.GetChild(8)
	})
	util.AssertPanics(t, func() {
		root.Erase(15)
	})
	util.AssertPanics(t, func() {
		root.DigitAt(0)
	})
}
