package tree

import (
	"dggsvt/common"
)

// InsertPath descends along the address, creates missing nodes on the way and returns the node of the last digit.
// The descent stops at the address terminator, so the empty address yields the root itself.
func InsertPath[T any](root *Node[T], addr common.Addr) *Node[T] {
	node := root
	for n := 0; n < common.MaxDigits; n++ {
		digit := addr.Digit(n)
		if digit == common.Terminator {
			break
		}
		node = node.Child(digit)
	}
	return node
}

// QueryPath returns the node at the address or nil if any node on the way is missing.
func QueryPath[T any](root *Node[T], addr common.Addr) *Node[T] {
	node := root
	for n := 0; n < common.MaxDigits && node != nil; n++ {
		digit := addr.Digit(n)
		if digit == common.Terminator {
			break
		}
		node = node.GetChild(digit)
	}
	return node
}

// DescendPath follows the address as far as the tree reaches. It returns the deepest existing node together with
// its address, which is a prefix of the given one. Comparing both addresses tells whether the tree is deep enough.
func DescendPath[T any](root *Node[T], addr common.Addr) (*Node[T], common.Addr) {
	node := root
	reached := common.Addr{}

	for n := 0; n < common.MaxDigits; n++ {
		digit := addr.Digit(n)
		if digit == common.Terminator {
			break
		}

		child := node.GetChild(digit)
		if child == nil {
			break
		}

		node = child
		reached.Append(digit)
	}

	return node, reached
}

// Walk visits the nodes depth first, every node before its children and children in ascending digit order. When
// visit returns false, the children of that node are skipped.
func Walk[T any](root *Node[T], visit func(addr common.Addr, node *Node[T]) bool) {
	walk(root, common.Addr{}, visit)
}

func walk[T any](node *Node[T], addr common.Addr, visit func(addr common.Addr, node *Node[T]) bool) {
	if !visit(addr, node) {
		return
	}

	for pos := 0; pos < node.PresentCount(); pos++ {
		childAddr := addr
		childAddr.Append(node.DigitAt(pos))
		walk(node.ChildAt(pos), childAddr, visit)
	}
}
