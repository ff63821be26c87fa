package tree

import (
	"dggsvt/common"
	"dggsvt/util"
	"math/bits"
)

// Node is one level of a sparse trie keyed by the digits 0 to 6. Only present children are stored: bit d of the
// mask is set iff child d exists, and children holds exactly those children ordered by digit. Every node exclusively
// owns its children.
//
// Adding or erasing a child reallocates the child slice, which costs O(existing children) per call and invalidates
// nothing but the slice itself. Nodes are never moved, so pointers to nodes stay valid.
type Node[T any] struct {
	value    T
	mask     uint8
	children []*Node[T]
}

func New[T any]() *Node[T] {
	return &Node[T]{}
}

func checkDigit(digit byte) {
	if digit > common.MaxDigit {
		util.Bug("Invalid trie digit %d", digit)
	}
}

func (n *Node[T]) has(digit byte) bool {
	return n.mask&(1<<digit) != 0
}

// position returns the index within the children slice the given digit has or would have.
func (n *Node[T]) position(digit byte) int {
	return bits.OnesCount8(n.mask & (1<<digit - 1))
}

// Child returns the child for the digit and creates it when it doesn't exist yet.
func (n *Node[T]) Child(digit byte) *Node[T] {
	checkDigit(digit)

	pos := n.position(digit)
	if n.has(digit) {
		return n.children[pos]
	}

	child := &Node[T]{}

	children := make([]*Node[T], len(n.children)+1)
	copy(children, n.children[:pos])
	children[pos] = child
	copy(children[pos+1:], n.children[pos:])

	n.children = children
	n.mask |= 1 << digit

	return child
}

// GetChild returns the child for the digit or nil. It never creates nodes.
func (n *Node[T]) GetChild(digit byte) *Node[T] {
	checkDigit(digit)

	if !n.has(digit) {
		return nil
	}
	return n.children[n.position(digit)]
}

// Erase removes the child (and with it its whole subtree). It returns false when there was no such child.
func (n *Node[T]) Erase(digit byte) bool {
	checkDigit(digit)

	if !n.has(digit) {
		return false
	}

	pos := n.position(digit)
	if len(n.children) == 1 {
		n.children = nil
	} else {
		children := make([]*Node[T], len(n.children)-1)
		copy(children, n.children[:pos])
		copy(children[pos:], n.children[pos+1:])
		n.children = children
	}
	n.mask &^= 1 << digit

	return true
}

// PresentCount returns the number of existing children.
func (n *Node[T]) PresentCount() int {
	return len(n.children)
}

// DigitAt returns the digit of the pos-th existing child in ascending digit order.
func (n *Node[T]) DigitAt(pos int) byte {
	if pos < 0 || pos >= len(n.children) {
		util.Bug("Child position %d out of range [0,%d)", pos, len(n.children))
	}

	mask := n.mask
	for i := 0; i < pos; i++ {
		mask &= mask - 1 // clear lowest set bit
	}
	return byte(bits.TrailingZeros8(mask))
}

// ChildAt returns the pos-th existing child in ascending digit order.
func (n *Node[T]) ChildAt(pos int) *Node[T] {
	if pos < 0 || pos >= len(n.children) {
		util.Bug("Child position %d out of range [0,%d)", pos, len(n.children))
	}
	return n.children[pos]
}

func (n *Node[T]) IsLeaf() bool {
	return len(n.children) == 0
}

// Value returns a pointer to the payload of this node so it can be changed in place.
func (n *Node[T]) Value() *T {
	return &n.value
}

func (n *Node[T]) SetValue(value T) {
	n.value = value
}
