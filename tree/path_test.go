package tree

import (
	"dggsvt/common"
	"dggsvt/util"
	"testing"
)

func mustAddr(t *testing.T, s string) common.Addr {
	addr, err := common.ParseAddr(s)
	util.AssertNil(t, err)
	return addr
}

func TestPath_insertAndQuery(t *testing.T) {
	root := New[string]()

	node := InsertPath(root, mustAddr(t, "1300"))
	node.SetValue("leaf")

	util.AssertEqual(t, "leaf", *QueryPath(root, mustAddr(t, "1300")).Value())
	util.AssertNotNil(t, QueryPath(root, mustAddr(t, "130")))
	util.AssertTrue(t, QueryPath(root, mustAddr(t, "1301")) == nil)
	util.AssertTrue(t, QueryPath(root, mustAddr(t, "13000")) == nil)
	util.AssertTrue(t, QueryPath(root, common.Addr{}) == root)
	util.AssertTrue(t, InsertPath(root, common.Addr{}) == root)

	// Inserting again returns the same node
	util.AssertTrue(t, node == InsertPath(root, mustAddr(t, "1300")))
}

func TestPath_descendReportsReachedAddress(t *testing.T) {
	root := New[string]()
	InsertPath(root, mustAddr(t, "1300"))

	node, reached := DescendPath(root, mustAddr(t, "130052"))
	util.AssertEqual(t, "1300", reached.String())
	util.AssertTrue(t, node == QueryPath(root, mustAddr(t, "1300")))

	desired := mustAddr(t, "130")
	node, reached = DescendPath(root, desired)
	util.AssertTrue(t, reached.Equal(desired))
	util.AssertFalse(t, node.IsLeaf())

	node, reached = DescendPath(root, mustAddr(t, "26"))
	util.AssertTrue(t, node == root)
	util.AssertEqual(t, 0, reached.Len())
}

func TestPath_walkOrder(t *testing.T) {
	root := New[string]()
	InsertPath(root, mustAddr(t, "41"))
	InsertPath(root, mustAddr(t, "13"))
	InsertPath(root, mustAddr(t, "1300"))
	InsertPath(root, mustAddr(t, "134"))

	var visited []string
	Walk(root, func(addr common.Addr, node *Node[string]) bool {
		visited = append(visited, addr.String())
		return true
	})
	util.AssertEqual(t, []string{"", "1", "13", "130", "1300", "134", "4", "41"}, visited)

	visited = nil
	Walk(root, func(addr common.Addr, node *Node[string]) bool {
		visited = append(visited, addr.String())
		return addr.Len() < 2
	})
	util.AssertEqual(t, []string{"", "1", "13", "4", "41"}, visited)
}

func TestPrint_toString(t *testing.T) {
	root := New[string]()
	InsertPath(root, mustAddr(t, "41")).SetValue("a")
	InsertPath(root, mustAddr(t, "130")).SetValue("b")
	InsertPath(root, mustAddr(t, "1305")).SetValue("c")
	InsertPath(root, mustAddr(t, "134"))

	actual := ToString(root, func(node *Node[string]) string {
		return *node.Value()
	})

	expected := "*\n" +
		"+-1\n" +
		"| \\-3\n" +
		"|   +-0 b\n" +
		"|   | \\-5 c\n" +
		"|   \\-4\n" +
		"\\-4\n" +
		"  \\-1 a\n"
	util.AssertEqual(t, expected, actual)
}
