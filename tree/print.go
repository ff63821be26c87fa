package tree

import (
	"strings"
)

// ToString renders the tree with one line per node. The format function returns the text for a node's payload, empty
// texts are omitted. Example:
//
//	*
//	+-1
//	| \-3 #52 [4,9)
//	\-4
func ToString[T any](root *Node[T], format func(node *Node[T]) string) string {
	var builder strings.Builder
	writeNode(&builder, root, "*", "", "", format)
	return builder.String()
}

func writeNode[T any](builder *strings.Builder, node *Node[T], label string, linePrefix string, childPrefix string, format func(node *Node[T]) string) {
	builder.WriteString(linePrefix)
	builder.WriteString(label)
	if payload := format(node); payload != "" {
		builder.WriteByte(' ')
		builder.WriteString(payload)
	}
	builder.WriteByte('\n')

	count := node.PresentCount()
	for pos := 0; pos < count; pos++ {
		childLabel := string(rune('0' + node.DigitAt(pos)))
		if pos == count-1 {
			writeNode(builder, node.ChildAt(pos), childLabel, childPrefix+"\\-", childPrefix+"  ", format)
		} else {
			writeNode(builder, node.ChildAt(pos), childLabel, childPrefix+"+-", childPrefix+"| ", format)
		}
	}
}
