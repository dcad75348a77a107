package ast

import (
	"fmt"
	"io"
)

// Dump writes an indented pretty-print of the tree rooted at n to w,
// one node per line, deterministic in traversal order.
func Dump(w io.Writer, n *Node) {
	dump(w, n, 0)
}

func dump(w io.Writer, n *Node, indent int) {
	if n == nil {
		return
	}
	pad := fmt.Sprintf("%*s", indent, "")
	if n.Text == "" {
		fmt.Fprintf(w, "%s%s\n", pad, n.Kind)
	} else {
		fmt.Fprintf(w, "%s%s %q\n", pad, n.Kind, n.Text)
	}
	for _, b := range n.Branches {
		dump(w, b, indent+2)
	}
}
