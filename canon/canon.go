// Package canon implements the literal-deduplication pass: after
// parsing, every StrLit and Regex node with byte-equal text is folded
// into a single shared instance so the numbering pass gives it exactly
// one id and one parsing-table row.
package canon

import "github.com/ebnfc/ebnfc/ast"

type literalKey struct {
	kind ast.Kind
	text string
}

// Run rewrites root's branch slots in place, redirecting duplicate
// StrLit/Regex nodes to the first-seen instance of the same kind and
// text. The tree handed in is assumed to be a genuine tree (no shared
// nodes yet), so each node is visited exactly once.
func Run(root *ast.Node) {
	c := &canonicalizer{seen: make(map[literalKey]*ast.Node)}
	c.walk(root)
}

type canonicalizer struct {
	seen map[literalKey]*ast.Node
}

func (c *canonicalizer) walk(n *ast.Node) {
	for i, b := range n.Branches {
		if b == nil {
			continue
		}
		if b.IsLiteral() {
			key := literalKey{b.Kind, b.Text}
			if existing, ok := c.seen[key]; ok {
				if existing != b {
					existing.Retain()
					b.Release()
					n.Branches[i] = existing
				}
				continue
			}
			c.seen[key] = b
			continue
		}
		c.walk(b)
	}
}
