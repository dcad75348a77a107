// Package layout implements the numbering and layout pass: two
// pre-order walks over the canonicalized DAG that assign global ids and
// enumeration tags (enumerator) and then export identifiers and
// branch-array offsets (namer), building the flat branch-index array
// shared by every exportable node.
package layout

import (
	"strings"

	"github.com/ebnfc/ebnfc/ast"
	"github.com/ebnfc/ebnfc/table"
)

// Result carries the outputs of the layout pass that don't live on the
// nodes themselves: the id-ordered list of exportable nodes, used by
// codegen to walk rows in id order, and the total length the flat
// branch array must have. Branch *values* are resolved later by
// codegen, which needs the whole tree in scope to look up production
// names.
type Result struct {
	Nodes         []*ast.Node // Nodes[i] is the node with ID == i
	BranchArrayLen int
}

// Run assigns ids, node-type tags, export identifiers, and branch-array
// offsets to every exportable node reachable from root, and returns the
// id-ordered node list plus the branch array's required length.
func Run(root *ast.Node) *Result {
	e := &enumerator{}
	e.walk(root)

	n := &namer{}
	n.walk(root)

	return &Result{Nodes: e.nodes, BranchArrayLen: n.branchesIx}
}

type enumerator struct {
	nextID int
	nodes  []*ast.Node
}

func (e *enumerator) walk(n *ast.Node) {
	if n == nil {
		return
	}
	if n.Exportable() && n.ID == -1 {
		n.NodeTypeEnum = nodeTypeEnum(n, e.nextID)
		n.ID = e.nextID
		e.nextID++
		e.nodes = append(e.nodes, n)
	}
	for _, b := range n.Branches {
		e.walk(b)
	}
}

// nodeTypeEnum computes the enumeration tag for node per §4.8. id is
// the ID the node is about to receive, used only for the numeric
// fallback case.
func nodeTypeEnum(n *ast.Node, id int) string {
	switch n.Kind {
	case ast.Production:
		return productionEnum(n.Text)
	case ast.StrLit, ast.Regex:
		if isName(n.Text) {
			return "NT_TERMINAL_" + strings.ToUpper(n.Text)
		}
		if label, ok := table.OperatorLabels[n.Text]; ok {
			return "NT_TERMINAL_" + label
		}
		return "NT_TERMINAL_" + itoa(id)
	default:
		return "_NT_GENERIC"
	}
}

// productionEnum builds `NT_<UPPER_DASHES_TO_UNDERSCORES(name)>`.
func productionEnum(name string) string {
	var b strings.Builder
	b.WriteString("NT_")
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '-':
			b.WriteByte('_')
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isName reports whether text is composed entirely of letters, digits,
// and underscores — the bare-identifier shape used to build a readable
// `NT_TERMINAL_<NAME>` tag instead of falling back to an operator label
// or a numeric tag.
func isName(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_') {
			return false
		}
	}
	return true
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// exportIdent builds the stable symbol name for n per §4.8: productions
// get a name-derived identifier, everything else an id-suffixed one.
func exportIdent(n *ast.Node) string {
	var prefix string
	switch n.Kind {
	case ast.Production:
		prefix = "production_"
	case ast.StrLit:
		prefix = "string_terminal_"
	case ast.Regex:
		prefix = "regex_terminal_"
	case ast.AndExpr:
		prefix = "mandatory_expr_"
	case ast.OrExpr:
		prefix = "alternative_expr_"
	case ast.BracketExpr:
		prefix = "optional_expr_"
	case ast.BraceExpr:
		prefix = "optional_repetitive_expr_"
	}
	if n.Kind == ast.Production {
		return dashesToUnderscores(prefix + n.Text)
	}
	return prefix + itoa(n.ID)
}

func dashesToUnderscores(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

type namer struct {
	branchesIx int
}

func (nm *namer) walk(n *ast.Node) {
	if n == nil {
		return
	}
	if n.ID >= 0 && n.ExportIdent == "" {
		n.ExportIdent = exportIdent(n)
		if len(n.Branches) != 0 {
			n.BranchesIx = nm.branchesIx
			nm.branchesIx += len(n.Branches)
		}
	}
	for _, b := range n.Branches {
		nm.walk(b)
	}
}
