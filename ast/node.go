// Package ast defines the single tagged tree node used throughout the
// compiler: productions and expression nodes built by the front-end,
// shared into a DAG by the canonicalizer, and annotated by the layout
// pass before emission.
package ast

// Kind tags the shape and meaning of a Node.
type Kind int

const (
	End Kind = iota
	Ident
	StrLit
	Regex
	BinData
	BinField
	BinFieldCount
	BinFieldTimes
	BracketExpr
	BraceExpr
	AndExpr
	OrExpr
	Expr
	Production
	ProdList
)

var kindNames = [...]string{
	"T_EOS", "T_IDENTIFIER", "T_STR_LITERAL", "T_REG_EX", "T_BIN_DATA",
	"T_BIN_FIELD", "T_BIN_FIELD_COUNT", "T_BIN_FIELD_TIMES",
	"T_BRACK_EXPR", "T_BRACE_EXPR", "T_AND_EXPR", "T_OR_EXPR", "T_EXPR",
	"T_PRODUCTION", "T_PROD_LIST",
}

// String renders the kind the way the front-end's diagnostics do.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "?"
	}
	return kindNames[k]
}

// Node is the single AST node type. Fields beyond Kind/Text/Branches
// are populated by later passes: ExportIdent and NodeTypeEnum by the
// layout pass, ID and BranchesIx by the same pass, RefCount by node
// creation and the canonicalizer.
type Node struct {
	Kind  Kind
	Text  string
	Token bool // true if the production was declared with a leading TOKEN keyword

	Branches []*Node

	ExportIdent  string
	NodeTypeEnum string
	ID           int
	BranchesIx   int

	refCount int
}

// New creates a node with refcount 1 and unassigned id/branches index.
func New(kind Kind, text string) *Node {
	return &Node{Kind: kind, Text: text, ID: -1, BranchesIx: -1, refCount: 1}
}

// AddBranch appends a child. Branch order is semantic.
func (n *Node) AddBranch(b *Node) {
	n.Branches = append(n.Branches, b)
}

// RefCount reports the current number of incoming references.
func (n *Node) RefCount() int { return n.refCount }

// Retain increments the reference count, used when the canonicalizer
// redirects another slot to this node.
func (n *Node) Retain() { n.refCount++ }

// Release decrements the reference count and, once it reaches zero,
// recursively releases every branch. A node whose refcount is still
// positive after this call is left untouched, including its branches.
func (n *Node) Release() {
	n.refCount--
	if n.refCount > 0 {
		return
	}
	for _, b := range n.Branches {
		if b != nil {
			b.Release()
		}
	}
	n.Branches = nil
}

// exportableKinds mirrors the taxonomy in §4.6: only these kinds
// receive an id, a name, and a row in the emitted parsing table.
var exportableKinds = map[Kind]bool{
	Production:     true,
	StrLit:         true,
	Regex:          true,
	BinData:        true,
	BinField:       true,
	BinFieldCount:  true,
	BinFieldTimes:  true,
	AndExpr:        true,
	OrExpr:         true,
	BracketExpr:    true,
	BraceExpr:      true,
}

// Exportable reports whether n receives an id/name/table row.
func (n *Node) Exportable() bool {
	return exportableKinds[n.Kind]
}

// IsLiteral reports whether n is subject to canonicalization (§4.7).
func (n *Node) IsLiteral() bool {
	return n.Kind == StrLit || n.Kind == Regex
}
