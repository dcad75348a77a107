// Package codegen implements the back-end-agnostic half of emission: it
// walks the numbered DAG once, resolves every branch slot to a final
// integer value (or reports the one semantic error the compiler can
// raise, an undeclared production reference), and yields a flat,
// ordered list of table rows. The C and NASM back-ends each format
// these rows in their own syntax; neither repeats the branch-resolution
// or node-classification logic.
package codegen

import (
	"github.com/ebnfc/ebnfc/ast"
	"github.com/ebnfc/ebnfc/errors"
	"github.com/ebnfc/ebnfc/layout"
	"github.com/ebnfc/ebnfc/table"
)

// Error codes raised while resolving the table (emission phase, shared
// by both back-ends).
const (
	UndeclaredProductionError = errors.EmitErrors + iota
)

// Row is one entry of the emitted parsing table, still carrying the
// originating node so a back-end can format its text field its own way
// (inline C string vs. a separate NASM data label, symbolic bit-OR
// constant vs. precomputed byte, and so on).
type Row struct {
	Node        *ast.Node
	ID          int
	ExportIdent string
	NodeClass   table.NodeClass
	TermType    table.TermType
	NumBranches int
	BranchesIx  int
}

// Result is the fully resolved table ready for formatting.
type Result struct {
	Rows     []Row
	Branches []int
	EnumTags []string // distinct NT_* tags, in first-seen order, excluding _NT_GENERIC
}

// Build resolves res (the output of layout.Run against root) into rows
// and a flat branch array, or returns an error if a base-expr
// identifier refers to no declared production.
func Build(root *ast.Node, res *layout.Result) (*Result, error) {
	branches := make([]int, res.BranchArrayLen)
	rows := make([]Row, 0, len(res.Nodes))
	seenTag := map[string]bool{}
	var tags []string

	for _, n := range res.Nodes {
		rows = append(rows, Row{
			Node:        n,
			ID:          n.ID,
			ExportIdent: n.ExportIdent,
			NodeClass:   nodeClass(n),
			TermType:    termType(n),
			NumBranches: len(n.Branches),
			BranchesIx:  n.BranchesIx,
		})
		if n.NodeTypeEnum != "_NT_GENERIC" && !seenTag[n.NodeTypeEnum] {
			seenTag[n.NodeTypeEnum] = true
			tags = append(tags, n.NodeTypeEnum)
		}
		if len(n.Branches) == 0 {
			continue
		}
		isBinMatch := n.Kind == ast.BinData || n.Kind == ast.BinField ||
			n.Kind == ast.BinFieldCount || n.Kind == ast.BinFieldTimes
		for i, b := range n.Branches {
			v, err := resolveBranch(root, n, b, isBinMatch)
			if err != nil {
				return nil, err
			}
			branches[n.BranchesIx+i] = v
		}
	}

	return &Result{Rows: rows, Branches: branches, EnumTags: tags}, nil
}

func resolveBranch(root, parent, b *ast.Node, isBinMatch bool) (int, error) {
	if b == nil {
		return -1, nil
	}
	if b.ID >= 0 {
		return b.ID, nil
	}
	if b.Kind == ast.Ident {
		if prod := findProduction(root, b.Text); prod != nil {
			return prod.ID, nil
		}
	}
	if isBinMatch {
		return -2, nil
	}
	if b.Kind == ast.Ident {
		return -1, errors.Format(UndeclaredProductionError, "production '%s' not found", b.Text)
	}
	return -1, nil
}

func findProduction(n *ast.Node, name string) *ast.Node {
	if n == nil {
		return nil
	}
	if n.Kind == ast.Production && n.Text == name {
		return n
	}
	for _, b := range n.Branches {
		if found := findProduction(b, name); found != nil {
			return found
		}
	}
	return nil
}

func nodeClass(n *ast.Node) table.NodeClass {
	switch n.Kind {
	case ast.Production:
		return table.NCProduction
	case ast.AndExpr:
		return table.NCMandatory
	case ast.OrExpr:
		return table.NCAlternative
	case ast.BracketExpr:
		return table.NCOptional
	case ast.BraceExpr:
		return table.NCOptionalRepetitive
	default:
		return table.NCTerminal
	}
}

func termType(n *ast.Node) table.TermType {
	switch n.Kind {
	case ast.StrLit:
		return table.TTString
	case ast.Regex:
		return table.TTRegex
	case ast.BinData, ast.BinField, ast.BinFieldCount, ast.BinFieldTimes:
		return table.TTBinary
	default:
		return table.TTUndef
	}
}
