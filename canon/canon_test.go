package canon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebnfc/ebnfc/ast"
	"github.com/ebnfc/ebnfc/ebnfparse"
)

func TestRunDeduplicatesEqualStrLits(t *testing.T) {
	root, err := ebnfparse.Parse("t", strings.NewReader("a := 'x' .\nb := 'x' ."))
	require.NoError(t, err)
	Run(root)

	a := root.Branches[0].Branches[0]
	b := root.Branches[1].Branches[0]
	assert.Same(t, a, b)
	assert.Equal(t, 2, a.RefCount())
}

func TestRunLeavesDistinctLiteralsAlone(t *testing.T) {
	root, err := ebnfparse.Parse("t", strings.NewReader("a := 'x' .\nb := 'y' ."))
	require.NoError(t, err)
	Run(root)

	a := root.Branches[0].Branches[0]
	b := root.Branches[1].Branches[0]
	assert.NotSame(t, a, b)
	assert.Equal(t, 1, a.RefCount())
	assert.Equal(t, 1, b.RefCount())
}

func TestRunIsIdentityWithNoDuplicates(t *testing.T) {
	root, err := ebnfparse.Parse("t", strings.NewReader("a := 'x' | 'y' | 'z' ."))
	require.NoError(t, err)
	before := countNodes(root)
	Run(root)
	after := countNodes(root)
	assert.Equal(t, before, after)
}

func TestRunDeduplicatesRegex(t *testing.T) {
	root, err := ebnfparse.Parse("t", strings.NewReader("a := /[0-9]+/ .\nb := /[0-9]+/ ."))
	require.NoError(t, err)
	Run(root)
	a := root.Branches[0].Branches[0]
	b := root.Branches[1].Branches[0]
	assert.Same(t, a, b)
}

func TestRunDoesNotConfuseStrLitAndRegexOfSameText(t *testing.T) {
	root, err := ebnfparse.Parse("t", strings.NewReader("a := 'x' .\nb := /x/ ."))
	require.NoError(t, err)
	Run(root)
	a := root.Branches[0].Branches[0]
	b := root.Branches[1].Branches[0]
	assert.NotSame(t, a, b)
	assert.Equal(t, ast.StrLit, a.Kind)
	assert.Equal(t, ast.Regex, b.Kind)
}

func countNodes(n *ast.Node) int {
	total := 1
	for _, b := range n.Branches {
		if b != nil {
			total += countNodes(b)
		}
	}
	return total
}
