package nasmemit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebnfc/ebnfc/canon"
	"github.com/ebnfc/ebnfc/codegen"
	"github.com/ebnfc/ebnfc/ebnfparse"
	"github.com/ebnfc/ebnfc/layout"
)

func emit(t *testing.T, src, stem string) (string, string) {
	t.Helper()
	root, err := ebnfparse.Parse("t", strings.NewReader(src))
	require.NoError(t, err)
	canon.Run(root)
	res := layout.Run(root)
	out, err := codegen.Build(root, res)
	require.NoError(t, err)
	var inc, srcOut bytes.Buffer
	require.NoError(t, Emit(&inc, &srcOut, stem, stem+".inc", out))
	return inc.String(), srcOut.String()
}

func TestEmitIncDeclaresEnumsAndStruc(t *testing.T) {
	inc, _ := emit(t, "a := 'x' .", "grammar")
	assert.Contains(t, inc, "_NT_GENERIC             equ         0")
	assert.Contains(t, inc, "NT_A")
	assert.Contains(t, inc, "struc      parsingnode")
}

func TestEmitSrcIncludesHeaderAndGlobals(t *testing.T) {
	_, src := emit(t, "a := 'x' .", "grammar")
	assert.Contains(t, src, `%include    "grammar.inc"`)
	assert.Contains(t, src, "global      grammar_branches")
	assert.Contains(t, src, "grammar_branches:")
	assert.Contains(t, src, "grammar_parsingTable:")
}

func TestEmitSeparatesTextIntoDataLabel(t *testing.T) {
	_, src := emit(t, "a := 'x' .", "grammar")
	assert.Contains(t, src, "db          'x',0")
	assert.Contains(t, src, "dq          prod_1_text")
}

func TestEmitProductionHasNoTextLabel(t *testing.T) {
	_, src := emit(t, "a := 'x' .", "grammar")
	assert.Contains(t, src, "dq          0")
}

func TestEmitBinFieldSymbolic(t *testing.T) {
	_, src := emit(t, "a := WORD:n 'x' .", "grammar")
	assert.Contains(t, src, "TB_WORD|TBF_PARAM|TBF_WRITE")
}

func TestEmitQuoteSafeTextPicksAlternateDelimiter(t *testing.T) {
	_, src := emit(t, `a := "it's" .`, "grammar")
	assert.Contains(t, src, `db          "it's",0`)
}

func TestEmitBinDataLengthPrefixed(t *testing.T) {
	_, src := emit(t, "a := $cafe .", "grammar")
	assert.Contains(t, src, "TB_DATA,0x02,0xca,0xfe")
}
