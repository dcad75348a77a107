package cemit

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
	var hdr, impl bytes.Buffer
	require.NoError(t, Emit(&hdr, &impl, stem, stem+".h", out))
	return hdr.String(), impl.String()
}

func TestEmitHeaderGuardAndIncludeGuard(t *testing.T) {
	hdr, _ := emit(t, "a := 'x' .", "grammar")
	assert.Contains(t, hdr, "#ifndef GRAMMAR_H")
	assert.Contains(t, hdr, "#define GRAMMAR_H 1")
	assert.Contains(t, hdr, "#endif")
}

func TestEmitDeclaresBranchesAndTable(t *testing.T) {
	hdr, _ := emit(t, "a := 'x' .", "grammar")
	assert.Contains(t, hdr, "extern const int grammar_branches[1];")
	assert.Contains(t, hdr, "extern const parsingnode_t grammar_parsingTable[2];")
}

func TestEmitIncludesHeaderFromImpl(t *testing.T) {
	_, impl := emit(t, "a := 'x' .", "grammar")
	assert.Contains(t, impl, `#include "grammar.h"`)
	assert.Contains(t, impl, "const int grammar_branches[1] = {")
	assert.Contains(t, impl, "1, ")
	assert.Contains(t, impl, `NC_TERMINAL, NT_TERMINAL_X, TT_STRING, "x", 0, -1`)
}

func TestEmitEscapesQuotesAndBackslashes(t *testing.T) {
	_, impl := emit(t, `a := 'say "hi" \' .`, "g")
	assert.Contains(t, impl, `\"hi\"`)
	assert.Contains(t, impl, `\\`)
}

func TestEmitBinDataDecodedAndEscaped(t *testing.T) {
	_, impl := emit(t, "a := $cafe .", "g")
	assert.Contains(t, impl, `TT_BINARY`)
	// 0xca and 0xfe both have a 0x60 bit set, so they pass through raw.
	assert.Contains(t, impl, "TT_BINARY, \"\xca\xfe\", 0, -1")
}

func TestEmitBinFieldByteEncoding(t *testing.T) {
	_, impl := emit(t, "a := WORD:n 'x' .", "g")
	// TB_WORD(0x03) | TBF_PARAM(0x10) | TBF_WRITE(0x20) = 0x33 = ASCII '3',
	// which passes the escaper's printable-byte check unescaped.
	assert.Contains(t, impl, `TT_BINARY, "3", 1, `)
}

func TestEmitEnumTagsListedOnce(t *testing.T) {
	hdr, _ := emit(t, "a := 'x' .\nb := 'x' .", "g")
	assert.Equal(t, 1, strings.Count(hdr, "NT_TERMINAL_X,"))
}
