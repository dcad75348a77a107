// Package nasmemit formats a resolved codegen.Result as a NASM include
// file and source file pair. Unlike the C back-end, terminal payloads
// are not inlined into the table row: each one is emitted as a
// separately labeled `db` in a text data section and referenced from
// its row via a `dq` pointer, and BinField* rows encode their bit
// pattern symbolically (`TB_WIDTH|TBF_PARAM|TBF_WRITE`) instead of as a
// precomputed byte.
package nasmemit

import (
	"fmt"
	"io"
	"strings"

	"github.com/ebnfc/ebnfc/ast"
	"github.com/ebnfc/ebnfc/codegen"
)

const preamble = `; code auto-generated by ebnfcomp; do not modify!
; (code might get overwritten during next ebnfcomp invocation)

                        cpu         x64
                        bits        64

`

// Emit writes the include file (incFile, e.g. "grammar.inc") to incW
// and the NASM source to srcW, using stem-prefixed symbol names.
func Emit(incW, srcW io.Writer, stem, incFile string, res *codegen.Result) error {
	fmt.Fprint(incW, preamble)
	fmt.Fprint(incW, `NC_TERMINAL             equ         0
NC_PRODUCTION           equ         1
NC_MANDATORY            equ         2
NC_ALTERNATIVE          equ         3
NC_OPTIONAL             equ         4
NC_OPTIONAL_REPETITIVE  equ         5

TT_UNDEF                equ         0
TT_STRING               equ         1
TT_REGEX                equ         2
TT_BINARY               equ         3

TB_UNDEF                equ         0x00
TB_DATA                 equ         0x01
TB_BYTE                 equ         0x02
TB_WORD                 equ         0x03
TB_DWORD                equ         0x04
TB_QWORD                equ         0x05
TBF_PARAM               equ         0x10
TBF_WRITE               equ         0x20

_NT_GENERIC             equ         0
`)
	cnt := 1
	for _, tag := range res.EnumTags {
		fmt.Fprintf(incW, "%-23s equ         %d\n", tag, cnt)
		cnt++
	}
	fmt.Fprint(incW, `
                        struc      parsingnode
                           pn_nodeClass:       resb    1
                           pn_termType:        resb    1
                           pn_nodeType:        resw    1
                           pn_numBranches:     resw    1
                           pn_branches:        resw    1
                           pn_text:            resq    1
                        endstruc

`)

	fmt.Fprint(srcW, preamble)
	fmt.Fprintf(srcW, "                        %%include    \"%s\"\n\n", incFile)
	fmt.Fprint(srcW, "                        section     .rodata\n\n")
	fmt.Fprintf(srcW, "                        global      %s_branches\n                        global      %s_parsingTable\n\n", stem, stem)
	fmt.Fprintf(srcW, "%s_branches:\n", stem)
	emitBranches(srcW, res)
	fmt.Fprint(srcW, "\n\n")
	emitTexts(srcW, res)
	fmt.Fprint(srcW, "\n\n                        align       8,db 0\n\n")
	fmt.Fprintf(srcW, "%s_parsingTable:\n", stem)
	emitRows(srcW, res)
	fmt.Fprint(srcW, "\n\n")

	return nil
}

func emitBranches(w io.Writer, res *codegen.Result) {
	for _, r := range res.Rows {
		if r.NumBranches == 0 {
			continue
		}
		fmt.Fprintf(w, "                        ; %d: %s branches\n                        dw          ", r.BranchesIx, r.ExportIdent)
		for i := 0; i < r.NumBranches; i++ {
			v := res.Branches[r.BranchesIx+i]
			child := r.Node.Branches[i]
			last := i == r.NumBranches-1
			switch v {
			case -1:
				fmt.Fprintf(w, "-1 ; %s", child.Kind)
			case -2:
				fmt.Fprintf(w, "-2 ; %s", child.Kind)
			default:
				sep := ","
				if last {
					sep = ""
				}
				fmt.Fprintf(w, "%d%s ", v, sep)
				continue
			}
			if !last {
				fmt.Fprint(w, "\n                        dw          ")
			}
		}
		fmt.Fprint(w, "\n")
	}
}

func emitTexts(w io.Writer, res *codegen.Result) {
	for _, r := range res.Rows {
		n := r.Node
		if n.Kind == ast.Production {
			continue
		}
		label := fmt.Sprintf("prod_%d_text", r.ID)
		switch n.Kind {
		case ast.StrLit, ast.Regex:
			text := textAsSourceASM(n.Text)
			fmt.Fprintf(w, "%-23s db          %s,0\n", label, text)
		case ast.BinData:
			fmt.Fprintf(w, "%-23s db          %s\n", label, dumpAsSourceASM(n.Text))
		case ast.BinField, ast.BinFieldCount, ast.BinFieldTimes:
			fmt.Fprintf(w, "%-23s db          %s\n", label, fieldAsSourceASM(n))
		}
	}
}

func emitRows(w io.Writer, res *codegen.Result) {
	for _, r := range res.Rows {
		n := r.Node
		fmt.Fprintf(w, "                        ; %d: %s\n", r.ID, r.ExportIdent)
		fmt.Fprintf(w, "                        db          %s, %s\n", r.NodeClass, r.TermType)
		fmt.Fprintf(w, "                        dw          %s, %d, %d\n", n.NodeTypeEnum, r.NumBranches, r.BranchesIx)
		if n.Kind != ast.Production && n.Text != "" {
			fmt.Fprintf(w, "                        dq          prod_%d_text\n", r.ID)
		} else {
			fmt.Fprint(w, "                        dq          0\n")
		}
	}
}

// textAsSourceASM picks the tightest quote-safe encoding for a
// StrLit/Regex body: single-quoted, double-quoted, or a comma-separated
// run of hex byte literals if the text contains both quote characters.
func textAsSourceASM(s string) string {
	if ok, enc := tryQuoted(s, '\''); ok {
		return "'" + enc + "'"
	}
	if ok, enc := tryQuoted(s, '"'); ok {
		return `"` + enc + `"`
	}
	var parts []string
	for i := 0; i < len(s); i++ {
		parts = append(parts, fmt.Sprintf("0x%02x", s[i]))
	}
	return strings.Join(parts, ",")
}

func tryQuoted(s string, q byte) (bool, string) {
	for i := 0; i < len(s); i++ {
		if s[i] == q {
			return false, ""
		}
	}
	return true, s
}

// dumpAsSourceASM emits a BinData terminal as a length-prefixed byte
// run: `TB_DATA, <count>, <bytes...>`.
func dumpAsSourceASM(hexText string) string {
	nbytes := len(hexText) / 2
	var sb strings.Builder
	sb.WriteString("TB_DATA")
	fmt.Fprintf(&sb, ",0x%02x", nbytes)
	for i := 0; i+1 < len(hexText); i += 2 {
		fmt.Fprintf(&sb, ",0x%c%c", hexText[i], hexText[i+1])
	}
	return sb.String()
}

// fieldAsSourceASM emits a BinField* terminal symbolically instead of
// as a precomputed byte, e.g. `TB_WORD|TBF_PARAM|TBF_WRITE`.
func fieldAsSourceASM(n *ast.Node) string {
	s := "TB_" + n.Text
	if len(n.Branches) > 0 {
		s += "|TBF_PARAM"
	}
	if n.Kind == ast.BinFieldCount {
		s += "|TBF_WRITE"
	}
	return s
}
