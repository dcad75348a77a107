// Package cemit formats a resolved codegen.Result as a C header and
// implementation file pair: an enum-and-struct header describing the
// parsing table's shape, and an implementation initializing the branch
// array and the table itself.
package cemit

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/ebnfc/ebnfc/ast"
	"github.com/ebnfc/ebnfc/codegen"
	"github.com/ebnfc/ebnfc/table"
)

const preamble = `// code auto-generated by ebnfcomp; do not modify!
// (code might get overwritten during next ebnfcomp invocation)

`

// Emit writes the header (hdrFile, e.g. "grammar.h") to hdrW and the
// implementation to implW, using stem-prefixed symbol names.
func Emit(hdrW, implW io.Writer, stem, hdrFile string, res *codegen.Result) error {
	guard := headerGuard(hdrFile)

	fmt.Fprint(hdrW, preamble)
	fmt.Fprintf(hdrW, "#ifndef %s\n#define %s 1\n\n#include <stddef.h>\n\n", guard, guard)
	fmt.Fprint(hdrW, `typedef enum _nodeclass_t {
    NC_TERMINAL,
    NC_PRODUCTION,
    NC_MANDATORY,
    NC_ALTERNATIVE,
    NC_OPTIONAL,
    NC_OPTIONAL_REPETITIVE,
} nodeclass_t;

typedef enum _terminaltype_t {
    TT_UNDEF,
    TT_STRING,
    TT_REGEX,
    TT_BINARY,
} terminaltype_t;

enum {
    TB_UNDEF  = 0x00,
    TB_DATA   = 0x01,
    TB_BYTE   = 0x02,
    TB_WORD   = 0x03,
    TB_DWORD  = 0x04,
    TB_QWORD  = 0x05,
    TBF_PARAM = 0x10,
    TBF_WRITE = 0x20,
};

typedef enum _nodetype_t {
    _NT_GENERIC,
`)
	for _, tag := range res.EnumTags {
		fmt.Fprintf(hdrW, "    %s,\n", tag)
	}
	fmt.Fprint(hdrW, `} nodetype_t;

typedef struct _parsingnode_t {
    nodeclass_t        nodeClass;
    nodetype_t         nodeType;
    terminaltype_t     termType;
    const char*        text;
    size_t             numBranches;
    int                branches;
} parsingnode_t;

`)
	fmt.Fprintf(hdrW, "extern const int %s_branches[%d];\n", stem, len(res.Branches))
	fmt.Fprintf(hdrW, "extern const parsingnode_t %s_parsingTable[%d];\n\n", stem, len(res.Rows))
	fmt.Fprint(hdrW, "#endif\n")

	fmt.Fprint(implW, preamble)
	fmt.Fprintf(implW, "#include \"%s\"\n\n// branches\n\n", hdrFile)
	fmt.Fprintf(implW, "const int %s_branches[%d] = {\n", stem, len(res.Branches))
	for _, r := range res.Rows {
		if r.NumBranches == 0 {
			continue
		}
		fmt.Fprintf(implW, "    // %d: %s branches\n    ", r.BranchesIx, r.ExportIdent)
		for i := 0; i < r.NumBranches; i++ {
			v := res.Branches[r.BranchesIx+i]
			child := r.Node.Branches[i]
			switch v {
			case -1:
				fmt.Fprintf(implW, "-1 /* %s */, ", child.Kind)
			case -2:
				fmt.Fprintf(implW, "-2 /* %s */, ", child.Kind)
			default:
				fmt.Fprintf(implW, "%d, ", v)
			}
		}
		fmt.Fprint(implW, "\n")
	}
	fmt.Fprint(implW, "};\n\n")

	fmt.Fprintf(implW, "const parsingnode_t %s_parsingTable[%d] = {\n", stem, len(res.Rows))
	for _, r := range res.Rows {
		fmt.Fprintf(implW, "    // %d: %s\n    { %s, %s, %s, %s, %d, %d },\n",
			r.ID, r.ExportIdent, r.NodeClass, r.Node.NodeTypeEnum, r.TermType,
			rowText(r.Node), r.NumBranches, r.BranchesIx)
	}
	fmt.Fprint(implW, "};\n\n")

	return nil
}

// rowText builds the `text` field, C-escaped and quoted, or the bare
// `0` sentinel for nodes with no terminal payload.
func rowText(n *ast.Node) string {
	switch n.Kind {
	case ast.StrLit, ast.Regex:
		return `"` + escapeCText(n.Text) + `"`
	case ast.BinData:
		raw, err := hex.DecodeString(n.Text)
		if err != nil {
			raw = nil
		}
		return `"` + escapeCBytes(raw) + `"`
	case ast.BinField, ast.BinFieldCount, ast.BinFieldTimes:
		v := table.WidthCode(n.Text)
		if len(n.Branches) > 0 {
			v |= table.TBFParam
		}
		if n.Kind == ast.BinFieldCount {
			v |= table.TBFWrite
		}
		return `"` + escapeCBytes([]byte{byte(v)}) + `"`
	default:
		return "0"
	}
}

// escapeCText mirrors text_to_C_text: quotes and backslashes are
// escaped, control bytes (those with both bits 0x60 clear) become
// \xHH, everything else passes through.
func escapeCText(s string) string {
	return escapeCBytes([]byte(s))
}

func escapeCBytes(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		switch {
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\\':
			sb.WriteString(`\\`)
		case c&0x60 != 0:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	return sb.String()
}

// headerGuard derives the include-guard symbol from the header file
// name: uppercase letters, and '.', '/', '\\', ':' become '_'.
func headerGuard(hdrFile string) string {
	var sb strings.Builder
	for i := 0; i < len(hdrFile); i++ {
		c := hdrFile[i]
		switch {
		case c >= 'a' && c <= 'z':
			sb.WriteByte(c - 'a' + 'A')
		case c == '.' || c == '/' || c == '\\' || c == ':':
			sb.WriteByte('_')
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
