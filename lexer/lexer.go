// Package lexer implements the front-end's lexical helpers: identifier,
// string literal, and hex literal recognizers, the TOKEN/BYTE/WORD/
// DWORD/QWORD keyword scanners, and (in regex.go) the embedded regular
// expression sub-parser.
package lexer

import (
	"github.com/ebnfc/ebnfc/ast"
	"github.com/ebnfc/ebnfc/source"
)

const maxLiteralLen = 255

// SkipWhitespace advances past spaces and tabs.
func SkipWhitespace(rd *source.Reader) {
	for rd.Ch() == ' ' || rd.Ch() == '\t' {
		rd.Advance()
	}
}

// ReadIdentifier reads `[a-z0-9-]+` greedily, up to 255 bytes. The
// caller must have already verified the current character starts an
// identifier.
func ReadIdentifier(rd *source.Reader) *ast.Node {
	var buf []byte
	for {
		c := rd.Ch()
		if len(buf) < maxLiteralLen {
			buf = append(buf, byte(c))
		}
		rd.Advance()
		c = rd.Ch()
		if !isIdentCont(c) {
			break
		}
	}
	return ast.New(ast.Ident, string(buf))
}

func isIdentCont(c int) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || c == '-'
}

// ReadStrLiteral reads a `'...'` or `"..."` literal. The caller must
// have already verified the current character is a quote; that quote
// is used as the terminator.
func ReadStrLiteral(rd *source.Reader) (*ast.Node, error) {
	term := rd.Ch()
	rd.Advance()
	var buf []byte
	for rd.Ch() != term && rd.Ch() != source.EOF {
		if len(buf) < maxLiteralLen {
			buf = append(buf, byte(rd.Ch()))
		}
		rd.Advance()
	}
	rd.Advance()
	if len(buf) == 0 {
		return nil, emptyStringLiteralError(rd)
	}
	return ast.New(ast.StrLit, string(buf)), nil
}

const maxHexLen = 253

// ReadHexadecimal reads `$` followed by one or more hex digits. The
// caller must have already verified the current character is `$`.
// Digits are lowered; an odd digit count is padded with a leading '0'.
func ReadHexadecimal(rd *source.Reader) *ast.Node {
	rd.Advance()
	var buf []byte
	for isHexDigit(rd.Ch()) {
		if len(buf) < maxHexLen {
			buf = append(buf, lowerHexDigit(byte(rd.Ch())))
		}
		rd.Advance()
	}
	if len(buf)%2 == 1 {
		buf = append([]byte{'0'}, buf...)
	}
	return ast.New(ast.BinData, string(buf))
}

func isHexDigit(c int) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func lowerHexDigit(c byte) byte {
	if c >= 'A' && c <= 'F' {
		return c - 'A' + 'a'
	}
	return c
}

const maxKeywordLen = 5

// readUpperRun greedily consumes up to maxKeywordLen uppercase letters
// starting from the current character (assumed already uppercase).
func readUpperRun(rd *source.Reader) []byte {
	var buf []byte
	for {
		buf = append(buf, byte(rd.Ch()))
		rd.Advance()
		if len(buf) >= maxKeywordLen {
			break
		}
		c := rd.Ch()
		if !(c >= 'A' && c <= 'Z') {
			break
		}
	}
	return buf
}

// restoreUpperRun undoes readUpperRun plus the trailing character read
// after it, restoring the reader to the state before the attempt.
func restoreUpperRun(rd *source.Reader, buf []byte) {
	rd.Pushback(rd.Ch())
	for i := len(buf) - 1; i >= 0; i-- {
		rd.Pushback(int(buf[i]))
	}
	rd.Advance()
}

// TryTokenKeyword recognizes a leading TOKEN keyword, consuming it on
// success and leaving the reader untouched on failure.
func TryTokenKeyword(rd *source.Reader) bool {
	if rd.Ch() != 'T' {
		return false
	}
	buf := readUpperRun(rd)
	if string(buf) == "TOKEN" {
		return true
	}
	restoreUpperRun(rd, buf)
	return false
}

// TryWidthKeyword recognizes one of BYTE/WORD/DWORD/QWORD, returning
// the matched keyword text on success.
func TryWidthKeyword(rd *source.Reader) (string, bool) {
	c := rd.Ch()
	if c != 'B' && c != 'W' && c != 'D' && c != 'Q' {
		return "", false
	}
	buf := readUpperRun(rd)
	s := string(buf)
	switch s {
	case "BYTE", "WORD", "DWORD", "QWORD":
		return s, true
	}
	restoreUpperRun(rd, buf)
	return "", false
}
