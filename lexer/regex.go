package lexer

import (
	"github.com/ebnfc/ebnfc/ast"
	"github.com/ebnfc/ebnfc/source"
)

const maxRegexLen = 255

type regexBuf struct {
	b []byte
}

func (r *regexBuf) store(c byte) {
	if len(r.b) < maxRegexLen {
		r.b = append(r.b, c)
	}
}

// ReadRegex parses `/re-expr/`. The caller must have already verified
// the current character is `/`. The entire matched body (excluding the
// delimiters) becomes the text of a single Regex node; no structural
// tree of regex fragments is built.
func ReadRegex(rd *source.Reader) (*ast.Node, error) {
	rd.Advance()
	buf := &regexBuf{}
	ok, err := readReExpr(rd, buf)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, regexExpectedError(rd)
	}
	if rd.Ch() != '/' {
		return nil, regexDelimiterExpectedError(rd)
	}
	rd.Advance()
	return ast.New(ast.Regex, string(buf.b)), nil
}

func readReCCChr(rd *source.Reader, buf *regexBuf) (bool, error) {
	c := rd.Ch()
	if c == '\\' {
		rd.Advance()
		if rd.Ch() == source.EOF {
			return false, unexpectedEOFError(rd)
		}
		buf.store('\\')
	} else {
		switch c {
		case source.EOF:
			return false, unexpectedEOFError(rd)
		case '\\', ']':
			return false, nil
		}
	}
	buf.store(byte(rd.Ch()))
	rd.Advance()
	return true, nil
}

func readReCCItem(rd *source.Reader, buf *regexBuf) (bool, error) {
	ok, err := readReCCChr(rd, buf)
	if err != nil || !ok {
		return ok, err
	}
	if rd.Ch() == '-' {
		buf.store('-')
		rd.Advance()
		ok2, err2 := readReCCChr(rd, buf)
		if err2 != nil {
			return false, err2
		}
		if !ok2 {
			return false, badCharClassError(rd)
		}
	}
	return true, nil
}

func readReCCItems(rd *source.Reader, buf *regexBuf) (bool, error) {
	ok, err := readReCCItem(rd, buf)
	if err != nil || !ok {
		return ok, err
	}
	for {
		ok2, err2 := readReCCItem(rd, buf)
		if err2 != nil {
			return false, err2
		}
		if !ok2 {
			break
		}
	}
	return true, nil
}

func readReCC(rd *source.Reader, buf *regexBuf) (bool, error) {
	if rd.Ch() != '[' {
		return false, nil
	}
	buf.store('[')
	rd.Advance()
	if rd.Ch() == '^' {
		buf.store('^')
		rd.Advance()
	}
	ok, err := readReCCItems(rd, buf)
	if err != nil {
		return false, err
	}
	if !ok || rd.Ch() != ']' {
		return false, badCharClassError(rd)
	}
	buf.store(']')
	rd.Advance()
	return true, nil
}

func readReChr(rd *source.Reader, buf *regexBuf) (bool, error) {
	c := rd.Ch()
	if c == '\\' {
		rd.Advance()
		if rd.Ch() == source.EOF {
			return false, unexpectedEOFError(rd)
		}
		buf.store('\\')
	} else {
		switch c {
		case source.EOF:
			return false, unexpectedEOFError(rd)
		case '/', '.', '*', '?', '[', '(', '|':
			return false, nil
		}
	}
	buf.store(byte(rd.Ch()))
	rd.Advance()
	return true, nil
}

func readReAny(rd *source.Reader, buf *regexBuf) bool {
	if rd.Ch() != '.' {
		return false
	}
	buf.store('.')
	rd.Advance()
	return true
}

func readReBaseExpr(rd *source.Reader, buf *regexBuf) (bool, error) {
	if ok, err := readReCC(rd, buf); err != nil {
		return false, err
	} else if ok {
		return true, nil
	}
	if ok, err := readReChr(rd, buf); err != nil {
		return false, err
	} else if ok {
		return true, nil
	}
	if readReAny(rd, buf) {
		return true, nil
	}
	if rd.Ch() != '(' {
		return false, nil
	}
	buf.store('(')
	rd.Advance()
	ok, err := readReExpr(rd, buf)
	if err != nil {
		return false, err
	}
	if !ok || rd.Ch() != ')' {
		return false, regexExprInParensExpectedError(rd)
	}
	buf.store(')')
	rd.Advance()
	return true, nil
}

func readReRepeatExpr(rd *source.Reader, buf *regexBuf) (bool, error) {
	ok, err := readReBaseExpr(rd, buf)
	if err != nil || !ok {
		return ok, err
	}
	switch rd.Ch() {
	case '+', '*', '?':
		buf.store(byte(rd.Ch()))
		rd.Advance()
	}
	return true, nil
}

func readReAndExpr(rd *source.Reader, buf *regexBuf) (bool, error) {
	ok, err := readReRepeatExpr(rd, buf)
	if err != nil || !ok {
		return ok, err
	}
	for {
		ok2, err2 := readReRepeatExpr(rd, buf)
		if err2 != nil {
			return false, err2
		}
		if !ok2 {
			break
		}
	}
	return true, nil
}

func readReOrExpr(rd *source.Reader, buf *regexBuf) (bool, error) {
	ok, err := readReAndExpr(rd, buf)
	if err != nil || !ok {
		return ok, err
	}
	for {
		if rd.Ch() != '|' {
			break
		}
		buf.store('|')
		rd.Advance()
		ok2, err2 := readReAndExpr(rd, buf)
		if err2 != nil {
			return false, err2
		}
		if !ok2 {
			return false, regexExprAfterPipeExpectedError(rd)
		}
	}
	return true, nil
}

func readReExpr(rd *source.Reader, buf *regexBuf) (bool, error) {
	return readReOrExpr(rd, buf)
}
