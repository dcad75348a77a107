package lexer

import (
	"github.com/ebnfc/ebnfc/errors"
)

// Error codes used by lexer.
const (
	EmptyStringLiteralError = errors.LexErrors + iota
	UnexpectedEOFError
	BadCharClassError
	RegexExpectedError
	RegexDelimiterExpectedError
	RegexExprExpectedError
	IdentifierExpectedError
)

func emptyStringLiteralError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, EmptyStringLiteralError, "string literal is empty")
}

func unexpectedEOFError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, UnexpectedEOFError, "unexpected end of file")
}

func badCharClassError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, BadCharClassError, "bad character class in regular expression")
}

func regexExpectedError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, RegexExpectedError, "regular expression expected")
}

func regexDelimiterExpectedError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, RegexDelimiterExpectedError, "delimiter '/' expected after regular expression")
}

func regexExprInParensExpectedError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, RegexExprExpectedError, "expression expected in regular expression")
}

func regexExprAfterPipeExpectedError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, RegexExprExpectedError, "expression expected after '|'")
}
