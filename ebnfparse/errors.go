package ebnfparse

import (
	"github.com/ebnfc/ebnfc/errors"
)

// Error codes used by the EBNF parser.
const (
	ColonExpectedError = errors.ParseErrors + iota
	EqualsExpectedError
	ExprExpectedInProductionError
	DotExpectedError
	ExprExpectedAfterError
	ClosingExpectedError
	ExprExpectedAfterPipeError
	IdentifierExpectedInBinMatchError
	IdentifierExpectedAfterTokenError
)

func colonExpectedError(pos errors.SourcePosEcho, found int) *errors.Error {
	c := byte('.')
	if found&0x60 != 0 {
		c = byte(found)
	}
	return errors.FormatPosEcho(pos, ColonExpectedError, "':' expected, but found '%c' (%d)", c, found)
}

func equalsExpectedError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, EqualsExpectedError, "'=' expected")
}

func exprExpectedInProductionError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, ExprExpectedInProductionError, "expression expected in production")
}

func dotExpectedError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, DotExpectedError, "'.' expected")
}

func exprExpectedAfterError(pos errors.SourcePosEcho, opener string) *errors.Error {
	return errors.FormatPosEcho(pos, ExprExpectedAfterError, "expression expected after '%s'", opener)
}

func closingExpectedError(pos errors.SourcePosEcho, closer string) *errors.Error {
	return errors.FormatPosEcho(pos, ClosingExpectedError, "closing %s expected", closer)
}

func exprExpectedAfterPipeError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, ExprExpectedAfterPipeError, "expression expected after '|'")
}

func identifierExpectedInBinMatchError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, IdentifierExpectedInBinMatchError, "identifier expected after ':' or '*' in binary match")
}

func identifierExpectedAfterTokenError(pos errors.SourcePosEcho) *errors.Error {
	return errors.FormatPosEcho(pos, IdentifierExpectedAfterTokenError, "identifier expected after 'TOKEN'")
}
