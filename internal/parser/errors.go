package parser

import (
	"errors"
	"fmt"
)

// ErrorKind различает синтаксические и семантические ошибки разбора.
type ErrorKind string

const (
	KindSyntax   ErrorKind = "syntax"
	KindSemantic ErrorKind = "semantic"
)

// ParseError: единственный вид ошибки парсеров. Разбор прерывается на первой ошибке.
type ParseError struct {
	Kind    ErrorKind
	Format  Format
	Message string
	Cause   error
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Unwrap() error { return e.Cause }

func syntaxErr(format Format, cause error, msg string, args ...any) *ParseError {
	return &ParseError{Kind: KindSyntax, Format: format, Message: fmt.Sprintf(msg, args...), Cause: cause}
}

func semanticErr(format Format, msg string, args ...any) *ParseError {
	return &ParseError{Kind: KindSemantic, Format: format, Message: fmt.Sprintf(msg, args...)}
}

// AsParseError извлекает *ParseError из цепочки.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func IsSyntax(err error) bool {
	pe, ok := AsParseError(err)
	return ok && pe.Kind == KindSyntax
}

func IsSemantic(err error) bool {
	pe, ok := AsParseError(err)
	return ok && pe.Kind == KindSemantic
}
