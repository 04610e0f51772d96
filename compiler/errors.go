package compiler

import (
	"fmt"

	"ember/token"
)

// CompileError is a single diagnostic produced during compilation. Its
// Error text matches the scanner/parser's reporting convention exactly:
// location first, then the message.
type CompileError struct {
	Line    int
	Kind    token.Kind
	Lexeme  string
	Message string
}

func (e *CompileError) Error() string {
	switch e.Kind {
	case token.Eof:
		return fmt.Sprintf("[Line %d] Error at end: %s", e.Line, e.Message)
	case token.Error:
		return fmt.Sprintf("[Line %d] Error: %s", e.Line, e.Message)
	default:
		return fmt.Sprintf("[Line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
	}
}
