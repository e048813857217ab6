package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/token"
)

// ErrUnsupportedLanguage is returned for file extensions without a grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Range   token.Range
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedSyntax = "unexpected %q"
	ErrMissingSyntax    = "missing %s"
)
