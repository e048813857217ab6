package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/leapstack-labs/jslint/pkg/ast"
)

// Extensions lists the file extensions the parser understands.
var Extensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx"}

// LanguageFor picks the grammar for a file name by extension.
func LanguageFor(filename string) (ast.Language, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".mjs", ".cjs":
		return ast.JavaScript, nil
	case ".jsx":
		return ast.JSX, nil
	case ".ts", ".mts", ".cts":
		return ast.TypeScript, nil
	case ".tsx":
		return ast.TSX, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filename)
}

// IsSupported reports whether filename has a supported extension.
func IsSupported(filename string) bool {
	_, err := LanguageFor(filename)
	return err == nil
}

func grammar(lang ast.Language) (*sitter.Language, error) {
	switch lang {
	case ast.JavaScript, ast.JSX:
		// the javascript grammar parses JSX natively
		return javascript.GetLanguage(), nil
	case ast.TypeScript:
		return typescript.GetLanguage(), nil
	case ast.TSX:
		return tsx.GetLanguage(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
}
