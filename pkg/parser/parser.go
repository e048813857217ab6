// Package parser turns JavaScript and TypeScript source into the ast.File
// view used by the lint engine.
//
// Parsing is delegated to tree-sitter. The adapter copies the concrete
// syntax tree into ast nodes in pre-order, moves comments into
// File.Comments, and reports the first ERROR or MISSING node as a
// *ParseError. A file with syntax errors is still returned so callers can
// decide whether to lint it.
//
// # Usage
//
//	file, err := parser.ParseFile(ctx, "main.ts", src)
//	var perr *parser.ParseError
//	if errors.As(err, &perr) {
//	    // report perr.Pos
//	}
package parser

import (
	"context"
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/token"
)

const commentKind = "comment"

// ParseFile parses src, choosing the grammar from the file extension.
func ParseFile(ctx context.Context, filename string, src []byte) (*ast.File, error) {
	lang, err := LanguageFor(filename)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, filename, src, lang)
}

// Parse parses src with the grammar for lang.
func Parse(ctx context.Context, filename string, src []byte, lang ast.Language) (*ast.File, error) {
	g, err := grammar(lang)
	if err != nil {
		return nil, err
	}

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(g)

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	c := &converter{b: ast.NewBuilder(filename, src, lang)}
	cursor := sitter.NewTreeCursor(tree.RootNode())
	defer cursor.Close()
	if err := c.visit(cursor, nil); err != nil {
		return nil, err
	}

	file := c.b.File()
	if c.firstErr != nil {
		return file, c.firstErr
	}
	return file, nil
}

type converter struct {
	b        *ast.Builder
	firstErr *ParseError
}

func (c *converter) visit(cursor *sitter.TreeCursor, parent *ast.Node) error {
	n := cursor.CurrentNode()
	rng, err := nodeRange(n)
	if err != nil {
		return err
	}

	kind := n.Type()
	if kind == commentKind {
		text := string(c.b.File().Source[rng.Start:rng.End])
		c.b.AddComment(token.Comment{Kind: token.ClassifyComment(text), Text: text, Range: rng})
		return nil
	}

	node := c.b.Add(parent, kind, cursor.CurrentFieldName(), n.IsNamed(), rng)
	switch {
	case n.IsMissing():
		c.recordError(rng, fmt.Sprintf(ErrMissingSyntax, kind))
	case kind == ast.KindError:
		c.recordError(rng, fmt.Sprintf(ErrUnexpectedSyntax, snippet(node.Text())))
	}

	if cursor.GoToFirstChild() {
		for {
			if err := c.visit(cursor, node); err != nil {
				return err
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
		cursor.GoToParent()
	}
	return nil
}

func (c *converter) recordError(rng token.Range, msg string) {
	if c.firstErr != nil {
		return
	}
	c.firstErr = &ParseError{
		Pos:     c.b.File().Lines.Position(rng.Start),
		Range:   rng,
		Message: msg,
	}
}

func nodeRange(n *sitter.Node) (token.Range, error) {
	start, err := safecast.Conv[int](n.StartByte())
	if err != nil {
		return token.Range{}, fmt.Errorf("node start offset: %w", err)
	}
	end, err := safecast.Conv[int](n.EndByte())
	if err != nil {
		return token.Range{}, fmt.Errorf("node end offset: %w", err)
	}
	return token.Range{Start: start, End: end}, nil
}

func snippet(s string) string {
	const maxLen = 20
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
