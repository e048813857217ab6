package token

import "strings"

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // // comment
	BlockComment                    // /* comment */
)

// String returns "line" or "block".
func (k CommentKind) String() string {
	if k == BlockComment {
		return "block"
	}
	return "line"
}

// Comment represents a source comment with its range.
type Comment struct {
	Kind  CommentKind
	Text  string // includes delimiters (// or /* */)
	Range Range
}

// IsLineComment returns true if this is a line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}

// IsBlockComment returns true if this is a block comment.
func (c *Comment) IsBlockComment() bool {
	return c.Kind == BlockComment
}

// Body returns the comment text without its delimiters.
func (c *Comment) Body() string {
	if c.Kind == BlockComment {
		body := strings.TrimPrefix(c.Text, "/*")
		return strings.TrimSuffix(body, "*/")
	}
	return strings.TrimPrefix(c.Text, "//")
}

// ClassifyComment returns the kind of a raw comment text.
func ClassifyComment(text string) CommentKind {
	if strings.HasPrefix(text, "/*") {
		return BlockComment
	}
	return LineComment
}
