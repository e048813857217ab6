package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/token"
)

func TestLanguageFor(t *testing.T) {
	tests := []struct {
		name string
		want ast.Language
	}{
		{"a.js", ast.JavaScript},
		{"a.MJS", ast.JavaScript},
		{"a.jsx", ast.JSX},
		{"a.ts", ast.TypeScript},
		{"a.tsx", ast.TSX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LanguageFor(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := LanguageFor("a.sql")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.False(t, IsSupported("README.md"))
}

func TestParseFile_BuildsTree(t *testing.T) {
	src := []byte("// leading\nfunction f(a) {\n  return a; /* trailing */\n}\n")
	file, err := ParseFile(context.Background(), "f.js", src)
	require.NoError(t, err)

	require.Equal(t, ast.KindProgram, file.Root.Kind)
	fn := file.Root.FirstNamedChild(ast.KindFunctionDecl)
	require.NotNil(t, fn)
	assert.Equal(t, "f", fn.ChildByField("name").Text())
	assert.Equal(t, ast.KindFormalParameters, fn.ChildByField("parameters").Kind)
	assert.Equal(t, ast.KindStatementBlock, fn.ChildByField("body").Kind)

	require.Len(t, file.Comments, 2)
	assert.Equal(t, token.LineComment, file.Comments[0].Kind)
	assert.Equal(t, "// leading", file.Comments[0].Text)
	assert.Equal(t, token.BlockComment, file.Comments[1].Kind)

	for i := 0; i < file.Len(); i++ {
		n := file.Node(ast.NodeID(i))
		assert.True(t, file.Root.Range.Encloses(n.Range), "node %v outside root", n)
	}
}

func TestParse_TypeScript(t *testing.T) {
	src := []byte("interface A { x: number }\ntype B = string;\nconst c: B = 'x';\n")
	file, err := ParseFile(context.Background(), "a.ts", src)
	require.NoError(t, err)
	assert.NotNil(t, file.Root.FirstNamedChild(ast.KindInterface))
	assert.NotNil(t, file.Root.FirstNamedChild(ast.KindTypeAlias))
	assert.True(t, file.IsTypeScript())
}

func TestParse_SyntaxErrorStillReturnsFile(t *testing.T) {
	file, err := ParseFile(context.Background(), "bad.js", []byte("let = ;\n"))
	require.Error(t, err)
	require.NotNil(t, file)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Contains(t, perr.Error(), "parse error at line 1")
}
