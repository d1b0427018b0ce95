package syntax_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsinline.dev/pkg/jsinline/internal/adapter"
	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/syntax"
)

func parse(t *testing.T, lang m.Language, src string) *syntax.Tree {
	t.Helper()

	tree, err := adapter.NewLocalJSFileAdapter().Parse(context.Background(), lang, []byte(src))
	require.NoError(t, err)

	return tree
}

func TestTree_Navigation(t *testing.T) {
	tree := parse(t, m.JavaScript, "const a = 1, b = a;\n")

	root := tree.Root()
	assert.Equal(t, syntax.KindProgram, tree.Kind(root))
	assert.Equal(t, syntax.NoNode, tree.Parent(root))

	decls := tree.FindKind(root, syntax.KindVariableDeclarator)
	require.Len(t, decls, 2)

	first, second := decls[0], decls[1]
	assert.Equal(t, "a = 1", tree.Text(first))
	assert.Equal(t, second, tree.NextSibling(first))
	assert.Equal(t, first, tree.PrevSibling(second))
	assert.Equal(t, syntax.NoNode, tree.NextSibling(second))

	name := tree.ChildByField(first, "name")
	assert.Equal(t, "a", tree.Text(name))
	assert.Equal(t, "name", tree.Field(name))
	assert.True(t, tree.Is(name, syntax.KindIdentifier))
	assert.Equal(t, syntax.KindLexicalDeclaration, tree.Kind(tree.Closest(name, syntax.KindLexicalDeclaration)))
	assert.True(t, tree.IsAncestor(root, name))
	assert.False(t, tree.IsAncestor(second, name))
	assert.Equal(t, []syntax.NodeID{first, tree.Parent(first), root}, tree.Ancestors(name))

	assert.Equal(t, m.NewSelection(0, 6, 0, 7), tree.Selection(name))
	assert.True(t, tree.Contains(first, m.Cursor(m.NewPosition(0, 8))))
	assert.False(t, tree.Contains(first, m.Cursor(m.NewPosition(0, 14))))
}

func TestTree_Equivalent(t *testing.T) {
	tree := parse(t, m.JavaScript, "f(a + b);\nf(a  +  b);\nf(a - b);\n")

	args := tree.FindKind(tree.Root(), syntax.KindBinaryExpression)
	require.Len(t, args, 3)

	assert.True(t, tree.Equivalent(args[0], args[1]), "whitespace is ignored")
	assert.True(t, tree.Equivalent(args[0], args[2]), "anonymous operators are not compared")

	ids := tree.FindKind(tree.Root(), syntax.KindIdentifier)
	assert.False(t, tree.Equivalent(ids[1], ids[2]))
}

func TestTree_Functions(t *testing.T) {
	tree := parse(t, m.JavaScript, "function f(a, b) { return a; }\nconst g = x => x;\n")

	fn := tree.FindKind(tree.Root(), syntax.KindFunctionDeclaration)[0]
	assert.True(t, tree.IsFunction(fn))
	assert.Len(t, tree.Parameters(fn), 2)
	assert.Equal(t, syntax.KindStatementBlock, tree.Kind(tree.Body(fn)))

	arrow := tree.FindKind(tree.Root(), syntax.KindArrowFunction)[0]
	params := tree.Parameters(arrow)
	require.Len(t, params, 1)
	assert.Equal(t, "x", tree.Text(params[0]))
}

func TestWalk_Actions(t *testing.T) {
	tree := parse(t, m.JavaScript, "function f() { inner(); }\nouter();\n")

	var seen []string

	tree.Walk(tree.Root(), func(p *syntax.Path) syntax.Action {
		if tree.IsFunction(p.Node()) {
			return syntax.SkipChildren
		}

		if p.Kind() == syntax.KindIdentifier {
			seen = append(seen, tree.Text(p.Node()))
		}

		return syntax.Continue
	})

	assert.Equal(t, []string{"outer"}, seen)

	var first string

	tree.Walk(tree.Root(), func(p *syntax.Path) syntax.Action {
		if p.Kind() == syntax.KindIdentifier {
			first = tree.Text(p.Node())
			assert.Equal(t, p.Parent(), tree.Parent(p.Node()))
			assert.Equal(t, len(p.Ancestors()), p.Depth())

			return syntax.Stop
		}

		return syntax.Continue
	})

	assert.Equal(t, "f", first)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := adapter.NewLocalJSFileAdapter().Parse(context.Background(), m.JavaScript, []byte("const = ;\n"))
	require.Error(t, err)

	var parseErr *syntax.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "syntax error")
}

func TestParse_TypeScriptOnly(t *testing.T) {
	src := "type A = string;\n"

	tree := parse(t, m.TypeScript, src)
	assert.Len(t, tree.FindKind(tree.Root(), syntax.KindTypeAlias), 1)
	assert.Equal(t, m.TypeScript, tree.Language())

	_, err := adapter.NewLocalJSFileAdapter().Parse(context.Background(), m.JavaScript, []byte(src))
	require.Error(t, err)
}
