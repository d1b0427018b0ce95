package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/syntax"
)

func TestLocalJSFileAdapter_Parse(t *testing.T) {
	ctx := context.Background()
	a := NewLocalJSFileAdapter()

	tests := []struct {
		name string
		lang m.Language
		src  string
		kind string
	}{
		{"javascript", m.JavaScript, "const a = 1;\n", syntax.KindLexicalDeclaration},
		{"typescript", m.TypeScript, "type A = string;\n", syntax.KindTypeAlias},
		{"tsx", m.TSX, "const el = <div>{a}</div>;\n", syntax.KindLexicalDeclaration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := a.Parse(ctx, tt.lang, []byte(tt.src))
			require.NoError(t, err)

			statements := tree.NamedChildren(tree.Root())
			require.Len(t, statements, 1)
			assert.Equal(t, tt.kind, tree.Kind(statements[0]))
			assert.Equal(t, tt.lang, tree.Language())
			assert.Equal(t, tt.src, string(tree.Source()))
		})
	}
}

func TestLocalJSFileAdapter_ParseErrors(t *testing.T) {
	a := NewLocalJSFileAdapter()

	_, err := a.Parse(context.Background(), m.JavaScript, []byte("function (\n"))
	require.Error(t, err)

	var parseErr *syntax.ParseError
	require.ErrorAs(t, err, &parseErr)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Parse(cancelled, m.JavaScript, []byte("const a = 1;\n"))
	require.ErrorIs(t, err, context.Canceled)
}
