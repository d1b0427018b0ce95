package adapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/syntax"
)

// JSFileAdapter turns JavaScript and TypeScript sources into syntax trees so
// the domain layer never touches the parser directly.
type JSFileAdapter interface {
	// Parse builds a tree for src with the grammar of lang. Sources with
	// syntax errors are rejected with a *syntax.ParseError.
	Parse(ctx context.Context, lang m.Language, src []byte) (*syntax.Tree, error)
}

// LocalJSFileAdapter provides a JSFileAdapter backed by tree-sitter.
type LocalJSFileAdapter struct{}

// NewLocalJSFileAdapter constructs a LocalJSFileAdapter.
func NewLocalJSFileAdapter() *LocalJSFileAdapter {
	return &LocalJSFileAdapter{}
}

func grammar(lang m.Language) *sitter.Language {
	switch lang {
	case m.TypeScript:
		return typescript.GetLanguage()
	case m.TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parse builds a syntax tree for src.
func (a *LocalJSFileAdapter) Parse(ctx context.Context, lang m.Language, src []byte) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(grammar(lang))

	parsed, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", lang, err)
	}

	defer parsed.Close()

	tree := syntax.NewTree(lang, src)
	cursor := sitter.NewTreeCursor(parsed.RootNode())

	defer cursor.Close()

	copyNode(tree, cursor, syntax.NoNode)

	if id := tree.FirstError(); id.Valid() {
		return nil, syntax.NewParseError(tree, id)
	}

	return tree, nil
}

// copyNode mirrors the node under cursor, and its subtree, into tree.
func copyNode(tree *syntax.Tree, cursor *sitter.TreeCursor, parent syntax.NodeID) {
	node := cursor.CurrentNode()

	kind := node.Type()
	if node.IsMissing() {
		kind = syntax.KindMissing
	}

	id := tree.Add(parent, cursor.CurrentFieldName(), kind, node.IsNamed(), int(node.StartByte()), int(node.EndByte()))

	if !cursor.GoToFirstChild() {
		return
	}

	for {
		copyNode(tree, cursor, id)

		if !cursor.GoToNextSibling() {
			break
		}
	}

	cursor.GoToParent()
}
