package domain

import (
	"jsinline.dev/pkg/jsinline/internal/syntax"
)

// namespace separates value bindings from type bindings; a type alias and
// a variable may share a name without shadowing each other.
type namespace int

const (
	valueNamespace namespace = iota
	typeNamespace
)

func namespaceOf(t *syntax.Tree, binding syntax.NodeID) namespace {
	if t.Is(binding, syntax.KindTypeIdentifier) {
		return typeNamespace
	}

	return valueNamespace
}

// bindingIdentifiers returns the identifiers a declaration pattern binds.
func bindingIdentifiers(t *syntax.Tree, pattern syntax.NodeID) []syntax.NodeID {
	switch t.Kind(pattern) {
	case syntax.KindIdentifier, syntax.KindShorthandPattern:
		return []syntax.NodeID{pattern}
	case syntax.KindObjectPattern, syntax.KindArrayPattern:
		var out []syntax.NodeID
		for _, child := range t.NamedChildren(pattern) {
			out = append(out, bindingIdentifiers(t, child)...)
		}

		return out
	case syntax.KindPairPattern:
		return bindingIdentifiers(t, t.ChildByField(pattern, "value"))
	case syntax.KindAssignmentPattern, syntax.KindObjectAssignmentPattern:
		return bindingIdentifiers(t, t.ChildByField(pattern, "left"))
	case syntax.KindRestPattern:
		if children := t.NamedChildren(pattern); len(children) > 0 {
			return bindingIdentifiers(t, children[0])
		}
	case syntax.KindRequiredParameter, syntax.KindOptionalParameter:
		return bindingIdentifiers(t, t.ChildByField(pattern, "pattern"))
	}

	return nil
}

func findBinding(t *syntax.Tree, pattern syntax.NodeID, name string) syntax.NodeID {
	for _, id := range bindingIdentifiers(t, pattern) {
		if t.Text(id) == name {
			return id
		}
	}

	return syntax.NoNode
}

// declarationIn returns the node that declares name directly in scope, or
// NoNode. Nested scopes are not searched, except for var declarations which
// belong to the enclosing function or program.
func declarationIn(t *syntax.Tree, scope syntax.NodeID, name string, ns namespace) syntax.NodeID {
	if ns == typeNamespace {
		return typeDeclarationIn(t, scope, name)
	}

	switch {
	case t.IsFunction(scope):
		for _, param := range t.Parameters(scope) {
			if id := findBinding(t, param, name); id.Valid() {
				return id
			}
		}

		if t.Is(scope, syntax.KindFunctionExpression, syntax.KindFunction, syntax.KindGeneratorFunction) {
			if own := t.ChildByField(scope, "name"); own.Valid() && t.Text(own) == name {
				return own
			}
		}

		if body := t.Body(scope); t.Is(body, syntax.KindStatementBlock) {
			return hoistedVar(t, body, name)
		}
	case t.Is(scope, syntax.KindProgram, syntax.KindStatementBlock, syntax.KindSwitchBody):
		for _, stmt := range blockStatements(t, scope) {
			if id := statementDeclares(t, stmt, name); id.Valid() {
				return id
			}
		}

		if t.Is(scope, syntax.KindProgram) {
			return hoistedVar(t, scope, name)
		}
	case t.Is(scope, syntax.KindForStatement):
		return statementDeclares(t, t.ChildByField(scope, "initializer"), name)
	case t.Is(scope, syntax.KindForInStatement):
		if t.ChildByField(scope, "kind").Valid() {
			return findBinding(t, t.ChildByField(scope, "left"), name)
		}
	case t.Is(scope, syntax.KindCatchClause):
		return findBinding(t, t.ChildByField(scope, "parameter"), name)
	}

	return syntax.NoNode
}

func typeDeclarationIn(t *syntax.Tree, scope syntax.NodeID, name string) syntax.NodeID {
	if params := t.ChildByField(scope, "type_parameters"); params.Valid() {
		for _, param := range t.NamedChildren(params) {
			if own := t.ChildByField(param, "name"); own.Valid() && t.Text(own) == name {
				return own
			}
		}
	}

	if !t.Is(scope, syntax.KindProgram, syntax.KindStatementBlock) {
		return syntax.NoNode
	}

	for _, stmt := range blockStatements(t, scope) {
		if t.Is(stmt, syntax.KindExportStatement) {
			stmt = t.ChildByField(stmt, "declaration")
		}

		if t.Is(stmt, syntax.KindTypeAlias, syntax.KindInterface, syntax.KindClassDeclaration, syntax.KindEnum) {
			if own := t.ChildByField(stmt, "name"); own.Valid() && t.Text(own) == name {
				return own
			}
		}
	}

	return syntax.NoNode
}

// blockStatements lists the statements of a block, flattening switch cases.
func blockStatements(t *syntax.Tree, block syntax.NodeID) []syntax.NodeID {
	if !t.Is(block, syntax.KindSwitchBody) {
		return t.NamedChildren(block)
	}

	var out []syntax.NodeID

	for _, clause := range t.NamedChildren(block) {
		out = append(out, t.ChildrenByField(clause, "body")...)
	}

	return out
}

// statementDeclares returns the identifier stmt declares under name.
func statementDeclares(t *syntax.Tree, stmt syntax.NodeID, name string) syntax.NodeID {
	switch t.Kind(stmt) {
	case syntax.KindExportStatement:
		return statementDeclares(t, t.ChildByField(stmt, "declaration"), name)
	case syntax.KindLexicalDeclaration, syntax.KindVariableDeclaration:
		for _, declarator := range t.NamedChildren(stmt) {
			if id := findBinding(t, t.ChildByField(declarator, "name"), name); id.Valid() {
				return id
			}
		}
	case syntax.KindFunctionDeclaration, syntax.KindGeneratorFunctionDeclaration,
		syntax.KindClassDeclaration, syntax.KindEnum:
		if own := t.ChildByField(stmt, "name"); own.Valid() && t.Text(own) == name {
			return own
		}
	case syntax.KindImportStatement:
		for _, id := range t.FindKind(stmt, syntax.KindIdentifier) {
			if t.Text(id) != name {
				continue
			}

			// import { a as b } binds b only.
			if specifier := t.Parent(id); t.Is(specifier, syntax.KindImportSpecifier) &&
				t.ChildByField(specifier, "alias").Valid() && t.Field(id) != "alias" {
				continue
			}

			return id
		}
	}

	return syntax.NoNode
}

// hoistedVar finds a var declaration of name below root without entering
// nested functions.
func hoistedVar(t *syntax.Tree, root syntax.NodeID, name string) syntax.NodeID {
	found := syntax.NoNode

	t.Walk(root, func(p *syntax.Path) syntax.Action {
		id := p.Node()
		if id != root && t.IsFunction(id) {
			return syntax.SkipChildren
		}

		if t.Is(id, syntax.KindVariableDeclaration) {
			if decl := statementDeclares(t, id, name); decl.Valid() {
				found = decl
				return syntax.Stop
			}
		}

		return syntax.Continue
	})

	return found
}

// resolveDeclaration walks the scopes enclosing ref outward and returns the
// declaration name resolves to, and the scope node declaring it.
func resolveDeclaration(t *syntax.Tree, ref syntax.NodeID) (syntax.NodeID, syntax.NodeID) {
	name := t.Text(ref)
	ns := namespaceOf(t, ref)

	for _, scope := range t.Ancestors(ref) {
		if decl := declarationIn(t, scope, name, ns); decl.Valid() {
			return decl, scope
		}
	}

	return syntax.NoNode, syntax.NoNode
}

// declarationScope returns the node whose subtree can see the declaration
// made by stmt. Block scoped declarations see their enclosing block; var
// declarations see the enclosing function body or program.
func declarationScope(t *syntax.Tree, stmt syntax.NodeID) syntax.NodeID {
	if t.Is(stmt, syntax.KindVariableDeclaration) {
		for _, ancestor := range t.Ancestors(stmt) {
			if t.IsFunction(ancestor) {
				return t.Body(ancestor)
			}

			if t.Is(ancestor, syntax.KindProgram) {
				return ancestor
			}
		}
	}

	outer := stmt
	if t.Is(t.Parent(outer), syntax.KindExportStatement) {
		outer = t.Parent(outer)
	}

	return t.Parent(outer)
}

// enclosingStatement returns stmt, or the export statement wrapping it.
func enclosingStatement(t *syntax.Tree, stmt syntax.NodeID) syntax.NodeID {
	if parent := t.Parent(stmt); t.Is(parent, syntax.KindExportStatement) {
		return parent
	}

	return stmt
}
