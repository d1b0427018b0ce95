package domain

import (
	"regexp"

	"jsinline.dev/pkg/jsinline/internal/syntax"
)

// Occurrence is a reference to a binding, with what the replacement has to
// respect at that spot.
type Occurrence struct {
	Node syntax.NodeID
	// Shorthand is set for object literal shorthands ({ name }), which are
	// replaced by a full property.
	Shorthand bool
	// NeedsParens is set when the occurrence is an operand, so compound code
	// must be wrapped in parentheses.
	NeedsParens bool
	// StatementHead is set when the occurrence opens an expression
	// statement or a concise arrow body.
	StatementHead bool
}

var valueReferenceKinds = []string{
	syntax.KindIdentifier,
	syntax.KindShorthandPropertyIdentifier,
	syntax.KindShorthandPattern,
}

var typeReferenceKinds = []string{
	syntax.KindTypeIdentifier,
}

// FindOccurrences returns the references to binding inside scope, in
// document order. References rebound by an inner scope are left out.
func FindOccurrences(t *syntax.Tree, scope, binding syntax.NodeID) []Occurrence {
	name := t.Text(binding)
	ns := namespaceOf(t, binding)

	kinds := valueReferenceKinds
	if ns == typeNamespace {
		kinds = typeReferenceKinds
	}

	var out []Occurrence

	t.Walk(scope, func(p *syntax.Path) syntax.Action {
		id := p.Node()
		if id == binding || !t.Is(id, kinds...) || t.Text(id) != name {
			return syntax.Continue
		}

		if isPropertyName(t, id) || isShadowed(t, p, binding, ns) {
			return syntax.Continue
		}

		out = append(out, Occurrence{
			Node:          id,
			Shorthand:     t.Is(id, syntax.KindShorthandPropertyIdentifier),
			NeedsParens:   needsParens(t, id, ns),
			StatementHead: ns == valueNamespace && startsStatement(t, id),
		})

		return syntax.Continue
	})

	return out
}

// isPropertyName reports identifiers used as a non-computed property key,
// a member name, or a type qualified by a namespace (ns.T).
func isPropertyName(t *syntax.Tree, id syntax.NodeID) bool {
	parent := t.Parent(id)

	switch t.Kind(parent) {
	case syntax.KindPair, syntax.KindPairPattern:
		return t.Field(id) == "key"
	case syntax.KindMemberExpression:
		return t.Field(id) == "property"
	case syntax.KindNestedTypeIdentifier:
		return t.Field(id) == "name"
	}

	return false
}

// isShadowed reports whether a scope between the occurrence and the walk
// root declares the name again.
func isShadowed(t *syntax.Tree, p *syntax.Path, binding syntax.NodeID, ns namespace) bool {
	name := t.Text(p.Node())
	ancestors := p.Ancestors()

	// The walk root is the scope of the binding itself.
	for _, scope := range ancestors[:max(len(ancestors)-1, 0)] {
		decl := declarationIn(t, scope, name, ns)
		if !decl.Valid() {
			continue
		}

		return decl != binding
	}

	return false
}

// needsParens reports whether the occurrence is an operand that binds
// tighter than an arbitrary expression.
func needsParens(t *syntax.Tree, id syntax.NodeID, ns namespace) bool {
	parent := t.Parent(id)
	field := t.Field(id)

	if ns == typeNamespace {
		return t.Is(parent,
			syntax.KindArrayType,
			syntax.KindUnionType,
			syntax.KindIntersectionType,
			syntax.KindIndexTypeQuery,
			syntax.KindReadonlyType,
		)
	}

	switch t.Kind(parent) {
	case syntax.KindUnaryExpression, syntax.KindUpdateExpression, syntax.KindAwaitExpression,
		syntax.KindBinaryExpression:
		return true
	case syntax.KindNewExpression:
		return field == "constructor"
	case syntax.KindMemberExpression, syntax.KindSubscriptExpression:
		return field == "object"
	case syntax.KindCallExpression:
		return field == "function"
	case syntax.KindTernaryExpression:
		return field == "condition"
	}

	return false
}

// startsStatement reports whether code at id is the first thing of an
// expression statement or of a concise arrow body.
func startsStatement(t *syntax.Tree, id syntax.NodeID) bool {
	for cur := id; ; {
		parent := t.Parent(cur)

		switch {
		case !parent.Valid():
			return false
		case t.Is(parent, syntax.KindExpressionStatement):
			return true
		case t.Is(parent, syntax.KindArrowFunction):
			return t.Field(cur) == "body"
		}

		curStart, _ := t.Span(cur)
		if parentStart, _ := t.Span(parent); parentStart != curStart {
			return false
		}

		cur = parent
	}
}

// ambiguousStart matches code that a statement would read as a block, a
// function declaration or a class declaration.
var ambiguousStart = regexp.MustCompile(`^\s*(\{|(async\s+)?function\b|class\b)`)

func opensStatement(code string) bool {
	return ambiguousStart.MatchString(code)
}

var compoundValueKinds = []string{
	syntax.KindBinaryExpression,
	syntax.KindUnaryExpression,
	syntax.KindUpdateExpression,
	syntax.KindTernaryExpression,
	syntax.KindAssignmentExpression,
	syntax.KindAugmentedAssignmentExpression,
	syntax.KindSequenceExpression,
	syntax.KindArrowFunction,
	syntax.KindFunctionExpression,
	syntax.KindFunction,
	syntax.KindNewExpression,
	syntax.KindAwaitExpression,
	"yield_expression",
	"class",
	"as_expression",
	"satisfies_expression",
	"type_assertion",
}

var compoundTypeKinds = []string{
	syntax.KindUnionType,
	syntax.KindIntersectionType,
	syntax.KindFunctionType,
	syntax.KindConstructorType,
	syntax.KindConditionalType,
}

// isCompound reports whether the code of id must be wrapped in parentheses
// when it becomes an operand.
func isCompound(t *syntax.Tree, id syntax.NodeID) bool {
	return t.Is(id, compoundValueKinds...) || t.Is(id, compoundTypeKinds...)
}

// replacementFor renders code at the occurrence.
func (o Occurrence) replacementFor(t *syntax.Tree, code string, compound bool) string {
	if o.NeedsParens && compound || o.StatementHead && opensStatement(code) {
		code = "(" + code + ")"
	}

	if o.Shorthand {
		return t.Text(o.Node) + ": " + code
	}

	return code
}

// isWrite reports whether the occurrence is the target of an assignment,
// an update or a destructuring assignment.
func isWrite(t *syntax.Tree, binding syntax.NodeID, o Occurrence) bool {
	id := o.Node

	if parent := t.Parent(id); t.Is(parent, syntax.KindUpdateExpression) {
		return true
	}

	// Climb out of assignment patterns.
	for t.Is(t.Parent(id),
		syntax.KindObjectPattern,
		syntax.KindArrayPattern,
		syntax.KindPairPattern,
		syntax.KindAssignmentPattern,
		syntax.KindObjectAssignmentPattern,
		syntax.KindRestPattern,
	) {
		if t.Is(t.Parent(id), syntax.KindPairPattern, syntax.KindAssignmentPattern, syntax.KindObjectAssignmentPattern) &&
			t.Field(id) != "value" && t.Field(id) != "left" {
			return false
		}

		id = t.Parent(id)
	}

	parent := t.Parent(id)

	switch t.Kind(parent) {
	case syntax.KindAssignmentExpression, syntax.KindAugmentedAssignmentExpression:
		if t.Field(id) != "left" {
			return false
		}

		if id == o.Node && t.Is(binding, syntax.KindIdentifier) {
			return t.Equivalent(id, binding)
		}

		return true
	case syntax.KindForInStatement:
		return t.Field(id) == "left" && !t.ChildByField(parent, "kind").Valid()
	}

	return false
}
