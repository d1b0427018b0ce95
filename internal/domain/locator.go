package domain

import (
	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/syntax"
)

// Locate finds the inline target under the selection: the innermost
// variable declarator or type alias containing it. It returns nil when there
// is none, when the declarator has no initializer, or when the selection
// points at a destructuring element with a default value or a rest element.
func Locate(t *syntax.Tree, selection m.Selection) Inlinable {
	target := innermost(t, selection, syntax.KindVariableDeclarator, syntax.KindTypeAlias)
	if !target.Valid() {
		return nil
	}

	if t.Is(target, syntax.KindTypeAlias) {
		if !t.ChildByField(target, "value").Valid() {
			return nil
		}

		return newInlinableTypeAlias(t, target)
	}

	value := t.ChildByField(target, "value")
	if !value.Valid() {
		return nil
	}

	l := &locator{
		tree:      t,
		selection: selection,
		value:     value,
		statement: t.Parent(target),
	}

	child := l.find(t.ChildByField(target, "name"))
	if child == nil {
		return nil
	}

	if len(t.NamedChildren(l.statement)) > 1 {
		return &multipleDeclarations{composite: composite{child}, tree: t, declarator: target}
	}

	return &singleDeclaration{composite: composite{child}, tree: t, statement: enclosingStatement(t, l.statement)}
}

// innermost returns the deepest node of one of kinds whose span contains the
// selection.
func innermost(t *syntax.Tree, selection m.Selection, kinds ...string) syntax.NodeID {
	found := syntax.NoNode

	t.Walk(t.Root(), func(p *syntax.Path) syntax.Action {
		if !t.Contains(p.Node(), selection) {
			return syntax.SkipChildren
		}

		if t.Is(p.Node(), kinds...) {
			found = p.Node()
		}

		return syntax.Continue
	})

	return found
}

type locator struct {
	tree      *syntax.Tree
	selection m.Selection
	value     syntax.NodeID
	statement syntax.NodeID
}

// find descends into the declarator name, one destructuring level at a
// time, until it reaches the identifier under the selection.
func (l *locator) find(target syntax.NodeID) Inlinable {
	t := l.tree

	switch t.Kind(target) {
	case syntax.KindIdentifier, syntax.KindShorthandPattern:
		return newInlinableIdentifier(t, target, l.value, l.statement)
	case syntax.KindObjectPattern:
		return l.findInObject(target)
	case syntax.KindArrayPattern:
		return l.findInArray(target)
	}

	return nil
}

func (l *locator) findInObject(pattern syntax.NodeID) Inlinable {
	t := l.tree

	for _, element := range t.NamedChildren(pattern) {
		if !t.Contains(element, l.selection) {
			continue
		}

		var (
			child    Inlinable
			accessor string
		)

		switch t.Kind(element) {
		case syntax.KindShorthandPattern:
			child = l.find(element)
			accessor = "." + t.Text(element)
		case syntax.KindPairPattern:
			key := t.ChildByField(element, "key")
			child = l.find(t.ChildByField(element, "value"))
			accessor = propertyAccessor(t, key)
		}

		if child == nil {
			return nil
		}

		return &objectPatternLayer{
			composite: composite{child},
			tree:      t,
			element:   element,
			accessor:  accessor,
			value:     l.value,
		}
	}

	return nil
}

func (l *locator) findInArray(pattern syntax.NodeID) Inlinable {
	t := l.tree

	for index, element := range listSlots(t, pattern) {
		if !element.Valid() || !t.Contains(element, l.selection) {
			continue
		}

		child := l.find(element)
		if child == nil {
			return nil
		}

		return &arrayPatternLayer{
			composite: composite{child},
			tree:      t,
			element:   element,
			index:     index,
			value:     l.value,
		}
	}

	return nil
}

// propertyAccessor renders how a property key is read from an object.
func propertyAccessor(t *syntax.Tree, key syntax.NodeID) string {
	switch t.Kind(key) {
	case syntax.KindPropertyIdentifier, syntax.KindIdentifier:
		return "." + t.Text(key)
	case syntax.KindComputedPropertyName:
		return t.Text(key)
	}

	return "[" + t.Text(key) + "]"
}

// listSlots returns the elements of an array literal or pattern by index.
// Holes are NoNode.
func listSlots(t *syntax.Tree, list syntax.NodeID) []syntax.NodeID {
	var slots []syntax.NodeID

	current := syntax.NoNode

	for _, child := range t.Children(list) {
		node := t.Node(child)

		switch {
		case node.Kind == ",":
			slots = append(slots, current)
			current = syntax.NoNode
		case node.Named && node.Kind != syntax.KindComment:
			current = child
		}
	}

	if current.Valid() {
		slots = append(slots, current)
	}

	return slots
}
