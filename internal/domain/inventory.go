package domain

import (
	"errors"

	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/syntax"
)

// Inventory lists every declaration of the tree that the engine could be
// asked to inline, in document order, with the verdict it would give.
func Inventory(t *syntax.Tree) []m.Target {
	var targets []m.Target

	t.Walk(t.Root(), func(p *syntax.Path) syntax.Action {
		id := p.Node()

		switch t.Kind(id) {
		case syntax.KindVariableDeclarator:
			name := t.ChildByField(id, "name")
			kind := m.TargetDestructured
			if t.Is(name, syntax.KindIdentifier) {
				kind = m.TargetVariable
			}

			for _, leaf := range bindingIdentifiers(t, name) {
				targets = append(targets, variableTarget(t, kind, leaf))
			}
		case syntax.KindTypeAlias:
			targets = append(targets, variableTarget(t, m.TargetTypeAlias, t.ChildByField(id, "name")))
		case syntax.KindFunctionDeclaration:
			targets = append(targets, functionTarget(t, id))
		}

		return syntax.Continue
	})

	return targets
}

func variableTarget(t *syntax.Tree, kind m.TargetKind, leaf syntax.NodeID) m.Target {
	target := m.Target{
		Kind:     kind,
		Name:     t.Text(leaf),
		Position: t.Selection(leaf).Start,
	}

	selection := m.Cursor(target.Position)

	if inlinable := Locate(t, selection); inlinable != nil {
		target.References = len(inlinable.Occurrences())
	}

	result, err := InlineVariable(t, selection)
	target.Reason, target.Warnings = verdict(result, err)

	return target
}

func functionTarget(t *syntax.Tree, fn syntax.NodeID) m.Target {
	name := t.ChildByField(fn, "name")
	target := m.Target{
		Kind:     m.TargetFunction,
		Name:     t.Text(name),
		Position: t.Selection(name).Start,
	}

	statement := enclosingStatement(t, fn)
	target.References = len(FindOccurrences(t, t.Parent(statement), name))

	result, err := InlineFunction(t, m.Cursor(target.Position))
	target.Reason, target.Warnings = verdict(result, err)

	return target
}

func verdict(result m.Result, err error) (m.Reason, []m.Reason) {
	var reason m.Reason
	if errors.As(err, &reason) {
		return reason, nil
	}

	return "", result.Warnings
}
