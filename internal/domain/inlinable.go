package domain

import (
	"strconv"

	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/syntax"
)

// Inlinable describes a binding the engine can replace by its value. The
// concrete descriptors form a closed set: leaves (an identifier or a type
// alias) wrapped by one layer per destructuring level and finally by the
// declaration that holds them.
type Inlinable interface {
	// Name is the name of the binding being inlined.
	Name() string
	// Binding is the node declaring the name.
	Binding() syntax.NodeID
	// Occurrences lists the references that will be replaced.
	Occurrences() []Occurrence
	IsRedeclared() bool
	IsExported() bool
	HasIdentifiersToUpdate() bool
	// ValueSelection is the span of the code replacing the references.
	ValueSelection() m.Selection
	// CodeToRemoveSelection is the span that becomes dead once every
	// reference is replaced. Leaves have none and let their parent decide.
	CodeToRemoveSelection() (m.Selection, bool)
	// UpdateIdentifiersWith replaces every reference by code.
	UpdateIdentifiersWith(code string) []m.Edit

	// update is UpdateIdentifiersWith with the knowledge of whether code is
	// an operator expression.
	update(code string, compound bool) []m.Edit
}

// inlinableIdentifier is a variable bound by a plain identifier or by a
// leaf of a destructuring pattern.
type inlinableIdentifier struct {
	tree        *syntax.Tree
	binding     syntax.NodeID
	value       syntax.NodeID
	statement   syntax.NodeID
	scope       syntax.NodeID
	occurrences []Occurrence
}

func newInlinableIdentifier(t *syntax.Tree, binding, value, statement syntax.NodeID) *inlinableIdentifier {
	scope := declarationScope(t, statement)

	return &inlinableIdentifier{
		tree:        t,
		binding:     binding,
		value:       value,
		statement:   enclosingStatement(t, statement),
		scope:       scope,
		occurrences: FindOccurrences(t, scope, binding),
	}
}

func (i *inlinableIdentifier) Name() string                { return i.tree.Text(i.binding) }
func (i *inlinableIdentifier) Binding() syntax.NodeID      { return i.binding }
func (i *inlinableIdentifier) Occurrences() []Occurrence   { return i.occurrences }
func (i *inlinableIdentifier) ValueSelection() m.Selection { return i.tree.Selection(i.value) }

func (i *inlinableIdentifier) IsRedeclared() bool {
	for _, o := range i.occurrences {
		if isWrite(i.tree, i.binding, o) {
			return true
		}
	}

	return false
}

func (i *inlinableIdentifier) IsExported() bool {
	return isExported(i.tree, i.statement, i.Name())
}

func (i *inlinableIdentifier) HasIdentifiersToUpdate() bool {
	return len(i.occurrences) > 0
}

func (i *inlinableIdentifier) CodeToRemoveSelection() (m.Selection, bool) {
	return m.Selection{}, false
}

func (i *inlinableIdentifier) UpdateIdentifiersWith(code string) []m.Edit {
	return i.update(code, isCompound(i.tree, i.value))
}

func (i *inlinableIdentifier) update(code string, compound bool) []m.Edit {
	edits := make([]m.Edit, 0, len(i.occurrences))

	for _, o := range i.occurrences {
		edits = append(edits, m.Edit{
			Selection: i.tree.Selection(o.Node),
			Text:      o.replacementFor(i.tree, code, compound),
		})
	}

	return edits
}

// inlinableTypeAlias is a TypeScript type alias. It is never reassigned and
// removes its own declaration.
type inlinableTypeAlias struct {
	tree        *syntax.Tree
	name        syntax.NodeID
	value       syntax.NodeID
	statement   syntax.NodeID
	occurrences []Occurrence
}

func newInlinableTypeAlias(t *syntax.Tree, alias syntax.NodeID) *inlinableTypeAlias {
	name := t.ChildByField(alias, "name")

	return &inlinableTypeAlias{
		tree:        t,
		name:        name,
		value:       t.ChildByField(alias, "value"),
		statement:   enclosingStatement(t, alias),
		occurrences: FindOccurrences(t, declarationScope(t, alias), name),
	}
}

func (a *inlinableTypeAlias) Name() string                { return a.tree.Text(a.name) }
func (a *inlinableTypeAlias) Binding() syntax.NodeID      { return a.name }
func (a *inlinableTypeAlias) Occurrences() []Occurrence   { return a.occurrences }
func (a *inlinableTypeAlias) IsRedeclared() bool          { return false }
func (a *inlinableTypeAlias) ValueSelection() m.Selection { return a.tree.Selection(a.value) }

func (a *inlinableTypeAlias) IsExported() bool {
	return isExported(a.tree, a.statement, a.Name())
}

func (a *inlinableTypeAlias) HasIdentifiersToUpdate() bool {
	return len(a.occurrences) > 0
}

func (a *inlinableTypeAlias) CodeToRemoveSelection() (m.Selection, bool) {
	return statementRemoval(a.tree, a.statement), true
}

func (a *inlinableTypeAlias) UpdateIdentifiersWith(code string) []m.Edit {
	return a.update(code, isCompound(a.tree, a.value))
}

func (a *inlinableTypeAlias) update(code string, compound bool) []m.Edit {
	edits := make([]m.Edit, 0, len(a.occurrences))

	for _, o := range a.occurrences {
		edits = append(edits, m.Edit{
			Selection: a.tree.Selection(o.Node),
			Text:      o.replacementFor(a.tree, code, compound),
		})
	}

	return edits
}

// composite holds what every wrapping descriptor delegates to its child.
type composite struct {
	child Inlinable
}

func (c composite) Name() string                 { return c.child.Name() }
func (c composite) Binding() syntax.NodeID       { return c.child.Binding() }
func (c composite) Occurrences() []Occurrence    { return c.child.Occurrences() }
func (c composite) IsRedeclared() bool           { return c.child.IsRedeclared() }
func (c composite) IsExported() bool             { return c.child.IsExported() }
func (c composite) HasIdentifiersToUpdate() bool { return c.child.HasIdentifiersToUpdate() }
func (c composite) ValueSelection() m.Selection  { return c.child.ValueSelection() }

// objectPatternLayer is one level of object destructuring. References of
// the leaf read the property through accessor.
type objectPatternLayer struct {
	composite
	tree     *syntax.Tree
	element  syntax.NodeID
	accessor string
	value    syntax.NodeID
}

func (l *objectPatternLayer) UpdateIdentifiersWith(code string) []m.Edit {
	return l.update(code, isCompound(l.tree, l.value))
}

func (l *objectPatternLayer) update(code string, compound bool) []m.Edit {
	if compound {
		code = "(" + code + ")"
	}

	return l.child.update(code+l.accessor, false)
}

func (l *objectPatternLayer) CodeToRemoveSelection() (m.Selection, bool) {
	if sel, ok := l.child.CodeToRemoveSelection(); ok {
		return sel, true
	}

	return listElementRemoval(l.tree, l.element)
}

// arrayPatternLayer is one level of array destructuring.
type arrayPatternLayer struct {
	composite
	tree    *syntax.Tree
	element syntax.NodeID
	index   int
	value   syntax.NodeID
}

func (l *arrayPatternLayer) UpdateIdentifiersWith(code string) []m.Edit {
	return l.update(code, isCompound(l.tree, l.value))
}

func (l *arrayPatternLayer) update(code string, compound bool) []m.Edit {
	if compound {
		code = "(" + code + ")"
	}

	return l.child.update(code+"["+strconv.Itoa(l.index)+"]", false)
}

// CodeToRemoveSelection drops the last element with its comma. Any other
// element leaves a hole so that the following indices keep their meaning.
func (l *arrayPatternLayer) CodeToRemoveSelection() (m.Selection, bool) {
	if sel, ok := l.child.CodeToRemoveSelection(); ok {
		return sel, true
	}

	if len(l.tree.NamedChildren(l.tree.Parent(l.element))) < 2 {
		return m.Selection{}, false
	}

	if next := l.tree.NextSibling(l.element); next.Valid() {
		return l.tree.Selection(l.element), true
	}

	prev := l.tree.PrevSibling(l.element)

	return l.tree.Selection(l.element).ExtendStartTo(m.Cursor(l.tree.Selection(prev).End)), true
}

// singleDeclaration is a declaration statement with one declarator.
type singleDeclaration struct {
	composite
	tree      *syntax.Tree
	statement syntax.NodeID
}

func (d *singleDeclaration) UpdateIdentifiersWith(code string) []m.Edit {
	return d.child.UpdateIdentifiersWith(code)
}

func (d *singleDeclaration) update(code string, compound bool) []m.Edit {
	return d.child.update(code, compound)
}

func (d *singleDeclaration) CodeToRemoveSelection() (m.Selection, bool) {
	if sel, ok := d.child.CodeToRemoveSelection(); ok {
		return sel, true
	}

	return statementRemoval(d.tree, d.statement), true
}

// multipleDeclarations is a declaration statement with several
// declarators, of which the inlined one is removed alone.
type multipleDeclarations struct {
	composite
	tree       *syntax.Tree
	declarator syntax.NodeID
}

func (d *multipleDeclarations) UpdateIdentifiersWith(code string) []m.Edit {
	return d.child.UpdateIdentifiersWith(code)
}

func (d *multipleDeclarations) update(code string, compound bool) []m.Edit {
	return d.child.update(code, compound)
}

func (d *multipleDeclarations) CodeToRemoveSelection() (m.Selection, bool) {
	if sel, ok := d.child.CodeToRemoveSelection(); ok {
		return sel, true
	}

	return listElementRemoval(d.tree, d.declarator)
}

// isExported reports whether name, declared by stmt, is part of the module
// interface: declared in an export statement, listed in an export clause,
// or exported as default.
func isExported(t *syntax.Tree, stmt syntax.NodeID, name string) bool {
	if t.Is(stmt, syntax.KindExportStatement) {
		return true
	}

	program := t.Parent(stmt)
	if !t.Is(program, syntax.KindProgram) {
		return false
	}

	for _, export := range t.NamedChildren(program) {
		if !t.Is(export, syntax.KindExportStatement) {
			continue
		}

		if value := t.ChildByField(export, "value"); t.Is(value, syntax.KindIdentifier) && t.Text(value) == name {
			return true
		}

		clause := t.ChildOfKind(export, syntax.KindExportClause)
		for _, specifier := range t.NamedChildren(clause) {
			if local := t.ChildByField(specifier, "name"); local.Valid() && t.Text(local) == name {
				return true
			}
		}
	}

	return false
}
