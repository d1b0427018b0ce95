package domain

import (
	"fmt"
	"strings"

	m "jsinline.dev/pkg/jsinline/internal/model"
	"jsinline.dev/pkg/jsinline/internal/syntax"
	"jsinline.dev/pkg/jsinline/internal/textedit"
)

// InlineFunction replaces the calls of the function declared under the
// selection by its body, then removes the declaration. An exported function
// keeps its declaration and the result carries CantRemoveExportedFunction.
func InlineFunction(t *syntax.Tree, selection m.Selection) (m.Result, error) {
	fn := innermost(t, selection, syntax.KindFunctionDeclaration)
	if !fn.Valid() {
		return m.Result{}, m.DidNotFindInlinableCode
	}

	ret, err := singleReturn(t, fn)
	if err != nil {
		return m.Result{}, err
	}

	statement := enclosingStatement(t, fn)
	name := t.ChildByField(fn, "name")

	sites, keep := callSites(t, fn, t.Parent(statement), name)
	if len(sites) == 0 {
		return m.Result{}, m.DidNotFindInlinableCode
	}

	inliner := newFunctionInliner(t, fn, ret)
	edits := make([]m.Edit, 0, len(sites)+1)

	for _, call := range sites {
		edit, err := inliner.inline(call)
		if err != nil {
			return m.Result{}, err
		}

		edits = append(edits, edit)
	}

	result := m.Result{Edits: edits}

	switch {
	case isExported(t, statement, t.Text(name)):
		result.Warnings = append(result.Warnings, m.CantRemoveExportedFunction)
	case !keep:
		result.Edits = append(result.Edits, m.NewDeletion(statementRemoval(t, statement)))
	}

	return result, nil
}

// singleReturn returns the return statement of fn, or NoNode when the body
// has none. A body returning more than once, or from a nested branch, is
// refused.
func singleReturn(t *syntax.Tree, fn syntax.NodeID) (syntax.NodeID, error) {
	body := t.Body(fn)

	var returns []syntax.NodeID

	t.Walk(body, func(p *syntax.Path) syntax.Action {
		if t.IsFunction(p.Node()) {
			return syntax.SkipChildren
		}

		if t.Is(p.Node(), syntax.KindReturnStatement) {
			returns = append(returns, p.Node())
		}

		return syntax.Continue
	})

	switch {
	case len(returns) == 0:
		return syntax.NoNode, nil
	case len(returns) > 1, t.Parent(returns[0]) != body:
		return syntax.NoNode, m.CantInlineFunctionWithMultipleReturns
	}

	return returns[0], nil
}

// callSites returns the calls of the function named by name that can be
// inlined. keep is set when a reference stays behind, so the declaration
// must not be removed: bare references, recursive calls, calls with spread
// arguments and calls nested in the arguments of another call.
func callSites(t *syntax.Tree, fn, scope, name syntax.NodeID) ([]syntax.NodeID, bool) {
	var (
		sites []syntax.NodeID
		keep  bool
	)

	for _, o := range FindOccurrences(t, scope, name) {
		call := t.Parent(o.Node)

		switch {
		case !t.Is(call, syntax.KindCallExpression) || t.Field(o.Node) != "function":
			keep = true
		case t.IsAncestor(fn, call), NewArguments(t, call).HasSpread():
			keep = true
		case len(sites) > 0 && t.IsAncestor(sites[len(sites)-1], call):
			keep = true
		default:
			sites = append(sites, call)
		}
	}

	return sites, keep
}

// parameterRef is a name bound by the parameters with its uses in the body.
type parameterRef struct {
	match       ParameterMatch
	occurrences []Occurrence
}

type functionInliner struct {
	tree       *syntax.Tree
	body       syntax.NodeID
	ret        syntax.NodeID
	statements []syntax.NodeID
	refs       []parameterRef
}

func newFunctionInliner(t *syntax.Tree, fn, ret syntax.NodeID) *functionInliner {
	params := t.Parameters(fn)
	body := t.Body(fn)

	var refs []parameterRef

	for _, param := range params {
		for _, binding := range bindingIdentifiers(t, param) {
			refs = append(refs, parameterRef{
				match:       MatchParameter(t, t.Text(binding), params),
				occurrences: FindOccurrences(t, body, binding),
			})
		}
	}

	// Statements after the return are dead.
	var statements []syntax.NodeID

	for _, stmt := range t.NamedChildren(body) {
		statements = append(statements, stmt)

		if stmt == ret {
			break
		}
	}

	return &functionInliner{
		tree:       t,
		body:       body,
		ret:        ret,
		statements: statements,
		refs:       refs,
	}
}

func (f *functionInliner) inline(call syntax.NodeID) (m.Edit, error) {
	args := NewArguments(f.tree, call)

	if parent := f.tree.Parent(call); f.tree.Is(parent, syntax.KindExpressionStatement) {
		return f.inlineStatement(parent, args)
	}

	return f.inlineValue(call, args)
}

// inlineStatement replaces a call used as a statement by the body. The
// returned expression, if any, is kept as a statement of its own.
func (f *functionInliner) inlineStatement(stmt syntax.NodeID, args Arguments) (m.Edit, error) {
	t := f.tree
	statements := f.statements

	var splices []splice

	if f.ret.Valid() {
		if arg := returnArgument(t, f.ret); arg.Valid() {
			s, err := f.returnSplices(arg, args)
			if err != nil {
				return m.Edit{}, err
			}

			splices = s
		} else {
			statements = statements[:len(statements)-1]
		}
	}

	braced := t.Is(t.Parent(stmt),
		syntax.KindStatementBlock,
		syntax.KindProgram,
		syntax.KindSwitchCase,
		syntax.KindSwitchDefault,
	)

	if len(statements) == 0 {
		if !braced {
			return m.Edit{Selection: t.Selection(stmt), Text: "{}"}, nil
		}

		return m.NewDeletion(statementRemoval(t, stmt)), nil
	}

	start, _ := t.Span(statements[0])
	_, end := t.Span(statements[len(statements)-1])

	code, err := f.substitute(start, end, args, splices)
	if err != nil {
		return m.Edit{}, err
	}

	stmtStart, _ := t.Span(stmt)
	from, to := indentationOf(t, start), indentationOf(t, stmtStart)

	// if (c) f(); keeps every statement under the condition.
	if !braced && (len(statements) > 1 || t.Is(statements[0], declarationKinds...)) {
		inner := to + f.indentUnit()
		code = "{\n" + inner + reindent(code, from, inner) + "\n" + to + "}"

		return m.Edit{Selection: t.Selection(stmt), Text: code}, nil
	}

	return m.Edit{Selection: t.Selection(stmt), Text: reindent(code, from, to)}, nil
}

var declarationKinds = []string{
	syntax.KindLexicalDeclaration,
	syntax.KindClassDeclaration,
	syntax.KindFunctionDeclaration,
	syntax.KindGeneratorFunctionDeclaration,
}

// returnSplices turns "return e" into "e", or "(e)" when e would open the
// statement with a block, a function or a class.
func (f *functionInliner) returnSplices(arg syntax.NodeID, args Arguments) ([]splice, error) {
	t := f.tree
	retStart, _ := t.Span(f.ret)
	argStart, argEnd := t.Span(arg)

	code, err := f.substitute(argStart, argEnd, args, nil)
	if err != nil {
		return nil, err
	}

	if !opensStatement(code) {
		return []splice{{start: retStart, end: argStart}}, nil
	}

	return []splice{
		{start: retStart, end: argStart, text: "("},
		{start: argEnd, end: argEnd, text: ")"},
	}, nil
}

// indentUnit is one level of indentation of the function body.
func (f *functionInliner) indentUnit() string {
	t := f.tree

	statements := t.NamedChildren(f.body)
	if len(statements) > 0 {
		bodyStart, _ := t.Span(f.body)
		first, _ := t.Span(statements[0])

		if unit, ok := strings.CutPrefix(indentationOf(t, first), indentationOf(t, bodyStart)); ok && unit != "" {
			return unit
		}
	}

	return "  "
}

// inlineValue replaces a call used as a value by the returned expression.
func (f *functionInliner) inlineValue(call syntax.NodeID, args Arguments) (m.Edit, error) {
	t := f.tree

	switch {
	case !f.ret.Valid():
		return m.Edit{}, m.CantInlineAssignedFunctionWithoutReturn
	case len(f.statements) > 1:
		return m.Edit{}, m.CantInlineAssignedFunctionWithManyStatements
	}

	arg := returnArgument(t, f.ret)
	if !arg.Valid() {
		return m.Edit{Selection: t.Selection(call), Text: "undefined"}, nil
	}

	start, end := t.Span(arg)

	code, err := f.substitute(start, end, args, nil)
	if err != nil {
		return m.Edit{}, err
	}

	callStart, _ := t.Span(call)
	code = reindent(code, indentationOf(t, start), indentationOf(t, callStart))

	if needsParens(t, call, valueNamespace) && isCompound(t, arg) ||
		startsStatement(t, call) && opensStatement(code) {
		code = "(" + code + ")"
	}

	return m.Edit{Selection: t.Selection(call), Text: code}, nil
}

// splice replaces [start, end) of the source with text.
type splice struct {
	start, end int
	text       string
}

// substitute renders the source between start and end with the parameter
// uses replaced by the values passed in args and the splices applied.
// Parameters without a known value become undefined.
func (f *functionInliner) substitute(start, end int, args Arguments, splices []splice) (string, error) {
	t := f.tree
	buf := textedit.NewBuffer(t.Source()[start:end])

	for _, s := range splices {
		buf.Replace(s.start-start, s.end-start, s.text)
	}

	for _, ref := range f.refs {
		code, compound := "undefined", false
		if v, ok := ref.match.Resolve(args); ok {
			code, compound = v.Text, v.IsCompound(t)
		}

		for _, o := range ref.occurrences {
			s, e := t.Span(o.Node)
			if s < start || e > end {
				continue
			}

			buf.Replace(s-start, e-start, o.replacementFor(t, code, compound))
		}
	}

	out, err := buf.String()
	if err != nil {
		return "", fmt.Errorf("substitute parameters: %w", err)
	}

	return out, nil
}

func returnArgument(t *syntax.Tree, ret syntax.NodeID) syntax.NodeID {
	if children := t.NamedChildren(ret); len(children) > 0 {
		return children[0]
	}

	return syntax.NoNode
}
