package domain

import (
	"slices"
	"strings"

	"jsinline.dev/pkg/jsinline/internal/syntax"
)

// ParameterMatchKind is the shape of the parameter that binds a name.
type ParameterMatchKind int

const (
	// NoMatch means no parameter binds the name.
	NoMatch ParameterMatchKind = iota
	// IdentifierMatch is a plain parameter: function f(a).
	IdentifierMatch
	// AssignmentMatch is a parameter with a default: function f(a = 1).
	AssignmentMatch
	// RestIdentifierMatch is a rest parameter: function f(...a).
	RestIdentifierMatch
	// ArrayMatch is a name inside an array pattern: function f([a]).
	ArrayMatch
	// ObjectMatch is a name inside an object pattern: function f({ a }).
	ObjectMatch
	// RestElementMatch is a rest element inside a pattern: function f([...a]).
	RestElementMatch
)

func (k ParameterMatchKind) String() string {
	switch k {
	case IdentifierMatch:
		return "identifier"
	case AssignmentMatch:
		return "assignment"
	case RestIdentifierMatch:
		return "rest-identifier"
	case ArrayMatch:
		return "array"
	case ObjectMatch:
		return "object"
	case RestElementMatch:
		return "rest-element"
	}

	return "no-match"
}

// Value is the code a parameter receives at one call site. It is either a
// node of the call or code built from several of them.
type Value struct {
	Node syntax.NodeID
	Text string

	elements []Value
	built    bool
}

// IsCompound reports whether the value must be wrapped in parentheses when
// used as an operand.
func (v Value) IsCompound(t *syntax.Tree) bool {
	return !v.built && isCompound(t, v.Node)
}

func nodeValue(t *syntax.Tree, id syntax.NodeID) Value {
	return Value{Node: id, Text: t.Text(id)}
}

func builtArray(values []Value) Value {
	texts := make([]string, 0, len(values))
	for _, v := range values {
		texts = append(texts, v.Text)
	}

	return Value{Node: syntax.NoNode, Text: "[" + strings.Join(texts, ", ") + "]", elements: values, built: true}
}

// Arguments are the arguments of one call.
type Arguments struct {
	tree  *syntax.Tree
	nodes []syntax.NodeID
}

// NewArguments collects the arguments of call.
func NewArguments(t *syntax.Tree, call syntax.NodeID) Arguments {
	return Arguments{tree: t, nodes: t.NamedChildren(t.ChildByField(call, "arguments"))}
}

// HasSpread reports whether an argument is spread (f(...xs)).
func (a Arguments) HasSpread() bool {
	return slices.ContainsFunc(a.nodes, func(id syntax.NodeID) bool {
		return a.tree.Is(id, syntax.KindSpreadElement)
	})
}

// lookup is what is statically known about a value.
type lookup int

const (
	found lookup = iota
	// missing means nothing was passed, so defaults apply.
	missing
	// unknown means a value is passed but cannot be read from the call.
	unknown
)

type source func(args Arguments) (Value, lookup)

// ParameterMatch tells whether a name is bound by a parameter list and how
// to compute its value from the arguments of a call.
type ParameterMatch struct {
	kind    ParameterMatchKind
	resolve source
}

// IsMatch reports whether a parameter binds the name.
func (pm ParameterMatch) IsMatch() bool {
	return pm.kind != NoMatch
}

// Kind reports the shape of the matching parameter.
func (pm ParameterMatch) Kind() ParameterMatchKind {
	return pm.kind
}

// Resolve computes the value of the name for a call. ok is false when the
// value cannot be read statically, or when nothing is passed and there is
// no default; callers use undefined then.
func (pm ParameterMatch) Resolve(args Arguments) (Value, bool) {
	if !pm.IsMatch() {
		return Value{}, false
	}

	v, state := pm.resolve(args)

	return v, state == found
}

// MatchParameter finds the parameter binding name. The first match wins,
// left to right and depth first.
func MatchParameter(t *syntax.Tree, name string, params []syntax.NodeID) ParameterMatch {
	for i, param := range params {
		var src source
		if t.Is(param, syntax.KindRestPattern) {
			src = restArguments(i)
		} else {
			src = argumentAt(i)
		}

		if resolve, ok := bindSource(t, name, param, src); ok {
			return ParameterMatch{kind: parameterKind(t, param), resolve: resolve}
		}
	}

	return ParameterMatch{kind: NoMatch}
}

func parameterKind(t *syntax.Tree, param syntax.NodeID) ParameterMatchKind {
	if t.Is(param, syntax.KindRequiredParameter, syntax.KindOptionalParameter) {
		if t.ChildByField(param, "value").Valid() {
			return AssignmentMatch
		}

		param = t.ChildByField(param, "pattern")
	}

	switch t.Kind(param) {
	case syntax.KindAssignmentPattern:
		return AssignmentMatch
	case syntax.KindRestPattern:
		if children := t.NamedChildren(param); len(children) > 0 && t.Is(children[0], syntax.KindIdentifier) {
			return RestIdentifierMatch
		}

		return RestElementMatch
	case syntax.KindArrayPattern:
		return ArrayMatch
	case syntax.KindObjectPattern:
		return ObjectMatch
	}

	return IdentifierMatch
}

// bindSource returns how the value of name is computed when pattern
// receives the value produced by src.
func bindSource(t *syntax.Tree, name string, pattern syntax.NodeID, src source) (source, bool) {
	switch t.Kind(pattern) {
	case syntax.KindIdentifier, syntax.KindShorthandPattern:
		return src, t.Text(pattern) == name
	case syntax.KindRequiredParameter, syntax.KindOptionalParameter:
		inner := t.ChildByField(pattern, "pattern")
		if def := t.ChildByField(pattern, "value"); def.Valid() {
			return bindSource(t, name, inner, withDefault(t, src, def))
		}

		return bindSource(t, name, inner, src)
	case syntax.KindAssignmentPattern, syntax.KindObjectAssignmentPattern:
		return bindSource(t, name, t.ChildByField(pattern, "left"), withDefault(t, src, t.ChildByField(pattern, "right")))
	case syntax.KindRestPattern:
		return bindSource(t, name, firstNamed(t, pattern), src)
	case syntax.KindArrayPattern:
		for index, element := range listSlots(t, pattern) {
			if !element.Valid() {
				continue
			}

			elementSrc := elementAt(t, src, index)
			if t.Is(element, syntax.KindRestPattern) {
				elementSrc = restElements(t, src, index)
			}

			if resolve, ok := bindSource(t, name, element, elementSrc); ok {
				return resolve, true
			}
		}
	case syntax.KindObjectPattern:
		var (
			consumed []string
			computed bool
		)

		for _, element := range t.NamedChildren(pattern) {
			var (
				key    string
				target syntax.NodeID
			)

			switch t.Kind(element) {
			case syntax.KindShorthandPattern:
				key, target = t.Text(element), element
			case syntax.KindPairPattern:
				target = t.ChildByField(element, "value")

				var static bool
				if key, static = propertyKey(t, t.ChildByField(element, "key")); !static {
					computed = true

					if resolve, ok := bindSource(t, name, target, unknownValue); ok {
						return resolve, true
					}

					continue
				}
			case syntax.KindObjectAssignmentPattern:
				key, target = t.Text(t.ChildByField(element, "left")), element
			case syntax.KindRestPattern:
				rest := restProperties(t, src, consumed)
				if computed {
					rest = unknownValue
				}

				if resolve, ok := bindSource(t, name, firstNamed(t, element), rest); ok {
					return resolve, true
				}

				continue
			default:
				continue
			}

			consumed = append(consumed, key)

			if resolve, ok := bindSource(t, name, target, propertyOf(t, src, key)); ok {
				return resolve, true
			}
		}
	}

	return nil, false
}

func firstNamed(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	if children := t.NamedChildren(id); len(children) > 0 {
		return children[0]
	}

	return syntax.NoNode
}

// unknownValue is the value of a property read through a computed key.
func unknownValue(Arguments) (Value, lookup) {
	return Value{}, unknown
}

func argumentAt(index int) source {
	return func(args Arguments) (Value, lookup) {
		for i, arg := range args.nodes {
			if args.tree.Is(arg, syntax.KindSpreadElement) {
				return Value{}, unknown
			}

			if i == index {
				return nodeValue(args.tree, arg), found
			}
		}

		return Value{}, missing
	}
}

func restArguments(from int) source {
	return func(args Arguments) (Value, lookup) {
		if args.HasSpread() {
			return Value{}, unknown
		}

		values := []Value{}
		for i := from; i < len(args.nodes); i++ {
			values = append(values, nodeValue(args.tree, args.nodes[i]))
		}

		return builtArray(values), found
	}
}

func withDefault(t *syntax.Tree, src source, def syntax.NodeID) source {
	return func(args Arguments) (Value, lookup) {
		v, state := src(args)
		if state == missing || (state == found && isUndefinedValue(t, v)) {
			return nodeValue(t, def), found
		}

		return v, state
	}
}

func isUndefinedValue(t *syntax.Tree, v Value) bool {
	if v.built {
		return false
	}

	return t.Is(v.Node, syntax.KindUndefined) || (t.Is(v.Node, syntax.KindIdentifier) && t.Text(v.Node) == "undefined")
}

// elementAt reads the element at index of an array literal, or the value
// of the property at index of an object literal.
func elementAt(t *syntax.Tree, src source, index int) source {
	return func(args Arguments) (Value, lookup) {
		v, state := src(args)
		if state != found {
			return v, state
		}

		if v.built {
			if index < len(v.elements) {
				return v.elements[index], found
			}

			return Value{}, missing
		}

		switch t.Kind(v.Node) {
		case syntax.KindArray:
			slots := listSlots(t, v.Node)
			for i := 0; i <= index && i < len(slots); i++ {
				if t.Is(slots[i], syntax.KindSpreadElement) {
					return Value{}, unknown
				}
			}

			if index >= len(slots) || !slots[index].Valid() {
				return Value{}, missing
			}

			return nodeValue(t, slots[index]), found
		case syntax.KindObject:
			props := t.NamedChildren(v.Node)
			if index >= len(props) {
				return Value{}, missing
			}

			return propertyValue(t, props[index])
		}

		return Value{}, unknown
	}
}

// restElements collects the elements from index on.
func restElements(t *syntax.Tree, src source, from int) source {
	return func(args Arguments) (Value, lookup) {
		v, state := src(args)
		if state != found {
			return v, state
		}

		if v.built {
			if from >= len(v.elements) {
				return builtArray(nil), found
			}

			return builtArray(v.elements[from:]), found
		}

		if !t.Is(v.Node, syntax.KindArray) {
			return Value{}, unknown
		}

		values := []Value{}

		for i, slot := range listSlots(t, v.Node) {
			if i < from {
				continue
			}

			if slot.Valid() {
				values = append(values, nodeValue(t, slot))
			} else {
				values = append(values, Value{Node: syntax.NoNode, built: true})
			}
		}

		return builtArray(values), found
	}
}

// propertyOf reads property key of an object literal.
func propertyOf(t *syntax.Tree, src source, key string) source {
	return func(args Arguments) (Value, lookup) {
		v, state := src(args)
		if state != found {
			return v, state
		}

		if v.built || !t.Is(v.Node, syntax.KindObject) {
			return Value{}, unknown
		}

		// Later properties override earlier ones; a spread or a computed
		// key may override anything before it.
		value, result := Value{}, missing

		for _, prop := range t.NamedChildren(v.Node) {
			switch t.Kind(prop) {
			case syntax.KindPair:
				name, static := propertyKey(t, t.ChildByField(prop, "key"))

				switch {
				case !static:
					value, result = Value{}, unknown
				case name == key:
					value, result = nodeValue(t, t.ChildByField(prop, "value")), found
				}
			case syntax.KindShorthandPropertyIdentifier:
				if t.Text(prop) == key {
					value, result = nodeValue(t, prop), found
				}
			case syntax.KindSpreadElement:
				value, result = Value{}, unknown
			}
		}

		return value, result
	}
}

// restProperties builds an object literal of the properties not consumed
// by the preceding elements of the pattern.
func restProperties(t *syntax.Tree, src source, consumed []string) source {
	consumed = slices.Clone(consumed)

	return func(args Arguments) (Value, lookup) {
		v, state := src(args)
		if state != found {
			return v, state
		}

		if v.built || !t.Is(v.Node, syntax.KindObject) {
			return Value{}, unknown
		}

		var kept []string

		for _, prop := range t.NamedChildren(v.Node) {
			switch t.Kind(prop) {
			case syntax.KindPair:
				name, static := propertyKey(t, t.ChildByField(prop, "key"))
				if !static && len(consumed) > 0 {
					return Value{}, unknown
				}

				if static && slices.Contains(consumed, name) {
					continue
				}
			case syntax.KindShorthandPropertyIdentifier:
				if slices.Contains(consumed, t.Text(prop)) {
					continue
				}
			}

			kept = append(kept, t.Text(prop))
		}

		if len(kept) == 0 {
			return Value{Node: syntax.NoNode, Text: "{}", built: true}, found
		}

		return Value{Node: syntax.NoNode, Text: "{ " + strings.Join(kept, ", ") + " }", built: true}, found
	}
}

func propertyValue(t *syntax.Tree, prop syntax.NodeID) (Value, lookup) {
	switch t.Kind(prop) {
	case syntax.KindPair:
		return nodeValue(t, t.ChildByField(prop, "value")), found
	case syntax.KindShorthandPropertyIdentifier:
		return nodeValue(t, prop), found
	}

	return Value{}, unknown
}

// propertyKey returns the name of a property key. static is false for
// computed keys, whose name is only known at run time.
func propertyKey(t *syntax.Tree, key syntax.NodeID) (name string, static bool) {
	switch t.Kind(key) {
	case syntax.KindPropertyIdentifier, syntax.KindIdentifier, syntax.KindNumber:
		return t.Text(key), true
	case syntax.KindString:
		text := t.Text(key)
		if len(text) >= 2 {
			return text[1 : len(text)-1], true
		}

		return text, true
	}

	return "", false
}
