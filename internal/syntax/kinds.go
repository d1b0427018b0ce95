package syntax

// Node kinds produced by the JavaScript and TypeScript grammars.
const (
	KindProgram        = "program"
	KindStatementBlock = "statement_block"
	KindComment        = "comment"
	KindError          = "ERROR"
	KindMissing        = "MISSING"
)

// Declarations.
const (
	KindLexicalDeclaration  = "lexical_declaration"
	KindVariableDeclaration = "variable_declaration"
	KindVariableDeclarator  = "variable_declarator"
	KindTypeAlias           = "type_alias_declaration"
	KindInterface           = "interface_declaration"
	KindEnum                = "enum_declaration"
	KindClassDeclaration    = "class_declaration"
	KindImportStatement     = "import_statement"
	KindImportSpecifier     = "import_specifier"
	KindExportStatement     = "export_statement"
	KindExportClause        = "export_clause"
)

// Functions and parameters.
const (
	KindFunctionDeclaration          = "function_declaration"
	KindGeneratorFunctionDeclaration = "generator_function_declaration"
	KindFunctionExpression           = "function_expression"
	KindFunction                     = "function"
	KindGeneratorFunction            = "generator_function"
	KindArrowFunction                = "arrow_function"
	KindMethodDefinition             = "method_definition"
	KindRequiredParameter            = "required_parameter"
	KindOptionalParameter            = "optional_parameter"
)

// Identifiers and patterns.
const (
	KindIdentifier                  = "identifier"
	KindPropertyIdentifier          = "property_identifier"
	KindShorthandPropertyIdentifier = "shorthand_property_identifier"
	KindShorthandPattern            = "shorthand_property_identifier_pattern"
	KindTypeIdentifier              = "type_identifier"
	KindNestedTypeIdentifier        = "nested_type_identifier"
	KindObjectPattern               = "object_pattern"
	KindArrayPattern                = "array_pattern"
	KindPairPattern                 = "pair_pattern"
	KindAssignmentPattern           = "assignment_pattern"
	KindObjectAssignmentPattern     = "object_assignment_pattern"
	KindRestPattern                 = "rest_pattern"
	KindComputedPropertyName        = "computed_property_name"
)

// Expressions.
const (
	KindObject                        = "object"
	KindArray                         = "array"
	KindPair                          = "pair"
	KindSpreadElement                 = "spread_element"
	KindCallExpression                = "call_expression"
	KindNewExpression                 = "new_expression"
	KindMemberExpression              = "member_expression"
	KindSubscriptExpression           = "subscript_expression"
	KindAssignmentExpression          = "assignment_expression"
	KindAugmentedAssignmentExpression = "augmented_assignment_expression"
	KindUpdateExpression              = "update_expression"
	KindUnaryExpression               = "unary_expression"
	KindBinaryExpression              = "binary_expression"
	KindTernaryExpression             = "ternary_expression"
	KindAwaitExpression               = "await_expression"
	KindSequenceExpression            = "sequence_expression"
	KindString                        = "string"
	KindNumber                        = "number"
	KindUndefined                     = "undefined"
)

// Statements.
const (
	KindExpressionStatement = "expression_statement"
	KindReturnStatement     = "return_statement"
	KindForStatement        = "for_statement"
	KindForInStatement      = "for_in_statement"
	KindSwitchBody          = "switch_body"
	KindSwitchCase          = "switch_case"
	KindSwitchDefault       = "switch_default"
	KindCatchClause         = "catch_clause"
)

// Types.
const (
	KindArrayType        = "array_type"
	KindUnionType        = "union_type"
	KindIntersectionType = "intersection_type"
	KindFunctionType     = "function_type"
	KindConstructorType  = "constructor_type"
	KindConditionalType  = "conditional_type"
	KindIndexTypeQuery   = "index_type_query"
	KindReadonlyType     = "readonly_type"
)

var functionKinds = []string{
	KindFunctionDeclaration,
	KindGeneratorFunctionDeclaration,
	KindFunctionExpression,
	KindFunction,
	KindGeneratorFunction,
	KindArrowFunction,
	KindMethodDefinition,
}

// IsFunction reports whether id introduces a function scope.
func (t *Tree) IsFunction(id NodeID) bool {
	return t.Is(id, functionKinds...)
}

// Body returns the body of a function-like node.
func (t *Tree) Body(fn NodeID) NodeID {
	return t.ChildByField(fn, "body")
}

// Parameters returns the parameter patterns of a function-like node. An
// arrow function with a single bare parameter yields that identifier.
func (t *Tree) Parameters(fn NodeID) []NodeID {
	if single := t.ChildByField(fn, "parameter"); single.Valid() {
		return []NodeID{single}
	}

	return t.NamedChildren(t.ChildByField(fn, "parameters"))
}
