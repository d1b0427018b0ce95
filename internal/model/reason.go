package model

// Reason names why a refactoring was refused, or a non-fatal caveat about an
// applied one. Reasons are errors so callers can match them with errors.Is.
type Reason string

const (
	// DidNotFindInlinableCode means nothing under the selection can be inlined.
	DidNotFindInlinableCode Reason = "did-not-find-inlinable-code"
	// DidNotFindInlinableCodeIdentifiers means the binding has no reference to replace.
	DidNotFindInlinableCodeIdentifiers Reason = "did-not-find-inlinable-code-identifiers"
	// CantInlineRedeclaredVariables means the binding is assigned after its declaration.
	CantInlineRedeclaredVariables Reason = "cant-inline-redeclared-variables"
	// CantInlineExportedVariables means the binding is part of the module interface.
	CantInlineExportedVariables Reason = "cant-inline-exported-variables"
	// CantInlineFunctionWithMultipleReturns means the body has more than one exit.
	CantInlineFunctionWithMultipleReturns Reason = "cant-inline-function-with-multiple-returns"
	// CantInlineAssignedFunctionWithoutReturn means a call is used as a value but the body returns nothing.
	CantInlineAssignedFunctionWithoutReturn Reason = "cant-inline-assigned-function-without-return"
	// CantInlineAssignedFunctionWithManyStatements means a call is used as a value but the body does more than return.
	CantInlineAssignedFunctionWithManyStatements Reason = "cant-inline-assigned-function-with-many-statements"
	// CantRemoveExportedFunction is a warning: calls were inlined but the declaration stays.
	CantRemoveExportedFunction Reason = "cant-remove-exported-function"
	// DidNotFindIdentifierToRename means the selection is not on a resolvable binding.
	DidNotFindIdentifierToRename Reason = "did-not-find-identifier-to-rename"
	// InvalidIdentifierName means the requested name is not a valid identifier.
	InvalidIdentifierName Reason = "invalid-identifier-name"
)

var reasonMessages = map[Reason]string{
	DidNotFindInlinableCode:                      "I didn't find a valid code to inline from current selection",
	DidNotFindInlinableCodeIdentifiers:           "I didn't find identifiers to inline from current selection",
	CantInlineRedeclaredVariables:                "I'm sorry, I can't inline redeclared variables yet",
	CantInlineExportedVariables:                  "I can't inline exported variables, they may be used elsewhere",
	CantInlineFunctionWithMultipleReturns:        "I can't inline a function with multiple return statements",
	CantInlineAssignedFunctionWithoutReturn:      "I can't inline an assigned function without a return statement",
	CantInlineAssignedFunctionWithManyStatements: "I can't inline an assigned function with other statements than the return",
	CantRemoveExportedFunction:                   "I inlined the calls but kept the function since it's exported",
	DidNotFindIdentifierToRename:                 "I didn't find an identifier to rename from current selection",
	InvalidIdentifierName:                        "the new name is not a valid identifier",
}

// Reasons lists every known reason in a stable order.
func Reasons() []Reason {
	return []Reason{
		DidNotFindInlinableCode,
		DidNotFindInlinableCodeIdentifiers,
		CantInlineRedeclaredVariables,
		CantInlineExportedVariables,
		CantInlineFunctionWithMultipleReturns,
		CantInlineAssignedFunctionWithoutReturn,
		CantInlineAssignedFunctionWithManyStatements,
		CantRemoveExportedFunction,
		DidNotFindIdentifierToRename,
		InvalidIdentifierName,
	}
}

// Error returns the human readable message.
func (r Reason) Error() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}

	return string(r)
}

func (r Reason) String() string {
	return string(r)
}

// IsWarning reports whether the reason accompanies a successful refactoring.
func (r Reason) IsWarning() bool {
	return r == CantRemoveExportedFunction
}

// ParseReason looks a reason up by its identifier.
func ParseReason(value string) (Reason, bool) {
	r := Reason(value)
	_, ok := reasonMessages[r]

	return r, ok
}
