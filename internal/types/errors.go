package types

import "errors"

// Sentinel errors for logic-controls operations.
var (
	// ErrMalformedRule indicates rule text the parser could not understand.
	ErrMalformedRule = errors.New("malformed rule expression")

	// ErrUnknownPredicate indicates a predicate name outside the closed set.
	ErrUnknownPredicate = errors.New("unknown predicate")

	// ErrUnknownOperator indicates an operator outside the closed set.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrOperatorNotAllowed indicates an operator illegal for the field's type.
	ErrOperatorNotAllowed = errors.New("operator not allowed for field type")

	// ErrUnknownField indicates a field key absent from the form's metadata.
	ErrUnknownField = errors.New("unknown field")

	// ErrTooManyGroups indicates an expression exceeds MaxGroupsPerRule.
	ErrTooManyGroups = errors.New("rule has too many condition groups")

	// ErrTooManyConditions indicates a group exceeds MaxConditionsPerGroup.
	ErrTooManyConditions = errors.New("condition group has too many conditions")

	// ErrTooManyValues indicates contains/not_contains exceeds MaxContainsValues.
	ErrTooManyValues = errors.New("condition has too many comparison values")

	// ErrRuleTooLong indicates rule text exceeds MaxRuleTextLength.
	ErrRuleTooLong = errors.New("rule text exceeds maximum length")

	// ErrTooManyElements indicates a page exceeds MaxElementsPerPage.
	ErrTooManyElements = errors.New("page has too many elements")

	// ErrEntryNotFound indicates the submission entry does not exist.
	ErrEntryNotFound = errors.New("submission entry not found")

	// ErrFormNotFound indicates the referenced form does not exist.
	ErrFormNotFound = errors.New("form not found")

	// ErrNoForms indicates the metadata provider has no forms at all.
	ErrNoForms = errors.New("no forms found")
)
