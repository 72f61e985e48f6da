package parampath

import "errors"

// Condition Parsing Errors (returned by ParseCondition)
var (
	// ErrEmptyExpression indicates an empty condition expression.
	ErrEmptyExpression = errors.New("parampath: condition expression is empty")

	// ErrEmptyConditionName indicates an expression with no parameter name,
	// such as "=value" or "!".
	ErrEmptyConditionName = errors.New("parampath: condition name is empty")
)

// Provider Configuration Errors (returned by NewProvider)
var (
	// ErrNilBaseProvider indicates WithBaseProvider was given nil.
	ErrNilBaseProvider = errors.New("parampath: base provider is nil")

	// ErrInvalidConditionOrder indicates an unknown ConditionOrder value.
	ErrInvalidConditionOrder = errors.New("parampath: invalid condition order")
)

// Patcher Errors (returned by NewPatcher and, in strict mode, Apply)
var (
	// ErrNilProvider indicates WithProvider was given nil.
	ErrNilProvider = errors.New("parampath: pattern provider is nil")

	// ErrNilDocument indicates Apply was called with a nil document.
	ErrNilDocument = errors.New("parampath: document is nil")

	// ErrPathMissing indicates a mapping's base path has no entry in the document.
	ErrPathMissing = errors.New("parampath: path not found in document")

	// ErrOperationMissing indicates the document entry for a mapping's base path
	// has no operation for the mapping's method.
	ErrOperationMissing = errors.New("parampath: operation not found in document")

	// ErrVariantCollision indicates a derived path would overwrite an existing operation.
	ErrVariantCollision = errors.New("parampath: derived path collides with existing operation")
)
