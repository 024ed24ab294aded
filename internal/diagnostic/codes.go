package diagnostic

// Code identifies a kind of diagnostic.
type Code string

// Contributor shape violations.
const (
	CodeContributorReturnType Code = "LC0001"
	CodeContributorParameters Code = "LC0002"
	CodeMultipleRoles         Code = "LC0003"
)

// Constructor unification.
const (
	CodeConstructorMissingInitialize Code = "LC0101"
	CodeParameterTypeMismatch        Code = "LC0102"
	CodeParameterDefaultMismatch     Code = "LC0103"
)

// Dispose and finalizer pattern conflicts.
const (
	CodeHandWrittenDisposePattern          Code = "LC0201"
	CodeSealedDisposePatternOnBase         Code = "LC0202"
	CodeNonOverridableDisposePatternOnBase Code = "LC0203"
	CodeHandWrittenDispose                 Code = "LC0204"
	CodeSealedDisposeOnBase                Code = "LC0205"
	CodeNonOverridableDisposeOnBase        Code = "LC0206"
	CodeHandWrittenFinalizer               Code = "LC0207"
)

// Discovery hints and internal failures.
const (
	CodeSuspiciousAttribute Code = "LC0301"
	CodeInternal            Code = "LC0900"
)
