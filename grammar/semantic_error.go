package grammar

import "errors"

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction        = newSemanticError("a grammar needs at least one production")
	semErrInvalidLHS          = newSemanticError("an LHS must be an identifier")
	semErrReservedSymbol      = newSemanticError("a reserved symbol cannot be used here")
	semErrStartNotNonTerminal = newSemanticError("the start symbol must be a non-terminal")
)

// Errors returned by the queries of an Analysis.
var (
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrNotNonTerminal   = errors.New("not a non-terminal")
	ErrNoSuchProduction = errors.New("no such production")
)
