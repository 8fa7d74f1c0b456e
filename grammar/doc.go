/*
Package grammar computes the static tables an LL(1) parser generator needs.

Building a Grammar

A Grammar is built from the AST the spec package reads. A symbol is a
non-terminal iff it is the LHS of some production; every other symbol is a
terminal. The start symbol defaults to the LHS of the first production.

	root, err := spec.Parse(src)
	b := grammar.GrammarBuilder{AST: root}
	gram, err := b.Build(grammar.StartSymbol("Program"))

Static Grammar Analysis

Analyze runs three stages in order, each one frozen before the next reads it:

	FIRST    fixed point over all productions, then FIRST of every RHS suffix
	FOLLOW   fixed point seeded with the end marker on the start symbol
	PREDICT  FIRST(α) \ {ε} ∪ FOLLOW(A) for nullable α, FIRST(α) otherwise

For the grammar

	S  ->  A B
	A  ->  a
	A  ->  EPSILON
	B  ->  b

the analysis yields

	FIRST(A) = {EPSILON, a}    FOLLOW(A) = {b}    PREDICT(A -> a)       = {a}
	FIRST(B) = {b}             FOLLOW(B) = {#}    PREDICT(A -> EPSILON) = {b}
	FIRST(S) = {a, b}          FOLLOW(S) = {#}

PREDICT sets are not checked for disjointness here; see package conflict.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lookahead.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("lookahead.grammar")
}
