// Package spec reads grammar text.
//
// A grammar is written one production per line:
//
//	Program   ProgramHead DeclarePart ProgramBody .
//	ProgramHead PROGRAM ProgramName
//	TypeDecpart EPSILON
//
// The first symbol of a line is the LHS, the remaining symbols are the RHS.
// Upper-case words are collected as reserved words for a downstream lexer;
// they are ordinary terminals as far as the grammar is concerned.
package spec

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'lookahead.spec'.
func tracer() tracing.Trace {
	return tracing.Select("lookahead.spec")
}
