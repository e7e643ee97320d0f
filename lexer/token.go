// Package lexer implements the DFA lexer (§4.E) and the group engine
// (§4.F): longest-match tokenization over a grammar's character-class
// alphabet, plus nested lexical groups for comments and string-like
// lexemes.
package lexer

import "github.com/cgtkit/goldrun/grammar"

// Token is a single lexeme: a symbol, the raw text it spans, and the byte
// offset in the input where it begins (§3, consumed as a parse tree leaf).
type Token struct {
	Symbol   *grammar.Symbol
	Value    string
	Position int
	EOF      bool
}

// End returns the byte offset just past the token's text.
func (t Token) End() int {
	return t.Position + len(t.Value)
}
