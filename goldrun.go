// Package goldrun is a runtime engine for the GOLD Parsing System. It loads
// a precompiled CGT grammar table and uses it to tokenize and parse input
// text into a concrete parse tree via a DFA lexer and an LALR(1)
// shift-reduce parser.
//
// The package is a facade over three subsystems that can also be used
// directly: cgt (the binary table decoder), grammar (the linked object
// graph and character-class matcher), and lexer/parser (the runtime
// engine). Most embedders only need LoadGrammar and ParseString.
package goldrun

import (
	"github.com/cgtkit/goldrun/cgt"
	"github.com/cgtkit/goldrun/grammar"
	"github.com/cgtkit/goldrun/lexer"
	"github.com/cgtkit/goldrun/parser"
)

// LoadGrammar decodes a CGT byte buffer and links it into the immutable
// grammar object graph the parser consumes. The result may be shared
// read-only across concurrent calls to ParseString (§5).
func LoadGrammar(cgtBytes []byte) (*grammar.Tables, error) {
	raw, err := cgt.Load(cgtBytes)
	if err != nil {
		return nil, err
	}
	return grammar.Link(raw)
}

// ParseString tokenizes and parses input against a loaded grammar,
// returning the resulting parse tree. opts configures observer hooks via
// parser.WithObserver.
func ParseString(input string, tables *grammar.Tables, opts ...parser.Option) (*parser.Tree, error) {
	p, err := parser.New(input, tables, opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ParseStringWithSkips behaves like ParseString but additionally returns the
// skippable tokens (whitespace, line comments) consumed along the way, in
// input order, for embedders that need to re-synthesize original formatting
// around the parse tree. The skip list is returned even when parsing fails,
// since it reflects progress already made by the lexer.
func ParseStringWithSkips(input string, tables *grammar.Tables, opts ...parser.Option) (*parser.Tree, []lexer.Token, error) {
	p, err := parser.New(input, tables, opts...)
	if err != nil {
		return nil, nil, err
	}
	tree, err := p.Parse()
	if err != nil {
		return nil, p.Skipped(), err
	}
	return tree, p.Skipped(), nil
}
