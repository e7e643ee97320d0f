package parser

import (
	"github.com/cgtkit/goldrun/grammar"
	"github.com/cgtkit/goldrun/lexer"
)

// Parser drives the LALR(1) shift/reduce/goto/accept loop (§4.G) over a
// single input string against a linked grammar.
type Parser struct {
	tables *grammar.Tables
	lex    *lexer.Lexer
	obs    Observer

	stack   []Frame
	pos     int
	skipped []lexer.Token
}

// New builds a Parser over input using the given linked grammar tables.
func New(input string, tables *grammar.Tables, opts ...Option) (*Parser, error) {
	p := &Parser{tables: tables}
	for _, opt := range opts {
		opt(p)
	}

	lex, err := lexer.New(input, tables, p.obs.OnToken)
	if err != nil {
		return nil, err
	}
	p.lex = lex

	return p, nil
}

// initialSymbol is the sentinel symbol of the LALR driver's bottom stack
// frame (§4.G, "sentinel with kind=Error, name=INITIAL_STATE"). It is never
// looked up by mangled name, so its mangled form is decorative only.
var initialSymbol = &grammar.Symbol{Name: "INITIAL_STATE", Kind: grammar.ErrorSymbolKind}

// Parse runs the driver to completion, returning the accepted parse tree or
// a SyntaxError/LexError/GroupError/internal fatal.
func (p *Parser) Parse() (*Tree, error) {
	initial := &Tree{Symbol: initialSymbol, Start: 0, End: 0}
	p.stack = []Frame{{State: p.tables.LALRStart, Node: initial}}
	p.pos = 0

	var lookahead *lexer.Token
	for {
		if lookahead == nil {
			tok, newPos, err := p.nextSignificant()
			if err != nil {
				return nil, err
			}
			lookahead = &tok
			p.pos = newPos
		}

		top := p.stack[len(p.stack)-1]
		action, ok := top.State.Action(lookahead.Symbol.Mangled())
		if !ok {
			return nil, &SyntaxError{LastToken: *lookahead, Stack: append([]Frame{}, p.stack...)}
		}

		switch act := action.(type) {
		case grammar.AcceptAction:
			return p.stack[len(p.stack)-1].Node, nil

		case grammar.ShiftAction:
			leaf := &Tree{
				Symbol: lookahead.Symbol,
				Token:  lookahead,
				Start:  lookahead.Position,
				End:    lookahead.End(),
			}
			if p.obs.OnShift != nil {
				p.obs.OnShift(top.State, *lookahead, append([]Frame{}, p.stack...))
			}
			p.stack = append(p.stack, Frame{State: act.Target, Node: leaf})
			lookahead = nil

		case grammar.ReduceAction:
			node, newTop, err := p.reduce(act.Rule)
			if err != nil {
				return nil, err
			}
			p.stack = append(p.stack, Frame{State: newTop, Node: node})
			if p.obs.OnReduce != nil {
				p.obs.OnReduce(top.State, *lookahead, append([]Frame{}, p.stack...))
			}
			// The look-ahead is not consumed by a reduce; re-examine it
			// against the new stack top.
		}
	}
}

// reduce pops len(rule.Consumes) frames, builds the resulting parse tree
// node, and resolves the goto for rule.Produces from the frame left
// exposed (§4.G step 6).
func (p *Parser) reduce(rule *grammar.Rule) (*Tree, *grammar.LRState, error) {
	n := len(rule.Consumes)
	if n >= len(p.stack) {
		return nil, nil, &StateMismatchError{Rule: rule, Available: len(p.stack)}
	}

	popped := p.stack[len(p.stack)-n:]
	p.stack = p.stack[:len(p.stack)-n]

	var start, end int
	children := make([]*Tree, n)
	if rule.IsEpsilon() {
		base := p.stack[len(p.stack)-1].Node.End
		start, end = base, base
	} else {
		start = popped[0].Node.Start
		end = popped[n-1].Node.End
		for i, f := range popped {
			children[i] = f.Node
		}
	}

	node := &Tree{Symbol: rule.Produces, Children: children, Start: start, End: end}

	newTop := p.stack[len(p.stack)-1]
	target, ok := newTop.State.GotoFor(rule.Produces.Mangled())
	if !ok {
		return nil, nil, &GotoNotFoundError{State: newTop.State, Symbol: rule.Produces}
	}
	return node, target, nil
}

// nextSignificant obtains the next non-skippable token (§4.G step 1); any
// intervening skippable tokens have already reached the observer via the
// lexer's onToken hook, and are also retained for Skipped.
func (p *Parser) nextSignificant() (lexer.Token, int, error) {
	pos := p.pos
	for {
		tok, newPos, err := p.lex.Next(pos)
		if err != nil {
			return lexer.Token{}, pos, err
		}
		pos = newPos
		if tok.Symbol.Kind == grammar.Skippable {
			p.skipped = append(p.skipped, tok)
			continue
		}
		return tok, pos, nil
	}
}

// Skipped returns the skippable tokens (whitespace, line comments) consumed
// so far, in input order. Useful for embedders that need to reconstruct
// original formatting around the parse tree.
func (p *Parser) Skipped() []lexer.Token {
	return p.skipped
}
