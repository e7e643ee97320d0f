package parser

import (
	"github.com/cgtkit/goldrun/grammar"
	"github.com/cgtkit/goldrun/lexer"
)

// Frame is one entry of the parser's stack: the LR state the parser was in
// when the frame was pushed, paired with the parse tree node constructed at
// that point (§4.G, "a stack of frames {lr_state, parse_tree_node}").
type Frame struct {
	State *grammar.LRState
	Node  *Tree
}

// Observer holds the three optional cooperative callbacks described in
// §4.H. Any of them may be nil. Stack snapshots passed to OnShift/OnReduce
// are read-only; the driver does not consult them again afterward.
type Observer struct {
	OnToken  func(tok lexer.Token)
	OnShift  func(origin *grammar.LRState, lookahead lexer.Token, stack []Frame)
	OnReduce func(origin *grammar.LRState, lookahead lexer.Token, stack []Frame)
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithObserver installs obs as the parser's observer.
func WithObserver(obs Observer) Option {
	return func(p *Parser) {
		p.obs = obs
	}
}
