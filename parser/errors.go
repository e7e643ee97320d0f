package parser

import (
	"fmt"

	"github.com/cgtkit/goldrun/grammar"
	"github.com/cgtkit/goldrun/lexer"
)

// SyntaxError is returned when the top of stack's LR state has no action
// for the look-ahead symbol (§4.G step 3, §7 "Parser error"). LastToken is
// the offending token; its Symbol is the mangled sentinel "(EOF)" when the
// parser ran out of input without accepting.
type SyntaxError struct {
	LastToken lexer.Token
	Stack     []Frame
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parser: unexpected token %s at byte offset %d", e.LastToken.Symbol.Mangled(), e.LastToken.Position)
}

// StateMismatchError is an internal fatal (§7): a reduce action names a
// rule whose consumed-symbol count is not smaller than the number of frames
// on the stack (the bottom frame is never popped), which only a corrupt or
// ill-linked grammar can cause.
type StateMismatchError struct {
	Rule      *grammar.Rule
	Available int
}

func (e *StateMismatchError) Error() string {
	return fmt.Sprintf("parser: state mismatch reducing rule %d: needs %d frames, stack has %d", e.Rule.Index, len(e.Rule.Consumes), e.Available)
}

// GotoNotFoundError is an internal fatal (§7): after a reduce, the new
// stack top's goto table has no entry for the produced non-terminal.
type GotoNotFoundError struct {
	State  *grammar.LRState
	Symbol *grammar.Symbol
}

func (e *GotoNotFoundError) Error() string {
	return fmt.Sprintf("parser: no goto entry for %s in state %d", e.Symbol.Mangled(), e.State.Index)
}
