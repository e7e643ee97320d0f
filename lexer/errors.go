package lexer

import (
	"fmt"

	"github.com/cgtkit/goldrun/grammar"
)

// LexError is raised when no DFA edge matches the current input character
// and no shorter prefix was ever accepted (§7, "no DFA path can continue and
// no prior state in the current attempt was accepting").
type LexError struct {
	Position int
	Row, Col int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer: no match at byte offset %d (line %d, column %d)", e.Position, e.Row+1, e.Col+1)
}

// GroupError is raised when a lexical group opens but the input ends before
// its end symbol is found in a Closed-ending group (§7, "unterminated
// group").
type GroupError struct {
	Position int
	Row, Col int
	Group    *grammar.Group
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("lexer: unterminated group %q starting at byte offset %d (line %d, column %d)", e.Group.Name, e.Position, e.Row+1, e.Col+1)
}
