package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/cgtkit/goldrun/grammar"
)

// Lexer drives the DFA lexer (§4.E) and group engine (§4.F) over a single
// input string. It holds no mutable scan cursor of its own: callers thread
// the byte offset through Next, mirroring the parser's own stack-based
// control flow rather than an internal read pointer.
type Lexer struct {
	input     string
	tables    *grammar.Tables
	eofSymbol *grammar.Symbol
	onToken   func(Token)
}

// New builds a Lexer over input using the given linked grammar tables.
// onToken, if non-nil, is invoked once for every token Next returns,
// including skippables and group-synthesized tokens (§4.H).
func New(input string, tables *grammar.Tables, onToken func(Token)) (*Lexer, error) {
	var eof *grammar.Symbol
	for _, s := range tables.Symbols {
		if s.Kind == grammar.Eof {
			eof = s
			break
		}
	}
	if eof == nil {
		return nil, fmt.Errorf("lexer: grammar has no Eof symbol")
	}
	return &Lexer{input: input, tables: tables, eofSymbol: eof, onToken: onToken}, nil
}

// rowCol converts a byte offset into a 0-based (row, col) pair, counting
// newlines up to pos. Used only for error reporting, never on the hot path.
func (l *Lexer) rowCol(pos int) (int, int) {
	row, col := 0, 0
	for i := 0; i < pos && i < len(l.input); i++ {
		if l.input[i] == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return row, col
}

func (l *Lexer) emit(tok Token) Token {
	if l.onToken != nil {
		l.onToken(tok)
	}
	return tok
}

// Next returns the next token starting at offset, and the offset the
// following call should resume from. It folds the group engine in
// transparently: a token whose symbol opens a lexical group is replaced by
// the single synthesized token the group engine produces.
func (l *Lexer) Next(offset int) (Token, int, error) {
	tok, err := l.rawNext(offset)
	if err != nil {
		return Token{}, offset, err
	}

	if tok.Symbol != nil && tok.Symbol.Kind == grammar.GroupStart && tok.Symbol.Group != nil {
		groupTok, newPos, err := l.consumeGroup(offset, tok, tok.Symbol.Group)
		if err != nil {
			return Token{}, offset, err
		}
		return l.emit(groupTok), newPos, nil
	}

	newPos := offset
	if !tok.EOF {
		newPos = tok.End()
	}
	return l.emit(tok), newPos, nil
}

// rawNext performs one longest-match walk of the DFA from its start state,
// beginning at offset (§4.E). It does not know about groups; Next layers
// that on top.
func (l *Lexer) rawNext(offset int) (Token, error) {
	type accepted struct {
		state *grammar.DFAState
		pos   int
	}

	cur := l.tables.DFAStart
	pos := offset
	var last *accepted
	if cur.IsAccepting() {
		last = &accepted{state: cur, pos: pos}
	}

	for pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[pos:])
		var next *grammar.DFAState
		for _, e := range cur.Edges {
			if e.Class.Contains(r) {
				next = e.Target
				break
			}
		}
		if next == nil {
			break
		}
		cur = next
		pos += size
		if cur.IsAccepting() {
			last = &accepted{state: cur, pos: pos}
		}
	}

	if last != nil {
		return Token{Symbol: last.state.Terminal, Value: l.input[offset:last.pos], Position: offset}, nil
	}
	if offset >= len(l.input) {
		return Token{Symbol: l.eofSymbol, Position: offset, EOF: true}, nil
	}
	row, col := l.rowCol(offset)
	return Token{}, &LexError{Position: offset, Row: row, Col: col}
}

// consumeGroup implements §4.F: it scans forward from just past the group's
// start lexeme, looking for the group's end symbol or the start symbol of a
// nestable group, and returns the single token the group engine
// synthesizes plus the offset scanning should resume from.
func (l *Lexer) consumeGroup(start int, startTok Token, group *grammar.Group) (Token, int, error) {
	pos := start + len(startTok.Value)

	for {
		if pos >= len(l.input) {
			if group.Ending == grammar.EndingOpen {
				return Token{Symbol: group.Symbol, Value: l.input[start:pos], Position: start}, pos, nil
			}
			row, col := l.rowCol(start)
			return Token{}, start, &GroupError{Position: start, Row: row, Col: col, Group: group}
		}

		tok, terr := l.rawNext(pos)
		matched := terr == nil && !tok.EOF

		if matched && tok.Symbol == group.EndSymbol {
			if group.Ending == grammar.EndingClosed {
				end := pos + len(tok.Value)
				return Token{Symbol: group.Symbol, Value: l.input[start:end], Position: start}, end, nil
			}
			return Token{Symbol: group.Symbol, Value: l.input[start:pos], Position: start}, pos, nil
		}

		if matched && tok.Symbol.Kind == grammar.GroupStart && tok.Symbol.Group != nil && group.IsNestable(tok.Symbol.Group.Name) {
			_, newPos, err := l.consumeGroup(pos, tok, tok.Symbol.Group)
			if err != nil {
				return Token{}, start, err
			}
			pos = newPos
			continue
		}

		if group.Advance == grammar.AdvanceToken && matched {
			pos += len(tok.Value)
			continue
		}
		// Char-advance mode, or a position the DFA couldn't tokenize at all
		// (group bodies routinely contain text outside the grammar's normal
		// alphabet): step forward one rune and keep scanning.
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		if size == 0 {
			size = 1
		}
		pos += size
	}
}
