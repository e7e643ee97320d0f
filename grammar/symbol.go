// Package grammar resolves the flat, index-based tables produced by the cgt
// package into a cross-linked, immutable grammar object graph, and exposes
// the character-class matcher (§4.D of the spec).
package grammar

import "fmt"

// Kind is a symbol's role, as classified by the GOLD grammar compiler.
type Kind int

const (
	NonTerminal Kind = iota
	Terminal
	Skippable
	Eof
	GroupStart
	GroupEnd
	CommentLine
	ErrorSymbolKind
)

func (k Kind) String() string {
	switch k {
	case NonTerminal:
		return "NonTerminal"
	case Terminal:
		return "Terminal"
	case Skippable:
		return "Skippable"
	case Eof:
		return "Eof"
	case GroupStart:
		return "GroupStart"
	case GroupEnd:
		return "GroupEnd"
	case CommentLine:
		return "CommentLine"
	case ErrorSymbolKind:
		return "Error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Symbol is a single grammar symbol: a name, a kind, and (for symbols that
// serve as a lexical group's start or end marker) a back-reference to that
// group, installed during linking.
type Symbol struct {
	Name  string
	Kind  Kind
	Group *Group // non-nil iff this symbol opens or closes a lexical group.
}

// Mangled returns the symbol's canonical, kind-decorated identity, used as
// the sole lookup key for LR actions and gotos (§3, "Mangled name"). It is
// derived from Name and Kind alone, so a Symbol built via a plain struct
// literal mangles the same as one built through newSymbol.
func (s *Symbol) Mangled() string {
	return mangle(s.Name, s.Kind)
}

func mangle(name string, kind Kind) string {
	switch kind {
	case Terminal:
		return "'" + name + "'"
	case NonTerminal:
		return "<" + name + ">"
	case Eof:
		return "(EOF)"
	case Skippable:
		return "[" + name + "]"
	case GroupStart:
		return "/" + name + "/"
	case GroupEnd:
		return "\\" + name + "\\"
	default:
		// CommentLine and Error have no bracket convention of their own in
		// the spec; they are never used as an LR lookup key, so any stable,
		// unique string suffices.
		return fmt.Sprintf("%s:%s", kind, name)
	}
}

func newSymbol(name string, kind Kind) *Symbol {
	return &Symbol{Name: name, Kind: kind}
}
