package grammar

// AdvanceMode controls how the group engine consumes input while looking
// for the group's end (§3, "Group (lexical)").
type AdvanceMode int

const (
	AdvanceChar AdvanceMode = iota
	AdvanceToken
)

// EndingMode controls whether the end marker lexeme is absorbed into the
// synthesized group token.
type EndingMode int

const (
	EndingOpen EndingMode = iota
	EndingClosed
)

// Group is a lexical group: a comment or string-like construct that the
// group engine (§4.F) consumes as a single synthesized token.
type Group struct {
	Name        string
	Symbol      *Symbol // the kind of the synthesized token.
	StartSymbol *Symbol
	EndSymbol   *Symbol
	Advance     AdvanceMode
	Ending      EndingMode

	// Nestable holds the names of groups that, when their start symbol is
	// encountered while inside this group, trigger recursive consumption
	// rather than being treated as raw text.
	Nestable map[string]struct{}
}

// IsNestable reports whether a group with the given name nests inside this
// one.
func (g *Group) IsNestable(name string) bool {
	_, ok := g.Nestable[name]
	return ok
}
