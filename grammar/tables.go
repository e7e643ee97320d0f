package grammar

import "fmt"

// Tables is the fully linked, immutable grammar object graph (§3, "Grammar
// tables") produced by Link. Everything reachable from it is safe to share
// read-only across concurrent parses (§5).
type Tables struct {
	Params    map[string]string
	Symbols   []*Symbol
	Rules     []*Rule
	Groups    []*Group
	DFAStart  *DFAState
	LALRStart *LRState

	// Warnings carries forward any non-fatal advisories raised while
	// decoding the underlying CGT bytes (e.g. an unrecognized record tag).
	Warnings []string
}

// Describe writes a short human-readable summary of the table sizes,
// intended for embedders building diagnostic tooling (SPEC_FULL.md §7).
func (t *Tables) Describe() string {
	var nonTerms, terms, groups int
	for _, s := range t.Symbols {
		switch s.Kind {
		case NonTerminal:
			nonTerms++
		case Terminal:
			terms++
		}
	}
	groups = len(t.Groups)
	return fmt.Sprintf(
		"symbols=%d (non-terminals=%d terminals=%d) rules=%d groups=%d",
		len(t.Symbols), nonTerms, terms, len(t.Rules), groups,
	)
}
