package grammar

import "fmt"

// LinkError is raised when the table linker finds an index that doesn't
// resolve, or some other structural defect in the raw tables. It is always
// fatal (§7): a corrupt or ill-formed grammar cannot be partially linked.
type LinkError struct {
	Kind  string
	Index int
	Msg   string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("grammar: %s (index %d): %s", e.Kind, e.Index, e.Msg)
}

func newLinkError(kind string, index int, format string, args ...interface{}) *LinkError {
	return &LinkError{Kind: kind, Index: index, Msg: fmt.Sprintf(format, args...)}
}

// LinkError kinds. Named after §3's invariants: every index referenced by
// rules, DFA terminal results, LR actions, and groups must resolve.
const (
	KindUnresolvedSymbol  = "UnresolvedSymbol"
	KindUnresolvedCharset = "UnresolvedCharset"
	KindUnresolvedDFA     = "UnresolvedDFAState"
	KindUnresolvedLR      = "UnresolvedLRState"
	KindUnresolvedRule    = "UnresolvedRule"
	KindUnresolvedGroup   = "UnresolvedGroup"
	KindInvalidLexeme     = "InvalidLexemeKind"
	KindNonTerminalLHS    = "NonTerminalProducesViolation"
)
