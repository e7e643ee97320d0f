package grammar

// Rule is a single grammar production (§3, "Rule"), identified by its
// CGT-assigned index.
type Rule struct {
	Index    int
	Produces *Symbol
	Consumes []*Symbol
}

// IsEpsilon reports whether this rule's right-hand side is empty, the case
// §4.G and §9 call out as needing special span handling on reduce.
func (r *Rule) IsEpsilon() bool {
	return len(r.Consumes) == 0
}
