package grammar

import "github.com/cgtkit/goldrun/cgt"

// Link resolves a cgt.RawTables value into the cross-linked, immutable
// object graph the rest of the engine consumes (§4.C). It is the only
// place raw CGT indices turn into pointers.
func Link(raw *cgt.RawTables) (*Tables, error) {
	l := &linker{raw: raw}

	if err := l.linkSymbols(); err != nil {
		return nil, err
	}
	if err := l.linkCharsets(); err != nil {
		return nil, err
	}
	if err := l.linkGroups(); err != nil {
		return nil, err
	}
	if raw.Version == "v1" {
		l.synthesizeV1Groups()
	}
	if err := l.linkRules(); err != nil {
		return nil, err
	}
	dfaStart, err := l.linkDFA(raw.InitialDFAState)
	if err != nil {
		return nil, err
	}
	lalrStart, err := l.linkLR(raw.InitialLRState)
	if err != nil {
		return nil, err
	}

	params := map[string]string{}
	for k, v := range raw.Properties {
		params[k] = v
	}
	if raw.V1Params != nil {
		params["Name"] = raw.V1Params.Name
		params["Version"] = raw.V1Params.Version
		params["Author"] = raw.V1Params.Author
		params["About"] = raw.V1Params.About
		if raw.V1Params.CaseSensitive {
			params["Case Sensitive"] = "True"
		} else {
			params["Case Sensitive"] = "False"
		}
	}

	return &Tables{
		Params:    params,
		Symbols:   l.symbols,
		Rules:     l.rules,
		Groups:    l.groups,
		DFAStart:  dfaStart,
		LALRStart: lalrStart,
		Warnings:  raw.Warnings,
	}, nil
}

type linker struct {
	raw *cgt.RawTables

	symbols  []*Symbol
	charsets []CharacterClass
	groups   []*Group
	rules    []*Rule

	dfaArena map[int]*DFAState
	lrArena  map[int]*LRState
}

func (l *linker) symbol(idx int) (*Symbol, error) {
	if idx < 0 || idx >= len(l.symbols) {
		return nil, newLinkError(KindUnresolvedSymbol, idx, "symbol index out of range")
	}
	return l.symbols[idx], nil
}

func (l *linker) charset(idx int) (CharacterClass, error) {
	if idx < 0 || idx >= len(l.charsets) {
		return nil, newLinkError(KindUnresolvedCharset, idx, "charset index out of range")
	}
	return l.charsets[idx], nil
}

var rawKindToKind = map[int]Kind{
	cgt.RawKindNonTerminal: NonTerminal,
	cgt.RawKindTerminal:    Terminal,
	cgt.RawKindSkippable:   Skippable,
	cgt.RawKindEOF:         Eof,
	cgt.RawKindGroupStart:  GroupStart,
	cgt.RawKindGroupEnd:    GroupEnd,
	cgt.RawKindCommentLine: CommentLine,
	cgt.RawKindError:       ErrorSymbolKind,
}

func (l *linker) linkSymbols() error {
	l.symbols = make([]*Symbol, len(l.raw.Symbols))
	for i, rs := range l.raw.Symbols {
		kind, ok := rawKindToKind[rs.Kind]
		if !ok {
			return newLinkError(KindUnresolvedSymbol, i, "unrecognized raw symbol kind %d", rs.Kind)
		}
		l.symbols[i] = newSymbol(rs.Name, kind)
	}
	return nil
}

func (l *linker) linkCharsets() error {
	l.charsets = make([]CharacterClass, len(l.raw.Charsets))
	for i, rc := range l.raw.Charsets {
		if rc.IsRange {
			ranges := make([]CodepointRange, len(rc.Ranges))
			for j, r := range rc.Ranges {
				ranges[j] = CodepointRange{From: rune(r[0]), To: rune(r[1])}
			}
			l.charsets[i] = NewRangeSet(rc.Codepage, ranges)
		} else {
			l.charsets[i] = NewEnumSet(rc.Members)
		}
	}
	return nil
}

func (l *linker) linkGroups() error {
	l.groups = make([]*Group, len(l.raw.Groups))
	for i, rg := range l.raw.Groups {
		symbol, err := l.symbol(rg.Symbol)
		if err != nil {
			return err
		}
		start, err := l.symbol(rg.StartSymbol)
		if err != nil {
			return err
		}
		end, err := l.symbol(rg.EndSymbol)
		if err != nil {
			return err
		}
		advance := AdvanceToken
		if rg.Advance == cgt.RawAdvanceChar {
			advance = AdvanceChar
		}
		ending := EndingOpen
		if rg.Ending == cgt.RawEndingClosed {
			ending = EndingClosed
		}
		g := &Group{
			Name:        rg.Name,
			Symbol:      symbol,
			StartSymbol: start,
			EndSymbol:   end,
			Advance:     advance,
			Ending:      ending,
			Nestable:    map[string]struct{}{},
		}
		l.groups[i] = g
		start.Group = g
		end.Group = g
	}

	// Second pass: nestable references point at other groups by raw index,
	// so every group must already exist before any Nestable set can be
	// filled in.
	for i, rg := range l.raw.Groups {
		for _, ref := range rg.NestableRefs {
			if ref < 0 || ref >= len(l.groups) {
				return newLinkError(KindUnresolvedGroup, ref, "nestable group index out of range")
			}
			l.groups[i].Nestable[l.groups[ref].Name] = struct{}{}
		}
	}
	return nil
}

// synthesizeV1Groups implements §4.C step 3: v1 tables predate the "g"
// record, so block- and line-comment groups are reconstructed from the
// symbols alone, when present.
func (l *linker) synthesizeV1Groups() {
	var groupStart, groupEnd, commentLine, newline *Symbol
	var commentSkippable *Symbol
	for _, s := range l.symbols {
		switch {
		case s.Kind == GroupStart && groupStart == nil:
			groupStart = s
		case s.Kind == GroupEnd && groupEnd == nil:
			groupEnd = s
		case s.Kind == CommentLine && commentLine == nil:
			commentLine = s
		case s.Kind == Skippable && s.Name == "Comment" && commentSkippable == nil:
			commentSkippable = s
		case s.Kind == Terminal && s.Name == "newline" && newline == nil:
			newline = s
		}
	}

	commentSym := func() *Symbol {
		if commentSkippable == nil {
			commentSkippable = newSymbol("Comment", Skippable)
			l.symbols = append(l.symbols, commentSkippable)
		}
		return commentSkippable
	}

	if groupStart != nil && groupEnd != nil {
		g := &Group{
			Name:        "Comment Block",
			Symbol:      commentSym(),
			StartSymbol: groupStart,
			EndSymbol:   groupEnd,
			Advance:     AdvanceChar,
			Ending:      EndingClosed,
			Nestable:    map[string]struct{}{},
		}
		l.groups = append(l.groups, g)
		groupStart.Group = g
		groupEnd.Group = g
	}

	if commentLine != nil && newline != nil {
		// Reclassify in place so every existing reference to this symbol
		// (e.g. in l.symbols) observes the new kind and mangled identity.
		*commentLine = *newSymbol(commentLine.Name, GroupStart)
		g := &Group{
			Name:        "Comment Line",
			Symbol:      commentSym(),
			StartSymbol: commentLine,
			EndSymbol:   newline,
			Advance:     AdvanceChar,
			Ending:      EndingOpen,
			Nestable:    map[string]struct{}{},
		}
		l.groups = append(l.groups, g)
		commentLine.Group = g
		newline.Group = g
	}
}

func (l *linker) linkRules() error {
	l.rules = make([]*Rule, len(l.raw.Rules))
	for i, rr := range l.raw.Rules {
		produces, err := l.symbol(rr.Produces)
		if err != nil {
			return err
		}
		if produces.Kind != NonTerminal {
			return newLinkError(KindNonTerminalLHS, i, "rule produces a non-NonTerminal symbol %q", produces.Name)
		}
		consumes := make([]*Symbol, len(rr.Consumes))
		for j, symIdx := range rr.Consumes {
			sym, err := l.symbol(symIdx)
			if err != nil {
				return err
			}
			consumes[j] = sym
		}
		l.rules[i] = &Rule{Index: i, Produces: produces, Consumes: consumes}
	}
	return nil
}

var lexemeKinds = map[Kind]bool{
	Terminal:    true,
	Skippable:   true,
	Eof:         true,
	GroupStart:  true,
	GroupEnd:    true,
	CommentLine: true,
}

func (l *linker) linkDFA(start int) (*DFAState, error) {
	l.dfaArena = map[int]*DFAState{}
	return l.buildDFAState(start)
}

// buildDFAState resolves a DFA state by its raw index, memoizing on the way
// down so a cyclic graph terminates (§9, "Cyclic state graphs").
func (l *linker) buildDFAState(idx int) (*DFAState, error) {
	if s, ok := l.dfaArena[idx]; ok {
		return s, nil
	}
	if idx < 0 || idx >= len(l.raw.DFA) {
		return nil, newLinkError(KindUnresolvedDFA, idx, "DFA state index out of range")
	}
	raw := l.raw.DFA[idx]

	state := &DFAState{Index: idx}
	l.dfaArena[idx] = state

	if raw.IsFinal {
		sym, err := l.symbol(raw.ResultSymbol)
		if err != nil {
			return nil, err
		}
		if !lexemeKinds[sym.Kind] {
			return nil, newLinkError(KindInvalidLexeme, idx, "accepting state's terminal symbol has non-lexeme kind %v", sym.Kind)
		}
		state.Terminal = sym
	}

	edges := make([]DFAEdge, len(raw.Edges))
	for i, re := range raw.Edges {
		class, err := l.charset(re.CharsetIndex)
		if err != nil {
			return nil, err
		}
		target, err := l.buildDFAState(re.Target)
		if err != nil {
			return nil, err
		}
		edges[i] = DFAEdge{Class: class, Target: target}
	}
	state.Edges = edges

	return state, nil
}

func (l *linker) linkLR(start int) (*LRState, error) {
	l.lrArena = map[int]*LRState{}
	return l.buildLRState(start)
}

func (l *linker) buildLRState(idx int) (*LRState, error) {
	if s, ok := l.lrArena[idx]; ok {
		return s, nil
	}
	if idx < 0 || idx >= len(l.raw.LR) {
		return nil, newLinkError(KindUnresolvedLR, idx, "LR state index out of range")
	}
	raw := l.raw.LR[idx]

	state := &LRState{Index: idx, Edges: map[string]Action{}, Goto: map[string]Action{}}
	l.lrArena[idx] = state

	for _, t := range raw.Transitions {
		sym, err := l.symbol(t.LookAhead)
		if err != nil {
			return nil, err
		}
		key := sym.Mangled()

		switch t.ActionType {
		case cgt.RawActionAccept:
			state.Edges[key] = AcceptAction{}
		case cgt.RawActionReduce:
			if t.Value < 0 || t.Value >= len(l.rules) {
				return nil, newLinkError(KindUnresolvedRule, t.Value, "reduce action references unknown rule")
			}
			state.Edges[key] = ReduceAction{Rule: l.rules[t.Value]}
		case cgt.RawActionShift:
			target, err := l.buildLRState(t.Value)
			if err != nil {
				return nil, err
			}
			state.Edges[key] = ShiftAction{Target: target}
		case cgt.RawActionGoto:
			target, err := l.buildLRState(t.Value)
			if err != nil {
				return nil, err
			}
			state.Goto[key] = GotoAction{Target: target}
		default:
			return nil, newLinkError(KindUnresolvedLR, idx, "unknown action type %d", t.ActionType)
		}
	}

	return state, nil
}
