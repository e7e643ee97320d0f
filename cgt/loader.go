package cgt

import "fmt"

const (
	magicV1 = "GOLD Parser Tables/v1.0"
	magicV5 = "GOLD Parser Tables/v5.0"
)

// Record type bytes, read as the first field inside every "M" record.
const (
	recCharsetEnum  = 'C'
	recCharsetRange = 'c'
	recDFAState     = 'D'
	recLRState      = 'L'
	recRule         = 'R'
	recSymbol       = 'S'
	recInitial      = 'I'
	recParamsV1     = 'P'
	recPropertyV5   = 'p'
	recCountsV1     = 'T'
	recCountsV5     = 't'
	recGroup        = 'g'
)

// Load decodes a complete CGT byte buffer into a RawTables value
// (components A and B of the spec). It never resolves an index into
// another table; that happens in grammar.Link.
func Load(buf []byte) (*RawTables, error) {
	r := newReader(buf)

	header, err := r.ReadRawUTF16ZString()
	if err != nil {
		return nil, err
	}

	var version string
	switch header {
	case magicV1:
		version = "v1"
	case magicV5:
		version = "v5"
	default:
		return nil, newError(KindNotAGoldTable, 0, fmt.Sprintf("unrecognized header %q", header))
	}

	raw := &RawTables{
		Version:    version,
		Properties: map[string]string{},
	}

	for !r.EOF() {
		if err := r.StartRecord(); err != nil {
			return nil, err
		}

		recType, err := r.ReadByte()
		if err != nil {
			return nil, err
		}

		if err := dispatchRecord(r, raw, recType); err != nil {
			return nil, err
		}

		if !r.RecordFinished() {
			return nil, newError(KindIncompleteRecord, r.pos, fmt.Sprintf("record type %q", string(recType)))
		}
		r.EndRecord()
	}

	return raw, nil
}

func dispatchRecord(r *reader, raw *RawTables, recType byte) error {
	switch recType {
	case recCharsetEnum:
		return readCharsetEnum(r, raw)
	case recCharsetRange:
		return readCharsetRange(r, raw)
	case recDFAState:
		return readDFAState(r, raw)
	case recLRState:
		return readLRState(r, raw)
	case recRule:
		return readRule(r, raw)
	case recSymbol:
		return readSymbol(r, raw)
	case recInitial:
		return readInitial(r, raw)
	case recParamsV1:
		return readParamsV1(r, raw)
	case recPropertyV5:
		return readPropertyV5(r, raw)
	case recGroup:
		return readGroup(r, raw)
	case recCountsV1, recCountsV5:
		return skipRemainingFields(r)
	default:
		raw.Warnings = append(raw.Warnings, fmt.Sprintf("skipped unknown record tag %q at offset %d", string(recType), r.pos))
		return skipRemainingFields(r)
	}
}

func skipRemainingFields(r *reader) error {
	for !r.RecordFinished() {
		if err := r.SkipField(); err != nil {
			return err
		}
	}
	return nil
}

// checkIndex enforces table density: an indexed record's declared index
// must equal the number of entries already accumulated for that kind.
func checkIndex(r *reader, kind string, got, want int) error {
	if got != want {
		return newError(KindIndexOutOfOrder, r.pos, fmt.Sprintf("%s record claims index %d, expected %d", kind, got, want))
	}
	return nil
}

func readCharsetEnum(r *reader, raw *RawTables) error {
	idx, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := checkIndex(r, "charset", int(idx), len(raw.Charsets)); err != nil {
		return err
	}
	members, err := r.ReadString()
	if err != nil {
		return err
	}
	raw.Charsets = append(raw.Charsets, RawCharset{
		Index:   int(idx),
		Members: []rune(members),
	})
	return nil
}

func readCharsetRange(r *reader, raw *RawTables) error {
	idx, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := checkIndex(r, "charset", int(idx), len(raw.Charsets)); err != nil {
		return err
	}
	codepage, err := r.ReadU16()
	if err != nil {
		return err
	}
	rangeCount, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := r.ReadEmpty(); err != nil {
		return err
	}
	ranges := make([][2]int, 0, rangeCount)
	for i := 0; i < int(rangeCount); i++ {
		start, err := r.ReadU16()
		if err != nil {
			return err
		}
		end, err := r.ReadU16()
		if err != nil {
			return err
		}
		ranges = append(ranges, [2]int{int(start), int(end)})
	}
	raw.Charsets = append(raw.Charsets, RawCharset{
		Index:    int(idx),
		IsRange:  true,
		Codepage: int(codepage),
		Ranges:   ranges,
	})
	return nil
}

func readDFAState(r *reader, raw *RawTables) error {
	idx, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := checkIndex(r, "DFA state", int(idx), len(raw.DFA)); err != nil {
		return err
	}
	isFinal, err := r.ReadBool()
	if err != nil {
		return err
	}
	resultSym, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := r.ReadEmpty(); err != nil {
		return err
	}

	var edges []RawDFAEdge
	for !r.RecordFinished() {
		charsetIdx, err := r.ReadU16()
		if err != nil {
			return err
		}
		target, err := r.ReadU16()
		if err != nil {
			return err
		}
		if err := r.ReadEmpty(); err != nil {
			return err
		}
		edges = append(edges, RawDFAEdge{CharsetIndex: int(charsetIdx), Target: int(target)})
	}

	raw.DFA = append(raw.DFA, RawDFAState{
		Index:        int(idx),
		IsFinal:      isFinal,
		ResultSymbol: int(resultSym),
		Edges:        edges,
	})
	return nil
}

func readLRState(r *reader, raw *RawTables) error {
	idx, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := checkIndex(r, "LR state", int(idx), len(raw.LR)); err != nil {
		return err
	}
	if err := r.ReadEmpty(); err != nil {
		return err
	}

	var trans []RawLRTransition
	for !r.RecordFinished() {
		lookAhead, err := r.ReadU16()
		if err != nil {
			return err
		}
		actionType, err := r.ReadU16()
		if err != nil {
			return err
		}
		value, err := r.ReadU16()
		if err != nil {
			return err
		}
		if err := r.ReadEmpty(); err != nil {
			return err
		}
		if actionType < RawActionShift || actionType > RawActionAccept {
			return newError(KindUnknownActionType, r.pos, fmt.Sprintf("action type %d", actionType))
		}
		trans = append(trans, RawLRTransition{
			LookAhead:  int(lookAhead),
			ActionType: int(actionType),
			Value:      int(value),
		})
	}

	raw.LR = append(raw.LR, RawLRState{Index: int(idx), Transitions: trans})
	return nil
}

func readRule(r *reader, raw *RawTables) error {
	idx, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := checkIndex(r, "rule", int(idx), len(raw.Rules)); err != nil {
		return err
	}
	produces, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := r.ReadEmpty(); err != nil {
		return err
	}

	var consumes []int
	for !r.RecordFinished() {
		sym, err := r.ReadU16()
		if err != nil {
			return err
		}
		consumes = append(consumes, int(sym))
	}

	raw.Rules = append(raw.Rules, RawRule{
		Index:    int(idx),
		Produces: int(produces),
		Consumes: consumes,
	})
	return nil
}

func readSymbol(r *reader, raw *RawTables) error {
	idx, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := checkIndex(r, "symbol", int(idx), len(raw.Symbols)); err != nil {
		return err
	}
	name, err := r.ReadString()
	if err != nil {
		return err
	}
	kind, err := r.ReadU16()
	if err != nil {
		return err
	}
	raw.Symbols = append(raw.Symbols, RawSymbol{
		Index: int(idx),
		Name:  name,
		Kind:  int(kind),
	})
	return nil
}

func readInitial(r *reader, raw *RawTables) error {
	dfaStart, err := r.ReadU16()
	if err != nil {
		return err
	}
	lrStart, err := r.ReadU16()
	if err != nil {
		return err
	}
	raw.InitialDFAState = int(dfaStart)
	raw.InitialLRState = int(lrStart)
	return nil
}

func readParamsV1(r *reader, raw *RawTables) error {
	name, err := r.ReadString()
	if err != nil {
		return err
	}
	version, err := r.ReadString()
	if err != nil {
		return err
	}
	author, err := r.ReadString()
	if err != nil {
		return err
	}
	about, err := r.ReadString()
	if err != nil {
		return err
	}
	caseSensitive, err := r.ReadBool()
	if err != nil {
		return err
	}
	startSymbol, err := r.ReadU16()
	if err != nil {
		return err
	}
	raw.V1Params = &RawV1Params{
		Name:          name,
		Version:       version,
		Author:        author,
		About:         about,
		CaseSensitive: caseSensitive,
		StartSymbol:   int(startSymbol),
	}
	return nil
}

func readPropertyV5(r *reader, raw *RawTables) error {
	if err := r.ReadEmpty(); err != nil {
		return err
	}
	name, err := r.ReadString()
	if err != nil {
		return err
	}
	value, err := r.ReadString()
	if err != nil {
		return err
	}
	raw.Properties[name] = value
	return nil
}

func readGroup(r *reader, raw *RawTables) error {
	idx, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := checkIndex(r, "group", int(idx), len(raw.Groups)); err != nil {
		return err
	}
	name, err := r.ReadString()
	if err != nil {
		return err
	}
	symbol, err := r.ReadU16()
	if err != nil {
		return err
	}
	start, err := r.ReadU16()
	if err != nil {
		return err
	}
	end, err := r.ReadU16()
	if err != nil {
		return err
	}
	advance, err := r.ReadU16()
	if err != nil {
		return err
	}
	ending, err := r.ReadU16()
	if err != nil {
		return err
	}
	if err := r.ReadEmpty(); err != nil {
		return err
	}
	nestableCount, err := r.ReadU16()
	if err != nil {
		return err
	}
	nestable := make([]int, 0, nestableCount)
	for i := 0; i < int(nestableCount); i++ {
		g, err := r.ReadU16()
		if err != nil {
			return err
		}
		nestable = append(nestable, int(g))
	}

	raw.Groups = append(raw.Groups, RawGroup{
		Index:        int(idx),
		Name:         name,
		Symbol:       int(symbol),
		StartSymbol:  int(start),
		EndSymbol:    int(end),
		Advance:      int(advance),
		Ending:       int(ending),
		NestableRefs: nestable,
	})
	return nil
}
