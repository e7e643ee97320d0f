package cgt

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"
)

// testBuilder assembles a CGT byte buffer by hand, mirroring the tag
// vocabulary in reader.go. It exists only to give the loader tests
// realistic fixtures without depending on an external grammar compiler.
type testBuilder struct {
	buf []byte
}

func newTestBuilder(magic string) *testBuilder {
	b := &testBuilder{}
	b.rawString(magic)
	return b
}

func (b *testBuilder) rawString(s string) {
	for _, u := range utf16.Encode([]rune(s)) {
		b.u16raw(u)
	}
	b.u16raw(0)
}

func (b *testBuilder) u16raw(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *testBuilder) record(recType byte, fieldCount int, fn func(*testBuilder)) {
	b.buf = append(b.buf, tagMultiRecord)
	// The M count includes the record-type byte that follows it (§4.A:
	// "count of fields that follow, excluding the M itself").
	b.u16raw(uint16(fieldCount + 1))
	b.field(tagByte, func() { b.buf = append(b.buf, recType) })
	fn(b)
}

func (b *testBuilder) field(tag byte, fn func()) {
	b.buf = append(b.buf, tag)
	fn()
}

func (b *testBuilder) u16(v int) {
	b.field(tagUint16, func() { b.u16raw(uint16(v)) })
}

func (b *testBuilder) str(s string) {
	b.field(tagString, func() { b.rawString(s) })
}

func (b *testBuilder) boolean(v bool) {
	b.field(tagBool, func() {
		x := byte(0)
		if v {
			x = 1
		}
		b.buf = append(b.buf, x)
	})
}

func (b *testBuilder) empty() {
	b.field(tagEmpty, func() {})
}

func (b *testBuilder) byteField(v byte) {
	b.field(tagByte, func() { b.buf = append(b.buf, v) })
}

func (b *testBuilder) bytes() []byte {
	return b.buf
}

func TestLoad_V5Header(t *testing.T) {
	b := newTestBuilder(magicV5)
	b.record(recSymbol, 3, func(b *testBuilder) {
		b.u16(0)
		b.str("NUM")
		b.u16(RawKindTerminal)
	})

	raw, err := Load(b.bytes())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if raw.Version != "v5" {
		t.Fatalf("expected v5, got %v", raw.Version)
	}
	if len(raw.Symbols) != 1 || raw.Symbols[0].Name != "NUM" {
		t.Fatalf("unexpected symbols: %+v", raw.Symbols)
	}
}

func TestLoad_NotAGoldTable(t *testing.T) {
	b := newTestBuilder("not a gold table")
	_, err := Load(b.bytes())
	loadErr, ok := err.(*LoadError)
	if !ok || loadErr.Kind != KindNotAGoldTable {
		t.Fatalf("expected NotAGoldTable, got %v", err)
	}
}

func TestLoad_IndexOutOfOrder(t *testing.T) {
	b := newTestBuilder(magicV5)
	b.record(recSymbol, 3, func(b *testBuilder) {
		b.u16(1) // should be 0
		b.str("NUM")
		b.u16(RawKindTerminal)
	})
	_, err := Load(b.bytes())
	loadErr, ok := err.(*LoadError)
	if !ok || loadErr.Kind != KindIndexOutOfOrder {
		t.Fatalf("expected IndexOutOfOrder, got %v", err)
	}
}

func TestLoad_TruncatedRecordIsUnexpectedEOF(t *testing.T) {
	b := newTestBuilder(magicV5)
	// Declares 3 fields but only supplies 2.
	b.buf = append(b.buf, tagMultiRecord)
	b.u16raw(3)
	b.field(tagByte, func() { b.buf = append(b.buf, recSymbol) })
	b.u16(0)
	_, err := Load(b.bytes())
	loadErr, ok := err.(*LoadError)
	if !ok || loadErr.Kind != KindUnexpectedEOF {
		t.Fatalf("expected a fatal decode error for a truncated record, got %v", err)
	}
}

func TestLoad_UnknownTagIsSkippedWithWarning(t *testing.T) {
	b := newTestBuilder(magicV5)
	b.record('Z', 1, func(b *testBuilder) {
		b.empty()
	})
	b.record(recSymbol, 3, func(b *testBuilder) {
		b.u16(0)
		b.str("NUM")
		b.u16(RawKindTerminal)
	})

	raw, err := Load(b.bytes())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(raw.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", raw.Warnings)
	}
	if len(raw.Symbols) != 1 {
		t.Fatalf("expected the record after the unknown one to still decode")
	}
}

func TestLoad_CharsetEnumAndRange(t *testing.T) {
	b := newTestBuilder(magicV5)
	b.record(recCharsetEnum, 2, func(b *testBuilder) {
		b.u16(0)
		b.str("abc")
	})
	b.record(recCharsetRange, 8, func(b *testBuilder) {
		b.u16(1)
		b.u16(1252)
		b.u16(2)
		b.empty()
		b.u16('a')
		b.u16('z')
		b.u16('0')
		b.u16('9')
	})

	raw, err := Load(b.bytes())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(raw.Charsets) != 2 {
		t.Fatalf("expected 2 charsets, got %d", len(raw.Charsets))
	}
	if raw.Charsets[0].IsRange {
		t.Fatalf("charset 0 should be enumerated")
	}
	if string(raw.Charsets[0].Members) != "abc" {
		t.Fatalf("unexpected members: %v", raw.Charsets[0].Members)
	}
	if !raw.Charsets[1].IsRange || len(raw.Charsets[1].Ranges) != 2 {
		t.Fatalf("unexpected range charset: %+v", raw.Charsets[1])
	}
}

func TestLoad_DFAAndLRAndRule(t *testing.T) {
	b := newTestBuilder(magicV5)
	b.record(recSymbol, 3, func(b *testBuilder) {
		b.u16(0)
		b.str("NUM")
		b.u16(RawKindTerminal)
	})
	b.record(recCharsetEnum, 2, func(b *testBuilder) {
		b.u16(0)
		b.str("0123456789")
	})
	b.record(recDFAState, 7, func(b *testBuilder) {
		b.u16(0)
		b.boolean(false)
		b.u16(0)
		b.empty()
		b.u16(0) // charset index
		b.u16(1) // target state
		b.empty()
	})
	b.record(recDFAState, 4, func(b *testBuilder) {
		b.u16(1)
		b.boolean(true)
		b.u16(0)
		b.empty()
	})
	b.record(recRule, 4, func(b *testBuilder) {
		b.u16(0)
		b.u16(0)
		b.empty()
		b.u16(0)
	})
	b.record(recLRState, 6, func(b *testBuilder) {
		b.u16(0)
		b.empty()
		b.u16(0)
		b.u16(RawActionAccept)
		b.u16(0)
		b.empty()
	})
	b.record(recInitial, 2, func(b *testBuilder) {
		b.u16(0)
		b.u16(0)
	})

	raw, err := Load(b.bytes())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(raw.DFA) != 2 || !raw.DFA[1].IsFinal {
		t.Fatalf("unexpected DFA states: %+v", raw.DFA)
	}
	if len(raw.DFA[0].Edges) != 1 || raw.DFA[0].Edges[0].Target != 1 {
		t.Fatalf("unexpected edges: %+v", raw.DFA[0].Edges)
	}
	if len(raw.Rules) != 1 || len(raw.Rules[0].Consumes) != 1 {
		t.Fatalf("unexpected rules: %+v", raw.Rules)
	}
	if len(raw.LR) != 1 || len(raw.LR[0].Transitions) != 1 {
		t.Fatalf("unexpected LR states: %+v", raw.LR)
	}
	if raw.InitialDFAState != 0 || raw.InitialLRState != 0 {
		t.Fatalf("unexpected initial states: dfa=%d lr=%d", raw.InitialDFAState, raw.InitialLRState)
	}
}

func TestLoad_V1ParamsAndV5Property(t *testing.T) {
	b := newTestBuilder(magicV1)
	b.record(recParamsV1, 6, func(b *testBuilder) {
		b.str("Grammar")
		b.str("1.0")
		b.str("Someone")
		b.str("A test grammar")
		b.boolean(true)
		b.u16(0)
	})
	raw, err := Load(b.bytes())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if raw.V1Params == nil || raw.V1Params.Name != "Grammar" || !raw.V1Params.CaseSensitive {
		t.Fatalf("unexpected v1 params: %+v", raw.V1Params)
	}

	b2 := newTestBuilder(magicV5)
	b2.record(recPropertyV5, 3, func(b *testBuilder) {
		b.empty()
		b.str("Case Sensitive")
		b.str("True")
	})
	raw2, err := Load(b2.bytes())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if raw2.Properties["Case Sensitive"] != "True" {
		t.Fatalf("unexpected properties: %+v", raw2.Properties)
	}
}

func TestLoad_Group(t *testing.T) {
	b := newTestBuilder(magicV5)
	for i := 0; i < 4; i++ {
		b.record(recSymbol, 3, func(b *testBuilder) {
			b.u16(i)
			b.str("sym")
			b.u16(RawKindSkippable)
		})
	}
	b.record(recGroup, 9, func(b *testBuilder) {
		b.u16(0)
		b.str("Comment Block")
		b.u16(0)
		b.u16(1)
		b.u16(2)
		b.u16(RawAdvanceChar)
		b.u16(RawEndingClosed)
		b.empty()
		b.u16(0)
	})

	raw, err := Load(b.bytes())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(raw.Groups) != 1 || raw.Groups[0].Name != "Comment Block" {
		t.Fatalf("unexpected groups: %+v", raw.Groups)
	}
}

func TestLoad_UnknownActionType(t *testing.T) {
	b := newTestBuilder(magicV5)
	b.record(recLRState, 6, func(b *testBuilder) {
		b.u16(0)
		b.empty()
		b.u16(0)
		b.u16(99)
		b.u16(0)
		b.empty()
	})
	_, err := Load(b.bytes())
	loadErr, ok := err.(*LoadError)
	if !ok || loadErr.Kind != KindUnknownActionType {
		t.Fatalf("expected UnknownActionType, got %v", err)
	}
}
