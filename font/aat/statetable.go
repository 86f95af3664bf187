// Package aat implements the Apple Advanced Typography state-machine
// tables: the generic state-table runner (used by both "morx" and the
// AAT-only parts of feature selection) plus the "morx" and "kern"
// table decoders built on top of it.
package aat

import (
	"sap/font"
	"sap/font/opentype/classdef"
	"sap/font/sfntio"
)

// Class codes reserved by every AAT state table, regardless of the
// font's own glyph classes (which start at 4).
const (
	ClassEndOfText    = 0
	ClassOutOfBounds  = 1
	ClassDeletedGlyph = 2
	ClassEndOfLine    = 3
)

// FlagDontAdvance means re-process the current glyph using the new
// state instead of advancing the glyph pointer.
const FlagDontAdvance = 0x4000

// Direction selects the order glyphs are fed into the state machine.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// Entry is one row of the entry table: the state to transition to,
// per-entry flags, and up to two extra 16-bit fields whose meaning
// depends on the subtable kind (morx ligature/insertion/contextual
// subtables all carry extra fields here).
type Entry struct {
	NextState uint16
	Flags     uint16
	Extra     [2]uint16
}

// StateTable is a parsed AAT extended ("STX") state table: a glyph
// class map, a state array (state x class -> entry index) and the
// entry array itself.
type StateTable struct {
	classOf    classdef.Table
	NumClasses int
	states     []byte // nStates * nClasses uint16 cells
	Entries    []Entry
}

// ClassOf maps a glyph to its state-table class, defaulting reserved
// class 1 (OUT_OF_BOUNDS) for glyphs the class table has no entry for.
func (st *StateTable) ClassOf(gid font.GlyphId) uint16 {
	if c, ok := st.classOf[gid]; ok {
		return c
	}
	return ClassOutOfBounds
}

func (st *StateTable) entryIndexAt(state int, class uint16) uint16 {
	off := (state*st.NumClasses + int(class)) * 2
	v, _ := sfntio.Peek16(st.states[off:])
	return v
}

// ReadExtended decodes an "STX" extended state table: nClasses(u32),
// classTableOffset(u32), stateArrayOffset(u32), entryTableOffset(u32),
// all relative to the start of data. entryExtraWords is the number of
// extra uint16 fields each subtable kind's entry table carries beyond
// (nextState, flags).
func ReadExtended(data []byte, entryExtraWords int) (*StateTable, error) {
	if len(data) < 16 {
		return nil, &font.InvalidFontError{SubSystem: "font/aat", Reason: "state table too short"}
	}
	nClasses, err := sfntio.Peek32(data)
	if err != nil {
		return nil, err
	}
	classTableOff, _ := sfntio.Peek32(data[4:])
	stateArrayOff, _ := sfntio.Peek32(data[8:])
	entryTableOff, _ := sfntio.Peek32(data[12:])

	if int(classTableOff) >= len(data) || int(stateArrayOff) > int(entryTableOff) || int(entryTableOff) > len(data) {
		return nil, &font.InvalidFontError{SubSystem: "font/aat", Reason: "malformed state table offsets"}
	}

	cls, err := classdef.Read(data[classTableOff:])
	if err != nil {
		return nil, err
	}

	st := &StateTable{
		classOf:    cls,
		NumClasses: int(nClasses),
		states:     data[stateArrayOff:entryTableOff],
	}

	entryBytes := data[entryTableOff:]
	entrySize := 4 + 2*entryExtraWords
	if entrySize <= 0 {
		return nil, &font.InvalidFontError{SubSystem: "font/aat", Reason: "invalid entry size"}
	}
	numEntries := len(entryBytes) / entrySize
	st.Entries = make([]Entry, numEntries)
	for i := 0; i < numEntries; i++ {
		base := i * entrySize
		nextState, _ := sfntio.Peek16(entryBytes[base:])
		flags, _ := sfntio.Peek16(entryBytes[base+2:])
		e := Entry{NextState: nextState, Flags: flags}
		for j := 0; j < entryExtraWords && j < 2; j++ {
			e.Extra[j], _ = sfntio.Peek16(entryBytes[base+4+2*j:])
		}
		st.Entries[i] = e
	}

	return st, nil
}

// Action is invoked once per glyph visited by Run, before the glyph
// pointer advances (or re-visits, under FlagDontAdvance).
type Action func(i int, flags uint16, extra [2]uint16)

// Run executes the generic AAT state machine of §4.A.4 over glyphs,
// in the given direction, invoking action at each step. classes[i] is
// the state-table class of glyphs[i], precomputed by the caller via
// ClassOf so Run itself never touches glyph ids.
func Run(st *StateTable, classes []uint16, dir Direction, action Action) {
	state := 0
	n := len(classes)
	i := 0
	if dir == Reverse {
		i = n - 1
	}

	for i >= 0 && i < n {
		class := classes[i]
		entryIdx := st.entryIndexAt(state, class)
		if int(entryIdx) >= len(st.Entries) {
			break
		}
		entry := st.Entries[entryIdx]

		action(i, entry.Flags, entry.Extra)

		if entry.Flags&FlagDontAdvance == 0 {
			if dir == Reverse {
				i--
			} else {
				i++
			}
		}
		state = int(entry.NextState)
	}
}
