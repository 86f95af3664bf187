// Package gtab decodes the OpenType GSUB/GPOS lookup formats named in
// spec §4.A.6: GPOS single/pair/contextual/chained-context, and GSUB
// single substitution (needed so font.go can apply GSUB before GPOS per
// spec §5's operation order).
package gtab

import "sap/font/sfntio"

// ValueRecord is a GPOS adjustment: which of its four fields are
// present is determined by the format bitfield the lookup carries, the
// same bitfield this engine reads once per lookup rather than once per
// record.
type ValueRecord struct {
	XPlacement, YPlacement int16
	XAdvance, YAdvance     int16
}

// Add combines two adjustments by field-wise integer addition, the rule
// spec §4.A.6 gives for adjustments from multiple lookups landing on the
// same glyph.
func (v ValueRecord) Add(o ValueRecord) ValueRecord {
	return ValueRecord{
		XPlacement: v.XPlacement + o.XPlacement,
		YPlacement: v.YPlacement + o.YPlacement,
		XAdvance:   v.XAdvance + o.XAdvance,
		YAdvance:   v.YAdvance + o.YAdvance,
	}
}

const (
	vfXPlacement = 0x0001
	vfYPlacement = 0x0002
	vfXAdvance   = 0x0004
	vfYAdvance   = 0x0008
	vfXPlaDevice = 0x0010
	vfYPlaDevice = 0x0020
	vfXAdvDevice = 0x0040
	vfYAdvDevice = 0x0080
)

// valueRecordLen returns the encoded byte length of a value record
// under the given format bitfield (device-table offsets count as two
// bytes each here; this engine never resolves them).
func valueRecordLen(format uint16) int {
	n := 0
	for _, bit := range []uint16{vfXPlacement, vfYPlacement, vfXAdvance, vfYAdvance, vfXPlaDevice, vfYPlaDevice, vfXAdvDevice, vfYAdvDevice} {
		if format&bit != 0 {
			n += 2
		}
	}
	return n
}

// readValueRecord decodes a value record of the given format starting
// at data[0], returning the record and the number of bytes consumed.
func readValueRecord(data []byte, format uint16) (ValueRecord, int) {
	var rec ValueRecord
	pos := 0
	next := func() int16 {
		v, _ := sfntio.Peek16(data[pos:])
		pos += 2
		return int16(v)
	}
	if format&vfXPlacement != 0 {
		rec.XPlacement = next()
	}
	if format&vfYPlacement != 0 {
		rec.YPlacement = next()
	}
	if format&vfXAdvance != 0 {
		rec.XAdvance = next()
	}
	if format&vfYAdvance != 0 {
		rec.YAdvance = next()
	}
	for _, bit := range []uint16{vfXPlaDevice, vfYPlaDevice, vfXAdvDevice, vfYAdvDevice} {
		if format&bit != 0 {
			pos += 2
		}
	}
	return rec, pos
}
