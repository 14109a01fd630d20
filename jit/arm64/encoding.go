// Package arm64 encodes AArch64 instruction words and provides the AArch64 backend.
//
// Every instruction is a fixed 32-bit word built from a template (the opcode
// bits with all operand fields zero) plus operand fields placed at fixed bit
// offsets. Words are stored little-endian.
package arm64

import "encoding/binary"

// BitField names an operand slot of an instruction word.
type BitField struct {
	Name  string
	Shift uint8
	Width uint8
}

// Field is a value bound to a BitField, ready to be merged into a word.
type Field struct {
	BitField
	Value uint32
}

func (f BitField) mask() uint32 { return uint32(1)<<f.Width - 1 }

// Set binds v to the field. Bits beyond the field width are dropped when the word is built.
func (f BitField) Set(v uint32) Field { return Field{f, v} }

// Get extracts the field from w.
func (f BitField) Get(w uint32) uint32 { return (w >> f.Shift) & f.mask() }

// Operand slots shared by the data-processing encodings used here.
var (
	Rd    = BitField{"Rd", 0, 5}
	Rn    = BitField{"Rn", 5, 5}
	Ra    = BitField{"Ra", 10, 5}
	Rm    = BitField{"Rm", 16, 5}
	Imm12 = BitField{"imm12", 10, 12}
	Imm16 = BitField{"imm16", 5, 16}
	Hw    = BitField{"hw", 21, 2}
)

// Instruction templates, 64-bit (sf=1) forms.
const (
	MOVZ uint32 = 0xD2800000 // MOVZ Xd, #imm16, LSL #(hw*16)
	ADDS uint32 = 0xB1000000 // ADDS Xd, Xn, #imm12
	SUBS uint32 = 0xF1000000 // SUBS Xd, Xn, #imm12
	MADD uint32 = 0x9B000000 // MADD Xd, Xn, Xm, Xa
	SDIV uint32 = 0x9AC00C00 // SDIV Xd, Xn, Xm
	RET  uint32 = 0xD65F0000 // RET Xn
)

// Word merges fields into template. Fields are truncated to their width.
func Word(template uint32, fields ...Field) uint32 {
	w := template
	for _, f := range fields {
		w |= (f.Value & f.mask()) << f.Shift
	}
	return w
}

// Bytes serializes words in little-endian order.
func Bytes(words ...uint32) []byte {
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}
	return out
}
