package x86

import "encoding/binary"

// BitField names a sub-field of a prefix or operand byte.
type BitField struct {
	Name  string
	Shift uint8
	Width uint8
}

// Put places v into the field. Bits of v beyond the field width are dropped.
func (f BitField) Put(v byte) byte {
	mask := byte(1)<<f.Width - 1
	return (v & mask) << f.Shift
}

// Get extracts the field from b.
func (f BitField) Get(b byte) byte {
	mask := byte(1)<<f.Width - 1
	return (b >> f.Shift) & mask
}

// Format of the REX prefix byte:
//
//	0100 | W | R | X | B
var (
	RexW = BitField{"W", 3, 1} // 64-bit operand size
	RexR = BitField{"R", 2, 1} // extension of ModRM.reg
	RexX = BitField{"X", 1, 1} // extension of SIB.index
	RexB = BitField{"B", 0, 1} // extension of ModRM.rm or SIB.base
)

// ModRM byte fields: mod(2) | reg(3) | rm(3).
// reg holds either a register operand or an opcode extension (the /digit of the reference tables).
var (
	ModRMMod = BitField{"mod", 6, 2}
	ModRMReg = BitField{"reg", 3, 3}
	ModRMRM  = BitField{"rm", 0, 3}
)

func bit(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// Rex builds a REX prefix: 0100WRXB
func Rex(w, r, x, b bool) byte {
	return X86_REX_BASE | RexW.Put(bit(w)) | RexR.Put(bit(r)) | RexX.Put(bit(x)) | RexB.Put(bit(b))
}

// RexWide returns the REX prefix for a 64-bit operation between reg and rm.
func RexWide(reg, rm X86Reg) byte {
	return Rex(true, reg.REXBit == 1, false, rm.REXBit == 1)
}

// ModRM packs mod, reg and rm. Out-of-range values are truncated to the field width.
func ModRM(mod, reg, rm byte) byte {
	return ModRMMod.Put(mod) | ModRMReg.Put(reg) | ModRMRM.Put(rm)
}

// modRMDirect is the register-direct form (mod=11) with an opcode extension in reg.
func modRMDirect(ext byte, rm X86Reg) byte {
	return ModRM(X86_MOD_REGISTER, ext, rm.RegBits)
}

func encodeU32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}
