package x86

// All emitters assume the accumulator lives in RAX, which is also where the
// caller reads the integer result from. RCX is the only scratch register;
// IMUL/IDIV additionally write RDX.

// Backend emits x86-64 code for the accumulator instructions.
type Backend struct{}

func (Backend) Name() string { return "amd64" }

// Reset: XOR RAX, RAX (REX.W + 31 /r)
func (Backend) Reset() []byte {
	return emitXorReg64(Accumulator, Accumulator)
}

// Return: RET (C3)
func (Backend) Return() []byte {
	return []byte{X86_OP_RET}
}

// Incr: ADD RAX, 1 (REX.W + 83 /0 ib)
func (Backend) Incr() []byte {
	return emitGroup1Imm8(X86_REG_ADD, Accumulator, X86_IMM_1)
}

// Decr: SUB RAX, 1 (REX.W + 83 /5 ib)
func (Backend) Decr() []byte {
	return emitGroup1Imm8(X86_REG_SUB, Accumulator, X86_IMM_1)
}

// Double: MOV RCX, 2 ; IMUL RCX  (RDX:RAX <- RAX * RCX)
func (Backend) Double() []byte {
	code := emitMovImm32(Scratch, X86_IMM_2)
	code = append(code, emitGroup3(X86_REG_IMUL, Scratch)...)
	return code
}

// Halve: MOV RCX, 2 ; CQO ; IDIV RCX  (RAX <- RDX:RAX / RCX, truncating)
func (Backend) Halve() []byte {
	code := emitMovImm32(Scratch, X86_IMM_2)
	code = append(code, emitCqo()...)
	code = append(code, emitGroup3(X86_REG_IDIV, Scratch)...)
	return code
}

// emitXorReg64: XOR dst, src (REX.W + 31 /r)
func emitXorReg64(dst, src X86Reg) []byte {
	return []byte{
		RexWide(src, dst),
		X86_OP_XOR_RM_R,
		ModRM(X86_MOD_REGISTER, src.RegBits, dst.RegBits),
	}
}

// emitGroup1Imm8: ADD/SUB/... r/m64, imm8 (REX.W + 83 /ext ib). imm is sign-extended by the CPU.
func emitGroup1Imm8(ext byte, dst X86Reg, imm int8) []byte {
	return []byte{
		Rex(true, false, false, dst.REXBit == 1),
		X86_OP_GROUP1_RM_IMM8,
		modRMDirect(ext, dst),
		byte(imm),
	}
}

// emitMovImm32: MOV r/m64, imm32 (REX.W + C7 /0 id), sign-extended to 64 bits.
func emitMovImm32(dst X86Reg, imm int32) []byte {
	code := []byte{
		Rex(true, false, false, dst.REXBit == 1),
		X86_OP_MOV_RM_IMM,
		modRMDirect(X86_REG_MOV, dst),
	}
	return append(code, encodeU32(uint32(imm))...)
}

// emitGroup3: MUL/IMUL/DIV/IDIV r/m64 (REX.W + F7 /ext). Operates on RDX:RAX.
func emitGroup3(ext byte, src X86Reg) []byte {
	return []byte{
		Rex(true, false, false, src.REXBit == 1),
		X86_OP_GROUP3_RM,
		modRMDirect(ext, src),
	}
}

// emitCqo: CQO (REX.W + 99), RDX:RAX <- sign-extend(RAX)
func emitCqo() []byte {
	return []byte{X86_REX_BASE | X86_REX_W, X86_OP_CQO}
}
