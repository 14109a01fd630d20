package arm64

// Backend emits AArch64 code for the accumulator instructions.
// The accumulator is X0; X1 is clobbered by Double and Halve.
type Backend struct{}

func (Backend) Name() string { return "arm64" }

// Reset: MOVZ X0, #0
func (Backend) Reset() []byte {
	return Bytes(movz(Accumulator, 0))
}

// Return: RET X30
func (Backend) Return() []byte {
	return Bytes(Word(RET, Rn.Set(uint32(LinkReg))))
}

// Incr: ADDS X0, X0, #1
func (Backend) Incr() []byte {
	return Bytes(Word(ADDS, Rd.Set(uint32(Accumulator)), Rn.Set(uint32(Accumulator)), Imm12.Set(1)))
}

// Decr: SUBS X0, X0, #1
func (Backend) Decr() []byte {
	return Bytes(Word(SUBS, Rd.Set(uint32(Accumulator)), Rn.Set(uint32(Accumulator)), Imm12.Set(1)))
}

// Double: MOVZ X1, #2 ; MADD X0, X0, X1, XZR
func (Backend) Double() []byte {
	return Bytes(
		movz(Scratch, 2),
		Word(MADD,
			Rd.Set(uint32(Accumulator)),
			Rn.Set(uint32(Accumulator)),
			Rm.Set(uint32(Scratch)),
			Ra.Set(uint32(XZR))),
	)
}

// Halve: MOVZ X1, #2 ; SDIV X0, X0, X1
func (Backend) Halve() []byte {
	return Bytes(
		movz(Scratch, 2),
		Word(SDIV,
			Rd.Set(uint32(Accumulator)),
			Rn.Set(uint32(Accumulator)),
			Rm.Set(uint32(Scratch))),
	)
}

func movz(rd Reg, imm uint16) uint32 {
	return Word(MOVZ, Rd.Set(uint32(rd)), Imm16.Set(uint32(imm)), Hw.Set(0))
}
