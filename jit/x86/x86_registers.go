package x86

// X86Reg represents an x86-64 register with encoding information
type X86Reg struct {
	Name    string
	RegBits byte // 3-bit code for ModRM/SIB
	REXBit  byte // 1 if register index >= 8
}

// Standard x86-64 register definitions
var (
	RAX = X86Reg{"rax", 0, 0} // Accumulator and return value register
	RCX = X86Reg{"rcx", 1, 0} // Scratch operand for IMUL/IDIV
	RDX = X86Reg{"rdx", 2, 0} // High half of the IMUL/IDIV pair
)

// Calling-convention constants of the backend.
var (
	Accumulator = RAX
	Scratch     = RCX
)
