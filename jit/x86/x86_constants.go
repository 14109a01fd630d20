// Package x86 provides x86-64 machine code generation constants and the x86-64 backend.
package x86

// ================================================================================================
// X86 Instruction Constants
// ================================================================================================

// REX Prefix Constants
const (
	X86_REX_BASE = 0x40 // Base value for REX prefix (fixed 0100 high nibble)
	X86_REX_W    = 0x08 // REX.W - 64-bit operand size
)

// ModRM Mode Constants
const (
	X86_MOD_REGISTER = 0x03 // reg
)

// Primary Opcodes
const (
	X86_OP_XOR_RM_R       = 0x31 // XOR r/m, r
	X86_OP_GROUP1_RM_IMM8 = 0x83 // Group 1 operations with imm8 (sign-extended)
	X86_OP_MOV_RM_IMM     = 0xC7 // MOV r/m, imm32
	X86_OP_RET            = 0xC3 // RET
	X86_OP_GROUP3_RM      = 0xF7 // Group 3 unary operations
	X86_OP_CQO            = 0x99 // CDQ/CQO (with REX.W: RDX:RAX <- sign-extend RAX)
)

// ModRM reg field constants for opcodes with sub-operations
const (
	X86_REG_ADD = 0 // ADD (for 0x83 opcode)
	X86_REG_SUB = 5 // SUB (for 0x83 opcode)
	X86_REG_MOV = 0 // MOV (for 0xC7 opcode)
)

// Unary operation reg field constants (for 0xF7 opcode)
const (
	X86_REG_IMUL = 5 // IMUL (for 0xF7 opcode)
	X86_REG_IDIV = 7 // IDIV (for 0xF7 opcode)
)

// Special immediate values
const (
	X86_IMM_1 = 0x01
	X86_IMM_2 = 0x02
)
