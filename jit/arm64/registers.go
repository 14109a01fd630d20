package arm64

// Reg is a general-purpose register number as it appears in an Rd/Rn/Rm/Ra slot.
type Reg uint32

const (
	X0  Reg = 0
	X1  Reg = 1
	X30 Reg = 30 // link register
	XZR Reg = 31 // zero register in data-processing slots
)

var (
	Accumulator = X0 // also the integer return register
	Scratch     = X1
	LinkReg     = X30
)

var regNames = map[Reg]string{X0: "x0", X1: "x1", X30: "x30", XZR: "xzr"}

func (r Reg) String() string {
	if name, ok := regNames[r]; ok {
		return name
	}
	return "x?"
}
