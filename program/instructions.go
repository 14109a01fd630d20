package program

import "fmt"

// Op is one accumulator instruction.
// All other packages should import and use these constants instead of defining their own.
type Op uint8

// Driver-only instructions. They never appear in program text.
const (
	Reset  Op = 0
	Return Op = 1
)

// Program-text instructions.
const (
	Incr   Op = 10 // '+'
	Decr   Op = 11 // '-'
	Double Op = 12 // '*'
	Halve  Op = 13 // '/'
)

var opcodeNames = map[Op]string{
	Reset:  "RESET",
	Return: "RETURN",
	Incr:   "INCR",
	Decr:   "DECR",
	Double: "DOUBLE",
	Halve:  "HALVE",
}

var opcodeSymbols = map[Op]string{
	Incr:   "+",
	Decr:   "-",
	Double: "*",
	Halve:  "/",
}

var symbolOpcodes = map[string]Op{
	"+": Incr,
	"-": Decr,
	"*": Double,
	"/": Halve,
}

// UserOps lists the instructions that may appear in program text, in symbol order.
var UserOps = []Op{Incr, Decr, Double, Halve}

func (op Op) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OPCODE %d", op)
}

// Symbol returns the program-text character for op, or "" for driver-only ops.
func (op Op) Symbol() string {
	return opcodeSymbols[op]
}

// UserVisible reports whether op can be written in program text.
func (op Op) UserVisible() bool {
	_, ok := opcodeSymbols[op]
	return ok
}

// Valid reports whether op is one of the six known instructions.
func (op Op) Valid() bool {
	_, ok := opcodeNames[op]
	return ok
}
