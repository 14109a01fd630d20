package program

import (
	"strings"
)

// Program is an ordered instruction sequence as produced by Parse.
// The empty program is valid and evaluates to 0.
type Program []Op

func (p Program) String() string {
	names := make([]string, len(p))
	for i, op := range p {
		names[i] = op.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Text renders p back into program text. Driver-only ops have no symbol and are skipped.
func (p Program) Text() string {
	var sb strings.Builder
	for _, op := range p {
		sb.WriteString(op.Symbol())
	}
	return sb.String()
}

// Interpret is the reference evaluator used to cross-check generated code.
// Arithmetic wraps in int64; Halve truncates toward zero.
func Interpret(p Program) int64 {
	var accum int64
	for _, op := range p {
		switch op {
		case Reset:
			accum = 0
		case Return:
			return accum
		case Incr:
			accum++
		case Decr:
			accum--
		case Double:
			accum *= 2
		case Halve:
			accum /= 2
		}
	}
	return accum
}

// Fits reports whether evaluating p never leaves the int64 range, i.e. whether
// Interpret's result is exact and comparable against native execution.
func Fits(p Program) bool {
	const (
		maxInt = int64(^uint64(0) >> 1)
		minInt = -maxInt - 1
	)
	var accum int64
	for _, op := range p {
		switch op {
		case Reset:
			accum = 0
		case Return:
			return true
		case Incr:
			if accum == maxInt {
				return false
			}
			accum++
		case Decr:
			if accum == minInt {
				return false
			}
			accum--
		case Double:
			if accum > maxInt/2 || accum < minInt/2 {
				return false
			}
			accum *= 2
		case Halve:
			accum /= 2
		}
	}
	return true
}
