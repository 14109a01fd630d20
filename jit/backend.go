// Package jit turns accumulator programs into native machine code.
package jit

import (
	"fmt"

	"github.com/colorfulnotion/calcjit/jit/arm64"
	"github.com/colorfulnotion/calcjit/jit/x86"
	"github.com/colorfulnotion/calcjit/log"
	"github.com/colorfulnotion/calcjit/program"
)

// Backend emits the machine code for each instruction of one architecture.
// Every method returns a fresh slice that the caller may keep or modify.
type Backend interface {
	Name() string
	Reset() []byte
	Return() []byte
	Incr() []byte
	Decr() []byte
	Double() []byte
	Halve() []byte
}

var (
	_ Backend = x86.Backend{}
	_ Backend = arm64.Backend{}
)

// Backends lists every backend by name, independent of the host.
var Backends = map[string]Backend{
	x86.Backend{}.Name():   x86.Backend{},
	arm64.Backend{}.Name(): arm64.Backend{},
}

// Emit returns the code for a single op. An op without an emitter is a
// programming error and panics.
func Emit(b Backend, op program.Op) []byte {
	switch op {
	case program.Reset:
		return b.Reset()
	case program.Return:
		return b.Return()
	case program.Incr:
		return b.Incr()
	case program.Decr:
		return b.Decr()
	case program.Double:
		return b.Double()
	case program.Halve:
		return b.Halve()
	}
	panic(fmt.Sprintf("jit: no %s emitter for %s", b.Name(), op))
}

// Chunk is the code emitted for one op of a listing.
type Chunk struct {
	Op   program.Op
	Code []byte
}

// Listing returns the code of p op by op: the Reset prologue, the body, and
// the Return epilogue. Concatenating the chunks gives Generate(b, p).
func Listing(b Backend, p program.Program) []Chunk {
	chunks := make([]Chunk, 0, len(p)+2)
	chunks = append(chunks, Chunk{program.Reset, Emit(b, program.Reset)})
	for _, op := range p {
		chunks = append(chunks, Chunk{op, Emit(b, op)})
	}
	chunks = append(chunks, Chunk{program.Return, Emit(b, program.Return)})
	return chunks
}

// Generate emits the complete function for p.
func Generate(b Backend, p program.Program) []byte {
	var code []byte
	for _, c := range Listing(b, p) {
		code = append(code, c.Code...)
	}
	return code
}

// Compile generates p for the host architecture.
func Compile(p program.Program) []byte {
	code := Generate(Native, p)
	log.Debug(log.JitMonitoring, "compiled program", "arch", Native.Name(), "ops", len(p), "bytes", len(code))
	log.Trace(log.JitMonitoring, "compiled code", "program", p.String(), "code", fmt.Sprintf("% x", code))
	return code
}
