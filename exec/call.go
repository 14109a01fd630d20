package exec

import "unsafe"

type nativeFunc func() int64

// invoke calls the code at entry as a Go function with no arguments and one
// int64 result, which the generated code leaves in the first integer result
// register (RAX on amd64, X0 on arm64).
//
// The code must be a complete function for the host architecture that ends
// in a return and clobbers only caller-saved registers. Anything else is
// undefined behavior. This is the only place the package uses unsafe.
func invoke(entry *byte) int64 {
	// A func value points at a closure record whose first word is the code address.
	code := unsafe.Pointer(entry)
	closure := &code
	fn := *(*nativeFunc)(unsafe.Pointer(&closure))
	return fn()
}
