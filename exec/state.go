// Package exec runs generated machine code in a private memory region.
//
// A region only ever moves forward through
//
//	Writable -> ReadOnly -> Executable
//
// and may be released from any of those states. It is never writable and
// executable at the same time.
package exec

import "fmt"

// State is the permission state of a Region.
type State int

const (
	Writable State = iota
	ReadOnly
	Executable
	Released
)

var stateNames = [...]string{
	Writable:   "writable",
	ReadOnly:   "read-only",
	Executable: "executable",
	Released:   "released",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Prot is a page protection, independent of the host's flag values.
type Prot int

const (
	ProtRead Prot = 1 << iota
	ProtWrite
	ProtExec
)

// prot is the protection a mapping holds in each live state.
func (s State) prot() Prot {
	switch s {
	case Writable:
		return ProtRead | ProtWrite
	case ReadOnly:
		return ProtRead
	case Executable:
		return ProtRead | ProtExec
	}
	return 0
}

func (p Prot) String() string {
	b := []byte("---")
	if p&ProtRead != 0 {
		b[0] = 'r'
	}
	if p&ProtWrite != 0 {
		b[1] = 'w'
	}
	if p&ProtExec != 0 {
		b[2] = 'x'
	}
	return string(b)
}
