package exec

import (
	"fmt"

	"github.com/colorfulnotion/calcjit/jiterrors"
	"github.com/colorfulnotion/calcjit/log"
)

// Region is an anonymous mapping holding generated code.
// A Region is owned by one caller and is not safe for concurrent use.
type Region struct {
	m     Mapper
	mem   []byte
	state State

	// OnTransition, if set, is called after every state change.
	OnTransition func(from, to State)
}

// NewRegion maps a writable region of at least n bytes.
func NewRegion(m Mapper, n int) (*Region, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: cannot map %d bytes", jiterrors.ErrAllocation, n)
	}
	mem, err := m.Map(n)
	if err != nil {
		return nil, fmt.Errorf("%w: map %d bytes: %w", jiterrors.ErrAllocation, n, err)
	}
	if len(mem) < n {
		if uerr := m.Unmap(mem); uerr != nil {
			log.Warn(log.ExecMonitoring, "unmap short region", "err", uerr)
		}
		return nil, fmt.Errorf("%w: mapped %d of %d bytes", jiterrors.ErrAllocation, len(mem), n)
	}
	log.Trace(log.ExecMonitoring, "mapped region", "bytes", len(mem))
	return &Region{m: m, mem: mem, state: Writable}, nil
}

// State is where the region is in its lifecycle.
func (r *Region) State() State { return r.state }

// Len is the mapped size, which may exceed the requested size.
func (r *Region) Len() int { return len(r.mem) }

// Write copies code to the start of the region.
func (r *Region) Write(code []byte) error {
	if r.state != Writable {
		return fmt.Errorf("%w: write to %s region", jiterrors.ErrRegionState, r.state)
	}
	if len(code) > len(r.mem) {
		return fmt.Errorf("%w: %d bytes do not fit a %d byte region", jiterrors.ErrAllocation, len(code), len(r.mem))
	}
	copy(r.mem, code)
	return nil
}

// Seal makes the region read-only.
func (r *Region) Seal() error {
	return r.protect(Writable, ReadOnly)
}

// MakeExecutable makes a sealed region executable.
func (r *Region) MakeExecutable() error {
	return r.protect(ReadOnly, Executable)
}

func (r *Region) protect(from, to State) error {
	if r.state != from {
		return fmt.Errorf("%w: %s -> %s from %s region", jiterrors.ErrRegionState, from, to, r.state)
	}
	if err := r.m.Protect(r.mem, to.prot()); err != nil {
		return fmt.Errorf("%w: mprotect %s: %w", jiterrors.ErrPermission, to.prot(), err)
	}
	r.transition(to)
	return nil
}

// Release unmaps the region. Releasing twice is a no-op. The region is
// Released afterwards even if the host reports an error.
func (r *Region) Release() error {
	if r.state == Released {
		return nil
	}
	mem := r.mem
	r.mem = nil
	r.transition(Released)
	if err := r.m.Unmap(mem); err != nil {
		return fmt.Errorf("munmap %d bytes: %w", len(mem), err)
	}
	return nil
}

func (r *Region) transition(to State) {
	from := r.state
	r.state = to
	log.Trace(log.ExecMonitoring, "region transition", "from", from, "to", to)
	if r.OnTransition != nil {
		r.OnTransition(from, to)
	}
}

// entry returns the first byte of an executable region.
func (r *Region) entry() (*byte, error) {
	if r.state != Executable {
		return nil, fmt.Errorf("%w: call into %s region", jiterrors.ErrRegionState, r.state)
	}
	return &r.mem[0], nil
}
