//go:build !unix

package exec

import (
	"fmt"
	"runtime"

	"github.com/colorfulnotion/calcjit/jiterrors"
)

// HostMapper has no implementation on this operating system.
type HostMapper struct{}

func (HostMapper) Map(n int) ([]byte, error) {
	return nil, fmt.Errorf("%w: executable mappings are not supported on %s", jiterrors.ErrAllocation, runtime.GOOS)
}

func (HostMapper) Protect(b []byte, prot Prot) error {
	return fmt.Errorf("%w: protections are not supported on %s", jiterrors.ErrPermission, runtime.GOOS)
}

func (HostMapper) Unmap(b []byte) error { return nil }
