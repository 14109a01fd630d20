//go:build unix

package exec

import "golang.org/x/sys/unix"

// HostMapper maps memory with mmap(2) and changes it with mprotect(2).
type HostMapper struct{}

func (HostMapper) Map(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

func (HostMapper) Protect(b []byte, prot Prot) error {
	return unix.Mprotect(b, hostProt(prot))
}

func (HostMapper) Unmap(b []byte) error {
	return unix.Munmap(b)
}

func hostProt(p Prot) int {
	flags := unix.PROT_NONE
	if p&ProtRead != 0 {
		flags |= unix.PROT_READ
	}
	if p&ProtWrite != 0 {
		flags |= unix.PROT_WRITE
	}
	if p&ProtExec != 0 {
		flags |= unix.PROT_EXEC
	}
	return flags
}
