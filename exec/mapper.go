package exec

// Mapper provides anonymous memory mappings and permission changes.
// Map must return a private mapping of at least n bytes that is readable and
// writable and not executable.
type Mapper interface {
	Map(n int) ([]byte, error)
	Protect(b []byte, prot Prot) error
	Unmap(b []byte) error
}
