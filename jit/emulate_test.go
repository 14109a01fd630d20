//go:build unicorn
// +build unicorn

package jit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"
	"golang.org/x/exp/rand"

	"github.com/colorfulnotion/calcjit/program"
)

const (
	emuCodeBase = 0x10000
	emuCodeSize = 0x10000
)

type emuTarget struct {
	arch, mode int
	result     int
}

var emuTargets = map[string]emuTarget{
	"amd64": {uc.ARCH_X86, uc.MODE_64, uc.X86_REG_RAX},
	"arm64": {uc.ARCH_ARM64, uc.MODE_ARM, uc.ARM64_REG_X0},
}

// emulate runs code up to (not including) its trailing Return and reads the
// accumulator, so no stack or link register needs to be set up.
func emulate(b Backend, code []byte) (int64, error) {
	target, ok := emuTargets[b.Name()]
	if !ok {
		return 0, fmt.Errorf("no emulator target for %s", b.Name())
	}
	mu, err := uc.NewUnicorn(target.arch, target.mode)
	if err != nil {
		return 0, fmt.Errorf("create unicorn: %w", err)
	}
	defer mu.Close()

	if err := mu.MemMap(emuCodeBase, emuCodeSize); err != nil {
		return 0, fmt.Errorf("map code: %w", err)
	}
	if err := mu.MemWrite(emuCodeBase, code); err != nil {
		return 0, fmt.Errorf("write code: %w", err)
	}
	if err := mu.MemProtect(emuCodeBase, emuCodeSize, uc.PROT_READ|uc.PROT_EXEC); err != nil {
		return 0, fmt.Errorf("protect code: %w", err)
	}
	// poison the accumulator so a missing Reset shows up
	if err := mu.RegWrite(target.result, 0xdeadbeef); err != nil {
		return 0, fmt.Errorf("poison accumulator: %w", err)
	}
	until := uint64(emuCodeBase + len(code) - len(b.Return()))
	if err := mu.Start(emuCodeBase, until); err != nil {
		return 0, fmt.Errorf("run: %w", err)
	}
	v, err := mu.RegRead(target.result)
	if err != nil {
		return 0, fmt.Errorf("read accumulator: %w", err)
	}
	return int64(v), nil
}

func TestEmulatedScenarios(t *testing.T) {
	cases := []struct {
		text string
		want int64
	}{
		{"", 0},
		{"+", 1},
		{"-", -1},
		{"++*", 4},
		{"--*", -4},
		{"+ + * - /", 1},
		{"-/", 0},
		{"---/", -1},
		{"+++/", 1},
	}
	for name, b := range Backends {
		for _, tc := range cases {
			t.Run(name+"/"+tc.text, func(t *testing.T) {
				got, err := emulate(b, Generate(b, program.MustParse(tc.text)))
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			})
		}
	}
}

func TestEmulatedMatchesInterpreter(t *testing.T) {
	r := rand.New(rand.NewSource(2024))
	for name, b := range Backends {
		checked := 0
		for checked < 200 {
			p := randomProgram(r, 1+r.Intn(40))
			if !program.Fits(p) {
				continue
			}
			got, err := emulate(b, Generate(b, p))
			require.NoError(t, err, "%s %v", name, p)
			require.Equal(t, program.Interpret(p), got, "%s %v", name, p)
			checked++
		}
	}
}
