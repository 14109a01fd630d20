package program

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Source is the parsed form of program text: the operator symbols in order.
type Source struct {
	Ops []string `parser:"@Op*"`
}

const operatorSymbols = "+-*/"

// One character per operator; everything else is noise and is elided.
var calcLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Op", Pattern: `[-+*/]`},
	{Name: "Noise", Pattern: `[^-+*/]+`},
})

var parser = participle.MustBuild[Source](
	participle.Lexer(calcLexer),
	participle.Elide("Noise"),
)

// Parse maps program text to a Program. Unrecognised characters are dropped
// without error; an error is only returned if the lexer itself fails.
func Parse(text string) (Program, error) {
	if !strings.ContainsAny(text, operatorSymbols) {
		return Program{}, nil
	}
	src, err := parser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("parse program: %w", err)
	}
	p := make(Program, 0, len(src.Ops))
	for _, sym := range src.Ops {
		op, ok := symbolOpcodes[sym]
		if !ok {
			continue
		}
		p = append(p, op)
	}
	return p, nil
}

// MustParse is like Parse but panics on error. Intended for tests and literals.
func MustParse(text string) Program {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}
