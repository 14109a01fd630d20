package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/colorfulnotion/calcjit/jit"
	"github.com/colorfulnotion/calcjit/program"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

var errListingChanged = errors.New("listing differs from golden file")

func newExplainCmd(stdout io.Writer) *cobra.Command {
	var (
		arch    string
		asJSON  bool
		against string
	)
	cmd := &cobra.Command{
		Use:   "explain [program...]",
		Short: "Show the code generated for each instruction without running it",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, ok := jit.Backends[arch]
			if !ok {
				return fmt.Errorf("unknown backend %q (have %s)", arch, strings.Join(backendNames(), ", "))
			}
			p, err := program.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !asJSON && against == "" {
				fmt.Fprint(stdout, explain(b, p).String())
				return nil
			}
			got, err := listingJSON(b, p)
			if err != nil {
				return err
			}
			if against == "" {
				fmt.Fprintln(stdout, string(got))
				return nil
			}
			want, err := os.ReadFile(against)
			if err != nil {
				return err
			}
			diff, changed, err := diffListing(want, got)
			if err != nil {
				return fmt.Errorf("compare with %s: %w", against, err)
			}
			if changed {
				fmt.Fprintln(stdout, diff)
				return fmt.Errorf("%s: %w", against, errListingChanged)
			}
			fmt.Fprintf(stdout, "%s matches\n", against)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the listing as JSON")
	cmd.Flags().StringVar(&against, "against", "", "compare the JSON listing with a golden file and print the differences")
	cmd.Flags().StringVar(&arch, "arch", jit.Native.Name(), "backend to generate for ("+strings.Join(backendNames(), ", ")+")")
	return cmd
}

func backendNames() []string {
	names := make([]string, 0, len(jit.Backends))
	for name := range jit.Backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// explain renders the listing of p as a tree with one branch per op, keyed
// by its offset in the generated code.
func explain(b jit.Backend, p program.Program) treeprint.Tree {
	chunks := jit.Listing(b, p)
	size := 0
	for _, c := range chunks {
		size += len(c.Code)
	}

	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("%s %s (%d ops, %d bytes)", b.Name(), p, len(p), size))
	offset := 0
	for _, c := range chunks {
		label := c.Op.String()
		if sym := c.Op.Symbol(); sym != "" {
			label += " '" + sym + "'"
		}
		branch := tree.AddMetaBranch(fmt.Sprintf("%04x", offset), label)
		branch.AddNode(fmt.Sprintf("% x", c.Code))
		offset += len(c.Code)
	}
	return tree
}

type chunkRecord struct {
	Offset int    `json:"offset"`
	Op     string `json:"op"`
	Code   string `json:"code"`
}

type listingRecord struct {
	Arch    string        `json:"arch"`
	Program string        `json:"program"`
	Bytes   int           `json:"bytes"`
	Chunks  []chunkRecord `json:"chunks"`
}

func listingJSON(b jit.Backend, p program.Program) ([]byte, error) {
	rec := listingRecord{Arch: b.Name(), Program: p.Text()}
	for _, c := range jit.Listing(b, p) {
		rec.Chunks = append(rec.Chunks, chunkRecord{Offset: rec.Bytes, Op: c.Op.String(), Code: fmt.Sprintf("%x", c.Code)})
		rec.Bytes += len(c.Code)
	}
	return json.MarshalIndent(rec, "", "  ")
}

// diffListing compares two JSON listings and renders the changes from want to got.
func diffListing(want, got []byte) (string, bool, error) {
	delta, err := gojsondiff.New().Compare(want, got)
	if err != nil {
		return "", false, err
	}
	if !delta.Modified() {
		return "", false, nil
	}
	var left interface{}
	if err := json.Unmarshal(want, &left); err != nil {
		return "", false, err
	}
	out, err := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{ShowArrayIndex: true}).Format(delta)
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}
