package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dop251/goja"
	"github.com/spf13/cobra"

	"github.com/colorfulnotion/calcjit/exec"
	"github.com/colorfulnotion/calcjit/jit"
	"github.com/colorfulnotion/calcjit/log"
	"github.com/colorfulnotion/calcjit/program"
)

// newScriptVM returns a JavaScript runtime with the calculator bound as
// globals:
//
//	run(text)        compile and execute natively, returns the result
//	interpret(text)  evaluate with the reference interpreter
//	compile(text)    generated code as a hex string
//	print(...)       write values to stdout
func newScriptVM(stdout io.Writer) *goja.Runtime {
	vm := goja.New()
	vm.Set("run", func(text string) (int64, error) {
		p, err := program.Parse(text)
		if err != nil {
			return 0, err
		}
		return exec.Execute(jit.Compile(p))
	})
	vm.Set("interpret", func(text string) (int64, error) {
		p, err := program.Parse(text)
		if err != nil {
			return 0, err
		}
		return program.Interpret(p), nil
	})
	vm.Set("compile", func(text string) (string, error) {
		p, err := program.Parse(text)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%x", jit.Compile(p)), nil
	})
	vm.Set("print", func(args ...goja.Value) {
		for i, arg := range args {
			if i > 0 {
				fmt.Fprint(stdout, " ")
			}
			fmt.Fprint(stdout, arg.Export())
		}
		fmt.Fprintln(stdout)
	})
	return vm
}

func newScriptCmd(stdout io.Writer) *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "script [file.js]",
		Short: "Run a JavaScript file with run(), interpret() and compile() bound to the calculator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name := expr, "<expr>"
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				src, name = string(data), args[0]
			}
			if src == "" {
				return fmt.Errorf("script: need a file or -e")
			}
			v, err := newScriptVM(stdout).RunScript(name, src)
			if err != nil {
				return fmt.Errorf("script %s: %w", name, err)
			}
			if v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
				fmt.Fprintln(stdout, v.Export())
			}
			log.Debug(log.CliMonitoring, "script done", "name", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&expr, "eval", "e", "", "script source to run instead of a file")
	return cmd
}
