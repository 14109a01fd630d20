package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/colorfulnotion/calcjit/log"
	"github.com/dop251/goja"
	"github.com/spf13/cobra"
)

func newReplCmd(stdout, stderr io.Writer, opts *runOptions) *cobra.Command {
	var (
		historyFile string
		js          bool
	)
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read programs line by line and run each one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "> ",
				HistoryFile:     historyFile,
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdout:          stdout,
				Stderr:          stderr,
			})
			if err != nil {
				return fmt.Errorf("start readline: %w", err)
			}
			defer rl.Close()

			handle := func(line string) bool { return replLine(stdout, stderr, line, *opts) }
			if js {
				vm := newScriptVM(stdout)
				handle = func(line string) bool { return replJSLine(vm, stdout, stderr, line) }
			}
			fmt.Fprintln(stdout, "calcjit repl. Type 'exit' to quit.")
			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					if line == "" {
						return nil
					}
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				if !handle(line) {
					return nil
				}
			}
		},
	}
	cmd.Flags().BoolVar(&js, "js", false, "evaluate lines as JavaScript (see calcjit script)")
	cmd.Flags().StringVar(&historyFile, "history", filepath.Join(os.TempDir(), "calcjit_history.txt"), "history file")
	return cmd
}

// replLine handles one input line and reports whether the session continues.
// Failed programs are reported and do not end the session.
func replLine(stdout, stderr io.Writer, line string, opts runOptions) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return true
	case "exit", "quit":
		return false
	}
	if err := runProgram(stdout, stderr, line, opts); err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	log.Trace(log.CliMonitoring, "repl line", "line", line)
	return true
}

// replJSLine evaluates one line of JavaScript, printing the value or the error.
func replJSLine(vm *goja.Runtime, stdout, stderr io.Writer, line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return true
	case "exit", "quit":
		return false
	}
	v, err := vm.RunString(line)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return true
	}
	if v != nil && !goja.IsUndefined(v) {
		fmt.Fprintln(stdout, v)
	}
	return true
}
