// calcjit compiles accumulator programs to native code and runs them.
//
//	calcjit + + '*' - /
//	calcjit --check -/ +
//	calcjit explain --arch arm64 '++*'
//	calcjit repl
//	calcjit bench --chart bench.html
//	calcjit script -e 'run("++*") === interpret("++*")'
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/colorfulnotion/calcjit/exec"
	"github.com/colorfulnotion/calcjit/jit"
	"github.com/colorfulnotion/calcjit/jiterrors"
	"github.com/colorfulnotion/calcjit/log"
	"github.com/colorfulnotion/calcjit/program"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

const envLogLevel = "CALCJIT_LOG_LEVEL"

// errReported marks failures whose message has already been written.
var errReported = errors.New("reported")

type runOptions struct {
	dump  bool
	check bool
}

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(stdout, stderr io.Writer, args []string) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(programArgs(args))
	return cmd.Execute()
}

// isProgramText reports whether arg is made only of op symbols and blanks.
func isProgramText(arg string) bool {
	return arg != "" && strings.Trim(arg, "+-*/ \t\n") == ""
}

// programArgs moves program text that would parse as a flag, such as "-*",
// behind a "--" so that "calcjit -* +" runs like "calcjit -- -* +". Once one
// such argument is seen every program-text argument moves, keeping their
// order. Arguments after an existing "--" are left alone.
func programArgs(args []string) []string {
	end := len(args)
	for i, a := range args {
		if a == "--" {
			end = i
			break
		}
	}
	dashed := false
	for _, a := range args[:end] {
		if a != "--" && strings.HasPrefix(a, "-") && isProgramText(a) {
			dashed = true
			break
		}
	}
	if !dashed {
		return args
	}

	var flags, text []string
	for _, a := range args[:end] {
		if isProgramText(a) {
			text = append(text, a)
		} else {
			flags = append(flags, a)
		}
	}
	if end < len(args) {
		text = append(text, args[end+1:]...)
	}
	out := append(flags, "--")
	return append(out, text...)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		logLevel string
		debug    string
		opts     runOptions
	)

	rootCmd := &cobra.Command{
		Use:   "calcjit [program...]",
		Short: "JIT compiler for the +-*/ accumulator language",
		Long: "calcjit joins its arguments into a program, compiles it for this machine and runs it.\n" +
			"'+' and '-' add and subtract 1, '*' and '/' multiply and divide by 2; other characters are ignored.\n" +
			"Programs may start with '-'; anything after '--' is program text as well.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("log-level") {
				if env := os.Getenv(envLogLevel); env != "" {
					logLevel = env
				}
			}
			return setupLogging(stderr, logLevel, debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(stdout, stderr, strings.Join(args, " "), opts)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, crit); also "+envLogLevel)
	rootCmd.PersistentFlags().StringVar(&debug, "debug", "", "comma separated log modules to enable (jit, exec, cli, all)")
	rootCmd.PersistentFlags().BoolVar(&opts.dump, "dump", false, "hex dump the generated code")
	rootCmd.PersistentFlags().BoolVar(&opts.check, "check", false, "compare the native result with the interpreter")

	rootCmd.AddCommand(newReplCmd(stdout, stderr, &opts))
	rootCmd.AddCommand(newExplainCmd(stdout))
	rootCmd.AddCommand(newBenchCmd(stdout))
	rootCmd.AddCommand(newScriptCmd(stdout))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "calcjit %s (commit %s, built %s, backend %s)\n", Version, Commit, BuildTime, jit.Native.Name())
		},
	})
	return rootCmd
}

func setupLogging(w io.Writer, level, modules string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(w, lvl, false)))
	log.EnableModules(modules)
	return nil
}

// runProgram compiles and executes text, printing each stage.
func runProgram(stdout, stderr io.Writer, text string, opts runOptions) error {
	fmt.Fprintf(stdout, "Program: %s\n", text)

	p, err := program.Parse(text)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, p)

	code := jit.Compile(p)
	fmt.Fprintln(stdout, code)
	if opts.dump {
		fmt.Fprint(stdout, hex.Dump(code))
	}

	result, err := exec.Execute(code)
	if err != nil {
		log.Debug(log.CliMonitoring, "execute failed", "kind", jiterrors.GetErrorCodeWithName(err), "err", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errReported
	}
	fmt.Fprintf(stdout, "Result: %d\n", result)

	if opts.check {
		want := program.Interpret(p)
		if !program.Fits(p) {
			log.Warn(log.CliMonitoring, "program overflows int64, results wrap", "program", p.String())
		}
		if want != result {
			fmt.Fprintf(stderr, "Error: interpreter returned %d, native code returned %d\n", want, result)
			return errReported
		}
		log.Info(log.CliMonitoring, "check passed", "result", result)
	}
	return nil
}
