package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/colorfulnotion/calcjit/exec"
	"github.com/colorfulnotion/calcjit/jit"
	"github.com/colorfulnotion/calcjit/log"
	"github.com/colorfulnotion/calcjit/program"
)

type benchConfig struct {
	maxLen int
	step   int
	runs   int
	seed   uint64
}

type benchRow struct {
	ops      int
	bytes    int     // average code size
	native   float64 // ns per compile+execute
	interp   float64 // ns per interpretation
	programs int
}

func newBenchCmd(stdout io.Writer) *cobra.Command {
	var (
		cfg       benchConfig
		chartPath string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time native execution against the interpreter on random programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := benchmark(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%6s %8s %14s %14s\n", "ops", "bytes", "native ns/run", "interp ns/run")
			for _, r := range rows {
				fmt.Fprintf(stdout, "%6d %8d %14.0f %14.0f\n", r.ops, r.bytes, r.native, r.interp)
			}
			if chartPath == "" {
				return nil
			}
			f, err := os.Create(chartPath)
			if err != nil {
				return fmt.Errorf("create chart: %w", err)
			}
			defer f.Close()
			if err := renderChart(f, rows); err != nil {
				return fmt.Errorf("render chart: %w", err)
			}
			log.Info(log.CliMonitoring, "chart written", "path", chartPath)
			return nil
		},
	}
	cmd.Flags().IntVar(&cfg.maxLen, "max-len", 64, "longest program to time")
	cmd.Flags().IntVar(&cfg.step, "step", 8, "program length increment")
	cmd.Flags().IntVar(&cfg.runs, "runs", 100, "programs per length")
	cmd.Flags().Uint64Var(&cfg.seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write an HTML line chart to this file")
	return cmd
}

// benchmark times random non-overflowing programs of increasing length and
// fails if any native result differs from the interpreter.
func benchmark(cfg benchConfig) ([]benchRow, error) {
	if cfg.step <= 0 || cfg.runs <= 0 || cfg.maxLen < 0 {
		return nil, fmt.Errorf("bench: step and runs must be positive, max-len non-negative")
	}
	r := rand.New(rand.NewSource(cfg.seed))
	var rows []benchRow
	for n := 0; n <= cfg.maxLen; n += cfg.step {
		row := benchRow{ops: n}
		var nativeTime, interpTime time.Duration
		totalBytes := 0
		for row.programs < cfg.runs {
			p := make(program.Program, n)
			for i := range p {
				p[i] = program.UserOps[r.Intn(len(program.UserOps))]
			}
			if !program.Fits(p) {
				continue
			}

			start := time.Now()
			code := jit.Compile(p)
			got, err := exec.Execute(code)
			nativeTime += time.Since(start)
			if err != nil {
				return nil, err
			}

			start = time.Now()
			want := program.Interpret(p)
			interpTime += time.Since(start)

			if got != want {
				return nil, fmt.Errorf("bench: %v: native %d, interpreter %d", p, got, want)
			}
			totalBytes += len(code)
			row.programs++
		}
		row.bytes = totalBytes / row.programs
		row.native = float64(nativeTime.Nanoseconds()) / float64(row.programs)
		row.interp = float64(interpTime.Nanoseconds()) / float64(row.programs)
		log.Debug(log.CliMonitoring, "bench row", "ops", n, "native", row.native, "interp", row.interp)
		rows = append(rows, row)
	}
	return rows, nil
}

func renderChart(w io.Writer, rows []benchRow) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "calcjit " + jit.Native.Name(),
			Subtitle: "compile+execute vs interpreter",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "ops"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ns/run"}),
	)

	xs := make([]string, 0, len(rows))
	native := make([]opts.LineData, 0, len(rows))
	interp := make([]opts.LineData, 0, len(rows))
	for _, r := range rows {
		xs = append(xs, strconv.Itoa(r.ops))
		native = append(native, opts.LineData{Value: r.native})
		interp = append(interp, opts.LineData{Value: r.interp})
	}
	line.SetXAxis(xs).
		AddSeries("native", native).
		AddSeries("interpreter", interp)
	return line.Render(w)
}
