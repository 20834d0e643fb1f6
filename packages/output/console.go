package output

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/flowspec/packages/metrics"
	"github.com/abdul-hamid-achik/flowspec/packages/runner"
	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatResult prints every case and test outcome plus a summary line.
func (f *ConsoleFormatter) FormatResult(result *runner.RunResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	for _, c := range result.Cases {
		fmt.Fprintf(f.writer, "\n%s\n", bold(c.Title))

		if c.SetupErr != nil {
			fmt.Fprintf(f.writer, "  %s setup failed: %v\n", red("x"), c.SetupErr)
		}

		for _, t := range c.Tests {
			switch {
			case t.Skipped:
				fmt.Fprintf(f.writer, "  %s %s (skipped)\n", yellow("-"), t.Title)
			case t.Passed:
				fmt.Fprintf(f.writer, "  %s %s %s\n", green("✓"), t.Title, cyan(fmt.Sprintf("(%dms)", t.Duration.Milliseconds())))
			default:
				fmt.Fprintf(f.writer, "  %s %s %s\n", red("✗"), t.Title, cyan(fmt.Sprintf("(%dms)", t.Duration.Milliseconds())))
				if t.Err != nil {
					fmt.Fprintf(f.writer, "    %s %v\n", red("→"), t.Err)
				}
			}
		}
	}

	fmt.Fprintf(f.writer, "\n%s %s passed, %s failed",
		bold("Summary:"), green(fmt.Sprint(result.Passed)), red(fmt.Sprint(result.Failed)))
	if result.Skipped > 0 {
		fmt.Fprintf(f.writer, ", %s skipped", yellow(fmt.Sprint(result.Skipped)))
	}
	fmt.Fprintf(f.writer, " %s\n", cyan(fmt.Sprintf("(%dms)", result.Duration.Milliseconds())))
}

// FormatError prints a standalone error line.
func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

// FormatMetrics prints latency percentiles when samples were recorded.
// Emitted only in verbose mode.
func (f *ConsoleFormatter) FormatMetrics(rec *metrics.Recorder) {
	if !f.verbose || rec == nil || rec.Count() == 0 {
		return
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s p50=%s p95=%s p99=%s mean=%s\n",
		bold("Latency:"),
		rec.Percentile(50),
		rec.Percentile(95),
		rec.Percentile(99),
		rec.Mean(),
	)
}
