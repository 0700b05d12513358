// Command linearkb is the CLI driver: it reads a program file, builds the
// clause store and ledger, runs the linearity pre-checker, executes the
// program's queries, and reports results per spec §6. Exit code 0 means
// every query ran (regardless of true/false outcome); exit code 1 means a
// front-end or pre-checker error.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/linearkb/internal/driver"
	"github.com/gitrdm/linearkb/internal/program"
	"github.com/gitrdm/linearkb/internal/report"
	"github.com/gitrdm/linearkb/internal/syntax"
)

const appName = "linearkb"

func main() {
	c := cli.NewCLI(appName, version)
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"run":   func() (cli.Command, error) { return &runCommand{}, nil },
		"check": func() (cli.Command, error) { return &checkCommand{}, nil },
	}

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

const version = "0.1.0"

// runCommand parses a program, builds the driver, evaluates every query,
// and prints the canonical report.
type runCommand struct{}

func (c *runCommand) Help() string {
	return "Usage: linearkb run [-cap=N] [-budget=DURATION] [-trace] <file>\n\n" +
		"Evaluates every query in <file> against its knowledge base and prints\n" +
		"the solution count and bindings for each."
}

func (c *runCommand) Synopsis() string { return "Evaluate a program's queries" }

func (c *runCommand) Run(args []string) int {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	cap := flags.Int("cap", 0, "maximum number of solutions per query (0 = unlimited)")
	budget := flags.Duration("budget", 0, "wall-clock budget per query (0 = unbounded)")
	trace := flags.Bool("trace", false, "enable debug-level logging (one line per solution found)")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Help())
		return 1
	}

	logger := newLogger(*trace)

	p, err := parseFile(flags.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	d, errs := driver.Build(p, driver.Config{MaxSolutions: *cap, Budget: *budget, Logger: logger})
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}

	reports := d.RunAll(context.Background(), p.Queries)
	report.WriteAll(os.Stdout, reports)
	return 0
}

// checkCommand runs only the front end and the linearity pre-checker,
// without evaluating any query — useful for CI or editor integration.
type checkCommand struct{}

func (c *checkCommand) Help() string {
	return "Usage: linearkb check <file>\n\nRuns the linearity pre-checker without evaluating queries."
}

func (c *checkCommand) Synopsis() string { return "Check a program for linearity violations" }

func (c *checkCommand) Run(args []string) int {
	flags := flag.NewFlagSet("check", flag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Help())
		return 1
	}

	p, err := parseFile(flags.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	_, errs := driver.Build(p, driver.Config{Logger: hclog.NewNullLogger()})
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}
	fmt.Println("ok")
	return 0
}

func parseFile(path string) (*program.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return syntax.Parse(path, string(src))
}

func newLogger(trace bool) hclog.Logger {
	level := hclog.Info
	if trace {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  appName,
		Level: level,
	})
}
