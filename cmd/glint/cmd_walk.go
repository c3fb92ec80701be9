package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"glint/rdparser"
	"glint/twi"
)

// walkCmd runs a source file through the tree-walking back-end instead of
// the bytecode compiler + VM, for comparison. It only supports the grammar
// subset that back-end implements: expressions, var, print, blocks, if,
// while — no functions.
type walkCmd struct{}

func (*walkCmd) Name() string     { return "walk" }
func (*walkCmd) Synopsis() string { return "Run a file with the tree-walking interpreter" }
func (*walkCmd) Usage() string {
	return `walk <file>:
  Run a glint source file with the tree-walking back-end.
`
}
func (*walkCmd) SetFlags(f *flag.FlagSet) {}

type stdoutSink struct{}

func (stdoutSink) Print(text string) { fmt.Println(text) }

func (w *walkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	statements, errs := rdparser.New(string(data)).Parse()
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return subcommands.ExitFailure
	}

	interp := twi.New(stdoutSink{})
	if err := interp.Interpret(statements); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
