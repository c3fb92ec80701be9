package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"glint/bytecode"
	"glint/compiler"
)

// disassembleCmd compiles a source file and prints its bytecode without
// running it, recursing into every nested function constant.
type disassembleCmd struct{}

func (*disassembleCmd) Name() string     { return "disassemble" }
func (*disassembleCmd) Synopsis() string { return "Compile a file and print its bytecode" }
func (*disassembleCmd) Usage() string {
	return `disassemble <file>:
  Compile a glint source file and print its disassembled bytecode.
`
}
func (*disassembleCmd) SetFlags(f *flag.FlagSet) {}

func (d *disassembleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	fn, err := compiler.Compile(string(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printDisassembly(fn.Chunk, scriptLabel(fn.Name))
	pending := []*bytecode.Function{fn}
	for len(pending) > 0 {
		current := pending[0]
		pending = pending[1:]
		for _, c := range current.Chunk.Constants {
			if c.IsFunction() {
				nested := c.AsFunction()
				printDisassembly(nested.Chunk, nested.Name)
				pending = append(pending, nested)
			}
		}
	}
	return subcommands.ExitSuccess
}

func scriptLabel(name string) string {
	if name == "" {
		return "<script>"
	}
	return name
}

func printDisassembly(chunk interface{ Disassemble(string) string }, label string) {
	fmt.Fprint(os.Stdout, chunk.Disassemble(label))
}
