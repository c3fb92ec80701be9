package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"glint/compiler"
	"glint/vm"
)

// replCmd reads one line at a time, compiles it, and runs it, keeping the
// same VM (and so the same globals) across lines.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive glint session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL. Type "exit" to quit.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := configFrom(ctx)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      ">>> ",
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start REPL: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Println("\n\nWelcome to glint!")
	machine := vm.New(vm.WriterSink{W: os.Stdout})
	machine.CapturePrints(cfg.CapturePrints)

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}
		if line == "exit" {
			return subcommands.ExitSuccess
		}
		if line == "" {
			continue
		}

		r.evalLine(machine, line)
	}
}

// evalLine compiles line as a statement; if that fails, the REPL retries
// treating it as a bare expression whose value should be printed, matching
// what a REPL user expects from typing "1 + 2" with no trailing "print".
func (r *replCmd) evalLine(machine *vm.VM, line string) {
	fn, err := compiler.Compile(line)
	if err != nil {
		fn, err = compiler.Compile("print " + line + ";")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
	}
	if err := machine.Interpret(fn); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
