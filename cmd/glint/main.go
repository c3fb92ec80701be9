// Command glint is the CLI collaborator around the compiler and VM: it
// registers one subcommand per way of running a program, one flat
// cmd_*.go file each.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"glint/config"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&disassembleCmd{}, "")
	subcommands.Register(&walkCmd{}, "")

	flag.Parse()

	cfg, err := config.Load(".glintrc.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to load configuration: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	ctx := context.WithValue(context.Background(), configKey{}, cfg)
	os.Exit(int(subcommands.Execute(ctx)))
}

// configKey is the context key runCmd/replCmd use to retrieve the loaded
// Config, keeping main.go the only place that knows how config is loaded.
type configKey struct{}

func configFrom(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
		return cfg
	}
	return config.Default()
}
