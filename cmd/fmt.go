package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the data files in canonical form"
}
func (*fmtCmd) Usage() string {
	return `sct fmt

  Reads both data files (tax schedule and catalog), validates them, and
  writes them back in canonical indented form. Legacy tax schedule files
  are migrated to the current schema. Missing files are created.

Usage Examples:
$ sct fmt

`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSchedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load tax schedule: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save tax schedule: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %s\n", schedulePath())

	c, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := c.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save catalog: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %s\n", catalogPath())
	return subcommands.ExitSuccess
}
