package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type queryCmd struct {
	file string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "run a jsonpath query over a data file" }
func (*queryCmd) Usage() string {
	return `sct query [-file ncm|catalog] <jsonpath>

  Runs a jsonpath expression against one of the data files and prints
  the result as JSON. Useful for scripting and quick inspections.

Usage Examples:
$ sct query '$.ncms[?(@.category=="Eletrônicos")].code'
$ sct query -file catalog '$.produtos[*].nome'

`
}

func (p *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.file, "file", "ncm", "Data file to query: ncm or catalog.")
}

func (p *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one jsonpath expression.")
		return subcommands.ExitUsageError
	}

	var path string
	switch p.file {
	case "ncm":
		path = schedulePath()
	case "catalog":
		path = catalogPath()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown -file %q, want ncm or catalog.\n", p.file)
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot parse %q: %v\n", path, err)
		return subcommands.ExitFailure
	}

	jval, err := jsonpath.Get(f.Arg(0), jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	out, err := json.MarshalIndent(jval, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}
