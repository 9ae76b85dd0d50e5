package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/subcommands"
	"github.com/sactorium/sactorium/renderer"
)

type showNCMCmd struct {
	code     string
	category string
}

func (*showNCMCmd) Name() string     { return "show-ncm" }
func (*showNCMCmd) Synopsis() string { return "show NCM codes and their taxes" }
func (*showNCMCmd) Usage() string {
	return `sct show-ncm [-code <code>] [-category <name>]

  Without flags, lists every NCM code. With -code, shows one code in
  full detail. With -category, lists the codes of one category.

`
}

func (p *showNCMCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.code, "code", "", "NCM code to show in detail.")
	f.StringVar(&p.category, "category", "", "List only this category.")
}

func (p *showNCMCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSchedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if p.code != "" {
		rec, err := s.FindByCode(p.code)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.NCMDetail(rec))
		return subcommands.ExitSuccess
	}

	records := s.All()
	if p.category != "" {
		records = s.ByCategory(p.category)
	}
	printMarkdown(renderer.NCMTable(records))
	return subcommands.ExitSuccess
}

type searchNCMCmd struct{}

func (*searchNCMCmd) Name() string     { return "search-ncm" }
func (*searchNCMCmd) Synopsis() string { return "search NCM codes by description or category" }
func (*searchNCMCmd) Usage() string {
	return `sct search-ncm <query>

  Searches descriptions and categories, case-insensitively. The query
  must be at least 2 characters. Codes are not searched: use show-ncm
  -code for an exact code lookup.

`
}

func (p *searchNCMCmd) SetFlags(f *flag.FlagSet) {}

func (p *searchNCMCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.TrimSpace(strings.Join(f.Args(), " "))
	if utf8.RuneCountInString(query) < 2 {
		fmt.Fprintln(os.Stderr, "Error: the query must be at least 2 characters.")
		return subcommands.ExitUsageError
	}

	s, err := OpenSchedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	found := s.Search(query)
	if len(found) == 0 {
		fmt.Printf("No NCM matches %q.\n", query)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.NCMTable(found))
	return subcommands.ExitSuccess
}

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list the NCM categories" }
func (*categoriesCmd) Usage() string {
	return `sct categories

  Lists the distinct categories of the tax schedule.

`
}

func (p *categoriesCmd) SetFlags(f *flag.FlagSet) {}

func (p *categoriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSchedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, c := range s.Categories() {
		fmt.Printf("%s (%d)\n", c, len(s.ByCategory(c)))
	}
	return subcommands.ExitSuccess
}
