package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sactorium/sactorium"
)

type addNCMCmd struct {
	code        string
	description string
	category    string
	notes       string
	taxes       string
}

func (*addNCMCmd) Name() string     { return "add-ncm" }
func (*addNCMCmd) Synopsis() string { return "add an NCM code to the tax schedule" }
func (*addNCMCmd) Usage() string {
	return `sct add-ncm -code <code> -description <text> [-category <name>] [-notes <text>] [-taxes <list>]

  Adds a new NCM code. Taxes are a comma-separated list of up to five
  "name:rate" entries, rate in percent over the CIF value; append
  ":fixed" for an absolute amount per unit.

Usage Examples:
$ sct add-ncm -code 90041000 -description "Óculos de sol" -category Acessórios \
    -taxes "Imposto Importação:18,ICMS:18"

`
}

func (p *addNCMCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.code, "code", "", "NCM code (digits only).")
	f.StringVar(&p.description, "description", "", "Description of the goods.")
	f.StringVar(&p.category, "category", "", "Category (defaults to Outros).")
	f.StringVar(&p.notes, "notes", "", "Free-form notes.")
	f.StringVar(&p.taxes, "taxes", "", "Tax entries, comma-separated name:rate[:fixed].")
}

func (p *addNCMCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	taxes, err := parseTaxes(p.taxes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := OpenSchedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	added, err := s.Add(sactorium.NCMRecord{
		Code:        p.code,
		Description: p.description,
		Category:    p.category,
		Notes:       p.notes,
		Taxes:       taxes,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added NCM %s (%s)\n", added.Code, added.Category)
	return subcommands.ExitSuccess
}

type updateNCMCmd struct {
	code        string
	description string
	category    string
	notes       string
	taxes       string
}

func (*updateNCMCmd) Name() string     { return "update-ncm" }
func (*updateNCMCmd) Synopsis() string { return "update an NCM code in the tax schedule" }
func (*updateNCMCmd) Usage() string {
	return `sct update-ncm -code <code> [-description <text>] [-category <name>] [-notes <text>] [-taxes <list>]

  Updates an existing NCM code. Only the given flags change; the code
  itself is immutable. -taxes replaces the whole tax list.

`
}

func (p *updateNCMCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.code, "code", "", "NCM code to update.")
	f.StringVar(&p.description, "description", "", "New description.")
	f.StringVar(&p.category, "category", "", "New category.")
	f.StringVar(&p.notes, "notes", "", "New notes.")
	f.StringVar(&p.taxes, "taxes", "", "New tax entries, comma-separated name:rate[:fixed].")
}

func (p *updateNCMCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var patch sactorium.NCMPatch
	// Only flags the user actually set become part of the patch.
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "description":
			patch.Description = &p.description
		case "category":
			patch.Category = &p.category
		case "notes":
			patch.Notes = &p.notes
		}
	})
	if p.taxes != "" {
		taxes, err := parseTaxes(p.taxes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		patch.Taxes = &taxes
	}

	s, err := OpenSchedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	updated, err := s.Update(p.code, patch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated NCM %s\n", updated.Code)
	return subcommands.ExitSuccess
}

type deleteNCMCmd struct {
	code string
}

func (*deleteNCMCmd) Name() string     { return "delete-ncm" }
func (*deleteNCMCmd) Synopsis() string { return "delete an NCM code from the tax schedule" }
func (*deleteNCMCmd) Usage() string {
	return `sct delete-ncm -code <code>

  Deletes an NCM code from the tax schedule.

`
}

func (p *deleteNCMCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.code, "code", "", "NCM code to delete.")
}

func (p *deleteNCMCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSchedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Delete(p.code); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted NCM %s\n", p.code)
	return subcommands.ExitSuccess
}
