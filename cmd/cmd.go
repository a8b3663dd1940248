// Package cmd implements the sheetc command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"sheetc/compiler"
	"sheetc/eval"
	"sheetc/report"
	"sheetc/sheet"
)

// Execute runs the sheetc CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "sheetc",
		Usage:                  "Compile spreadsheet cells into an executable declaration program",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sheet",
				Usage: "Worksheet to read (defaults to the active sheet)",
			},
		},
		// Allow `sheetc file.xlsx` as shorthand for `sheetc convert file.xlsx`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				res, err := compileFile(cmd, cmd.Args().First())
				if err != nil {
					return err
				}
				fmt.Println(res.Program)
				return nil
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Convert a whole spreadsheet to a declaration program",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the program to this path instead of stdout",
					},
				},
				Action: convertAction,
			},
			{
				Name:      "compute",
				Usage:     "Compute the value of one cell by running the generated program",
				ArgsUsage: "<file> <cell>",
				Action:    computeAction,
			},
			{
				Name:      "formula",
				Usage:     "Print the original formula of one cell",
				ArgsUsage: "<file> <cell>",
				Action:    formulaAction,
			},
			{
				Name:      "deps",
				Usage:     "Show the dependency tree of a cell, or of all roots",
				ArgsUsage: "<file> [cell]",
				Action:    depsAction,
			},
			{
				Name:      "dependants",
				Usage:     "Show the dependant tree of a cell, or of all leaves",
				ArgsUsage: "<file> [cell]",
				Action:    dependantsAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// compileFile runs the full pipeline on one spreadsheet and flags any
// broken reference cycles on stderr.
func compileFile(cmd *cli.Command, path string) (*compiler.Result, error) {
	reader := sheet.Open(path, cmd.String("sheet"))
	res, err := (&compiler.Compiler{}).Compile(reader)
	if err != nil {
		return nil, err
	}
	for _, e := range res.Removed {
		fmt.Fprintf(os.Stderr, "warning: circular reference: dropped dependency %s -> %s\n", e[0], e[1])
	}
	return res, nil
}

func convertAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: sheetc convert [-o output] <file>")
	}
	res, err := compileFile(cmd, cmd.Args().First())
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		fmt.Println(res.Program)
		return nil
	}

	// Pre-write self check: compute one formula cell and refuse to persist
	// a program that cannot produce it.
	if len(res.FormulaCells) > 0 {
		probe := res.FormulaCells[0]
		ec := eval.NewContext()
		execErr := ec.Execute(res.Program)
		if _, err := ec.Value(probe); err != nil {
			if execErr != nil {
				return fmt.Errorf("generated program is broken, not writing %s: %w", output, execErr)
			}
			return fmt.Errorf("generated program is broken, not writing %s: %w", output, err)
		}
	}

	if err := os.WriteFile(output, []byte(res.Program+"\n"), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}

func computeAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 2 {
		return fmt.Errorf("usage: sheetc compute <file> <cell>")
	}
	res, err := compileFile(cmd, cmd.Args().First())
	if err != nil {
		return err
	}

	name := cmd.Args().Get(1)
	ec := eval.NewContext()
	execErr := ec.Execute(res.Program)
	v, err := ec.Value(name)
	if err != nil {
		if execErr != nil {
			return fmt.Errorf("computing %s: %w", name, execErr)
		}
		return err
	}
	if execErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", execErr)
	}
	fmt.Printf("%s = %v\n", name, v)
	return nil
}

func formulaAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 2 {
		return fmt.Errorf("usage: sheetc formula <file> <cell>")
	}
	res, err := compileFile(cmd, cmd.Args().First())
	if err != nil {
		return err
	}

	name := cmd.Args().Get(1)
	formula, ok := res.Formulas[name]
	if !ok {
		return fmt.Errorf("no formula recorded for %s", name)
	}
	fmt.Println(formula)
	return nil
}

func depsAction(ctx context.Context, cmd *cli.Command) error {
	return treeAction(cmd, func(p *report.Printer, start string) {
		p.Dependencies(start)
	})
}

func dependantsAction(ctx context.Context, cmd *cli.Command) error {
	return treeAction(cmd, func(p *report.Printer, start string) {
		p.Dependants(start)
	})
}

func treeAction(cmd *cli.Command, walk func(p *report.Printer, start string)) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: sheetc %s <file> [cell]", cmd.Name)
	}
	res, err := compileFile(cmd, cmd.Args().First())
	if err != nil {
		return err
	}

	// Values are best effort here: a partially broken program still yields
	// a useful tree, with failing cells labeled unavailable.
	ec := eval.NewContext()
	if err := ec.Execute(res.Program); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	p := &report.Printer{
		Graph: res.Graph,
		Exprs: res.Exprs,
		Eval:  ec,
		Color: term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == "",
		Out:   os.Stdout,
	}
	walk(p, cmd.Args().Get(1))
	return nil
}
