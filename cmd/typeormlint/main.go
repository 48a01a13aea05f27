package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/broady/typeormlint/cmd/typeormlint/internal/check"
	"github.com/broady/typeormlint/cmd/typeormlint/internal/explain"
	"github.com/broady/typeormlint/cmd/typeormlint/internal/fix"
	"github.com/broady/typeormlint/cmd/typeormlint/internal/list"
	"github.com/broady/typeormlint/cmd/typeormlint/internal/setup"
)

type CLI struct {
	setup.Globals

	Check   check.Cmd   `cmd:"" default:"withargs" help:"Lint files and report type mismatches."`
	Fix     fix.Cmd     `cmd:"" help:"Apply fixes and suggestions."`
	Explain explain.Cmd `cmd:"" help:"Show how a decorator and an annotation are compared."`
	Rules   list.Cmd    `cmd:"" help:"List the available rules."`
	Version VersionCmd  `cmd:"" help:"Print version information."`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("typeormlint"),
		kong.Description("Check TypeORM decorators against TypeScript property types."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Globals)
	if errors.Is(err, setup.ErrProblems) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "typeormlint: %s\n", setup.FormatError(err))
		os.Exit(2)
	}
}
