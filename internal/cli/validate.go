package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"surveygen/internal/codebook"
	"surveygen/internal/config"
	"surveygen/internal/promptgen"
)

// runValidate builds the handler for the validate command. It checks the
// config file, the codebook, and their cross references: every selected
// column must be declared and question_text must cover the selection.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for "+config.ConfigFileName+")")
		codebookPath := flags.String("codebook", "", "Path to a codebook file to validate instead of the configured one")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, _, book, err := loadConfigAndBook(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		if *codebookPath != "" {
			book, err = codebook.Load(*codebookPath)
			if err != nil {
				fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
				return ExitError
			}
		}

		if _, err := promptgen.NewAssembler(book, cfg.Perspective,
			cfg.DemographicColumns, cfg.ResponseColumns, cfg.QuestionText); err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		fmt.Fprintln(stdout, "Config OK")
		return ExitOK
	}
}
