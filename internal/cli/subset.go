package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"surveygen/internal/export"
)

// runSubset builds the handler for the subset command.
func runSubset(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file")
		outPath := flags.String("out", "", "Destination CSV (default: <output dir>/subset.csv)")
		complete := flags.Bool("complete", false, "Keep only rows with substantive answers to every response column")
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

		pipe, err := loadPipeline(context.Background(), *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "subset failed: %s\n", err.Error())
			return ExitError
		}
		table := pipe.selected
		if *complete {
			table, err = table.FilterSubstantive(pipe.cfg.ResponseColumns...)
			if err != nil {
				fmt.Fprintf(stderr, "subset failed: %s\n", err.Error())
				return ExitError
			}
		}

		var buf bytes.Buffer
		if err := export.WriteSubset(&buf, table); err != nil {
			fmt.Fprintf(stderr, "subset failed: %s\n", err.Error())
			return ExitError
		}
		destination, err := pipe.outputPath(*outPath, "subset.csv")
		if err != nil {
			fmt.Fprintf(stderr, "subset failed: %s\n", err.Error())
			return ExitError
		}
		if err := writeFileAtomic(destination, buf.Bytes()); err != nil {
			fmt.Fprintf(stderr, "subset failed: %s\n", err.Error())
			return ExitError
		}

		fmt.Fprintf(stdout, "Wrote %d rows to %s\n", table.Len(), destination)
		return ExitOK
	}
}
