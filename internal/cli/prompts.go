package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"surveygen/internal/export"
	"surveygen/internal/promptgen"
)

// runPrompts builds the handler for the prompts command.
func runPrompts(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file")
		target := flags.String("target", "", "Response column to ask about (default: first response column)")
		withChoices := flags.Bool("with-choices", false, "Close each prompt with the observed response levels")
		keepRefusals := flags.Bool("keep-refusals", false, "Keep rows whose target answer is a refusal or missing")
		outPath := flags.String("out", "", "Destination CSV (default: <output dir>/prompts.csv)")
		dbPath := flags.String("db", "", "Also record the run in this DuckDB database")
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

		ctx := context.Background()
		pipe, err := loadPipeline(ctx, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "prompts failed: %s\n", err.Error())
			return ExitError
		}
		if len(pipe.cfg.ResponseColumns) == 0 {
			fmt.Fprintln(stderr, "prompts failed: no response columns selected")
			return ExitError
		}
		asked := *target
		if asked == "" {
			asked = pipe.cfg.ResponseColumns[0]
		}

		table := pipe.selected
		if !*keepRefusals {
			table, err = table.FilterSubstantive(asked)
			if err != nil {
				fmt.Fprintf(stderr, "prompts failed: %s\n", err.Error())
				return ExitError
			}
		}

		assembler, err := pipe.assembler()
		if err != nil {
			fmt.Fprintf(stderr, "prompts failed: %s\n", err.Error())
			return ExitError
		}
		if *withChoices {
			levels, err := table.ResponseLevels(asked)
			if err != nil {
				fmt.Fprintf(stderr, "prompts failed: %s\n", err.Error())
				return ExitError
			}
			assembler.SetChoices(map[string]string{asked: levels})
		}

		rows := make([]promptgen.PromptRow, 0, table.Len())
		for i := 0; i < table.Len(); i++ {
			rendered, err := assembler.BuildRow(table.ID(i), table.Row(i), asked)
			if err != nil {
				fmt.Fprintf(stderr, "prompts failed: %s\n", err.Error())
				return ExitError
			}
			rows = append(rows, rendered)
		}

		var buf bytes.Buffer
		if err := export.WritePrompts(&buf, rows, asked); err != nil {
			fmt.Fprintf(stderr, "prompts failed: %s\n", err.Error())
			return ExitError
		}
		destination, err := pipe.outputPath(*outPath, "prompts.csv")
		if err != nil {
			fmt.Fprintf(stderr, "prompts failed: %s\n", err.Error())
			return ExitError
		}
		if err := writeFileAtomic(destination, buf.Bytes()); err != nil {
			fmt.Fprintf(stderr, "prompts failed: %s\n", err.Error())
			return ExitError
		}

		if *dbPath != "" {
			run := export.NewRun(cmd.Name, pipe.cfg.Perspective, pipe.cfg.Input, pipe.cfg.Seed)
			if err := saveRun(ctx, *dbPath, run, export.PromptRecords(rows, asked)); err != nil {
				fmt.Fprintf(stderr, "prompts failed: %s\n", err.Error())
				return ExitError
			}
			fmt.Fprintf(stdout, "Recorded run %s in %s\n", run.ID, *dbPath)
		}

		fmt.Fprintf(stdout, "Wrote %d prompts for %s to %s\n", len(rows), asked, destination)
		return ExitOK
	}
}

func saveRun(ctx context.Context, dbPath string, run export.Run, records []export.PromptRecord) error {
	store, err := export.OpenStore(ctx, dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveRun(ctx, run, records)
}
