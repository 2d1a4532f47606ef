package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"surveygen/internal/export"
	"surveygen/internal/interview"
)

// runInterview builds the handler for the interview command.
func runInterview(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file")
		seed := flags.Int64("seed", -1, "Seed for withheld-question selection (default: config seed, or time-based)")
		outPath := flags.String("out", "", "Destination CSV (default: <output dir>/interviews.csv)")
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
			fmt.Fprintf(stderr, "interview failed: %s\n", err.Error())
			return ExitError
		}

		// Interviews only make sense for respondents who answered every
		// selected question.
		table, err := pipe.selected.FilterSubstantive(pipe.cfg.ResponseColumns...)
		if err != nil {
			fmt.Fprintf(stderr, "interview failed: %s\n", err.Error())
			return ExitError
		}

		assembler, err := pipe.assembler()
		if err != nil {
			fmt.Fprintf(stderr, "interview failed: %s\n", err.Error())
			return ExitError
		}
		effectiveSeed := *seed
		if effectiveSeed < 0 {
			effectiveSeed = pipe.cfg.Seed
		}
		if effectiveSeed == 0 {
			effectiveSeed = time.Now().UnixNano()
		}
		reshaper, err := interview.NewReshaper(assembler, rand.New(rand.NewSource(effectiveSeed)))
		if err != nil {
			fmt.Fprintf(stderr, "interview failed: %s\n", err.Error())
			return ExitError
		}

		rows := make([]interview.Row, 0, table.Len())
		for i := 0; i < table.Len(); i++ {
			row, err := reshaper.Reshape(table.ID(i), table.Row(i))
			if err != nil {
				fmt.Fprintf(stderr, "interview failed: %s\n", err.Error())
				return ExitError
			}
			rows = append(rows, row)
		}

		var buf bytes.Buffer
		if err := export.WriteInterviews(&buf, rows); err != nil {
			fmt.Fprintf(stderr, "interview failed: %s\n", err.Error())
			return ExitError
		}
		destination, err := pipe.outputPath(*outPath, "interviews.csv")
		if err != nil {
			fmt.Fprintf(stderr, "interview failed: %s\n", err.Error())
			return ExitError
		}
		if err := writeFileAtomic(destination, buf.Bytes()); err != nil {
			fmt.Fprintf(stderr, "interview failed: %s\n", err.Error())
			return ExitError
		}

		if *dbPath != "" {
			run := export.NewRun(cmd.Name, pipe.cfg.Perspective, pipe.cfg.Input, effectiveSeed)
			if err := saveRun(ctx, *dbPath, run, export.InterviewRecords(rows)); err != nil {
				fmt.Fprintf(stderr, "interview failed: %s\n", err.Error())
				return ExitError
			}
			fmt.Fprintf(stdout, "Recorded run %s in %s\n", run.ID, *dbPath)
		}

		fmt.Fprintf(stdout, "Wrote %d interviews to %s\n", len(rows), destination)
		return ExitOK
	}
}
