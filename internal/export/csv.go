// Package export writes generated datasets to CSV files and to a DuckDB
// store. CSV is the interchange format downstream analysis expects; the
// store keeps a queryable history of runs.
package export

import (
	"encoding/csv"
	"io"

	"surveygen/internal/interview"
	"surveygen/internal/promptgen"
	"surveygen/internal/survey"
)

// idColumn heads every exported file so rows can be joined back to the
// loaded survey.
const idColumn = "ID_"

// WriteSubset writes a selected survey table with its respondent ids.
func WriteSubset(w io.Writer, table *survey.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{idColumn}, table.Columns()...)); err != nil {
		return err
	}
	for i := 0; i < table.Len(); i++ {
		record := make([]string, 0, len(table.Columns())+1)
		record = append(record, table.ID(i))
		for _, code := range table.Columns() {
			record = append(record, table.Value(i, code))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WritePrompts writes rendered prompts with the expected answer for the
// target column.
func WritePrompts(w io.Writer, rows []promptgen.PromptRow, target string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{idColumn, "target", "prompt", "answer"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.RespondentID, target, row.Prompt, targetPhrase(row, target)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteInterviews writes interview transcripts with their withheld answers.
func WriteInterviews(w io.Writer, rows []interview.Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{idColumn, "target", "prompt", "answer"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.RespondentID, row.Target, row.Prompt, row.Answer}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func targetPhrase(row promptgen.PromptRow, target string) string {
	for _, pair := range row.Pairs {
		if pair.Code == target {
			return pair.Phrase
		}
	}
	return ""
}

// PromptRecords converts rendered prompts into store records.
func PromptRecords(rows []promptgen.PromptRow, target string) []PromptRecord {
	records := make([]PromptRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, PromptRecord{
			RespondentID: row.RespondentID,
			Target:       target,
			Prompt:       row.Prompt,
			Answer:       targetPhrase(row, target),
		})
	}
	return records
}

// InterviewRecords converts transcripts into store records.
func InterviewRecords(rows []interview.Row) []PromptRecord {
	records := make([]PromptRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, PromptRecord{
			RespondentID: row.RespondentID,
			Target:       row.Target,
			Prompt:       row.Prompt,
			Answer:       row.Answer,
		})
	}
	return records
}
