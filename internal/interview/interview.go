// Package interview reshapes rendered rows into interview transcripts. One
// response column is withheld per respondent; every other selected column
// becomes an answered question turn, and the transcript closes with the
// withheld question left unanswered.
package interview

import (
	"errors"
	"math/rand"
	"strings"

	"surveygen/internal/promptgen"
)

// ErrEmptySelection reports a reshaper built over zero response columns.
var ErrEmptySelection = errors.New("interview requires at least one response column")

// Row is one transcript: the withheld column, the respondent's actual
// answer to it, and the prompt ending with that question unanswered.
type Row struct {
	RespondentID string
	Target       string
	Answer       string
	Prompt       string
}

// Reshaper builds transcripts from an assembler's rendered rows. The
// withheld column is drawn from the response columns with the supplied
// source, so a fixed seed reproduces the same transcripts.
type Reshaper struct {
	assembler *promptgen.Assembler
	rng       *rand.Rand
}

// NewReshaper validates the selection and builds a reshaper.
func NewReshaper(assembler *promptgen.Assembler, rng *rand.Rand) (*Reshaper, error) {
	if len(assembler.ResponseColumns()) == 0 {
		return nil, ErrEmptySelection
	}
	return &Reshaper{assembler: assembler, rng: rng}, nil
}

// Reshape renders one respondent with a randomly withheld response column.
func (r *Reshaper) Reshape(id string, row map[string]string) (Row, error) {
	responses := r.assembler.ResponseColumns()
	target := responses[r.rng.Intn(len(responses))]
	return r.ReshapeTarget(id, row, target)
}

// ReshapeTarget renders one respondent withholding a specific column. Turns
// keep the configured column order; columns whose phrase is empty are
// skipped, since there is nothing for the respondent to say.
func (r *Reshaper) ReshapeTarget(id string, row map[string]string, target string) (Row, error) {
	rendered, err := r.assembler.BuildRow(id, row, target)
	if err != nil {
		return Row{}, err
	}

	var answer string
	turns := make([]string, 0, len(rendered.Pairs))
	for _, pair := range rendered.Pairs {
		if pair.Code == target {
			answer = pair.Phrase
			continue
		}
		if pair.Phrase == "" {
			continue
		}
		turns = append(turns, "Interviewer: "+pair.Question+"\nRespondent: "+answerLine(pair.Phrase))
	}
	turns = append(turns, "Interviewer: "+r.assembler.Question(target))

	return Row{
		RespondentID: id,
		Target:       target,
		Answer:       answer,
		Prompt:       strings.Join(turns, "\n"),
	}, nil
}

func answerLine(phrase string) string {
	if strings.HasSuffix(phrase, ".") {
		return phrase
	}
	return phrase + "."
}
