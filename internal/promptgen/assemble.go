// Package promptgen turns selected survey rows into natural-language
// prompts. Each column contributes a phrase looked up in the codebook and a
// preamble sentence; the assembler stitches the sentences into a persona
// description and appends the target question.
package promptgen

import (
	"fmt"
	"strings"

	"surveygen/internal/codebook"
	"surveygen/internal/spec"
)

// Openers anchor the persona description. Everything after the opener is
// derived from the row.
const (
	secondPersonOpener = "You are Ghanaian."
	thirdPersonOpener  = "Consider the following person: A Ghanaian."
)

// Pair is one selected column rendered for a row: the mapped phrase, the
// configured question text, and the preamble sentence (empty when the
// column contributes nothing to the preamble).
type Pair struct {
	Code     string
	Question string
	Phrase   string
	Sentence string
}

// PromptRow is the rendered output for one respondent.
type PromptRow struct {
	RespondentID string
	Opener       string
	Pairs        []Pair
	Prompt       string
}

// Preamble joins the opener and every non-empty sentence in column order.
func (row PromptRow) Preamble() string {
	return row.PreambleWithout("")
}

// PreambleWithout renders the preamble with one column's sentence omitted.
func (row PromptRow) PreambleWithout(code string) string {
	parts := []string{row.Opener}
	for _, pair := range row.Pairs {
		if pair.Code == code || pair.Sentence == "" {
			continue
		}
		parts = append(parts, pair.Sentence)
	}
	return strings.Join(parts, " ")
}

// Assembler renders prompts for a fixed column selection. Construction
// validates the selection against the codebook and the question list, so
// row processing cannot fail on configuration mistakes.
type Assembler struct {
	book         *codebook.Book
	perspective  string
	response     []string
	ordered      []string
	questions    map[string]string
	applyRecodes bool
	choices      map[string]string
}

// NewAssembler validates the selection and builds an assembler. questionText
// must carry one entry per selected column, demographic first.
func NewAssembler(book *codebook.Book, perspective string, demographic, response, questionText []string) (*Assembler, error) {
	ordered := make([]string, 0, len(demographic)+len(response))
	ordered = append(ordered, demographic...)
	ordered = append(ordered, response...)
	if len(questionText) != len(ordered) {
		return nil, &LengthMismatchError{Questions: len(questionText), Columns: len(ordered)}
	}
	if perspective != spec.PerspectiveSecondPerson && perspective != spec.PerspectiveThirdPerson {
		return nil, fmt.Errorf("unknown perspective %q", perspective)
	}
	questions := make(map[string]string, len(ordered))
	for i, code := range ordered {
		if !book.Has(code) {
			return nil, &codebook.UnknownColumnError{Code: code}
		}
		questions[code] = questionText[i]
	}
	return &Assembler{
		book:        book,
		perspective: perspective,
		response:    append([]string(nil), response...),
		ordered:     ordered,
		questions:   questions,
	}, nil
}

// EnableRecodes applies the codebook's recode tables to raw answers before
// phrase lookup.
func (a *Assembler) EnableRecodes() {
	a.applyRecodes = true
}

// SetChoices attaches per-column response levels. When the target column
// has levels, the prompt closes with a "Choose one of the following
// responses" clause.
func (a *Assembler) SetChoices(levels map[string]string) {
	a.choices = levels
}

// Question returns the configured question text for a column.
func (a *Assembler) Question(code string) string {
	return a.questions[code]
}

// ResponseColumns returns the selected response columns in order.
func (a *Assembler) ResponseColumns() []string {
	return append([]string(nil), a.response...)
}

// BuildRow renders one respondent. The target must be a selected response
// column; its sentence is withheld from the preamble and its question is
// appended after the "Answer the following question:" marker.
func (a *Assembler) BuildRow(id string, row map[string]string, target string) (PromptRow, error) {
	if !a.isResponse(target) {
		return PromptRow{}, fmt.Errorf("target %q is not a selected response column", target)
	}

	pairs := make([]Pair, 0, len(a.ordered))
	for _, code := range a.ordered {
		raw := row[code]
		if a.applyRecodes {
			raw = a.book.Recode(code, raw)
		}
		phrase, err := a.book.Phrase(code, raw)
		if err != nil {
			return PromptRow{}, err
		}
		pairs = append(pairs, Pair{
			Code:     code,
			Question: a.questions[code],
			Phrase:   phrase,
			Sentence: a.sentenceFor(code, phrase),
		})
	}
	applyFragments(pairs, row)

	subst := substitutionFor(a.perspective, row[genderColumn])
	for i := range pairs {
		pairs[i].Phrase = subst.Replace(pairs[i].Phrase)
		pairs[i].Sentence = subst.Replace(pairs[i].Sentence)
	}

	rendered := PromptRow{
		RespondentID: id,
		Opener:       a.opener(),
		Pairs:        pairs,
	}
	prompt := rendered.PreambleWithout(target) + " Answer the following question: " + a.questions[target]
	if levels := a.choices[target]; levels != "" {
		prompt += " Choose one of the following responses: " + levels + "."
	}
	rendered.Prompt = prompt
	return rendered, nil
}

// sentenceFor picks the preamble sentence template for one rendered phrase.
// A phrase ending with "." is already a complete sentence and is used as-is.
// Columns without a template fall back to restating the question.
func (a *Assembler) sentenceFor(code, phrase string) string {
	if phrase == "" {
		return ""
	}
	if strings.HasSuffix(phrase, ".") {
		return phrase
	}
	if template := a.book.Sentence(code); template != "" {
		return strings.ReplaceAll(template, "{phrase}", phrase)
	}
	return fmt.Sprintf("When asked %q, {subj} answered: %s.", a.questions[code], phrase)
}

func (a *Assembler) opener() string {
	if a.perspective == spec.PerspectiveThirdPerson {
		return thirdPersonOpener
	}
	return secondPersonOpener
}

func (a *Assembler) isResponse(code string) bool {
	for _, candidate := range a.response {
		if candidate == code {
			return true
		}
	}
	return false
}
