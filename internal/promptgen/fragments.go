package promptgen

import (
	"strings"

	"surveygen/internal/survey"
)

// Fragment rules merge related columns into one preamble sentence. They run
// on placeholder templates, before pronoun substitution, and only when every
// column the rule touches is selected.

func applyFragments(pairs []Pair, raw map[string]string) {
	combineMobile(pairs, raw)
	combineParty(pairs, raw)
}

// combineMobile folds phone Internet access (Q90G) into the ownership
// sentence (Q90F). The Internet answer only describes a phone the
// respondent personally owns, so on its own it reads as a non sequitur.
func combineMobile(pairs []Pair, raw map[string]string) {
	owner := pairIndex(pairs, "Q90F")
	internet := pairIndex(pairs, "Q90G")
	if owner < 0 || internet < 0 {
		return
	}
	if strings.TrimSpace(raw["Q90F"]) == "Yes (personally owns)" {
		switch strings.TrimSpace(raw["Q90G"]) {
		case "Yes (Have internet)":
			pairs[owner].Sentence = "{Subj} personally {own} a mobile phone and {poss} phone has an Internet access."
		case "No (Does not have internet access)":
			pairs[owner].Sentence = "{Subj} personally {own} a mobile phone but {poss} phone doesn't have an Internet access."
		}
	}
	pairs[internet].Sentence = ""
}

// combineParty names the party (Q89B) inside the closeness sentence (Q89A)
// when the respondent reports feeling close to one.
func combineParty(pairs []Pair, raw map[string]string) {
	closeness := pairIndex(pairs, "Q89A")
	party := pairIndex(pairs, "Q89B")
	if closeness < 0 || party < 0 {
		return
	}
	name := pairs[party].Phrase
	if strings.TrimSpace(raw["Q89A"]) == "Yes (feels close to a party)" && name != "" && !survey.IsNonSubstantive(name) {
		pairs[closeness].Sentence = "{Subj} {feel} close to " + name + "."
	}
	pairs[party].Sentence = ""
}

func pairIndex(pairs []Pair, code string) int {
	for i, pair := range pairs {
		if pair.Code == code {
			return i
		}
	}
	return -1
}
