package promptgen

import (
	"strings"

	"surveygen/internal/spec"
)

// genderColumn is the survey column consulted for third-person pronouns.
const genderColumn = "Q100"

// substitutionFor builds the placeholder replacer for one row. Second
// person always speaks to the respondent; third person conjugates around
// the respondent's reported gender and falls back to they/them when the
// gender is unknown.
func substitutionFor(perspective, genderRaw string) *strings.Replacer {
	if perspective == spec.PerspectiveThirdPerson {
		switch strings.TrimSpace(genderRaw) {
		case "Woman":
			return thirdPerson("She", "Her")
		case "Man":
			return thirdPerson("He", "His")
		default:
			return pluralPerson("They", "Their")
		}
	}
	return pluralPerson("You", "Your")
}

func thirdPerson(nominative, possessive string) *strings.Replacer {
	return strings.NewReplacer(
		"{Subj}", nominative,
		"{subj}", strings.ToLower(nominative),
		"{Poss}", possessive,
		"{poss}", strings.ToLower(possessive),
		"{are}", "is",
		"{have}", "has",
		"{do}", "does",
		"{dont}", "doesn't",
		"{own}", "owns",
		"{feel}", "feels",
		"{live}", "lives",
		"{speak}", "speaks",
		"{identify}", "identifies",
		"{get}", "gets",
		"{discuss}", "discusses",
		"{describe}", "describes",
	)
}

func pluralPerson(nominative, possessive string) *strings.Replacer {
	return strings.NewReplacer(
		"{Subj}", nominative,
		"{subj}", strings.ToLower(nominative),
		"{Poss}", possessive,
		"{poss}", strings.ToLower(possessive),
		"{are}", "are",
		"{have}", "have",
		"{do}", "do",
		"{dont}", "don't",
		"{own}", "own",
		"{feel}", "feel",
		"{live}", "live",
		"{speak}", "speak",
		"{identify}", "identify",
		"{get}", "get",
		"{discuss}", "discuss",
		"{describe}", "describe",
	)
}
