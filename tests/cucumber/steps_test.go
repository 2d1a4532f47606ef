package cucumber

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"surveygen/internal/cli"

	"github.com/cucumber/godog"
)

type featureState struct {
	workDir    string
	previousWD string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a workspace with a valid configuration$`, state.aWorkspaceWithValidConfig)
	ctx.Step(`^the question list is missing an entry$`, state.theQuestionListIsMissingAnEntry)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the error mentions "([^"]+)"$`, state.theErrorMentions)
	ctx.Step(`^every generated prompt opens with "([^"]+)"$`, state.everyPromptOpensWith)
	ctx.Step(`^the files "([^"]+)" and "([^"]+)" are identical$`, state.filesAreIdentical)
}

func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.workDir = ""
	s.previousWD = ""
}

func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}

const surveyFixture = "RESPNO,URBRUR,Q100,Q6C,Q41A\n" +
	"GHA001,Urban,Woman,Never,Yes\n" +
	"GHA002,Rural,Man,Refused,No\n" +
	"GHA003,Urban,Man,Always,Yes\n"

const configFixture = `version: 1
input: survey.csv
demographic_columns:
  - RESPNO
  - URBRUR
  - Q100
response_columns:
  - Q6C
  - Q41A
question_text:
  - "What is your respondent number?"
  - "Do you live in an urban or rural area?"
  - "What is your gender?"
  - "How often have you gone without food?"
  - "Have you had contact with a public clinic?"
perspective: second_person
seed: 7
output:
  dir: out
`

func (s *featureState) aWorkspaceWithValidConfig() error {
	dir, err := os.MkdirTemp("", "surveygen-feature-*")
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	s.workDir = dir

	if err := os.WriteFile(filepath.Join(dir, "survey.csv"), []byte(surveyFixture), 0o644); err != nil {
		return fmt.Errorf("write survey: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".surveygen.yml"), []byte(configFixture), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	s.previousWD = wd
	return os.Chdir(dir)
}

func (s *featureState) theQuestionListIsMissingAnEntry() error {
	path := filepath.Join(s.workDir, ".surveygen.yml")
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	broken := strings.Replace(string(contents),
		"  - \"Have you had contact with a public clinic?\"\n", "", 1)
	return os.WriteFile(path, []byte(broken), 0o644)
}

func (s *featureState) iRunCommand(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 || args[0] != "surveygen" {
		return fmt.Errorf("commands must start with surveygen, got %q", line)
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args[1:], &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d (stderr: %s)", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected a non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	for _, row := range table.Rows {
		name := strings.TrimSpace(row.Cells[0].Value)
		if !strings.Contains(s.stdout.String(), name) {
			return fmt.Errorf("output does not list %q: %s", name, s.stdout.String())
		}
	}
	return nil
}

func (s *featureState) theOutputContains(expected string) error {
	if !strings.Contains(s.stdout.String(), expected) {
		return fmt.Errorf("output does not contain %q: %s", expected, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorMentions(expected string) error {
	if !strings.Contains(s.stderr.String(), expected) {
		return fmt.Errorf("stderr does not mention %q: %s", expected, s.stderr.String())
	}
	return nil
}

func (s *featureState) everyPromptOpensWith(prefix string) error {
	file, err := os.Open(filepath.Join(s.workDir, "out", "prompts.csv"))
	if err != nil {
		return fmt.Errorf("open prompts: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return fmt.Errorf("read prompts: %w", err)
	}
	if len(records) < 2 {
		return fmt.Errorf("expected at least one prompt row")
	}
	for _, record := range records[1:] {
		if !strings.HasPrefix(record[2], prefix) {
			return fmt.Errorf("prompt does not open with %q: %q", prefix, record[2])
		}
	}
	return nil
}

func (s *featureState) filesAreIdentical(first, second string) error {
	a, err := os.ReadFile(filepath.Join(s.workDir, first))
	if err != nil {
		return fmt.Errorf("read %s: %w", first, err)
	}
	b, err := os.ReadFile(filepath.Join(s.workDir, second))
	if err != nil {
		return fmt.Errorf("read %s: %w", second, err)
	}
	if !bytes.Equal(a, b) {
		return fmt.Errorf("%s and %s differ", first, second)
	}
	return nil
}
