package survey

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// TestLoadCSV verifies a CSV file loads with header order, row order, and
// sequential respondent identifiers.
func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "survey.csv", "RESPNO,URBRUR,Q1\nGHA001,Urban,23\nGHA002,Rural,41\n")
	table, err := Load(testContext(t), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if got := table.Columns(); !reflect.DeepEqual(got, []string{"RESPNO", "URBRUR", "Q1"}) {
		t.Fatalf("unexpected columns: %v", got)
	}
	if table.ID(0) != "1" || table.ID(1) != "2" {
		t.Fatalf("unexpected ids: %q, %q", table.ID(0), table.ID(1))
	}
	if table.Value(1, "URBRUR") != "Rural" {
		t.Fatalf("unexpected value: %q", table.Value(1, "URBRUR"))
	}
}

// TestLoadTSV verifies tab-delimited files are supported.
func TestLoadTSV(t *testing.T) {
	path := writeFile(t, "survey.tsv", "RESPNO\tURBRUR\nGHA001\tUrban\n")
	table, err := Load(testContext(t), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Len() != 1 || table.Value(0, "URBRUR") != "Urban" {
		t.Fatalf("unexpected table contents")
	}
}

// TestLoadDuplicateHeader verifies duplicated header columns are rejected
// before loading.
func TestLoadDuplicateHeader(t *testing.T) {
	path := writeFile(t, "survey.csv", "RESPNO,Q1,Q1\nGHA001,1,2\n")
	_, err := Load(testContext(t), path)
	if err == nil {
		t.Fatalf("expected schema error")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Column != "Q1" {
		t.Fatalf("expected error to name Q1, got %q", schemaErr.Column)
	}
}

// TestLoadUnsupportedExtension verifies unknown file types fail fast.
func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "survey.sav", "binary")
	_, err := Load(testContext(t), path)
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

// TestLoadEmptyFile verifies empty files fail fast.
func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "survey.csv", "")
	_, err := Load(testContext(t), path)
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

// TestSelectOrder verifies selection yields demographic then response
// columns, exactly in the requested order.
func TestSelectOrder(t *testing.T) {
	path := writeFile(t, "survey.csv", "RESPNO,Q1,URBRUR,Q6C\nGHA001,23,Urban,Never\n")
	table, err := Load(testContext(t), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	selected, err := table.Select([]string{"URBRUR", "RESPNO"}, []string{"Q6C"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	want := []string{"URBRUR", "RESPNO", "Q6C"}
	if got := selected.Columns(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected columns %v, got %v", want, got)
	}
	if selected.ID(0) != "1" {
		t.Fatalf("expected ids preserved")
	}
}

// TestSelectMissingColumn verifies absent codes are reported by name.
func TestSelectMissingColumn(t *testing.T) {
	path := writeFile(t, "survey.csv", "RESPNO,URBRUR\nGHA001,Urban\n")
	table, err := Load(testContext(t), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_, err = table.Select([]string{"URBRUR"}, []string{"Q999"})
	var missingErr *MissingColumnError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if missingErr.Column != "Q999" {
		t.Fatalf("expected error to name Q999, got %q", missingErr.Column)
	}
}

// TestSelectCleansCurlyQuotes verifies typographic quotes are normalized.
func TestSelectCleansCurlyQuotes(t *testing.T) {
	path := writeFile(t, "survey.csv", "RESPNO,Q95\nGHA001,Jehovah’s Witness\n")
	table, err := Load(testContext(t), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	selected, err := table.Select([]string{"Q95"}, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := selected.Value(0, "Q95"); got != "Jehovah's Witness" {
		t.Fatalf("expected normalized apostrophe, got %q", got)
	}
}

// TestResponseLevels verifies distinct substantive answers are sorted and
// refusals excluded.
func TestResponseLevels(t *testing.T) {
	path := writeFile(t, "survey.csv", "RESPNO,Q6C\n1,Never\n2,Always\n3,Refused to Answer\n4,Never\n5,Don't know\n")
	table, err := Load(testContext(t), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	levels, err := table.ResponseLevels("Q6C")
	if err != nil {
		t.Fatalf("levels: %v", err)
	}
	if levels != "Always; Never" {
		t.Fatalf("unexpected levels %q", levels)
	}
}

// TestFilterSubstantive verifies rows with refusals or blanks are dropped.
func TestFilterSubstantive(t *testing.T) {
	path := writeFile(t, "survey.csv", "RESPNO,Q6C,Q41A\n1,Never,Yes\n2,Refused,Yes\n3,Always,\n")
	table, err := Load(testContext(t), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	filtered, err := table.FilterSubstantive("Q6C", "Q41A")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if filtered.Len() != 1 {
		t.Fatalf("expected 1 surviving row, got %d", filtered.Len())
	}
	if filtered.ID(0) != "1" {
		t.Fatalf("expected original id preserved, got %q", filtered.ID(0))
	}
}
