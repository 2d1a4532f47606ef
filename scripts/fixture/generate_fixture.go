// Command generate_fixture writes a synthetic Afrobarometer-style survey
// file for local development and load testing. Output format follows the
// file extension: .csv or .parquet.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
)

// fixtureConfig defines the JSON config for generating a survey fixture.
type fixtureConfig struct {
	Rows int   `json:"rows"`
	Seed int64 `json:"seed"`
}

func main() {
	configPath := flag.String("config", "", "path to fixture config JSON")
	outPath := flag.String("out", "", "output survey file (.csv or .parquet)")
	flag.Parse()
	if *configPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_fixture --config <path> --out <survey file>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir output dir: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := generateFixture(ctx, *outPath, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "generate fixture: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (fixtureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureConfig{}, err
	}
	var cfg fixtureConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fixtureConfig{}, err
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 100
	}
	return cfg, nil
}

var columnLevels = map[string][]string{
	"URBRUR": {"Urban", "Rural"},
	"Q100":   {"Man", "Woman"},
	"Q6C":    {"Always", "Many times", "Several times", "Just once or twice", "Never", "Refused"},
	"Q41A":   {"Yes", "No", "Don't know"},
	"Q8":     {"Frequently", "Occasionally", "Never"},
}

var columns = []string{"RESPNO", "URBRUR", "Q1", "Q100", "Q6C", "Q41A", "Q8"}

func generateFixture(ctx context.Context, path string, cfg fixtureConfig) error {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return err
	}
	defer db.Close()

	ddl := fmt.Sprintf("CREATE TABLE survey (%s VARCHAR)", strings.Join(columns, " VARCHAR, "))
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := db.PrepareContext(ctx, "INSERT INTO survey VALUES ("+placeholders+")")
	if err != nil {
		return err
	}
	defer stmt.Close()

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := 0; i < cfg.Rows; i++ {
		values := make([]interface{}, 0, len(columns))
		for _, code := range columns {
			switch code {
			case "RESPNO":
				values = append(values, fmt.Sprintf("GHA%04d", i+1))
			case "Q1":
				values = append(values, fmt.Sprintf("%d", 18+rng.Intn(70)))
			default:
				levels := columnLevels[code]
				values = append(values, levels[rng.Intn(len(levels))])
			}
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return err
		}
	}

	format := "CSV, HEADER"
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		format = "PARQUET"
	}
	// COPY targets cannot be bound as parameters.
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	_, err = db.ExecContext(ctx, fmt.Sprintf("COPY survey TO %s (FORMAT %s)", quoted, format))
	return err
}
