package survey

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Load reads a delimited or Parquet survey file into a Table. The file
// extension selects the reader: .csv, .tsv, or .parquet. Every cell is
// loaded as text; rows keep file order and receive sequential respondent
// identifiers starting at 1.
func Load(ctx context.Context, path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var query string
	switch ext {
	case ".csv":
		if err := checkHeader(path, ','); err != nil {
			return nil, err
		}
		query = fmt.Sprintf("SELECT * FROM read_csv(%s, header = true, all_varchar = true, delim = ',')", quoteSQL(path))
	case ".tsv":
		if err := checkHeader(path, '\t'); err != nil {
			return nil, err
		}
		query = fmt.Sprintf("SELECT * FROM read_csv(%s, header = true, all_varchar = true, delim = '\t')", quoteSQL(path))
	case ".parquet":
		query = fmt.Sprintf("SELECT * FROM read_parquet(%s)", quoteSQL(path))
	default:
		return nil, &FormatError{Path: path, Err: fmt.Errorf("unsupported file type %q", ext)}
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	table := &Table{columns: columns}
	scanned := make([]interface{}, len(columns))
	pointers := make([]interface{}, len(columns))
	for i := range scanned {
		pointers[i] = &scanned[i]
	}
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, &FormatError{Path: path, Err: err}
		}
		row := make(map[string]string, len(columns))
		for i, code := range columns {
			row[code] = formatValue(scanned[i])
		}
		table.rows = append(table.rows, row)
		table.ids = append(table.ids, strconv.Itoa(len(table.rows)))
	}
	if err := rows.Err(); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return table, nil
}

// checkHeader reads the header row directly and rejects duplicated columns
// before DuckDB renames them.
func checkHeader(path string, delimiter rune) error {
	file, err := os.Open(path)
	if err != nil {
		return &FormatError{Path: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return &FormatError{Path: path, Err: fmt.Errorf("file is empty")}
		}
		return &FormatError{Path: path, Err: err}
	}
	seen := make(map[string]struct{}, len(header))
	for _, code := range header {
		code = strings.TrimSpace(code)
		if _, exists := seen[code]; exists {
			return &SchemaError{Column: code}
		}
		seen[code] = struct{}{}
	}
	return nil
}

// quoteSQL renders a string as a single-quoted DuckDB literal. COPY and
// table-function arguments cannot be bound as parameters.
func quoteSQL(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
