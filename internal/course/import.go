package course

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xuri/excelize/v2"
)

// ImportTable reads a course from an .xlsx or .csv table whose columns are
// answer, problems and an optional hint. A leading header row is skipped.
func ImportTable(path, name string) (Course, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	default:
		return Course{}, fmt.Errorf("unsupported table format %q", filepath.Ext(path))
	}
	if err != nil {
		return Course{}, err
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	c := Course{Name: name, Entries: rowsToEntries(rows)}
	if err := Validate(c); err != nil {
		return Course{}, fmt.Errorf("invalid table %s: %w", path, err)
	}
	return c, nil
}

func rowsToEntries(rows [][]string) []Entry {
	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		answer := strings.TrimSpace(row[0])
		if i == 0 && strings.EqualFold(answer, "answer") {
			continue
		}
		problems := strings.Join(strings.Fields(row[1]), "")
		if answer == "" || problems == "" {
			continue
		}
		e := Entry{Answer: strings.ToLower(answer), Problems: problems}
		if len(row) > 2 {
			e.Hint = strings.TrimSpace(row[2])
		}
		entries = append(entries, e)
	}
	return entries
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only table.
			_ = cerr
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only workbook.
			_ = cerr
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// WriteFile stores a course as TOML, replacing path atomically.
func WriteFile(path string, c Course) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create course dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "course-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp course: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := toml.NewEncoder(tmpFile).Encode(c); err != nil {
		return fmt.Errorf("failed to encode course: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close course: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write course: %w", err)
	}
	return nil
}
