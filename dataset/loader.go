package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a dataset from a .json, .jsonl/.ndjson or .csv file.
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset file: %w", err)
	}
	defer file.Close()

	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	return Decode(file, format)
}

// Decode reads a dataset in the given format ("json", "jsonl" or "csv").
func Decode(r io.Reader, format string) (*Dataset, error) {
	switch format {
	case "json":
		return decodeJSON(r)
	case "jsonl":
		return decodeJSONL(r)
	case "csv":
		return decodeCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".jsonl", ".ndjson":
		return "jsonl", nil
	case ".csv":
		return "csv", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func decodeJSON(r io.Reader) (*Dataset, error) {
	var records []Record
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("error decoding JSON dataset: %w", err)
	}
	return New(normalizeNumbers(records)...), nil
}

func decodeJSONL(r io.Reader) (*Dataset, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var record Record
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&record); err != nil {
			return nil, fmt.Errorf("error decoding JSONL dataset at line %d: %w", line, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading JSONL dataset: %w", err)
	}
	return New(normalizeNumbers(records)...), nil
}

func decodeCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error decoding CSV dataset: %w", err)
	}
	if len(rows) == 0 {
		return &Dataset{}, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		records = append(records, record)
	}
	// CSV keeps header order rather than the sorted union.
	return &Dataset{Columns: append([]string(nil), header...), Records: records}, nil
}

// normalizeNumbers turns json.Number values into int64 or float64.
func normalizeNumbers(records []Record) []Record {
	for _, r := range records {
		for k, v := range r {
			r[k] = normalizeValue(v)
		}
	}
	return records
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		for i := range val {
			val[i] = normalizeValue(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = normalizeValue(val[k])
		}
		return val
	default:
		return v
	}
}
