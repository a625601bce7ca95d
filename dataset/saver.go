package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Save writes a dataset to path, choosing the format from the file extension.
func Save(path string, ds *Dataset) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	return Encode(file, format, ds)
}

// Encode writes a dataset in the given format ("json", "jsonl" or "csv").
func Encode(w io.Writer, format string, ds *Dataset) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		records := ds.Records
		if records == nil {
			records = []Record{}
		}
		if err := encoder.Encode(records); err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		return nil
	case "jsonl":
		encoder := json.NewEncoder(w)
		for i, r := range ds.Records {
			if err := encoder.Encode(r); err != nil {
				return fmt.Errorf("error encoding record %d: %w", i, err)
			}
		}
		return nil
	case "csv":
		return encodeCSV(w, ds)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func encodeCSV(w io.Writer, ds *Dataset) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ds.Columns); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for i, r := range ds.Records {
		row := make([]string, len(ds.Columns))
		for j, name := range ds.Columns {
			row[j] = cellString(r[name])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing CSV record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any, map[string]any, []string:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	default:
		return fmt.Sprint(val)
	}
}
