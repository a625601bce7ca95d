package dataset

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupportedFormat is returned when a file extension has no known codec.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Record is a single row of evaluation input, keyed by column name.
type Record map[string]any

// Dataset is an ordered collection of records sharing a set of columns.
type Dataset struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// New creates a Dataset from records. Columns are the sorted union of all record keys.
func New(records ...Record) *Dataset {
	ds := &Dataset{Records: records}
	ds.Columns = columnsOf(records)
	return ds
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.Records)
}

// Column returns the values of a column in record order. Missing cells are nil.
func (ds *Dataset) Column(name string) []any {
	values := make([]any, 0, ds.Len())
	for _, r := range ds.Records {
		values = append(values, r[name])
	}
	return values
}

// WithColumn sets a column on every record. The number of values must match the number of records.
func (ds *Dataset) WithColumn(name string, values []any) error {
	if len(values) != ds.Len() {
		return fmt.Errorf("column %q has %d values, dataset has %d records", name, len(values), ds.Len())
	}
	for i, r := range ds.Records {
		if r == nil {
			r = make(Record)
			ds.Records[i] = r
		}
		r[name] = values[i]
	}
	if !containsString(ds.Columns, name) {
		ds.Columns = append(ds.Columns, name)
	}
	return nil
}

func columnsOf(records []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}

func containsString(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}
