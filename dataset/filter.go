package dataset

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
)

// Filter returns a new dataset holding the records for which expr is truthy.
// expr is a Starlark expression with the current record bound to `row`, e.g.
//
//	row["query"] != "" and len(row["reference"]) < 4000
func (ds *Dataset) Filter(expr string) (*Dataset, error) {
	thread := &starlark.Thread{Name: "dataset-filter"}
	kept := make([]Record, 0, ds.Len())

	for i, r := range ds.Records {
		row, err := toStarlark(map[string]any(r))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		v, err := starlark.Eval(thread, "filter", expr, starlark.StringDict{"row": row})
		if err != nil {
			return nil, fmt.Errorf("error evaluating filter on record %d: %w", i, err)
		}
		if v.Truth() {
			kept = append(kept, r)
		}
	}

	return &Dataset{Columns: append([]string(nil), ds.Columns...), Records: kept}, nil
}

func toStarlark(v any) (starlark.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlark.None, nil
	case string:
		return starlark.String(val), nil
	case bool:
		return starlark.Bool(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case float64:
		return starlark.Float(val), nil
	case []string:
		elems := make([]starlark.Value, len(val))
		for i, s := range val {
			elems[i] = starlark.String(s)
		}
		return starlark.NewList(elems), nil
	case []any:
		elems := make([]starlark.Value, 0, len(val))
		for _, item := range val {
			e, err := toStarlark(item)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return starlark.NewList(elems), nil
	case Record:
		return toStarlark(map[string]any(val))
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		dict := starlark.NewDict(len(val))
		for _, k := range keys {
			e, err := toStarlark(val[k])
			if err != nil {
				return nil, err
			}
			if err := dict.SetKey(starlark.String(k), e); err != nil {
				return nil, err
			}
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
