package templates

import "strings"

// Rail pairs a binary outcome with the label a model is asked to answer with.
type Rail struct {
	Value bool
	Label string
}

// RailsMap is an ordered mapping from binary outcomes to rail labels, true first.
type RailsMap []Rail

// NewRailsMap builds the map for a positive and a negative label.
func NewRailsMap(positive, negative string) RailsMap {
	return RailsMap{
		{Value: true, Label: positive},
		{Value: false, Label: negative},
	}
}

// Rails returns the labels in map order.
func (m RailsMap) Rails() []string {
	rails := make([]string, 0, len(m))
	for _, r := range m {
		rails = append(rails, r.Label)
	}
	return rails
}

// Label returns the label for a binary outcome, or "" if the map has none.
func (m RailsMap) Label(value bool) string {
	for _, r := range m {
		if r.Value == value {
			return r.Label
		}
	}
	return ""
}

// Value maps a label back to its binary outcome. Matching ignores case.
func (m RailsMap) Value(label string) (bool, bool) {
	for _, r := range m {
		if strings.EqualFold(r.Label, label) {
			return r.Value, true
		}
	}
	return false, false
}
