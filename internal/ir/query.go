package ir

import "slices"

// CompiledQuery is the product of one compile call: query text plus the
// values of its named bind parameters.
//
// Parameter names are stored without the leading colon used in the text.
// Values are string or int64.
type CompiledQuery struct {
	Text   string         `json:"text"`
	Params map[string]any `json:"params"`
}

// ParamNames returns the bind names in numeric order (p1, p2, ..., p10).
func (q *CompiledQuery) ParamNames() []string {
	names := make([]string, 0, len(q.Params))
	for name := range q.Params {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return names
}

// ParamValues returns the bind values in ParamNames order.
func (q *CompiledQuery) ParamValues() []any {
	names := q.ParamNames()
	values := make([]any, len(names))
	for i, name := range names {
		values[i] = q.Params[name]
	}
	return values
}
