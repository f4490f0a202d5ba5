// Package records defines the loosely typed row shape that flows between the
// parser and the transformer chain.
package records

// Record is one parsed row keyed by normalized column name. Values start out
// as strings (or nil for empty cells) and are replaced in place by
// transformers with typed values such as float64 and int.
type Record map[string]any

// Present reports whether key holds a non-nil, non-empty value.
func (r Record) Present(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}
