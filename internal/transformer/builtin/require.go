// Package builtin contains the cleaning steps used by the movie pipeline.
package builtin

import "movieratings/internal/records"

// Require removes any record missing a value for any of the specified fields.
type Require struct {
	Fields []string
}

// Apply returns a filtered slice containing only records that
// have all required fields present and non-empty. The input slice is reused.
func (r Require) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		ok := true
		for _, f := range r.Fields {
			if !rec.Present(f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}
