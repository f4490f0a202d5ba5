package builtin

import "movieratings/internal/records"

// Clamp bounds a float64 field into [Min, Max]. Non-float values are left
// alone.
type Clamp struct {
	Field    string
	Min, Max float64
}

func (c Clamp) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		f, ok := r[c.Field].(float64)
		if !ok {
			continue
		}
		switch {
		case f < c.Min:
			r[c.Field] = c.Min
		case f > c.Max:
			r[c.Field] = c.Max
		}
	}
	return in
}
