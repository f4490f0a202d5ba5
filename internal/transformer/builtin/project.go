package builtin

import "movieratings/internal/records"

// Project keeps only the listed columns on every record. Columns that are
// listed but absent from a record stay absent; Require decides what that
// means.
type Project struct {
	Columns []string
}

func (p Project) Apply(in []records.Record) []records.Record {
	keep := make(map[string]struct{}, len(p.Columns))
	for _, c := range p.Columns {
		keep[c] = struct{}{}
	}
	for _, r := range in {
		for k := range r {
			if _, ok := keep[k]; !ok {
				delete(r, k)
			}
		}
	}
	return in
}
