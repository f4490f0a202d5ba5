// Package transformer defines the record-cleaning contract. Transformers run
// in order over the whole parsed table; each may mutate records in place and
// may drop records by returning a shorter slice.
package transformer

import "movieratings/internal/records"

// Transformer applies one cleaning step to a batch of records.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs every transformer in order, feeding each the previous output.
func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
