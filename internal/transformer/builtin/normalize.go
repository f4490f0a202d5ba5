package builtin

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"movieratings/internal/records"
)

// nbspace is U+00A0, which spreadsheet exports like to leave around values.
const nbspace = "\u00a0"

// Normalize trims surrounding whitespace from every string value. It also
// rewrites the interior of the value: every NBSP, not only leading or
// trailing ones, becomes a plain space, and the text is folded to Unicode NFC
// so that visually identical genre labels group together. Titles and genres
// are therefore written out in that normalized form.
type Normalize struct{}

func (Normalize) Apply(in []records.Record) []records.Record {
	t := transform.Chain(
		runes.Map(func(r rune) rune {
			if r == '\u00a0' {
				return ' '
			}
			return r
		}),
		norm.NFC,
	)
	for _, r := range in {
		for k, v := range r {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if out, _, err := transform.String(t, s); err == nil {
				s = out
			}
			r[k] = strings.TrimSpace(s)
		}
	}
	return in
}
