package builtin

import (
	"math"
	"strconv"
	"strings"

	"movieratings/internal/records"
)

// Coerce converts string values to typed values. Values that cannot be
// parsed are replaced with nil so that a later Require step treats them as
// missing; coercion itself never fails.
type Coerce struct {
	Types map[string]string // field -> one of: float, int, string
}

func (c Coerce) Apply(in []records.Record) []records.Record {
	if len(c.Types) == 0 {
		return in
	}
	for _, r := range in {
		for field, typ := range c.Types {
			v, ok := r[field]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			switch typ {
			case "float":
				if f, ok := ParseFloat(s); ok {
					r[field] = f
				} else {
					r[field] = nil
				}
			case "int":
				if i, ok := ParseInt(s); ok {
					r[field] = i
				} else {
					r[field] = nil
				}
			case "string":
				// already string
			}
		}
	}
	return in
}

// ParseFloat parses s as a decimal float. NaN counts as unparsable; ±Inf is
// accepted so that range clamping can deal with it.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ParseInt parses s as an integer. Integral float spellings such as "2010.0"
// are accepted; fractional values are not.
func ParseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, ok := ParseFloat(s)
	if !ok || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}
