package csv

import (
	"strings"
	"testing"
)

func buildCSV(n int) string {
	var sb strings.Builder
	sb.Grow(n * 48)
	sb.WriteString("Title,Genre,Rating,Year\n")
	for i := 0; i < n; i++ {
		sb.WriteString("The Dark Knight,\"Action, Crime, Drama\",9.0,2008\n")
	}
	return sb.String()
}

func BenchmarkParser_Parse(b *testing.B) {
	b.ReportAllocs()
	src := buildCSV(50_000)
	p := NewParser(Options{TrimSpace: true})
	b.SetBytes(int64(len(src)))

	for i := 0; i < b.N; i++ {
		recs, _, err := p.Parse(strings.NewReader(src))
		if err != nil {
			b.Fatal(err)
		}
		if len(recs) != 50_000 {
			b.Fatalf("got %d records", len(recs))
		}
	}
}
