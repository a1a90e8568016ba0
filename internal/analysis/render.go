package analysis

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Row is one key/value line of a two-column table.
type Row struct {
	Key   string
	Value string
}

// CountRow builds a Row from a label and an integer count.
func CountRow(key string, n int) Row {
	return Row{Key: key, Value: fmt.Sprint(n)}
}

// ValueCounts tallies values and returns one row per distinct value, most
// frequent first. Equal counts are ordered by value.
func ValueCounts(values []string) []Row {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] == counts[keys[j]] {
			return keys[i] < keys[j]
		}
		return counts[keys[i]] > counts[keys[j]]
	})
	rows := make([]Row, len(keys))
	for i, k := range keys {
		rows[i] = CountRow(k, counts[k])
	}
	return rows
}

// RenderTable draws rows as a bordered two-column ASCII table. Keys are
// left-justified and values right-justified; rows keep the order given.
func RenderTable(left, right string, rows []Row) string {
	w1 := utf8.RuneCountInString(left)
	w2 := utf8.RuneCountInString(right)
	for _, r := range rows {
		w1 = max(w1, utf8.RuneCountInString(r.Key))
		w2 = max(w2, utf8.RuneCountInString(r.Value))
	}
	rule := strings.Repeat("-", 2+w1+3+w2+2)

	var b strings.Builder
	b.WriteString(rule)
	b.WriteString("\n| " + padRight(left, w1) + " | " + padRight(right, w2) + " |")
	b.WriteString("\n" + rule)
	for _, r := range rows {
		b.WriteString("\n| " + padRight(r.Key, w1) + " | " + padLeft(r.Value, w2) + " |")
	}
	b.WriteString("\n" + rule)
	return b.String()
}

func padRight(s string, w int) string {
	if n := utf8.RuneCountInString(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func padLeft(s string, w int) string {
	if n := utf8.RuneCountInString(s); n < w {
		return strings.Repeat(" ", w-n) + s
	}
	return s
}
