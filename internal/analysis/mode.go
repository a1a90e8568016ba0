package analysis

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrEmptyInput is returned when a statistic is requested over no values.
var ErrEmptyInput = errors.New("no values to analyze")

// Modes returns every distinct value that occurs the maximum number of times,
// sorted ascending. Ties are all returned; none is picked over another.
func Modes[T cmp.Ordered](values []T) ([]T, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	counts := make(map[T]int, len(values))
	best := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	out := make([]T, 0, 1)
	for v, n := range counts {
		if n == best {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Describe renders a mode set as a sentence, e.g.
// "The most common start station is Canal St" or
// "The most common trip is a tie between A to B and C to D".
func Describe[T any](label string, modes []T) string {
	if len(modes) == 1 {
		return fmt.Sprintf("The most common %s is %v", label, modes[0])
	}
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = fmt.Sprint(m)
	}
	return fmt.Sprintf("The most common %s is a tie between %s", label, strings.Join(parts, " and "))
}

// DescribeModes computes the mode set and renders it in one step.
func DescribeModes[T cmp.Ordered](label string, values []T) (string, error) {
	modes, err := Modes(values)
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	return Describe(label, modes), nil
}

// HourRange formats a start hour as "HH:00 - HH:59".
func HourRange(hour int) string {
	return fmt.Sprintf("%02d:00 - %02d:59", hour, hour)
}
