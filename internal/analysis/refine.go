package analysis

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"
)

// ErrNoValidBirthYears indicates the record set has no birth year above zero.
var ErrNoValidBirthYears = errors.New("no valid birth years in record set")

// NoRecordsInRangeError reports a user-supplied bound that excludes every record.
type NoRecordsInRangeError struct {
	Floor   int
	Ceiling int
}

func (e *NoRecordsInRangeError) Error() string {
	return fmt.Sprintf("no records with birth year between %d and %d", e.Floor, e.Ceiling)
}

// YearIndex maps birth years to the ids of the records born in them. A
// narrowed index shares the id lists of its parent.
type YearIndex struct {
	years []int // distinct, ascending
	ids   map[int][]int
	count int
}

// NewYearIndex indexes years by position: years[i] is the birth year of
// record i. Years at or below zero are unknown and left out.
func NewYearIndex(years []int) *YearIndex {
	x := &YearIndex{ids: make(map[int][]int)}
	for id, y := range years {
		if y <= 0 {
			continue
		}
		if _, ok := x.ids[y]; !ok {
			x.years = append(x.years, y)
		}
		x.ids[y] = append(x.ids[y], id)
		x.count++
	}
	sort.Ints(x.years)
	return x
}

// Len returns the number of indexed records.
func (x *YearIndex) Len() int { return x.count }

// Min returns the earliest indexed year. It panics on an empty index.
func (x *YearIndex) Min() int { return x.years[0] }

// Max returns the most recent indexed year. It panics on an empty index.
func (x *YearIndex) Max() int { return x.years[len(x.years)-1] }

// Narrow returns the records with years in [lo, hi].
func (x *YearIndex) Narrow(lo, hi int) *YearIndex {
	i := sort.SearchInts(x.years, lo)
	j := sort.Search(len(x.years), func(k int) bool { return x.years[k] > hi })
	if j < i {
		j = i
	}
	n := &YearIndex{years: x.years[i:j], ids: x.ids}
	for _, y := range n.years {
		n.count += len(x.ids[y])
	}
	return n
}

// IDs returns the indexed record ids in ascending order.
func (x *YearIndex) IDs() []int {
	out := make([]int, 0, x.count)
	for _, y := range x.years {
		out = append(out, x.ids[y]...)
	}
	sort.Ints(out)
	return out
}

// Years returns one year per indexed record, grouped by year.
func (x *YearIndex) Years() []int {
	out := make([]int, 0, x.count)
	for _, y := range x.years {
		for range x.ids[y] {
			out = append(out, y)
		}
	}
	return out
}

// Prompter is the human side of a refinement: a yes/no confirmation and an
// integer answer with optional bounds. Implementations re-prompt on invalid
// input themselves.
type Prompter interface {
	Confirm(question string) (bool, error)
	AskInt(question string, lower, upper *int) (int, error)
}

// Refinement is the accepted birth year range and the records inside it.
type Refinement struct {
	Min, Max    int
	Index       *YearIndex
	MinAdjusted bool
	MaxAdjusted bool
}

// Refiner narrows the birth year range with one sanity-check round for the
// earliest year and one for the most recent year.
type Refiner struct {
	Prompt Prompter
	Out    io.Writer
	Log    *zap.SugaredLogger
}

// Refine runs both sanity-check rounds over idx. Replacement bounds are
// re-derived from the records that remain, so the result is always a year
// that occurs in the data.
func (r *Refiner) Refine(idx *YearIndex) (*Refinement, error) {
	if idx == nil || idx.Len() == 0 {
		return nil, ErrNoValidBirthYears
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	res := &Refinement{Index: idx}

	earliest := idx.Min()
	fmt.Fprintf(out, "The earliest year of birth is %d.\n", earliest)
	ok, err := r.Prompt.Confirm("Does this value make sense Y/N?")
	if err != nil {
		return nil, fmt.Errorf("confirm earliest birth year: %w", err)
	}
	if !ok {
		observed := earliest
		floor, err := r.Prompt.AskInt("What would you accept as the earliest possible birth year?", &observed, nil)
		if err != nil {
			return nil, fmt.Errorf("ask earliest birth year: %w", err)
		}
		res.Index = res.Index.Narrow(floor, res.Index.Max())
		if res.Index.Len() == 0 {
			return nil, &NoRecordsInRangeError{Floor: floor, Ceiling: idx.Max()}
		}
		earliest = res.Index.Min()
		res.MinAdjusted = true
		log.Debugw("earliest birth year refined", "floor", floor, "accepted", earliest, "records", res.Index.Len())
		fmt.Fprintf(out, "The earliest birth year in the data is %d\n", earliest)
	}

	latest := res.Index.Max()
	fmt.Fprintf(out, "The most recent year of birth is %d.\n", latest)
	ok, err = r.Prompt.Confirm("Does this value make sense Y/N?")
	if err != nil {
		return nil, fmt.Errorf("confirm most recent birth year: %w", err)
	}
	if !ok {
		observed := latest
		ceiling, err := r.Prompt.AskInt("What would you accept as the most recent possible birth year?", nil, &observed)
		if err != nil {
			return nil, fmt.Errorf("ask most recent birth year: %w", err)
		}
		narrowed := res.Index.Narrow(earliest, ceiling)
		if narrowed.Len() == 0 {
			return nil, &NoRecordsInRangeError{Floor: earliest, Ceiling: ceiling}
		}
		res.Index = narrowed
		latest = narrowed.Max()
		res.MaxAdjusted = true
		log.Debugw("most recent birth year refined", "ceiling", ceiling, "accepted", latest, "records", narrowed.Len())
		fmt.Fprintf(out, "The most recent plausible birth year is %d\n", latest)
	}

	res.Min, res.Max = earliest, latest
	return res, nil
}
