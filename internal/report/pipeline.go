// Package report sequences the trip statistics into the printed report.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/KaramelBytes/bikeshare-cli/internal/analysis"
	"github.com/KaramelBytes/bikeshare-cli/internal/tripdata"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NotSpecified replaces a missing gender.
const NotSpecified = "Not specified"

// Separator ends every stage of the report.
var Separator = strings.Repeat("-", 40)

// Prompter is what the pipeline needs from the person at the keyboard.
type Prompter interface {
	analysis.Prompter
	Pause() error
}

// Result holds the structured outputs of one run.
type Result struct {
	RunID      string
	Trips      int
	Refinement *analysis.Refinement
	Buckets    []analysis.BucketMean
}

// Pipeline prints the statistics for one record set, stage by stage.
type Pipeline struct {
	Out    io.Writer
	Prompt Prompter
	Log    *zap.SugaredLogger
	RunID  string
}

type stage struct {
	name string
	run  func(*errWriter, *tripdata.Set, *Result) error
}

// Run prints every stage for set. An empty set fails with
// analysis.ErrEmptyInput before anything is printed. A stage error stops the
// run; the output printed up to that point is left in place.
func (p *Pipeline) Run(ctx context.Context, set *tripdata.Set) (*Result, error) {
	log := p.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	res := &Result{RunID: p.RunID, Trips: set.Len()}
	if set.Len() == 0 {
		return res, fmt.Errorf("%s (%s): %w", set.City, set.Criteria, analysis.ErrEmptyInput)
	}
	w := &errWriter{w: p.Out}
	stages := []stage{
		{"time stats", p.timeStats},
		{"station stats", p.stationStats},
		{"trip duration stats", p.durationStats},
		{"user stats", p.userStats},
	}
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		started := time.Now()
		if err := s.run(w, set, res); err != nil {
			log.Warnw("stage failed", "run", p.RunID, "stage", s.name, "error", err)
			return res, fmt.Errorf("%s: %w", s.name, err)
		}
		if w.err != nil {
			return res, fmt.Errorf("write %s: %w", s.name, w.err)
		}
		log.Debugw("stage finished", "run", p.RunID, "stage", s.name, "took", time.Since(started))
	}
	return res, nil
}

func (p *Pipeline) finish(w *errWriter, started time.Time) error {
	w.printf("\nThis took %.4f seconds.\n", time.Since(started).Seconds())
	if err := p.Prompt.Pause(); err != nil {
		return err
	}
	w.println(Separator)
	return nil
}

func (p *Pipeline) timeStats(w *errWriter, set *tripdata.Set, _ *Result) error {
	w.println("\nCalculating The Most Frequent Times of Travel...\n")
	started := time.Now()

	month, err := analysis.DescribeModes("month to travel", set.Strings(func(t tripdata.Trip) string { return t.Month }))
	if err != nil {
		return err
	}
	w.println(month)
	day, err := analysis.DescribeModes("day of the week to travel", set.Strings(func(t tripdata.Trip) string { return t.Weekday }))
	if err != nil {
		return err
	}
	w.println(day)

	hours := make([]int, set.Len())
	for i, t := range set.Trips {
		hours[i] = t.Hour
	}
	modes, err := analysis.Modes(hours)
	if err != nil {
		return fmt.Errorf("hour of the day to start a trip: %w", err)
	}
	ranges := make([]string, len(modes))
	for i, h := range modes {
		ranges[i] = analysis.HourRange(h)
	}
	w.println(analysis.Describe("hour of the day to start a trip", ranges))
	return p.finish(w, started)
}

func (p *Pipeline) stationStats(w *errWriter, set *tripdata.Set, _ *Result) error {
	w.println("\nCalculating The Most Popular Stations and Trip...\n")
	started := time.Now()
	fields := []struct {
		label string
		get   func(tripdata.Trip) string
	}{
		{"start station", func(t tripdata.Trip) string { return t.StartStation }},
		{"end station", func(t tripdata.Trip) string { return t.EndStation }},
		{"trip", func(t tripdata.Trip) string { return t.Pair }},
	}
	for _, f := range fields {
		line, err := analysis.DescribeModes(f.label, set.Strings(f.get))
		if err != nil {
			return err
		}
		w.println(line)
	}
	return p.finish(w, started)
}

func (p *Pipeline) durationStats(w *errWriter, set *tripdata.Set, _ *Result) error {
	w.println("\nCalculating Trip Duration...\n")
	started := time.Now()
	d := set.Durations()
	w.printf("Total travel time is %s\n", analysis.FormatDuration(floats.Sum(d)))
	w.printf("Mean travel time is %s\n", analysis.FormatDuration(stat.Mean(d, nil)))
	return p.finish(w, started)
}

func (p *Pipeline) userStats(w *errWriter, set *tripdata.Set, res *Result) error {
	w.println("\nCalculating User Stats...\n")
	started := time.Now()

	w.println("User types are broken down as follows:")
	w.println(analysis.RenderTable("User Type", "Count",
		analysis.ValueCounts(set.Strings(func(t tripdata.Trip) string { return t.UserType }))))

	if !set.Schema.HasDemographics() {
		w.println("Unfortunately, this dataset does not contain information about gender or age.")
		w.println(Separator)
		return nil
	}

	genders := set.Strings(func(t tripdata.Trip) string {
		if t.Gender == "" {
			return NotSpecified
		}
		return t.Gender
	})
	w.println("\n\nThe gender of users is divided as follows:")
	w.println(analysis.RenderTable("Gender", "Count", analysis.ValueCounts(genders)))
	// The birth year section continues this stage, so no separator yet.
	w.printf("\nThis took %.4f seconds.\n", time.Since(started).Seconds())
	if err := p.Prompt.Pause(); err != nil {
		return err
	}
	return p.birthYearStats(w, set, res)
}

func (p *Pipeline) birthYearStats(w *errWriter, set *tripdata.Set, res *Result) error {
	idx := analysis.NewYearIndex(set.BirthYears())
	if idx.Len() == 0 {
		w.println("No trips in this selection record a birth year; skipping age analysis.")
		w.println(Separator)
		return nil
	}
	refiner := &analysis.Refiner{Prompt: p.Prompt, Out: w, Log: p.Log}
	ref, err := refiner.Refine(idx)
	if err != nil {
		var nre *analysis.NoRecordsInRangeError
		if errors.As(err, &nre) {
			w.printf("No birth years remain between %d and %d; the age breakdown cannot be computed.\n", nre.Floor, nre.Ceiling)
		}
		return err
	}
	res.Refinement = ref
	modes, err := analysis.Modes(ref.Index.Years())
	if err != nil {
		return err
	}
	w.println(analysis.Describe("year of birth", modes))
	if err := p.Prompt.Pause(); err != nil {
		return err
	}

	w.println("Calculating average trip duration by year of birth.")
	ids := ref.Index.IDs()
	samples := make([]analysis.YearSample, len(ids))
	for i, id := range ids {
		t := set.Trips[id]
		samples[i] = analysis.YearSample{Year: t.BirthYear, Duration: t.Duration}
	}
	means, err := analysis.AggregateDecades(samples, ref.Min, ref.Max)
	if err != nil {
		return err
	}
	res.Buckets = means
	w.println(analysis.RenderTable("Birth Year", "Average Trip Duration", analysis.DecadeRows(means)))
	w.println(Separator)
	return nil
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	var n int
	n, ew.err = ew.w.Write(b)
	return n, ew.err
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
