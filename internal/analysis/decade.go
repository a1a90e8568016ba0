package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// BucketWidth is the span of years covered by one decade bucket.
const BucketWidth = 10

// Bucket is an inclusive span of birth years.
type Bucket struct {
	Start, End int
}

// Label renders the bucket as "1980 - 1989".
func (b Bucket) Label() string { return fmt.Sprintf("%d - %d", b.Start, b.End) }

// Contains reports whether year lies within the bucket.
func (b Bucket) Contains(year int) bool { return year >= b.Start && year <= b.End }

// DecadeBuckets tiles [min, max] with ten-year buckets anchored at min,
// not at a calendar decade.
func DecadeBuckets(min, max int) ([]Bucket, error) {
	if min > max {
		return nil, fmt.Errorf("invalid birth year range %d..%d", min, max)
	}
	var out []Bucket
	for start := min; start <= max; start += BucketWidth {
		out = append(out, Bucket{Start: start, End: start + BucketWidth - 1})
	}
	return out, nil
}

// YearSample pairs a birth year with a trip duration in seconds.
type YearSample struct {
	Year     int
	Duration float64
}

// BucketMean is the mean trip duration of one bucket. Valid is false when no
// sample fell in the bucket, in which case Mean is meaningless.
type BucketMean struct {
	Bucket
	Count int
	Mean  float64
	Valid bool
}

// AggregateDecades groups samples into decade buckets over [min, max] and
// computes the mean duration per bucket. Samples outside [min, max] are
// ignored. Buckets are returned in ascending order, including empty ones.
func AggregateDecades(samples []YearSample, min, max int) ([]BucketMean, error) {
	buckets, err := DecadeBuckets(min, max)
	if err != nil {
		return nil, err
	}
	durations := make([][]float64, len(buckets))
	for _, s := range samples {
		if s.Year < min || s.Year > max {
			continue
		}
		i := (s.Year - min) / BucketWidth
		durations[i] = append(durations[i], s.Duration)
	}
	out := make([]BucketMean, len(buckets))
	for i, b := range buckets {
		out[i] = BucketMean{Bucket: b, Count: len(durations[i])}
		if len(durations[i]) > 0 {
			out[i].Mean = stat.Mean(durations[i], nil)
			out[i].Valid = true
		}
	}
	return out, nil
}

// NoTrips is the placeholder shown for a bucket without trips.
const NoTrips = "no trips"

// DecadeRows renders bucket means as table rows, formatting valid means with
// FormatDuration and empty buckets with NoTrips.
func DecadeRows(means []BucketMean) []Row {
	rows := make([]Row, len(means))
	for i, m := range means {
		v := NoTrips
		if m.Valid {
			v = FormatDuration(m.Mean)
		}
		rows[i] = Row{Key: m.Label(), Value: v}
	}
	return rows
}
