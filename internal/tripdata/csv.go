package tripdata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	colStartTime    = "start time"
	colEndTime      = "end time"
	colDuration     = "trip duration"
	colStartStation = "start station"
	colEndStation   = "end station"
	colUserType     = "user type"
	colGender       = "gender"
	colBirthYear    = "birth year"
)

var requiredColumns = []string{colStartTime, colDuration, colStartStation, colEndStation, colUserType}

type csvLoader struct{}

func (csvLoader) CanLoad(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".csv")
}

func (csvLoader) Load(ctx context.Context, city, path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	set, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	set.City = city
	set.Source = path
	return set, nil
}

// ReadCSV parses a trip log with a header row. Column names are matched
// case-insensitively; Gender and Birth Year are optional.
func ReadCSV(ctx context.Context, r io.Reader) (*Set, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Set{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}
	col := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	_, hasGender := idx[colGender]
	_, hasBirth := idx[colBirthYear]
	set := &Set{Schema: Schema{HasGender: hasGender, HasBirthYear: hasBirth}}
	for row := 1; ; row++ {
		if row%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		var t Trip
		if t.StartTime, err = parseTime(col(rec, colStartTime)); err != nil {
			return nil, fmt.Errorf("row %d: start time: %w", row, err)
		}
		if v := col(rec, colEndTime); v != "" {
			if t.EndTime, err = parseTime(v); err != nil {
				return nil, fmt.Errorf("row %d: end time: %w", row, err)
			}
		}
		if t.Duration, err = strconv.ParseFloat(col(rec, colDuration), 64); err != nil {
			return nil, fmt.Errorf("row %d: trip duration: %w", row, err)
		}
		t.StartStation = col(rec, colStartStation)
		t.EndStation = col(rec, colEndStation)
		t.UserType = col(rec, colUserType)
		t.Gender = col(rec, colGender)
		if t.BirthYear, err = parseBirthYear(col(rec, colBirthYear)); err != nil {
			return nil, fmt.Errorf("row %d: birth year: %w", row, err)
		}
		set.Trips = append(set.Trips, t)
	}
	return set, nil
}

// parseBirthYear accepts "1989" and "1989.0"; empty means unknown (0).
func parseBirthYear(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("birth year %q is not a number", s)
	}
	return int(f), nil
}

var timeLayouts = []string{
	"2006-01-02 15:04:05", time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04:05",
	"1/2/2006 15:04", "1/2/2006 15:04:05", "2006/01/02 15:04:05",
}

func parseTime(s string) (time.Time, error) {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
