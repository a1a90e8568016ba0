package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/bikeshare-cli/internal/analysis"
	"github.com/KaramelBytes/bikeshare-cli/internal/tripdata"
)

// DefaultPageSize is the number of raw rows shown per page.
const DefaultPageSize = 5

const timeLayout = "2006-01-02 15:04:05"

// Confirmer answers yes/no questions.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// PageRaw prints the trips of set, size at a time, asking after each page
// whether to continue. It returns the number of trips shown.
func PageRaw(out io.Writer, ask Confirmer, set *tripdata.Set, size int) (int, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	w := &errWriter{w: out}
	shown := 0
	for shown < set.Len() {
		end := min(shown+size, set.Len())
		for i := shown; i < end; i++ {
			w.println(analysis.RenderTable("Field", fmt.Sprintf("Row %d", i), RawRows(set.Trips[i], set.Schema)))
			w.println("")
		}
		shown = end
		if w.err != nil {
			return shown, w.err
		}
		if shown == set.Len() {
			w.println("There are no further rows to display")
			break
		}
		more, err := ask.Confirm("Continue Y/N?")
		if err != nil {
			return shown, err
		}
		if !more {
			break
		}
	}
	return shown, w.err
}

// RawRows lists the stored columns of one trip.
func RawRows(t tripdata.Trip, schema tripdata.Schema) []analysis.Row {
	rows := []analysis.Row{
		{Key: "Start Time", Value: t.StartTime.Format(timeLayout)},
		{Key: "End Time", Value: formatTime(t)},
		{Key: "Trip Duration", Value: strconv.FormatFloat(t.Duration, 'f', -1, 64)},
		{Key: "Start Station", Value: t.StartStation},
		{Key: "End Station", Value: t.EndStation},
		{Key: "User Type", Value: t.UserType},
	}
	if schema.HasGender {
		rows = append(rows, analysis.Row{Key: "Gender", Value: t.Gender})
	}
	if schema.HasBirthYear {
		by := ""
		if t.BirthYear > 0 {
			by = strconv.Itoa(t.BirthYear)
		}
		rows = append(rows, analysis.Row{Key: "Birth Year", Value: by})
	}
	return rows
}

func formatTime(t tripdata.Trip) string {
	if t.EndTime.IsZero() {
		return ""
	}
	return t.EndTime.Format(timeLayout)
}
