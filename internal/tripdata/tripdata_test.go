package tripdata

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var chicagoRows = []string{
	",Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year",
	"1,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0",
	"2,2017-05-25 18:19:03,2017-05-25 18:45:53,1610.5,Theater on the Lake,Sheffield Ave & Waveland Ave,Subscriber,Female,",
	"3,2017-01-04 08:27:49,2017-01-04 08:34:45,416,May St & Taylor St,Wood St & Taylor St,Customer,,1981.0",
	"4,2017-03-06 13:49:38,2017-03-06 13:55:28,350,Christiana Ave & Lawrence Ave,St. Louis Ave & Balmoral Ave,Subscriber,Male,1986.0",
}

var washingtonRows = []string{
	",Start Time,End Time,Trip Duration,Start Station,End Station,User Type",
	"1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber",
	"482740,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Subscriber",
}

func writeCSV(t *testing.T, dir, name string, rows []string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(rows, "\n")+"\n"), 0o644))
	return p
}

func TestReadCSV(t *testing.T) {
	set, err := ReadCSV(context.Background(), strings.NewReader(strings.Join(chicagoRows, "\n")))
	require.NoError(t, err)
	require.Equal(t, 4, set.Len())
	assert.True(t, set.Schema.HasDemographics())

	first := set.Trips[0]
	assert.Equal(t, 321.0, first.Duration)
	assert.Equal(t, "Wood St & Hubbard St", first.StartStation)
	assert.Equal(t, "Male", first.Gender)
	assert.Equal(t, 1992, first.BirthYear)
	assert.Equal(t, 0, set.Trips[1].BirthYear)
	assert.Equal(t, "", set.Trips[2].Gender)
}

func TestReadCSVWithoutDemographics(t *testing.T) {
	set, err := ReadCSV(context.Background(), strings.NewReader(strings.Join(washingtonRows, "\n")))
	require.NoError(t, err)
	assert.False(t, set.Schema.HasGender)
	assert.False(t, set.Schema.HasBirthYear)
	assert.False(t, set.Schema.HasDemographics())
	assert.Equal(t, []int{0, 0}, set.BirthYears())
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(context.Background(), strings.NewReader("Start Time,Trip Duration\n"))
	assert.ErrorContains(t, err, "missing column")

	bad := chicagoRows[0] + "\n1,not a time,,10,A,B,Subscriber,,\n"
	_, err = ReadCSV(context.Background(), strings.NewReader(bad))
	assert.ErrorContains(t, err, "row 1: start time")

	empty, err := ReadCSV(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestLoadFileDerivesFields(t *testing.T) {
	p := writeCSV(t, t.TempDir(), "chicago.csv", chicagoRows)
	set, err := LoadFile(context.Background(), "chicago", p)
	require.NoError(t, err)
	first := set.Trips[0]
	assert.Equal(t, "June", first.Month)
	assert.Equal(t, "Friday", first.Weekday)
	assert.Equal(t, 15, first.Hour)
	assert.Equal(t, "Wood St & Hubbard St to Damen Ave & Chicago Ave", first.Pair)
	assert.Equal(t, "chicago", set.City)
	assert.Equal(t, p, set.Source)
}

func TestLoadFileUnsupported(t *testing.T) {
	p := filepath.Join(t.TempDir(), "trips.xlsx")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	_, err := LoadFile(context.Background(), "chicago", p)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = LoadFile(context.Background(), "chicago", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria("june", "")
	require.NoError(t, err)
	assert.Equal(t, Criteria{Month: "June", Day: All}, c)

	c, err = ParseCriteria("ALL", "friday")
	require.NoError(t, err)
	assert.Equal(t, Criteria{Month: All, Day: "Friday"}, c)

	_, err = ParseCriteria("July", "All")
	assert.Error(t, err)
	_, err = ParseCriteria("All", "Funday")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	p := writeCSV(t, t.TempDir(), "chicago.csv", chicagoRows)
	set, err := LoadFile(context.Background(), "chicago", p)
	require.NoError(t, err)

	all := set.Filter(Criteria{Month: All, Day: All})
	assert.Equal(t, set.Len(), all.Len())

	june := set.Filter(Criteria{Month: "June", Day: All})
	require.Equal(t, 1, june.Len())
	assert.Equal(t, "June", june.Trips[0].Month)

	none := set.Filter(Criteria{Month: "June", Day: "Monday"})
	assert.Equal(t, 0, none.Len())
	assert.Equal(t, 4, set.Len(), "filter must not modify the source set")
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src, err := LoadFile(ctx, "chicago", writeCSV(t, dir, "chicago.csv", chicagoRows))
	require.NoError(t, err)

	dbPath := filepath.Join(dir, "bikeshare.db")
	st, err := OpenStore(ctx, dbPath)
	require.NoError(t, err)
	id, err := st.Import(ctx, "Chicago", src)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// Re-importing replaces rather than appends.
	_, err = st.Import(ctx, "chicago", src)
	require.NoError(t, err)

	ds, err := st.Datasets(ctx)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "chicago", ds[0].City)
	assert.Equal(t, 4, ds[0].Trips)
	assert.True(t, ds[0].Schema.HasBirthYear)

	_, err = st.Load(ctx, "washington")
	assert.ErrorIs(t, err, ErrNotImported)
	require.NoError(t, st.Close())

	got, err := LoadFile(ctx, "chicago", dbPath)
	require.NoError(t, err)
	require.Equal(t, src.Len(), got.Len())
	for i := range src.Trips {
		assert.Equal(t, src.Trips[i].Pair, got.Trips[i].Pair)
		assert.Equal(t, src.Trips[i].BirthYear, got.Trips[i].BirthYear)
		assert.Equal(t, src.Trips[i].Hour, got.Trips[i].Hour)
		assert.InDelta(t, src.Trips[i].Duration, got.Trips[i].Duration, 1e-9)
	}
	assert.Equal(t, src.Schema, got.Schema)
}

func TestSourcePathAndLoad(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "washington.csv", washingtonRows)
	s := &Source{
		Cities:  map[string]string{"washington": "washington.csv", "chicago": "/abs/chicago.csv"},
		DataDir: dir,
		Log:     zaptest.NewLogger(t).Sugar(),
	}
	assert.Equal(t, []string{"chicago", "washington"}, s.Names())

	p, err := s.Path("Chicago")
	require.NoError(t, err)
	assert.Equal(t, "/abs/chicago.csv", p)

	_, err = s.Path("boston")
	assert.ErrorIs(t, err, ErrUnknownCity)

	set, err := s.Load(context.Background(), "Washington")
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, "washington", set.City)
}

func TestStoreRejectsCorruptTimes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src, err := LoadFile(ctx, "chicago", writeCSV(t, dir, "chicago.csv", chicagoRows))
	require.NoError(t, err)
	st, err := OpenStore(ctx, filepath.Join(dir, "bikeshare.db"))
	require.NoError(t, err)
	defer st.Close()
	_, err = st.Import(ctx, "chicago", src)
	require.NoError(t, err)

	_, err = st.db.ExecContext(ctx, "UPDATE trips SET end_time = 'yesterday-ish' WHERE id = (SELECT MIN(id) FROM trips)")
	require.NoError(t, err)
	_, err = st.Load(ctx, "chicago")
	assert.ErrorContains(t, err, "parse end time")

	_, err = st.db.ExecContext(ctx, "UPDATE datasets SET imported_at = 'not a time'")
	require.NoError(t, err)
	_, err = st.Datasets(ctx)
	assert.ErrorContains(t, err, "parse import time")
}

func TestParseBirthYear(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1989", 1989, false},
		{"1989.0", 1989, false},
		{"", 0, false},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"-Inf", 0, true},
		{"abc", 0, true},
	}
	for _, c := range cases {
		got, err := parseBirthYear(c.in)
		if c.wantErr {
			assert.Error(t, err, "parseBirthYear(%q)", c.in)
			continue
		}
		require.NoError(t, err, "parseBirthYear(%q)", c.in)
		assert.Equal(t, c.want, got, "parseBirthYear(%q)", c.in)
	}
}
