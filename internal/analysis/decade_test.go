package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecadeBucketsAnchoredAtMin(t *testing.T) {
	b, err := DecadeBuckets(1983, 2001)
	require.NoError(t, err)
	assert.Equal(t, []Bucket{{1983, 1992}, {1993, 2002}}, b)
	assert.Equal(t, "1983 - 1992", b[0].Label())

	single, err := DecadeBuckets(1990, 1990)
	require.NoError(t, err)
	assert.Equal(t, []Bucket{{1990, 1999}}, single)

	_, err = DecadeBuckets(2000, 1990)
	assert.Error(t, err)
}

func TestAggregateDecades(t *testing.T) {
	samples := []YearSample{
		{Year: 1980, Duration: 100},
		{Year: 1985, Duration: 300},
		{Year: 1991, Duration: 600},
		{Year: 1999, Duration: 1200},
	}
	got, err := AggregateDecades(samples, 1980, 1999)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "1980 - 1989", got[0].Label())
	assert.True(t, got[0].Valid)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 200, got[0].Mean, 1e-9)

	assert.Equal(t, "1990 - 1999", got[1].Label())
	assert.InDelta(t, 900, got[1].Mean, 1e-9)
}

func TestAggregateDecadesEmptyBucketIsReported(t *testing.T) {
	samples := []YearSample{{Year: 1950, Duration: 60}, {Year: 1975, Duration: 120}}
	got, err := AggregateDecades(samples, 1950, 1975)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Valid)
	assert.False(t, got[1].Valid)
	assert.Equal(t, 0, got[1].Count)
	assert.True(t, got[2].Valid)

	rows := DecadeRows(got)
	assert.Equal(t, Row{Key: "1960 - 1969", Value: NoTrips}, rows[1])
	assert.Equal(t, Row{Key: "1950 - 1959", Value: "1 minutes, 0 seconds"}, rows[0])
}

func TestAggregateDecadesIgnoresOutOfRange(t *testing.T) {
	samples := []YearSample{{Year: 1899, Duration: 1e6}, {Year: 1990, Duration: 30}, {Year: 1996, Duration: 1e6}}
	got, err := AggregateDecades(samples, 1990, 1995)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Count)
	assert.InDelta(t, 30, got[0].Mean, 1e-9)
}
