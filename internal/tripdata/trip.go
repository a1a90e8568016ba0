package tripdata

import (
	"time"
)

// Trip is one row of a bike-share trip log.
type Trip struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     float64 // seconds
	StartStation string
	EndStation   string
	UserType     string
	Gender       string // empty when not recorded
	BirthYear    int    // 0 when not recorded

	// Derived once per record set by Derive.
	Month   string
	Weekday string
	Hour    int
	Pair    string
}

// Derive fills the read-only fields computed from the start time and stations.
func (t *Trip) Derive() {
	t.Month = t.StartTime.Month().String()
	t.Weekday = t.StartTime.Weekday().String()
	t.Hour = t.StartTime.Hour()
	t.Pair = t.StartStation + " to " + t.EndStation
}

// Schema records which optional columns the source carried.
type Schema struct {
	HasGender    bool
	HasBirthYear bool
}

// HasDemographics reports whether both gender and birth year are present.
func (s Schema) HasDemographics() bool { return s.HasGender && s.HasBirthYear }

// Set is the record set for one city, optionally filtered.
type Set struct {
	City     string
	Source   string
	Schema   Schema
	Criteria Criteria
	Trips    []Trip
}

// Len returns the number of trips in the set.
func (s *Set) Len() int { return len(s.Trips) }

// Filter returns a new set holding the trips that match c. The receiver is
// not modified.
func (s *Set) Filter(c Criteria) *Set {
	out := &Set{City: s.City, Source: s.Source, Schema: s.Schema, Criteria: c}
	if c.IsAll() {
		out.Trips = s.Trips
		return out
	}
	out.Trips = make([]Trip, 0, len(s.Trips))
	for _, t := range s.Trips {
		if c.Match(t) {
			out.Trips = append(out.Trips, t)
		}
	}
	return out
}

// Durations returns the trip durations in seconds.
func (s *Set) Durations() []float64 {
	out := make([]float64, len(s.Trips))
	for i, t := range s.Trips {
		out[i] = t.Duration
	}
	return out
}

// Strings extracts one string field per trip.
func (s *Set) Strings(field func(Trip) string) []string {
	out := make([]string, len(s.Trips))
	for i, t := range s.Trips {
		out[i] = field(t)
	}
	return out
}

// BirthYears returns one birth year per trip, 0 where unknown.
func (s *Set) BirthYears() []int {
	out := make([]int, len(s.Trips))
	for i, t := range s.Trips {
		out[i] = t.BirthYear
	}
	return out
}
