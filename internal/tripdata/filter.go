package tripdata

import (
	"fmt"
	"slices"

	"github.com/KaramelBytes/bikeshare-cli/internal/utils"
)

// All disables a month or day filter.
const All = "All"

// Months are the months covered by the trip logs.
var Months = []string{"January", "February", "March", "April", "May", "June"}

// Weekdays are the day names accepted by the day filter.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Criteria selects trips by start month and weekday.
type Criteria struct {
	Month string
	Day   string
}

// ParseCriteria validates and normalizes month and day names. Empty values
// mean All.
func ParseCriteria(month, day string) (Criteria, error) {
	c := Criteria{Month: utils.TitleCase(month), Day: utils.TitleCase(day)}
	if c.Month == "" {
		c.Month = All
	}
	if c.Day == "" {
		c.Day = All
	}
	if c.Month != All && !slices.Contains(Months, c.Month) {
		return Criteria{}, fmt.Errorf("invalid month %q (use January..June or All)", month)
	}
	if c.Day != All && !slices.Contains(Weekdays, c.Day) {
		return Criteria{}, fmt.Errorf("invalid day %q (use Monday..Sunday or All)", day)
	}
	return c, nil
}

// IsAll reports whether the criteria select every trip.
func (c Criteria) IsAll() bool {
	return (c.Month == "" || c.Month == All) && (c.Day == "" || c.Day == All)
}

// Match reports whether t satisfies the criteria.
func (c Criteria) Match(t Trip) bool {
	if c.Month != "" && c.Month != All && t.Month != c.Month {
		return false
	}
	if c.Day != "" && c.Day != All && t.Weekday != c.Day {
		return false
	}
	return true
}

func (c Criteria) String() string {
	return fmt.Sprintf("month=%s day=%s", c.Month, c.Day)
}
