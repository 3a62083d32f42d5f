package timetable

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidWeekday is returned when parsing an unknown weekday name.
var ErrInvalidWeekday = errors.New("invalid weekday")

// Weekday identifies a school day column. The set is fixed: Monday through
// Saturday, in rendering order.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DaysPerWeek is the number of school days in a timetable week.
const DaysPerWeek = 6

var weekdayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Weekdays returns the fixed ordered set of school days.
func Weekdays() [DaysPerWeek]Weekday {
	return [DaysPerWeek]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// Valid returns true if the weekday is within the fixed set.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Saturday
}

// String returns the weekday name as the backend spells it.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Short returns the three-letter column header form.
func (d Weekday) Short() string {
	return d.String()[:3]
}

// ParseWeekday parses a weekday name, case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if strings.EqualFold(s, name) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}
