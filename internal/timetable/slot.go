package timetable

// TimeSlot describes one period row of the grid. Slots are supplied by the
// backend at load time, never invented client-side; the ordered sequence is
// fixed for the lifetime of an editing session.
type TimeSlot struct {
	Label   string `json:"label"`        // e.g. "Period 1", "Lunch"
	Display string `json:"time_display"` // e.g. "09:00 - 09:45"
	Start   string `json:"start_time"`   // "HH:MM", empty when unknown
	End     string `json:"end_time"`     // "HH:MM", empty when unknown
	IsLunch bool   `json:"is_lunch"`
}

// Normalize fills Start/End from the display range when the backend response
// carries only the display string. A slot whose range cannot be parsed keeps
// empty times and is skipped by conflict checking.
func (s *TimeSlot) Normalize() {
	if s.Start != "" && s.End != "" {
		return
	}
	if start, end, ok := ParseTimeRange(s.Display); ok {
		s.Start = start
		s.End = end
	}
}

// HasTimes reports whether the slot carries a usable start/end pair.
func (s TimeSlot) HasTimes() bool {
	return s.Start != "" && s.End != ""
}

// Key is the composite cell address (weekday x period). It replaces the
// backend's concatenated "Day-HH:MM - HH:MM" string keys inside the client;
// translation happens only at the wire boundary.
type Key struct {
	Day     Weekday
	Display string // the slot's time display, identifying the period row
}

// KeyFor builds the cell address for a day and slot.
func KeyFor(day Weekday, slot TimeSlot) Key {
	return Key{Day: day, Display: slot.Display}
}

// WireKey renders the key in the backend's string form.
func (k Key) WireKey() string {
	return k.Day.String() + "-" + k.Display
}

// ParseWireKey parses a backend entry key of the form "Monday-09:00 - 09:45".
func ParseWireKey(s string) (Key, error) {
	for _, day := range Weekdays() {
		name := day.String()
		if len(s) > len(name)+1 && s[:len(name)] == name && s[len(name)] == '-' {
			return Key{Day: day, Display: s[len(name)+1:]}, nil
		}
	}
	return Key{}, ErrInvalidWeekday
}
