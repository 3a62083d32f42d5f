// Package timetable defines the core domain types for aula: the weekly
// schedule grid of one class section and the entries assigned to its cells.
package timetable

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidClassType = errors.New("invalid class type")
	ErrUnknownWireKey   = errors.New("entry key does not match a loaded slot")
)

// ClassType is the kind of period an entry schedules.
type ClassType string

const (
	TypeRegular   ClassType = "Regular"
	TypeLab       ClassType = "Lab"
	TypeTutorial  ClassType = "Tutorial"
	TypePractical ClassType = "Practical"
)

// ClassTypes returns the selectable class types in form order.
func ClassTypes() []ClassType {
	return []ClassType{TypeRegular, TypeLab, TypeTutorial, TypePractical}
}

// Valid returns true if the class type is a known value.
func (t ClassType) Valid() bool {
	switch t {
	case TypeRegular, TypeLab, TypeTutorial, TypePractical:
		return true
	default:
		return false
	}
}

// Next cycles to the following class type, wrapping around.
func (t ClassType) Next() ClassType {
	types := ClassTypes()
	for i, ct := range types {
		if ct == t {
			return types[(i+1)%len(types)]
		}
	}
	return TypeRegular
}

// ParseClassType parses a wire class type string.
func ParseClassType(s string) (ClassType, error) {
	t := ClassType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidClassType, s)
	}
	return t, nil
}

// Teacher is a member of the school roster.
type Teacher struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName returns "First Last".
func (t Teacher) FullName() string {
	if t.FirstName == "" {
		return t.LastName
	}
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}

// Subject is a section subject together with its eligible-teacher roster.
// Eligibility is a property of the subject, not of the school roster.
type Subject struct {
	ID       int64     `json:"id"`
	Name     string    `json:"subject_name"`
	Code     string    `json:"subject_code"`
	Teachers []Teacher `json:"teachers"`
}

// Entry is one cell's assignment. It is a value type: working copies taken
// by the editor are plain copies, so edits are commit-or-discard.
type Entry struct {
	Subject Subject
	Teacher Teacher
	Room    string
	Type    ClassType
}

// Config holds the period layout persisted alongside the entries.
type Config struct {
	PeriodDuration  int    `json:"period_duration"` // minutes
	SchoolStartTime string `json:"school_start_time"`
	LunchStartTime  string `json:"lunch_start_time"`
	LunchDuration   int    `json:"lunch_duration"` // minutes
	TotalPeriods    int    `json:"total_periods"`
}
