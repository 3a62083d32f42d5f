// Package api provides the client for the school backend's timetable REST
// contracts. The backend is the sole authority for conflict detection and
// whole-grid validation; this package only normalizes shapes and errors.
package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/javiermolinar/aula/internal/timetable"
)

// Client errors.
var (
	ErrTimetableNotFound = errors.New("timetable not found")
	ErrUnauthorized      = errors.New("unauthorized")
)

// APIError carries the server's user-facing message for a failed call.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.Status)
}

// ServerMessage extracts the user-facing message from an error chain, with
// a fallback when the server provided none.
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Timetable is the load response for one class-section timetable.
type Timetable struct {
	ID             int64                          `json:"id"`
	ClassID        int64                          `json:"class_id"`
	SectionID      int64                          `json:"section_id"`
	ClassName      string                         `json:"class_name"`
	SectionName    string                         `json:"section_name"`
	AcademicYearID int64                          `json:"academic_year_id"`
	Semester       int                            `json:"semester"`
	IsDraft        bool                           `json:"is_draft"`
	Config         timetable.Config               `json:"configuration"`
	Slots          []timetable.TimeSlot           `json:"time_slots"`
	Entries        map[string]timetable.WireEntry `json:"entries"`
}

// ConflictCheckRequest asks whether a teacher is already booked elsewhere at
// the given day/time, scoped to one academic year and semester. The edited
// timetable is excluded so its own periods never self-conflict.
type ConflictCheckRequest struct {
	TeacherID          int64  `json:"teacher_id"`
	Day                string `json:"day"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	AcademicYearID     int64  `json:"academic_year_id"`
	Semester           int    `json:"semester"`
	ExcludeTimetableID int64  `json:"exclude_timetable_id"`
}

// ValidateRequest submits the full serialized entry set for validation.
type ValidateRequest struct {
	AcademicYearID     int64                          `json:"academic_year_id"`
	Semester           int                            `json:"semester"`
	Entries            map[string]timetable.WireEntry `json:"entries"`
	ExcludeTimetableID int64                          `json:"exclude_timetable_id"`
}

// SaveRequest persists the timetable, as draft or final.
type SaveRequest struct {
	TimetableID    int64                          `json:"timetable_id,omitempty"`
	ClassID        int64                          `json:"class_id"`
	SectionID      int64                          `json:"section_id"`
	AcademicYearID int64                          `json:"academic_year_id"`
	Semester       int                            `json:"semester"`
	Config         timetable.Config               `json:"configuration"`
	Entries        map[string]timetable.WireEntry `json:"entries"`
	IsDraft        bool                           `json:"is_draft"`
}

// SaveResponse is the persistence outcome with the server's message.
type SaveResponse struct {
	TimetableID int64  `json:"timetable_id"`
	Message     string `json:"message"`
}

// Client defines the backend contracts the console consumes.
type Client interface {
	// LoadTimetable fetches metadata, configuration, time slots, and
	// existing entries for one timetable.
	LoadTimetable(ctx context.Context, id int64) (*Timetable, error)

	// ListSectionSubjects returns the section's subjects, each carrying
	// its own eligible-teacher roster.
	ListSectionSubjects(ctx context.Context, classID, sectionID int64) ([]timetable.Subject, error)

	// ListTeachers returns the full school teacher roster (display and
	// lookup only, not eligibility).
	ListTeachers(ctx context.Context) ([]timetable.Teacher, error)

	// CheckSlotConflict runs the single-slot teacher conflict check.
	CheckSlotConflict(ctx context.Context, req ConflictCheckRequest) (*timetable.ConflictResult, error)

	// ValidateTimetable runs the whole-grid validation.
	ValidateTimetable(ctx context.Context, req ValidateRequest) (*timetable.ValidationResult, error)

	// SaveTimetable persists the timetable (create or update).
	SaveTimetable(ctx context.Context, req SaveRequest) (*SaveResponse, error)
}
