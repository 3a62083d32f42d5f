package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/javiermolinar/aula/internal/timetable"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(Options{BaseURL: srv.URL, Token: "secret"})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return c
}

func TestLoadTimetable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/timetables/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("auth header = %q", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing request id header")
		}
		_ = json.NewEncoder(w).Encode(Timetable{
			ID:             42,
			ClassID:        3,
			SectionID:      1,
			AcademicYearID: 7,
			Semester:       1,
			IsDraft:        true,
			Slots: []timetable.TimeSlot{
				{Label: "Period 1", Display: "09:00 - 09:45"},
				{Label: "Lunch", Display: "11:15 - 11:45", IsLunch: true},
			},
			Entries: map[string]timetable.WireEntry{
				"Monday-09:00 - 09:45": {
					Subject:   timetable.WireSubject{ID: 1, Name: "Mathematics", Code: "MATH"},
					Teacher:   timetable.WireTeacher{ID: 10, FirstName: "Aisha", LastName: "Nakato"},
					TeacherID: 10,
					Type:      "Regular",
				},
			},
		})
	})

	tt, err := c.LoadTimetable(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tt.ID != 42 || !tt.IsDraft {
		t.Errorf("timetable = %+v", tt)
	}
	// Slots are normalized: start/end filled from the display range.
	if tt.Slots[0].Start != "09:00" || tt.Slots[0].End != "09:45" {
		t.Errorf("slot times = %q-%q", tt.Slots[0].Start, tt.Slots[0].End)
	}
	if len(tt.Entries) != 1 {
		t.Errorf("entries = %d, want 1", len(tt.Entries))
	}
}

func TestLoadTimetableNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"no such timetable"}`, http.StatusNotFound)
	})

	_, err := c.LoadTimetable(context.Background(), 99)
	if !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("got %v, want ErrTimetableNotFound", err)
	}
}

func TestCheckSlotConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req ConflictCheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.TeacherID != 10 || req.Day != "Tuesday" || req.ExcludeTimetableID != 42 {
			t.Errorf("request = %+v", req)
		}
		_ = json.NewEncoder(w).Encode(timetable.ConflictResult{
			HasConflict: true,
			Count:       1,
			Conflicts: []timetable.Conflict{{
				TeacherName: "Aisha Nakato",
				Day:         "Tuesday",
				StartTime:   "10:00",
				EndTime:     "10:45",
				ClassName:   "P4",
				SectionName: "B",
				SubjectName: "Mathematics",
			}},
		})
	})

	res, err := c.CheckSlotConflict(context.Background(), ConflictCheckRequest{
		TeacherID:          10,
		Day:                "Tuesday",
		StartTime:          "10:00",
		EndTime:            "10:45",
		AcademicYearID:     7,
		Semester:           1,
		ExcludeTimetableID: 42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasConflict || res.Count != 1 || len(res.Conflicts) != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestValidateTimetable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(timetable.ValidationResult{
			IsValid: false,
			Message: "Teacher Aisha Nakato double-booked",
		})
	})

	res, err := c.ValidateTimetable(context.Background(), ValidateRequest{AcademicYearID: 7, Semester: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsValid || res.Message == "" {
		t.Errorf("result = %+v", res)
	}
}

func TestSaveTimetableServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "semester is closed"})
	})

	_, err := c.SaveTimetable(context.Background(), SaveRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want *APIError", err)
	}
	if apiErr.Message != "semester is closed" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if got := ServerMessage(err, "fallback"); got != "semester is closed" {
		t.Errorf("ServerMessage = %q", got)
	}
}

func TestServerMessageFallback(t *testing.T) {
	if got := ServerMessage(errors.New("dial tcp: refused"), "could not save"); got != "could not save" {
		t.Errorf("ServerMessage = %q", got)
	}
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient(Options{}); err == nil {
		t.Error("expected error for missing base URL")
	}
}
