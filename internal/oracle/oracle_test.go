package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/javiermolinar/aula/internal/api"
	"github.com/javiermolinar/aula/internal/timetable"
)

// fakeClient implements api.Client with canned conflict/validation answers.
type fakeClient struct {
	api.Client

	conflict    *timetable.ConflictResult
	conflictErr error

	validation    *timetable.ValidationResult
	validationErr error
}

func (f *fakeClient) CheckSlotConflict(_ context.Context, _ api.ConflictCheckRequest) (*timetable.ConflictResult, error) {
	return f.conflict, f.conflictErr
}

func (f *fakeClient) ValidateTimetable(_ context.Context, _ api.ValidateRequest) (*timetable.ValidationResult, error) {
	return f.validation, f.validationErr
}

func TestCheckSlot(t *testing.T) {
	tests := []struct {
		name        string
		conflict    *timetable.ConflictResult
		conflictErr error
		wantOutcome timetable.CheckOutcome
		wantErr     bool
	}{
		{
			name:        "clear",
			conflict:    &timetable.ConflictResult{HasConflict: false},
			wantOutcome: timetable.OutcomeClear,
		},
		{
			name: "conflict",
			conflict: &timetable.ConflictResult{
				HasConflict: true,
				Count:       1,
				Conflicts:   []timetable.Conflict{{TeacherName: "Aisha Nakato"}},
			},
			wantOutcome: timetable.OutcomeConflict,
		},
		{
			name:        "transport failure is inconclusive, not clear",
			conflictErr: errors.New("dial tcp: connection refused"),
			wantOutcome: timetable.OutcomeInconclusive,
			wantErr:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New(&fakeClient{conflict: tt.conflict, conflictErr: tt.conflictErr}, nil)
			check := o.CheckSlot(context.Background(), api.ConflictCheckRequest{TeacherID: 10})

			if check.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", check.Outcome, tt.wantOutcome)
			}
			if (check.Err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", check.Err, tt.wantErr)
			}
			if tt.wantOutcome == timetable.OutcomeConflict && check.Result.Count != 1 {
				t.Errorf("conflict count = %d, want 1", check.Result.Count)
			}
		})
	}
}

func TestValidateGrid(t *testing.T) {
	t.Run("verdict passes through", func(t *testing.T) {
		o := New(&fakeClient{validation: &timetable.ValidationResult{IsValid: false, Message: "double-booked"}}, nil)
		res, err := o.ValidateGrid(context.Background(), api.ValidateRequest{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IsValid || res.Message != "double-booked" {
			t.Errorf("result = %+v", res)
		}
	})

	t.Run("transport failure propagates", func(t *testing.T) {
		wantErr := errors.New("boom")
		o := New(&fakeClient{validationErr: wantErr}, nil)
		if _, err := o.ValidateGrid(context.Background(), api.ValidateRequest{}); !errors.Is(err, wantErr) {
			t.Errorf("got %v, want %v", err, wantErr)
		}
	})
}
