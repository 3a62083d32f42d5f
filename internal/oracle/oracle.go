// Package oracle adapts the backend's two conflict-detection calls into a
// uniform contract for the entry editor and the validation banner. It holds
// no conflict logic of its own: the backend sees every timetable for every
// section and teacher, which the client does not.
package oracle

import (
	"context"

	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/api"
	"github.com/javiermolinar/aula/internal/timetable"
)

// SlotCheck is the normalized outcome of a single-slot conflict check.
// A transport or server failure yields OutcomeInconclusive with Err set;
// it is never folded into "clear".
type SlotCheck struct {
	Outcome timetable.CheckOutcome
	Result  *timetable.ConflictResult
	Err     error
}

// Oracle wraps the backend conflict endpoints.
type Oracle struct {
	client api.Client
	log    *zap.Logger
}

// New creates an oracle over the given client.
func New(client api.Client, log *zap.Logger) *Oracle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Oracle{client: client, log: log}
}

// CheckSlot asks whether the teacher is booked elsewhere at the given
// day/time. One-shot, no retries; the caller decides what an inconclusive
// check means for the pending commit.
func (o *Oracle) CheckSlot(ctx context.Context, req api.ConflictCheckRequest) SlotCheck {
	result, err := o.client.CheckSlotConflict(ctx, req)
	if err != nil {
		o.log.Warn("conflict check inconclusive",
			zap.Int64("teacher_id", req.TeacherID),
			zap.String("day", req.Day),
			zap.String("start", req.StartTime),
			zap.Error(err))
		return SlotCheck{Outcome: timetable.OutcomeInconclusive, Err: err}
	}
	if result.HasConflict {
		return SlotCheck{Outcome: timetable.OutcomeConflict, Result: result}
	}
	return SlotCheck{Outcome: timetable.OutcomeClear, Result: result}
}

// ValidateGrid submits the full entry set and returns the backend's
// verdict. Errors propagate to the caller as-is; the page controller shows
// them as a banner and the user may re-invoke manually.
func (o *Oracle) ValidateGrid(ctx context.Context, req api.ValidateRequest) (*timetable.ValidationResult, error) {
	result, err := o.client.ValidateTimetable(ctx, req)
	if err != nil {
		o.log.Warn("whole-grid validation failed",
			zap.Int64("academic_year_id", req.AcademicYearID),
			zap.Int("semester", req.Semester),
			zap.Int("entries", len(req.Entries)),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}
