// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/aula/internal/api"
	"github.com/javiermolinar/aula/internal/db"
	"github.com/javiermolinar/aula/internal/oracle"
	"github.com/javiermolinar/aula/internal/timetable"
)

// LoadedMsg is sent when the timetable and its section subjects are loaded.
type LoadedMsg struct {
	Timetable *api.Timetable
	Subjects  []timetable.Subject
	Grid      *timetable.Grid
	Draft     *db.Snapshot // cached local draft, nil when none exists
}

// SlotCheckedMsg carries a finished single-slot conflict check back to the
// editing session that staged it.
type SlotCheckedMsg struct {
	Check      oracle.SlotCheck
	Generation uint64
}

// ValidatedMsg is sent when whole-grid validation completes.
type ValidatedMsg struct {
	Result *timetable.ValidationResult
}

// SaveDoneMsg is sent when the timetable was persisted on the server.
type SaveDoneMsg struct {
	Response *api.SaveResponse
	Draft    bool
}

// DraftCachedMsg is sent when a local draft snapshot write finishes.
type DraftCachedMsg struct {
	Err error
}

// ErrMsg is sent when an operation fails.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// Load fetches the timetable, its section's subjects, and any cached draft.
func Load(client api.Client, cache *db.DraftCache, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		tt, err := client.LoadTimetable(ctx, id)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading timetable: %w", err)}
		}

		subjects, err := client.ListSectionSubjects(ctx, tt.ClassID, tt.SectionID)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading section subjects: %w", err)}
		}

		grid := timetable.NewGrid(tt.Slots)
		grid, err = grid.ApplyWire(tt.Entries)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("applying entries: %w", err)}
		}

		var draft *db.Snapshot
		if cache != nil {
			draft, err = cache.Get(ctx, db.Scope{
				ClassID:        tt.ClassID,
				SectionID:      tt.SectionID,
				AcademicYearID: tt.AcademicYearID,
				Semester:       tt.Semester,
			})
			if err != nil {
				// The cache is a convenience; a broken cache must not
				// block loading the timetable itself.
				draft = nil
			}
		}

		return LoadedMsg{Timetable: tt, Subjects: subjects, Grid: grid, Draft: draft}
	}
}

// CheckEntry runs a staged single-slot conflict check. Only the network
// call happens off the event loop; the outcome is applied by the model.
func CheckEntry(orc *oracle.Oracle, req api.ConflictCheckRequest, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return SlotCheckedMsg{Check: orc.CheckSlot(context.Background(), req), Generation: gen}
	}
}

// Validate submits the full working grid for backend validation.
func Validate(orc *oracle.Oracle, tt *api.Timetable, g *timetable.Grid) tea.Cmd {
	return func() tea.Msg {
		result, err := orc.ValidateGrid(context.Background(), api.ValidateRequest{
			AcademicYearID:     tt.AcademicYearID,
			Semester:           tt.Semester,
			Entries:            g.Serialize(),
			ExcludeTimetableID: tt.ID,
		})
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("validating timetable: %w", err)}
		}
		return ValidatedMsg{Result: result}
	}
}

// Save persists the working grid on the server, as draft or final. On
// success the local draft snapshot is dropped; the server copy is newer.
func Save(client api.Client, cache *db.DraftCache, tt *api.Timetable, g *timetable.Grid, draft bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		resp, err := client.SaveTimetable(ctx, api.SaveRequest{
			TimetableID:    tt.ID,
			ClassID:        tt.ClassID,
			SectionID:      tt.SectionID,
			AcademicYearID: tt.AcademicYearID,
			Semester:       tt.Semester,
			Config:         tt.Config,
			Entries:        g.Serialize(),
			IsDraft:        draft,
		})
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("saving timetable: %w", err)}
		}

		if cache != nil {
			_ = cache.Delete(ctx, db.Scope{
				ClassID:        tt.ClassID,
				SectionID:      tt.SectionID,
				AcademicYearID: tt.AcademicYearID,
				Semester:       tt.Semester,
			})
		}

		return SaveDoneMsg{Response: resp, Draft: draft}
	}
}

// CacheDraft snapshots the working grid into the local draft cache.
func CacheDraft(cache *db.DraftCache, tt *api.Timetable, g *timetable.Grid) tea.Cmd {
	if cache == nil {
		return nil
	}
	return func() tea.Msg {
		err := cache.Put(context.Background(), &db.Snapshot{
			TimetableID:    tt.ID,
			ClassID:        tt.ClassID,
			SectionID:      tt.SectionID,
			AcademicYearID: tt.AcademicYearID,
			Semester:       tt.Semester,
			Entries:        g.Serialize(),
		})
		return DraftCachedMsg{Err: err}
	}
}

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied conflict list to clipboard"}
	}
}
