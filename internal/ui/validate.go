package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/aula/internal/api"
	"github.com/javiermolinar/aula/internal/timetable"
)

func (a *App) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <timetable-id>",
		Short: "Validate a timetable without opening the editor",
		Long: `Run the backend whole-timetable validation against the saved
entries of a timetable and print the verdict.

Example:
  aula validate 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.runValidate(cmd.Context(), id)
		},
	}
}

func (a *App) runValidate(ctx context.Context, id int64) error {
	tt, err := a.client.LoadTimetable(ctx, id)
	if err != nil {
		return fmt.Errorf("loading timetable: %w", err)
	}

	g, err := timetable.NewGrid(tt.Slots).ApplyWire(tt.Entries)
	if err != nil {
		return fmt.Errorf("reading entries: %w", err)
	}

	result, err := a.client.ValidateTimetable(ctx, api.ValidateRequest{
		AcademicYearID:     tt.AcademicYearID,
		Semester:           tt.Semester,
		Entries:            g.Serialize(),
		ExcludeTimetableID: tt.ID,
	})
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	fmt.Println(formatHeader(fmt.Sprintf("%s %s · %d entries", tt.ClassName, tt.SectionName, g.Len())))
	if result.IsValid {
		fmt.Println(formatOK("✓ No conflicts found"))
	} else {
		fmt.Println(formatConflict("✗ Validation failed"))
	}
	if result.Message != "" {
		fmt.Println(formatMuted(result.Message))
	}
	return nil
}
