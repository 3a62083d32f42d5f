package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) teachersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teachers",
		Short: "List the school teacher roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			teachers, err := a.client.ListTeachers(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing teachers: %w", err)
			}
			if len(teachers) == 0 {
				fmt.Println("No teachers found.")
				return nil
			}

			fmt.Println(formatHeader(fmt.Sprintf("Teachers (%d)", len(teachers))))
			fmt.Println(separator())
			for _, t := range teachers {
				fmt.Printf("%5d  %s\n", t.ID, t.FullName())
			}
			return nil
		},
	}
}

func (a *App) subjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects <class-id> <section-id>",
		Short: "List a section's subjects and their eligible teachers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			classID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || classID <= 0 {
				return fmt.Errorf("invalid class id %q", args[0])
			}
			sectionID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || sectionID <= 0 {
				return fmt.Errorf("invalid section id %q", args[1])
			}

			subjects, err := a.client.ListSectionSubjects(cmd.Context(), classID, sectionID)
			if err != nil {
				return fmt.Errorf("listing subjects: %w", err)
			}
			if len(subjects) == 0 {
				fmt.Println("No subjects assigned to this section.")
				return nil
			}

			fmt.Println(formatHeader(fmt.Sprintf("Subjects (%d)", len(subjects))))
			fmt.Println(separator())
			for _, s := range subjects {
				label := s.Name
				if s.Code != "" {
					label += " (" + s.Code + ")"
				}
				fmt.Println(label)
				if len(s.Teachers) == 0 {
					fmt.Println(formatMuted("  no eligible teachers"))
					continue
				}
				for _, t := range s.Teachers {
					fmt.Printf("  %s\n", formatMuted(t.FullName()))
				}
			}
			return nil
		},
	}
}

// separator returns a horizontal rule sized to the terminal.
func separator() string {
	w := termWidth()
	if w > 60 {
		w = 60
	}
	return strings.Repeat("─", w)
}
