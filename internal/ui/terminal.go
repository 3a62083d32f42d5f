package ui

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// terminalCmd reports what the current terminal supports. Useful when the
// grid renders without color or the layout wraps unexpectedly.
func (a *App) terminalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "terminal",
		Short: "Show detected terminal capabilities",
		Run: func(_ *cobra.Command, _ []string) {
			fd := int(os.Stdout.Fd())
			tty := term.IsTerminal(fd)

			fmt.Println(formatHeader("Terminal"))
			fmt.Printf("  tty:            %v\n", tty)

			if tty {
				width, height, err := term.GetSize(fd)
				if err == nil {
					fmt.Printf("  size:           %dx%d\n", width, height)
				}
			}

			output := termenv.NewOutput(os.Stdout)
			fmt.Printf("  color profile:  %s\n", profileName(output.Profile))
			fmt.Printf("  dark backgrnd:  %v\n", output.HasDarkBackground())
			fmt.Printf("  TERM:           %s\n", os.Getenv("TERM"))
		},
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "256 colors"
	case termenv.ANSI:
		return "16 colors"
	default:
		return "no color"
	}
}
