package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/joshhsoj1902/steam-library-exporter/internal/library"
)

// WriteTable prints the games and library totals as a console table.
func WriteTable(w io.Writer, summary library.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Game\tHours Played")
	fmt.Fprintln(tw, "----\t------------")
	for _, g := range summary.Games {
		fmt.Fprintf(tw, "%s\t%s\n", g.Name, formatHours(g.PlaytimeHours))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal Games: %d\nTotal Hours Played: %s (%s)\nGames Not Played: %d\n",
		summary.TotalGames,
		formatHours(summary.TotalHours),
		summary.TotalHoursFormatted,
		summary.NotPlayedCount,
	)
	return err
}
