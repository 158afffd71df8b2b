package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const listTimeLayout = "2006-01-02 15:04"

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "list <journal|mood|start-day|reflections>",
		Short:     "Print the active records of one entity collection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"journal", "mood", "start-day", "reflections"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch args[0] {
			case "journal":
				for _, e := range a.journal.List(ctx) {
					fmt.Fprintf(out, "%v\t%s\t%s\n", e.LocalID, e.CreatedAt.Format(listTimeLayout), snippet(e.Content))
				}
			case "mood":
				for _, m := range a.mood.List(ctx) {
					fmt.Fprintf(out, "%v\t%s\tlevel=%d %v\n", m.LocalID, m.CreatedAt.Format(listTimeLayout), m.MoodLevel, m.Emotions)
				}
			case "start-day":
				for _, e := range a.startDay.List(ctx) {
					fmt.Fprintf(out, "%v\t%s\t%v\n", e.LocalID, e.CreatedAt.Format(listTimeLayout), e.Goals)
				}
			case "reflections":
				for _, r := range a.reflections.List(ctx) {
					fmt.Fprintf(out, "%s\t%s\t%s\n", r.LocalID, r.CreatedAt.Format(listTimeLayout), snippet(r.WentWell))
				}
			default:
				return fmt.Errorf("unknown entity %q", args[0])
			}
			return nil
		},
	}
}

func snippet(s string) string {
	const max = 60
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
