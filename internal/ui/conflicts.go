package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/slotpick/internal/timetable"
)

func (a *App) conflictsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts SLOT",
		Short: "List the slots that conflict with a slot",
		Long: `Print every slot that can never be selected together with SLOT, with
the rule that links them: cell (same day and period), group (same course)
or explicit (listed in the grid definition).

Example:
  slotpick conflicts A1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engine, err := a.loadEngine(cmd.Context())
			if err != nil {
				return err
			}

			slot := timetable.SlotCode(args[0])
			conflicts, err := engine.Conflicts(slot)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cell, _ := engine.Grid().CellOf(slot)
			fmt.Fprintf(out, "%s · %s · %s · group %q\n",
				formatHeader(string(slot)),
				engine.Grid().Describe(cell.Ref),
				engine.Kind(slot),
				string(engine.GroupKey(slot)),
			)
			if len(conflicts) == 0 {
				fmt.Fprintln(out, "No conflicts.")
				return nil
			}

			index := engine.Index()
			for _, other := range conflicts {
				where, _ := engine.Grid().CellOf(other)
				fmt.Fprintf(out, "  %-6s %-14s %s\n",
					other,
					engine.Grid().Describe(where.Ref),
					formatMuted(index.RuleFor(slot, other).String()),
				)
			}
			fmt.Fprintf(out, "%d conflicts\n", len(conflicts))
			return nil
		},
	}
	return cmd
}
