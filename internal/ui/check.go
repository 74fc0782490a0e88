package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/slotpick/internal/timetable"
)

// ErrRejected is returned by check when at least one toggle was refused.
var ErrRejected = errors.New("some toggles were rejected")

func (a *App) checkCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "check SLOT...",
		Short: "Toggle slots in order and report each outcome",
		Long: `Toggle each slot in order, starting from an empty selection, and print
what happened. A slot named twice is selected and then removed again.

Exits with an error if any toggle was rejected; rejected toggles leave the
selection unchanged and checking continues with the next slot.

Example:
  slotpick check A1 L2 A2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}

			_, engine, err := a.loadEngine(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, rejected := runCheck(out, engine, parseSlotList(args))
			if rejected > 0 {
				return fmt.Errorf("%d rejected: %w", rejected, ErrRejected)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// runCheck toggles slots one by one, printing each result, and returns the
// final selection and the number of rejected toggles.
func runCheck(w io.Writer, engine *timetable.Engine, slots []timetable.SlotCode) (timetable.Selection, int) {
	var sel timetable.Selection
	rejected := 0

	for _, slot := range slots {
		next, err := engine.Toggle(sel, slot, timetable.Metadata{})
		var (
			blocked *timetable.SlotBlockedError
			unknown *timetable.UnknownSlotError
		)
		switch {
		case errors.As(err, &blocked):
			rejected++
			fmt.Fprintf(w, "  %s %s blocked by %s\n", formatError("✗"), slot, joinSlots(blocked.BlockedBy))
		case errors.As(err, &unknown):
			rejected++
			fmt.Fprintf(w, "  %s %s is not in the grid\n", formatError("?"), slot)
		case err != nil:
			rejected++
			fmt.Fprintf(w, "  %s %s: %v\n", formatError("✗"), slot, err)
		case next.Has(slot):
			sel = next
			fmt.Fprintf(w, "  %s %s selected\n", formatSlot("✓", timetable.StatusSelected), slot)
		default:
			sel = next
			fmt.Fprintf(w, "  %s %s removed\n", formatMuted("-"), slot)
		}
	}

	fmt.Fprintln(w)
	if sel.IsEmpty() {
		fmt.Fprintln(w, "Selection: (empty)")
	} else {
		fmt.Fprintf(w, "Selection: %s\n", joinSlots(sel.Slots()))
	}
	return sel, rejected
}

func joinSlots(slots []timetable.SlotCode) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
