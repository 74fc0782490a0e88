package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/slotpick/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		selected []string
		format   string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the status of every slot",
		Long: `Toggle the slots given with --select in order and write a snapshot of
the grid: the selection with its metadata, the blocked slots and every
cell.

Formats: json (default), toml, text.

Example:
  slotpick export --select A1,E2 --format toml --out timetable.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			def, engine, err := a.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			sel, err := applySelection(engine, selected)
			if err != nil {
				return err
			}
			snap := export.Build(def.Name, def.DisplayTitle(), engine, sel)

			if outPath == "" || outPath == "-" {
				return export.Write(cmd.OutOrStdout(), snap, f)
			}
			if err := writeFile(outPath, func(w io.Writer) error {
				return export.Write(w, snap, f)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&selected, "select", "s", nil, "Slots to select, in order (comma-separated)")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "Output format: json, toml or text")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
