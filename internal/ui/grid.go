package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/slotpick/internal/griddef"
)

func (a *App) gridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Manage the grid catalog",
		Long: `List, import, print and remove timetable grids.

Built-in grids are always available. Imported grids are stored in the
database configured under [storage] and can be selected with --grid or
[grid] name in the config file.`,
	}

	cmd.AddCommand(a.gridListCmd())
	cmd.AddCommand(a.gridImportCmd())
	cmd.AddCommand(a.gridShowCmd())
	cmd.AddCommand(a.gridRemoveCmd())
	return cmd
}

func (a *App) gridListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available grids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			summaries, err := a.repo.ListDefinitions(ctx(cmd))
			if err != nil {
				return fmt.Errorf("listing grids: %w", err)
			}

			active := a.gridSource().Name
			out := cmd.OutOrStdout()
			marker := func(name string) string {
				if name == active {
					return "*"
				}
				return " "
			}

			fmt.Fprintln(out, formatHeader("Built-in"))
			for _, name := range griddef.BuiltinNames() {
				def, err := griddef.Builtin(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %-20s %s\n", marker(name), name, formatMuted(def.DisplayTitle()))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, formatHeader("Imported"))
			if len(summaries) == 0 {
				fmt.Fprintln(out, formatMuted("  (none; add one with 'slotpick grid import FILE')"))
				return nil
			}
			for _, s := range summaries {
				fmt.Fprintf(out, "%s %-20s %dx%d, %d slots  %s\n",
					marker(s.Name), s.Name, s.Days, s.Periods, s.Slots,
					formatMuted(s.UpdatedAt.Local().Format("2006-01-02 15:04")),
				)
			}
			return nil
		},
	}
}

func (a *App) gridImportCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a grid definition file",
		Long: `Validate a grid definition TOML file and store it in the catalog.
An existing grid with the same name is replaced.

Example:
  slotpick grid import ./spring.toml --name spring-2025`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			def, err := griddef.LoadFile(path)
			if err != nil {
				return err
			}
			if name != "" {
				if err := griddef.ValidateName(name); err != nil {
					return err
				}
				def.Name = name
			}
			if griddef.IsBuiltin(def.Name) {
				return fmt.Errorf("grid %q: %w", def.Name, griddef.ErrReservedName)
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.SaveDefinition(ctx(cmd), def); err != nil {
				return fmt.Errorf("saving grid: %w", err)
			}

			grid, _ := def.Grid()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported grid %s (%d days, %d periods, %d slots)\n",
				def.Name, grid.NumDays(), grid.NumPeriods(), grid.NumSlots())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Store the grid under this name instead of the one in the file")
	return cmd
}

func (a *App) gridShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [NAME]",
		Short: "Print a grid definition as TOML",
		Long: `Print the definition of NAME, or of the active grid when NAME is omitted.
Cells are printed in normalized "A1+L2" notation. The output can be
edited and imported again.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.gridFile = ""
				a.gridName = args[0]
			}
			def, err := a.loadDefinition(ctx(cmd))
			if err != nil {
				return err
			}
			engine, err := def.Engine()
			if err != nil {
				return err
			}
			pairs, err := def.Pairs()
			if err != nil {
				return err
			}
			data, err := griddef.FromGrid(def.Name, def.Title, engine.Grid(), pairs).Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (a *App) gridRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove an imported grid",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if griddef.IsBuiltin(name) {
				return fmt.Errorf("grid %q: %w", name, griddef.ErrReservedName)
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.DeleteDefinition(ctx(cmd), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed grid %s\n", name)
			return nil
		},
	}
}

// ctx returns the command context, or a background context when the
// command was not started with one.
func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
