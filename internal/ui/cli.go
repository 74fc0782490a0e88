package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/slotpick/internal/config"
	"github.com/javiermolinar/slotpick/internal/db"
	"github.com/javiermolinar/slotpick/internal/griddef"
	"github.com/javiermolinar/slotpick/internal/timetable"
	"github.com/javiermolinar/slotpick/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   griddef.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging

	// Grid overrides from persistent flags
	gridName string
	gridFile string
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened lazily from the configured database path the first
// time a command needs the grid catalog.
func NewApp(repo griddef.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "slotpick",
		Short: "Pick a conflict-free weekly timetable",
		Long: `Slotpick lets you build a weekly timetable by picking slots from a
grid of course offerings.

Slots that share a period, or belong to the same course, can never be
selected together. Run without arguments to open the interactive picker.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, engine, err := a.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(engine, a.config, a.debug,
				tui.WithGridInfo(def.Name, def.DisplayTitle()))
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+tui.DebugLogPath+")")
	a.root.PersistentFlags().StringVar(&a.gridName, "grid", "", "Grid to use (built-in or imported name)")
	a.root.PersistentFlags().StringVar(&a.gridFile, "grid-file", "", "Load the grid from a TOML file")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.conflictsCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.gridCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "slotpick %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close releases the grid catalog if it was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// ensureRepo opens the SQLite catalog at the configured path.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening grid catalog: %w", err)
	}
	a.repo = repo
	return nil
}

// gridSource applies the --grid and --grid-file flags over the config.
func (a *App) gridSource() griddef.Source {
	switch {
	case a.gridFile != "":
		return griddef.Source{File: a.gridFile}
	case a.gridName != "":
		return griddef.Source{Name: a.gridName}
	}
	return a.config.GridSource()
}

// loadDefinition resolves the active grid. The catalog is only opened for
// names that are neither files nor built-in grids.
func (a *App) loadDefinition(ctx context.Context) (*griddef.Definition, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	src := a.gridSource()
	var repo griddef.Repository
	if src.File == "" && src.Name != "" && !griddef.IsBuiltin(src.Name) {
		if err := a.ensureRepo(); err != nil {
			return nil, err
		}
		repo = a.repo
	}
	def, err := griddef.Resolve(ctx, repo, src)
	if err != nil {
		return nil, fmt.Errorf("loading grid: %w", err)
	}
	return def, nil
}

func (a *App) loadEngine(ctx context.Context) (*griddef.Definition, *timetable.Engine, error) {
	def, err := a.loadDefinition(ctx)
	if err != nil {
		return nil, nil, err
	}
	engine, err := def.Engine()
	if err != nil {
		return nil, nil, err
	}
	return def, engine, nil
}
