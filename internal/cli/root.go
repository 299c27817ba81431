// Package cli wires configuration, logging and the interactive UI behind
// the sheetpeek command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nconklindev/sheetpeek/internal/config"
	"github.com/nconklindev/sheetpeek/internal/logging"
	"github.com/nconklindev/sheetpeek/internal/session"
	"github.com/nconklindev/sheetpeek/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	noColor    bool

	cfg    *config.Config
	logger *slog.Logger
	logOut io.Closer
}

func (a *app) setup() error {
	if a.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}

	w, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	a.cfg = cfg
	a.logOut = w
	a.logger = logging.Setup(w, cfg.Log.Level, cfg.Log.Format)
	return nil
}

func (a *app) teardown() {
	if a.logOut != nil {
		a.logOut.Close()
		a.logOut = nil
	}
}

// run wraps a RunE so the log file is closed whether or not fn fails.
// Cobra skips the post-run hooks after an error.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.teardown()
		return fn(cmd, args)
	}
}

func (a *app) newSession() *session.Session {
	return session.New(session.WithLogger(a.logger))
}

// NewRootCommand builds the sheetpeek command tree.
func NewRootCommand(build BuildInfo) *cobra.Command {
	return newRootCommand(&app{v: config.New()}, build)
}

func newRootCommand(a *app, build BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheetpeek [file]",
		Short: "View spreadsheets in the terminal and export sheets as CSV or JSON",
		Long: `sheetpeek opens .xlsx, .xls and .csv files in an interactive table view.
Switch between sheets with tab, export the visible sheet with c (CSV) or J (JSON).

Without a file argument a file picker opens in the current directory.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s\ncommit: %s\nbuilt: %s", build.Version, build.Commit, build.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			opts := ui.Options{
				Session:        a.newSession(),
				OutputDir:      a.cfg.Output.Dir,
				MaxColumnWidth: a.cfg.UI.MaxColumnWidth,
				ShowHidden:     a.cfg.UI.ShowHidden,
				Logger:         a.logger,
			}
			if len(args) == 1 {
				opts.InitialFile = args[0]
			}

			a.logger.Debug("starting ui", "initial_file", opts.InitialFile)
			p := tea.NewProgram(ui.InitialModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err := p.Run()
			return err
		}),
	}
	cmd.SetVersionTemplate("sheetpeek {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default "+config.Dir()+"/config.yaml)")
	flags.String("out", "", "directory exports are written to (default: current directory)")
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.noColor, "no-color", false, "disable ANSI color output")
	cmd.Flags().Bool("hidden", false, "show hidden files in the file picker")

	a.v.BindPFlag("output.dir", flags.Lookup("out"))
	a.v.BindPFlag("log.file", flags.Lookup("log-file"))
	a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	a.v.BindPFlag("ui.show_hidden", cmd.Flags().Lookup("hidden"))

	cmd.AddCommand(newInfoCommand(a))
	cmd.AddCommand(newExportCommand(a))

	return cmd
}
