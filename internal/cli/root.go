// Package cli wires tidy's commands: the interactive UI by default, plus
// batch conversion and preview for scripts.
package cli

import (
	"fmt"

	"github.com/nconklindev/tidy/internal/config"
	"github.com/nconklindev/tidy/internal/logging"
	"github.com/nconklindev/tidy/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b buildInfo) String() string {
	return fmt.Sprintf("%s\ncommit: %s\nbuilt: %s", b.Version, b.Commit, b.Date)
}

// app is the state shared by every command once the root pre-run has loaded it.
type app struct {
	info     buildInfo
	cfg      *config.Config
	closeLog func() error
}

// Execute runs the root command with the given build metadata.
func Execute(version, commit, date string) error {
	return newRootCmd(buildInfo{Version: version, Commit: commit, Date: date}).Execute()
}

func newRootCmd(info buildInfo) *cobra.Command {
	a := &app{info: info}

	root := &cobra.Command{
		Use:           "tidy",
		Short:         "Clean and convert CSV and Excel files",
		Long:          "Upload CSV or Excel files, remove duplicate rows, fill missing numbers with the column mean, chart numeric columns, and convert between formats.",
		Version:       info.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFormat(getOutputFormat(cmd)); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg

			// The alt screen owns the terminal, so the UI logs to a file.
			if cmd == cmd.Root() {
				closeLog, err := logging.SetupFile(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				a.closeLog = closeLog
				return nil
			}

			logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runUI()
		},
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	root.PersistentFlags().StringP("output", "o", "table", "Output format: table or json")

	root.AddCommand(
		newConvertCmd(a),
		newPreviewCmd(a),
		newVersionCmd(a),
	)

	return root
}

func (a *app) runUI() error {
	model := ui.InitialModel(ui.Settings{
		MaxFileSize: a.cfg.Files.MaxFileSize,
		PreviewRows: a.cfg.Files.PreviewRows,
		ChartRows:   a.cfg.Files.ChartRows,
		OutputDir:   a.cfg.Files.OutputDir,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tidy %s\n", a.info)
			return nil
		},
	}
}
