// Package main provides the CLI entrypoint for screenwatch.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/screenwatch/screenwatch/internal/config"
	"github.com/screenwatch/screenwatch/internal/model"
	"github.com/screenwatch/screenwatch/internal/source"
	"github.com/screenwatch/screenwatch/internal/tui"
	"github.com/screenwatch/screenwatch/internal/usage"
)

var (
	dbPath       string
	reportWeekly bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "screenwatch",
		Short:         "TUI Screen Time analyzer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRootCmd,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to knowledgeC.db (default: system Screen Time database)")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func runRootCmd(cmd *cobra.Command, _ []string) error {
	daily, weekly, err := loadSummaries(cmd)
	if err != nil {
		return err
	}
	model := tui.NewModel(daily, weekly)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadSummaries runs the whole pipeline up to aggregation: resolve the
// database path, fetch the events, and build both summary sequences. Any
// source failure aborts here, before the interactive loop starts.
func loadSummaries(cmd *cobra.Command) ([]model.DailyEntry, []model.WeeklyEntry, error) {
	path, err := resolveDatabasePath(cmd)
	if err != nil {
		return nil, nil, err
	}

	src, err := source.Open(path)
	if err != nil {
		return nil, nil, sourceOpenError(path, err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logErrf("failed to close database: %v\n", cerr)
		}
	}()

	events, malformed, err := src.Events(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read usage events: %w", err)
	}
	if malformed > 0 {
		logErrf("warning: %d rows had unreadable timestamps and were recorded at the epoch\n", malformed)
	}

	daily := usage.AggregateDaily(events, time.Local)
	weekly := usage.AggregateWeekly(daily, time.Now())
	return daily, weekly, nil
}

func resolveDatabasePath(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("db") {
		return dbPath, nil
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if fileCfg.Source.Database != nil && *fileCfg.Source.Database != "" {
		return *fileCfg.Source.Database, nil
	}
	return config.DefaultDatabasePath(), nil
}

func sourceOpenError(path string, err error) error {
	switch {
	case errors.Is(err, source.ErrNotFound):
		return fmt.Errorf("could not find the Screen Time database at %s\nSet another path with --db or in %s", path, config.DefaultConfigPath())
	case errors.Is(err, source.ErrUnreadable):
		return fmt.Errorf("the Screen Time database at %s is not readable\nPlease grant Full Disk Access to the terminal running screenwatch", path)
	default:
		return fmt.Errorf("failed to open database: %w", err)
	}
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print usage summaries to stdout",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().BoolVar(&reportWeekly, "weekly", false, "print weekly summaries instead of daily ones")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	daily, weekly, err := loadSummaries(cmd)
	if err != nil {
		return err
	}

	width := 0
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	var sections []string
	if reportWeekly {
		for _, entry := range weekly {
			sections = append(sections, usage.RenderWeeklyDetail(entry.Key, entry.Summary))
		}
	} else {
		for _, entry := range daily {
			sections = append(sections, usage.RenderDailyDetail(entry.Date, entry.Summary))
		}
	}
	if len(sections) == 0 {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), "No usage data found."); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}
	for _, section := range sections {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), fitToWidth(section, width)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// fitToWidth truncates every line of s to the terminal width. A width of
// zero leaves s untouched.
func fitToWidth(s string, width int) string {
	s = strings.TrimRight(s, "\n")
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = runewidth.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	ed := exec.Command(parts[0], append(parts[1:], path)...)
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# screenwatch configuration
# Uncomment a value to enable it. CLI flags override config values.

[source]
# database = %q
`, config.DefaultDatabasePath())
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
