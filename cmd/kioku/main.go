// Package main provides the CLI entrypoint for kioku.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kioku-app/kioku/internal/clock"
	"github.com/kioku-app/kioku/internal/config"
	"github.com/kioku-app/kioku/internal/drillui"
	"github.com/kioku-app/kioku/internal/generator"
	"github.com/kioku-app/kioku/internal/history"
	"github.com/kioku-app/kioku/internal/historyui"
	"github.com/kioku-app/kioku/internal/mapping"
	"github.com/kioku-app/kioku/internal/masterui"
	"github.com/kioku-app/kioku/internal/model"
	"github.com/kioku-app/kioku/internal/session"
	"github.com/kioku-app/kioku/internal/settings"
	"github.com/kioku-app/kioku/internal/stats"
	"github.com/kioku-app/kioku/internal/store"
	"github.com/kioku-app/kioku/internal/tui"
)

var (
	rootDBPath string
	rootRange  string

	masterMode string

	historyPlainFlag bool
	historyRange     string

	settingsYearMode    string
	settingsCountdown   int
	settingsShowNumbers bool
	settingsStartDay    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kioku",
		Short:         "TUI memory trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTrainerCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootDBPath, "db", "", "database path (default: XDG data dir)")
	rootCmd.Flags().StringVar(&rootRange, "range", "", "start directly in a range (recent, birthday, competition)")

	rootCmd.AddCommand(newNumbersCmd())
	rootCmd.AddCommand(newLettersCmd())
	rootCmd.AddCommand(newMasterCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTrainerCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "range", &rootRange, fileCfg.Calendar.Range)

	var autoRange *model.CalendarRange
	if rootRange != "" {
		r := model.CalendarRange(strings.ToLower(rootRange))
		if !r.Valid() {
			return fmt.Errorf("unknown range %q (recent, birthday, competition)", rootRange)
		}
		autoRange = &r
	}

	st, closeStore, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	cfg := settings.Load(ctx, st)
	log := history.New(st)
	engine := session.New(cfg, clock.NewMonotonic(), generator.New(), log)

	m := tui.NewModel(engine, log)
	m.AutoStart(autoRange)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newNumbersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "numbers",
		Short: "Two-digit number flash drill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDrillCmd(cmd, mapping.KindNumber)
		},
	}
}

func newLettersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "letters",
		Short: "Hiragana letter-pair flash drill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDrillCmd(cmd, mapping.KindLetter)
		},
	}
}

func runDrillCmd(cmd *cobra.Command, kind mapping.Kind) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, closeStore, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore()

	mappings, err := mapping.Load(context.Background(), st, kind)
	if err != nil {
		return fmt.Errorf("failed to load mappings: %w", err)
	}
	m := drillui.NewModel(kind, generator.New(), mappings)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newMasterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "master",
		Short: "Edit mnemonic word mappings",
		Args:  cobra.NoArgs,
		RunE:  runMasterCmd,
	}
	cmd.Flags().StringVar(&masterMode, "mode", "number", "mapping catalog (number or letter)")
	return cmd
}

func runMasterCmd(cmd *cobra.Command, _ []string) error {
	kind, err := mapping.ParseKind(masterMode)
	if err != nil {
		return err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, closeStore, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore()

	mappings, err := mapping.Load(context.Background(), st, kind)
	if err != nil {
		return fmt.Errorf("failed to load mappings: %w", err)
	}
	m := masterui.NewModel(kind, st, mappings)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show personal bests and past sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().BoolVar(&historyPlainFlag, "plain", false, "print to stdout instead of the TUI")
	cmd.Flags().StringVar(&historyRange, "range", "", "filter by range (recent, birthday, competition)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, closeStore, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := history.New(st).All(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if historyRange != "" {
		r := model.CalendarRange(strings.ToLower(historyRange))
		if !r.Valid() {
			return fmt.Errorf("unknown range %q (recent, birthday, competition)", historyRange)
		}
		filtered := records[:0:0]
		for _, rec := range records {
			if rec.Range == r {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if historyPlainFlag {
		out := cmd.OutOrStdout()
		if err := stats.RenderPersonalBests(out, records); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := stats.RenderHistory(out, records, stats.TerminalWidth()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	m := historyui.NewModel(records)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change calendar trainer settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsCmd,
	}
	cmd.Flags().StringVar(&settingsYearMode, "year-mode", "", "date display mode (western, japanese, both)")
	cmd.Flags().IntVar(&settingsCountdown, "countdown", 0, "countdown seconds (3, 5, or 10)")
	cmd.Flags().BoolVar(&settingsShowNumbers, "show-numbers", false, "show weekday index numbers on answer keys")
	cmd.Flags().StringVar(&settingsStartDay, "start-day", "", "first day of week (sunday or monday)")
	return cmd
}

func runSettingsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st, closeStore, err := openStore(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	cfg := settings.Load(ctx, st)
	changed := false

	if cmd.Flags().Changed("year-mode") {
		mode := model.YearMode(strings.ToLower(settingsYearMode))
		if !mode.Valid() {
			return fmt.Errorf("unknown year mode %q (western, japanese, both)", settingsYearMode)
		}
		cfg.YearMode = mode
		changed = true
	}
	if cmd.Flags().Changed("countdown") {
		cfg.CountdownSeconds = settingsCountdown
		changed = true
	}
	if cmd.Flags().Changed("show-numbers") {
		cfg.ShowNumbers = settingsShowNumbers
		changed = true
	}
	if cmd.Flags().Changed("start-day") {
		switch strings.ToLower(settingsStartDay) {
		case "sunday", "0":
			cfg.StartDay = 0
		case "monday", "1":
			cfg.StartDay = 1
		default:
			return fmt.Errorf("unknown start day %q (sunday or monday)", settingsStartDay)
		}
		changed = true
	}

	if changed {
		if err := settings.Save(ctx, st, cfg); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	startDay := "sunday"
	if cfg.StartDay == 1 {
		startDay = "monday"
	}
	if _, err := fmt.Fprintf(out, "year-mode: %s\ncountdown: %d\nshow-numbers: %t\nstart-day: %s\n",
		cfg.YearMode, cfg.CountdownSeconds, cfg.ShowNumbers, startDay); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
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
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return `# kioku configuration
# Uncomment a value to enable it. CLI flags override config values.

[calendar]
# range = "recent"        # Start directly in a range (recent, birthday, competition)

[storage]
# path = "~/.local/share/kioku/kioku.db"
`
}

func openStore(fileCfg config.FileConfig) (*store.Store, func(), error) {
	path := rootDBPath
	if path == "" && fileCfg.Storage.Path != nil {
		path = *fileCfg.Storage.Path
	}
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeStore := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	return st, closeStore, nil
}

// applyStringConfig fills a flag-backed value from the config file unless
// the flag was set explicitly. Flags take precedence over the config.
func applyStringConfig(cmd *cobra.Command, name string, target *string, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
