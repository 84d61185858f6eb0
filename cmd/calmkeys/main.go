// Package main provides the CLI entrypoint for calmkeys.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/calmkeys/internal/config"
	"github.com/verte-zerg/calmkeys/internal/generator"
	"github.com/verte-zerg/calmkeys/internal/model"
	"github.com/verte-zerg/calmkeys/internal/stats"
	"github.com/verte-zerg/calmkeys/internal/tui"
	"github.com/verte-zerg/calmkeys/internal/wordlist"
)

const (
	defaultProfile     = "default"
	defaultWords       = 15
	defaultWeakFactor  = 2.0
	defaultCurveWindow = 3
	sparklinePadding   = 20
)

var (
	profile string

	practiceWords      int
	practiceWordList   string
	practiceFocusWeak  bool
	practiceWeakFactor float64
	practiceCalm       bool

	progressCurveWindow int

	resetYes bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "calmkeys",
		Short:         "Calm, adaptive typing practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&profile, "profile", defaultProfile, "learner profile")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per text")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "path to a custom word list (one word per line)")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", true, "bias practice toward weak letters")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak letters")
	rootCmd.Flags().BoolVar(&practiceCalm, "calm", true, "use the soft, low-contrast palette")

	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func resolveProfile(cmd *cobra.Command, fileCfg config.FileConfig) string {
	applyStringConfig(cmd, "profile", &profile, fileCfg.Practice.Profile)
	return strings.TrimSpace(profile)
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyBoolConfig(cmd, "calm", &practiceCalm, fileCfg.Practice.Calm)

	cfg := model.Config{
		Profile:      resolveProfile(cmd, fileCfg),
		Words:        practiceWords,
		WordListPath: practiceWordList,
		FocusWeak:    practiceFocusWeak,
		WeakFactor:   practiceWeakFactor,
		Calm:         practiceCalm,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	bank, err := wordlist.Builtin()
	if err != nil {
		return fmt.Errorf("failed to load word banks: %w", err)
	}
	if cfg.WordListPath != "" {
		words, err := wordlist.LoadWords(cfg.WordListPath, wordlist.FilterForLang("en"))
		if err != nil {
			return fmt.Errorf("failed to load word list: %w", err)
		}
		bank.Words = words
	}

	ctx := context.Background()
	a, err := openApp(ctx, fileCfg, cfg.Profile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logErrf("failed to close: %v\n", cerr)
		}
	}()

	m := tui.NewModel(cfg, a.coach, generator.New(bank), a.log)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show level, metrics and what to work on next",
		Args:  cobra.NoArgs,
		RunE:  runProgressCmd,
	}
	cmd.Flags().IntVar(&progressCurveWindow, "curve-window", defaultCurveWindow, "moving average window for the accuracy trend")
	return cmd
}

func runProgressCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	name := resolveProfile(cmd, fileCfg)
	a, err := openApp(context.Background(), fileCfg, name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logErrf("failed to close: %v\n", cerr)
		}
	}()

	snap := a.coach.Snapshot()
	report := stats.Report{
		Level:    a.levels.CurrentLevel(),
		Progress: snap.Progress,
		Metrics:  snap.Metrics,
		Check:    snap.Check,
		Percent:  snap.Percent,
		History:  a.assess.History(),
	}
	if next, ok := a.levels.NextLevel(); ok {
		report.Next = &next
	}

	width, color := terminalInfo()
	reportCfg := model.ReportConfig{
		Profile:     name,
		CurveWindow: progressCurveWindow,
		Width:       max(width-sparklinePadding, 0),
		Color:       color,
	}
	return stats.RenderReport(cmd.OutOrStdout(), report, reportCfg)
}

func terminalInfo() (width int, color bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0, true
	}
	return w, true
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List all levels and their requirements",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	a, err := openApp(context.Background(), fileCfg, resolveProfile(cmd, fileCfg))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logErrf("failed to close: %v\n", cerr)
		}
	}()
	return stats.RenderLevels(cmd.OutOrStdout(), a.levels.AllLevels(), a.levels.Progress().CurrentLevel)
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear session history and level progress for a profile",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "do not ask for confirmation")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	name := resolveProfile(cmd, fileCfg)
	if !resetYes {
		ok, err := confirm(cmd, fmt.Sprintf("Reset all progress for profile %q? [y/N] ", name))
		if err != nil {
			return err
		}
		if !ok {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
			return err
		}
	}

	ctx := context.Background()
	a, err := openApp(ctx, fileCfg, name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logErrf("failed to close: %v\n", cerr)
		}
	}()
	a.assess.Reset(ctx)
	a.levels.Reset(ctx)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Progress for %q reset. Back to level 1.\n", name)
	return err
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if _, err := fmt.Fprint(cmd.OutOrStdout(), prompt); err != nil {
		return false, err
	}
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false, nil
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
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
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# calmkeys configuration
# Uncomment a value to enable it. CLI flags override config values.
# CALMKEYS_PROFILE, CALMKEYS_STORAGE, CALMKEYS_REDIS_ADDR and CALMKEYS_LOG_LEVEL
# override this file and may be set in %s.

[practice]
# profile = %q         # Learner profile; each has its own history and level
# words = %d               # Words per text
# wordlist = ""            # Custom word list, one word per line
# focus-weak = true        # Bias practice toward weak letters
# weak-factor = %.1f       # Weight factor for weak letters
# calm = true              # Soft, low-contrast palette

[storage]
# backend = "sqlite"       # sqlite | redis | memory
# path = %q
# redis-addr = "localhost:6379"
# redis-password = ""
# redis-db = 0

[log]
# level = "info"           # debug | info | warn | error
# file = %q
`,
		config.DefaultEnvPath(),
		defaultProfile,
		defaultWords,
		defaultWeakFactor,
		config.DefaultDBPath(),
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if strings.ContainsAny(cfg.Profile, ": ") {
		return fmt.Errorf("--profile must not contain spaces or ':'")
	}
	return nil
}

func logErrf(format string, args ...any) {
	// Best-effort logging to stderr.
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}
