// Package main provides the CLI entrypoint for rootdrill.
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
	"github.com/spf13/cobra"

	"github.com/verte-zerg/rootdrill/internal/config"
	"github.com/verte-zerg/rootdrill/internal/course"
	"github.com/verte-zerg/rootdrill/internal/generator"
	"github.com/verte-zerg/rootdrill/internal/model"
	"github.com/verte-zerg/rootdrill/internal/perf"
	"github.com/verte-zerg/rootdrill/internal/session"
	"github.com/verte-zerg/rootdrill/internal/stats"
	"github.com/verte-zerg/rootdrill/internal/statsui"
	"github.com/verte-zerg/rootdrill/internal/store"
	"github.com/verte-zerg/rootdrill/internal/tui"
)

const (
	defaultCurveWindow = 20
	defaultPenaltyMs   = int(session.DefaultPenalty / time.Millisecond)
)

var (
	practiceCourses   []string
	practiceRowSize   int
	practiceReinforce float64
	practiceWindow    int
	practiceStudy     bool
	practiceFast      bool
	practiceHint      bool
	practicePenaltyMs int

	statsCourse      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
	statsExport      string

	importName  string
	importForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rootdrill",
		Short:         "TUI drill trainer for input-method roots",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringSliceVar(&practiceCourses, "course", nil, "courses to practice (skips the selector)")
	rootCmd.Flags().IntVar(&practiceRowSize, "row-size", generator.DefaultRowSize, "problems per row")
	rootCmd.Flags().Float64Var(&practiceReinforce, "reinforce", generator.DefaultReinforceScale, "upper bound of reinforcement picks per row")
	rootCmd.Flags().IntVar(&practiceWindow, "window", perf.DefaultWindow, "latencies kept per problem")
	rootCmd.Flags().BoolVar(&practiceStudy, "study", false, "reinforce slow problems")
	rootCmd.Flags().BoolVar(&practiceFast, "fast", false, "submit as soon as the answer length is reached")
	rootCmd.Flags().BoolVar(&practiceHint, "hint", false, "show hints on wrong answers")
	rootCmd.Flags().IntVar(&practicePenaltyMs, "penalty-ms", defaultPenaltyMs, "latency penalty for a wrong answer")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCoursesCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringSliceConfig(cmd, "course", &practiceCourses, fileCfg.Practice.Courses)
	applyIntConfig(cmd, "row-size", &practiceRowSize, fileCfg.Practice.RowSize)
	applyFloatConfig(cmd, "reinforce", &practiceReinforce, fileCfg.Practice.ReinforceScale)
	applyIntConfig(cmd, "window", &practiceWindow, fileCfg.Practice.Window)
	applyBoolConfig(cmd, "study", &practiceStudy, fileCfg.Practice.Study)
	applyBoolConfig(cmd, "fast", &practiceFast, fileCfg.Practice.Fast)
	applyBoolConfig(cmd, "hint", &practiceHint, fileCfg.Practice.Hint)
	applyIntConfig(cmd, "penalty-ms", &practicePenaltyMs, fileCfg.Practice.PenaltyMs)

	cfg := model.Config{
		Courses:        practiceCourses,
		RowSize:        practiceRowSize,
		ReinforceScale: practiceReinforce,
		Window:         practiceWindow,
		Study:          practiceStudy,
		Fast:           practiceFast,
		Hint:           practiceHint,
		Penalty:        time.Duration(practicePenaltyMs) * time.Millisecond,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	for _, name := range cfg.Courses {
		if _, ok := catalog.Lookup(name); !ok {
			return fmt.Errorf("%w: %q (run: rootdrill courses)", course.ErrUnknownCourse, name)
		}
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	sess := session.New(cfg, generator.New(), session.WithWarnf(logErrf))
	m := tui.NewModel(sess, catalog, st, cmd.Flags().Changed("course"))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadCatalog merges the bundled courses with user course files.
func loadCatalog() (*course.Catalog, error) {
	catalog := course.NewCatalog(course.Builtin()...)
	userCourses, err := course.LoadDir(config.DefaultCourseDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	for _, c := range userCourses {
		catalog.Add(c)
	}
	return catalog, nil
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

func newCoursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List available courses",
		Args:  cobra.NoArgs,
		RunE:  runCoursesCmd,
	}
}

func runCoursesCmd(cmd *cobra.Command, _ []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	for _, c := range catalog.Courses() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", c.Name, c.Size()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Import a course table",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importName, "name", "", "course name (default: file name)")
	cmd.Flags().BoolVar(&importForce, "force", false, "overwrite an existing course file")
	return cmd
}

func runImportCmd(_ *cobra.Command, args []string) error {
	c, err := course.ImportTable(args[0], strings.TrimSpace(importName))
	if err != nil {
		return err
	}
	outPath := filepath.Join(config.DefaultCourseDir(), courseFileName(c.Name))
	if !importForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("course already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat course: %w", err)
		}
	}
	if err := course.WriteFile(outPath, c); err != nil {
		return err
	}
	logErrf("Wrote %s (%d problems)\n", outPath, c.Size())
	return nil
}

// courseFileName maps a course name to a file name safe on common filesystems.
func courseFileName(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	return safe + ".toml"
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsCourse, "course", "", "course filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print stats instead of opening the TUI")
	cmd.Flags().StringVar(&statsExport, "export", "", "write stats to an .xlsx file")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return errors.New("--last must be >= 0")
	}

	cfg := model.StatsConfig{
		Course:      statsCourse,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsExport != "" || statsPlain {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		if statsExport != "" {
			if err := stats.ExportXLSX(statsExport, report); err != nil {
				return err
			}
			logErrf("Wrote %s\n", statsExport)
		}
		if statsPlain {
			return printReport(cmd, report, cfg.CurveWindow)
		}
		return nil
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printReport(cmd *cobra.Command, report stats.Report, curveWindow int) error {
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Sessions); err != nil {
		return err
	}
	if err := stats.RenderCurves(out, report.Sessions, curveWindow, stats.TerminalWidth()); err != nil {
		return err
	}
	return stats.RenderItemTable(out, report.ItemAggsAll)
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# rootdrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# courses = ["主根1.1"]   # Preselected courses in the selector
# row-size = %d           # Problems per row
# reinforce = %.1f        # Upper bound of reinforcement picks per row
# window = %d             # Latencies kept per problem
# study = false           # Reinforce slow problems
# fast = false            # Submit as soon as the answer length is reached
# hint = false            # Show hints on wrong answers
# penalty-ms = %d       # Latency penalty for a wrong answer
`,
		generator.DefaultRowSize,
		float64(generator.DefaultReinforceScale),
		perf.DefaultWindow,
		defaultPenaltyMs,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.RowSize <= 0 {
		return fmt.Errorf("--row-size must be > 0")
	}
	if cfg.ReinforceScale < 0 {
		return fmt.Errorf("--reinforce must be >= 0")
	}
	if cfg.Window <= 0 {
		return fmt.Errorf("--window must be > 0")
	}
	if cfg.Penalty < 0 {
		return fmt.Errorf("--penalty-ms must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
