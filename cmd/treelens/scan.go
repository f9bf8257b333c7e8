package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/IvanShishkin/treelens/internal/ai"
	"github.com/IvanShishkin/treelens/internal/config"
	"github.com/IvanShishkin/treelens/internal/core"
	"github.com/IvanShishkin/treelens/internal/history"
	"github.com/IvanShishkin/treelens/internal/metrics"
	"github.com/IvanShishkin/treelens/internal/report"
	"github.com/IvanShishkin/treelens/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scanFlags holds scan command flag values; only flags given on the command line override config
type scanFlags struct {
	workers             int
	maxSize             string
	exclude             []string
	sessionGapHours     float64
	sessionMinFiles     int
	sessionLimit        int
	similarityThreshold float64
	classifyExtensions  []string
	classifySections    bool
	rulesPath           string
	reportFormat        string
	outputFile          string
	historyDB           string
	metricsFile         string
	// AI flags
	aiEnabled bool
	aiModel   string
	aiToken   string
	aiLang    string
}

// apply overrides loaded configuration with the flags given on the command line
func (f *scanFlags) apply(cfg *config.Config, changed func(name string) bool) {
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("max-size") {
		cfg.MaxSize = f.maxSize
	}
	if changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if changed("session-gap") {
		cfg.SessionGapHours = f.sessionGapHours
	}
	if changed("session-min-files") {
		cfg.SessionMinFiles = f.sessionMinFiles
	}
	if changed("session-limit") {
		cfg.SessionLimit = f.sessionLimit
	}
	if changed("similarity") {
		cfg.SimilarityThreshold = f.similarityThreshold
	}
	if changed("classify") {
		cfg.ClassifyExtensions = f.classifyExtensions
	}
	if changed("sections") {
		cfg.ClassifySections = f.classifySections
	}
	if changed("rules") {
		cfg.RulesPath = f.rulesPath
	}
	if changed("report") {
		cfg.ReportFormat = f.reportFormat
	}
	if changed("output") {
		cfg.OutputFile = f.outputFile
	}
	if changed("history-db") {
		cfg.HistoryDB = f.historyDB
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}

	// AI configuration overrides
	if changed("ai") {
		cfg.AI.Enabled = f.aiEnabled
	}
	if changed("ai-model") {
		cfg.AI.Model = f.aiModel
	}
	if changed("ai-token") {
		cfg.AI.APIToken = f.aiToken
	}
	if changed("ai-lang") {
		cfg.AI.Language = f.aiLang
	}
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project directory",
		Long:  `Walk a directory once and report duplicates, version clusters, work sessions, naming and directory purposes.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return err
			}
			defer logger.Sync()

			cfg, err := loadConfig()
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			path := cfg.Path
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = "."
			}

			flags.apply(cfg, cmd.Flags().Changed)
			if err := cfg.Validate(); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			// Ask for a token if AI is on but none is configured
			if cfg.AI.Enabled && cfg.AI.APIToken == "" && os.Getenv("ANTHROPIC_API_KEY") == "" {
				token, err := promptToken()
				if err != nil {
					fmt.Printf("  %s⚠ AI disabled:%s %v\n\n", colorYellow, colorReset, err)
					cfg.AI.Enabled = false
				} else {
					cfg.AI.APIToken = token
				}
			}

			printBanner(path, cfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runScan(ctx, cfg, path)
		},
	}

	bindScanFlags(cmd, &flags)

	return cmd
}

// bindScanFlags registers the scan flags on cmd
func bindScanFlags(cmd *cobra.Command, flags *scanFlags) {
	f := cmd.Flags()
	f.IntVar(&flags.workers, "workers", 0, "Hashing and classification workers (default: CPU cores)")
	f.StringVar(&flags.maxSize, "max-size", "", "Size ceiling for hashing and classification (default: 50M)")
	f.StringSliceVar(&flags.exclude, "exclude", nil, "Directory names to exclude (comma-separated)")
	f.Float64Var(&flags.sessionGapHours, "session-gap", 0, "Hours of inactivity that close a work session (default: 4)")
	f.IntVar(&flags.sessionMinFiles, "session-min-files", 0, "Minimum files per work session (default: 3)")
	f.IntVar(&flags.sessionLimit, "session-limit", 0, "Keep only the N most recent sessions (default: all)")
	f.Float64Var(&flags.similarityThreshold, "similarity", 0, "Filename similarity threshold (default: 0.85)")
	f.StringSliceVar(&flags.classifyExtensions, "classify", nil, "Extensions whose content is classified (default: md,markdown,html,htm)")
	f.BoolVar(&flags.classifySections, "sections", false, "Also classify markdown sections")
	f.StringVar(&flags.rulesPath, "rules", "", "YAML classification rules file or directory")
	f.StringVarP(&flags.reportFormat, "report", "r", "", "Report format: txt, html, json, md (default: console output)")
	f.StringVarP(&flags.outputFile, "output", "o", "", "Output file path")
	f.StringVar(&flags.historyDB, "history-db", "", "SQLite database to record scan history")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "Prometheus textfile to write scan metrics")

	// AI flags
	f.BoolVar(&flags.aiEnabled, "ai", false, "Add AI commentary to the report")
	f.StringVar(&flags.aiModel, "ai-model", "", "AI model: haiku, sonnet, opus (default: haiku)")
	f.StringVar(&flags.aiToken, "ai-token", "", "Anthropic API token (or set ANTHROPIC_API_KEY)")
	f.StringVar(&flags.aiLang, "ai-lang", "", "AI commentary language: en, ru, es (default: en)")
}

// runScan executes the scan and every boundary collaborator
func runScan(ctx context.Context, cfg *config.Config, path string) error {
	root, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	scanner := core.NewScanner(cfg, logger)
	scanner.SetProgressCallback(printProgress())

	started := time.Now()
	scanReport, err := scanner.Scan(ctx, root)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Printf("\n  %s⊘ Scan cancelled%s\n\n", colorYellow, colorReset)
		}
		logger.Error("Scan failed", zap.Error(err))
		return err
	}

	env := &models.ReportEnvelope{
		Tool:        "treelens",
		Version:     version,
		GeneratedAt: time.Now().UTC(),
		Root:        root,
		DurationMs:  time.Since(started).Milliseconds(),
		Report:      scanReport,
	}

	env.Insight = summarize(ctx, cfg, scanReport)

	generator, err := report.NewGenerator(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.ReportFormat != "" {
		generator.PrintConsole(env)
	}
	reportPath, err := generator.Generate(env)
	if err != nil {
		logger.Error("Failed to generate report", zap.Error(err))
		return err
	}
	env.ReportPath = reportPath

	if cfg.HistoryDB != "" {
		recordHistory(cfg.HistoryDB, env)
	}
	if cfg.MetricsFile != "" {
		exporter := metrics.NewExporter()
		exporter.Observe(env)
		if err := exporter.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("Failed to write metrics", zap.Error(err))
			fmt.Printf("  %s⚠ Metrics not written:%s %v\n", colorYellow, colorReset, err)
		}
	}

	if env.ReportPath != "" {
		fmt.Printf("  %sReport:%s    %s%s%s\n", colorGray, colorReset, colorOrange, env.ReportPath, colorReset)
		fmt.Println()
	}
	return nil
}

// summarize asks the configured summarizer for commentary; failures only warn
func summarize(ctx context.Context, cfg *config.Config, r *models.ScanReport) string {
	summarizer, err := ai.NewSummarizer(&cfg.AI, logger)
	if err != nil {
		logger.Error("Failed to initialize AI", zap.Error(err))
		fmt.Printf("  %s⚠ AI commentary skipped:%s %v\n\n", colorYellow, colorReset, err)
		return ""
	}

	if analyzer, ok := summarizer.(*ai.Analyzer); ok {
		fmt.Printf("\n  %s%sAI Commentary%s\n", colorBold, colorRed, colorReset)
		analyzer.SetProgressCallback(func(current, total int, message string) {
			fmt.Printf("  %s%s%s\n", colorGray, message, colorReset)
		})
	}

	text, err := summarizer.Summarize(ctx, r)
	if err != nil {
		logger.Error("AI commentary failed", zap.Error(err))
		fmt.Printf("  %s⚠ AI commentary failed:%s %v\n\n", colorYellow, colorReset, err)
		return ""
	}
	return text
}

// recordHistory appends the scan to the history database; failures only warn
func recordHistory(dbPath string, env *models.ReportEnvelope) {
	store, err := history.Open(dbPath)
	if err != nil {
		logger.Error("Failed to open history", zap.Error(err))
		fmt.Printf("  %s⚠ History not recorded:%s %v\n", colorYellow, colorReset, err)
		return
	}
	defer store.Close()

	previous, err := store.Latest(env.Root)
	if err != nil && !errors.Is(err, history.ErrNoHistory) {
		logger.Error("Failed to read history", zap.Error(err))
	}

	entry, err := store.Record(env)
	if err != nil {
		logger.Error("Failed to record history", zap.Error(err))
		fmt.Printf("  %s⚠ History not recorded:%s %v\n", colorYellow, colorReset, err)
		return
	}
	logger.Debug("Scan recorded", zap.String("id", entry.ID))

	if previous != nil {
		fmt.Printf("  %sSince last scan:%s files %+d, duplicate groups %+d\n",
			colorGray, colorReset,
			entry.FileCount-previous.FileCount,
			entry.DuplicateGroups-previous.DuplicateGroups)
	}
}

// printProgress returns the console progress callback
func printProgress() core.ProgressCallback {
	lastPhase := ""
	return func(phase string, current, total int, message string) {
		// Replace the previous line within a phase
		if lastPhase == phase {
			fmt.Print("\033[1A\033[K")
		}
		lastPhase = phase

		label := strings.ToUpper(phase[:1]) + phase[1:] + ":"
		if total > 0 {
			pct := float64(current) / float64(total) * 100
			fmt.Printf("  %s%-12s%s [%s%s%s] %s%.1f%%%s %s\n",
				colorGray, label, colorReset, colorOrange, progressBar(current, total, 30), colorReset,
				colorOrange, pct, colorReset, message)
			return
		}
		fmt.Printf("  %s%-12s%s %s\n", colorGray, label, colorReset, message)
	}
}

// promptToken asks for an Anthropic API token on stdin
func promptToken() (string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Printf("  %sEnter Anthropic API token%s (or 'skip' to disable AI):\n", colorBold, colorReset)
	fmt.Printf("  %s> %s", colorRed, colorReset)

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	token := strings.TrimSpace(input)
	if token == "" || strings.EqualFold(token, "skip") {
		return "", errors.New("skipped by user")
	}
	if !strings.HasPrefix(token, "sk-ant-") {
		fmt.Printf("\n  %s⚠ Warning:%s Token doesn't start with 'sk-ant-', but continuing anyway.\n", colorYellow, colorReset)
	}
	fmt.Println()
	return token, nil
}
