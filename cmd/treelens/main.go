package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/treelens/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorOrange = "\033[38;5;208m"
	colorYellow = "\033[38;5;220m"
	colorGray   = "\033[38;5;245m"
	colorCyan   = "\033[36m"
)

var (
	version    = "0.1.0"
	logger     *zap.Logger
	verbose    bool
	configPath string
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "treelens",
		Short: "Treelens - project tree scanner and organizer",
		Long: `Scan a project directory once and report duplicate files, manual version copies,
reconstructed work sessions, naming conventions, directory purposes and document categories.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")

	// Disable built-in help command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(helpCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a development logger under --verbose, otherwise an error-only JSON logger
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return cfg.Build()
}

// loadConfig reads --config when given, otherwise defaults and environment
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfigFile(configPath)
	}
	return config.LoadConfig()
}

// printMainBanner prints the main banner
func printMainBanner() {
	fmt.Println()
	fmt.Printf("%s%s▀█▀ █▀█ █▀▀ █▀▀ █   █▀▀ █▄ █ █▀%s\n", colorBold, colorOrange, colorReset)
	fmt.Printf("%s%s █  █▀▄ ██▄ ██▄ █▄▄ ██▄ █ ▀█ ▄█%s\n", colorBold, colorOrange, colorReset)
	fmt.Println()
	fmt.Printf("%sProject Tree Scanner v%s%s\n", colorGray, version, colorReset)
	fmt.Println()
}

// printBanner prints the startup banner
func printBanner(path string, cfg *config.Config) {
	printMainBanner()
	fmt.Printf("  %sScanning:%s  %s\n", colorGray, colorReset, path)
	fmt.Printf("  %sWorkers:%s   %d\n", colorGray, colorReset, cfg.Workers)
	fmt.Printf("  %sExclude:%s   %s\n", colorGray, colorReset, strings.Join(cfg.Exclude, ", "))
	fmt.Println()
}

// progressBar renders a fixed-width bar
func progressBar(current, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := width * current / total
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
