package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/treelens/internal/classifier"
	"github.com/IvanShishkin/treelens/internal/filesystem"
	"github.com/IvanShishkin/treelens/internal/history"
	"github.com/IvanShishkin/treelens/internal/naming"
	"github.com/IvanShishkin/treelens/internal/purpose"
	"github.com/spf13/cobra"
)

// rulesCmd lists the classification and directory purpose tables
func rulesCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List classification rules and directory purposes",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := classifier.DefaultRules()
			source := "built-in"
			if rulesPath != "" {
				loaded, err := classifier.LoadRules(rulesPath)
				if err != nil {
					return err
				}
				if _, err := classifier.New(loaded); err != nil {
					return err
				}
				rules, source = loaded, rulesPath
			}

			fmt.Printf("%s%sDOCUMENT CATEGORIES%s %s(%s, evaluated in order)%s\n\n", colorBold, colorOrange, colorReset, colorGray, source, colorReset)
			for _, r := range rules {
				fmt.Printf("  %s%-16s%s %s\n", colorCyan, r.Category, colorReset, strings.Join(r.Keywords, ", "))
			}

			fmt.Printf("\n%s%sDIRECTORY PURPOSES%s\n\n", colorBold, colorOrange, colorReset)
			for _, r := range purpose.DefaultRules() {
				fmt.Printf("  %s%-16s%s [%s] %s\n", colorCyan, r.Purpose, colorReset, purpose.Priority(r.Purpose), strings.Join(r.Keywords, ", "))
			}

			fmt.Printf("\n%s%sNAMING CONVENTIONS%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  %s\n\n", strings.Join(naming.Conventions(), ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML classification rules file or directory")
	return cmd
}

// historyCmd prints recorded scans
func historyCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show recorded scans",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				dbPath = cfg.HistoryDB
			}
			if dbPath == "" {
				return fmt.Errorf("no history database: pass --db or set history_db")
			}

			root := ""
			if len(args) == 1 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				root = abs
			}

			store, err := history.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(root, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Printf("  %sNo scans recorded%s\n", colorGray, colorReset)
				return nil
			}

			fmt.Printf("%s%-20s %8s %8s %10s %8s %6s  %s%s\n", colorBold,
				"SCANNED", "FILES", "DUPES", "WASTED", "SESSIONS", "HEALTH", "ROOT", colorReset)
			for _, e := range entries {
				fmt.Printf("%-20s %8d %8d %10s %8d %6d  %s\n",
					e.ScanTime.Local().Format("2006-01-02 15:04:05"),
					e.FileCount, e.DuplicateGroups, filesystem.FormatSize(e.WastedBytes),
					e.Sessions, e.Stats.HealthScore, e.Root)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite history database (default: history_db from config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show, 0 for all")
	return cmd
}

// versionCmd prints the version
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("treelens v%s\n", version)
		},
	}
}

// helpCmd creates a detailed help command
func helpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show detailed help and documentation",
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()

			fmt.Printf("%s%sCOMMANDS%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  %sscan [path]%s       Scan a project directory (default: current directory)\n", colorBold, colorReset)
			fmt.Printf("  %srules%s             List classification rules and directory purposes\n", colorBold, colorReset)
			fmt.Printf("  %shistory [path]%s    Show recorded scans\n", colorBold, colorReset)
			fmt.Printf("  %sversion%s           Print the version\n", colorBold, colorReset)

			fmt.Printf("\n%s%sSCAN FLAGS%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  %s--workers%s <n>         Parallel hashing and classification workers\n", colorBold, colorReset)
			fmt.Printf("  %s--max-size%s <size>     Skip hashing above this size (default: 50M)\n", colorBold, colorReset)
			fmt.Printf("  %s--exclude%s <dirs>      Directory names to prune (comma-separated)\n", colorBold, colorReset)
			fmt.Printf("  %s--session-gap%s <h>     Inactivity hours closing a work session (default: 4)\n", colorBold, colorReset)
			fmt.Printf("  %s--session-min-files%s   Minimum files per session (default: 3)\n", colorBold, colorReset)
			fmt.Printf("  %s--similarity%s <r>      Filename similarity threshold (default: 0.85)\n", colorBold, colorReset)
			fmt.Printf("  %s--classify%s <exts>     Extensions whose content is classified\n", colorBold, colorReset)
			fmt.Printf("  %s--sections%s            Classify markdown sections too\n", colorBold, colorReset)
			fmt.Printf("  %s--rules%s <path>        YAML rules file or directory\n", colorBold, colorReset)

			fmt.Printf("\n%s%sOUTPUT FLAGS%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  %s-r, --report%s <fmt>    Report format: %stxt%s, %shtml%s, %sjson%s, %smd%s\n",
				colorBold, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset)
			fmt.Printf("  %s-o, --output%s <file>   Output file path\n", colorBold, colorReset)
			fmt.Printf("  %s--history-db%s <file>   Record the scan in a SQLite history database\n", colorBold, colorReset)
			fmt.Printf("  %s--metrics-file%s <f>    Write Prometheus textfile metrics\n", colorBold, colorReset)

			fmt.Printf("\n%s%sAI FLAGS%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  %s--ai%s                  Add AI commentary (only a digest of counts is sent)\n", colorBold, colorReset)
			fmt.Printf("  %s--ai-model%s <model>    %shaiku%s (default), %ssonnet%s, %sopus%s\n",
				colorBold, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset)
			fmt.Printf("  %s--ai-token%s <token>    Anthropic API token (or set ANTHROPIC_API_KEY)\n", colorBold, colorReset)
			fmt.Printf("  %s--ai-lang%s <lang>      Commentary language: en, ru, es\n", colorBold, colorReset)

			fmt.Printf("\n%s%sGLOBAL FLAGS%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  %s-v, --verbose%s         Enable verbose logging\n", colorBold, colorReset)
			fmt.Printf("  %s-c, --config%s <file>   YAML config file (env prefix TREELENS_)\n", colorBold, colorReset)

			fmt.Printf("\n%s%sEXAMPLES%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  %s# Console summary%s\n", colorGray, colorReset)
			fmt.Printf("  treelens scan ~/projects/site\n\n")
			fmt.Printf("  %s# HTML report with section classification%s\n", colorGray, colorReset)
			fmt.Printf("  treelens scan --sections -r html -o report.html ~/notes\n\n")
			fmt.Printf("  %s# Track a project over time%s\n", colorGray, colorReset)
			fmt.Printf("  treelens scan --history-db ~/.treelens/history.db . && treelens history --db ~/.treelens/history.db .\n\n")
		},
	}
}
