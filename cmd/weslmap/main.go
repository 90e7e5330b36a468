// Package main implements the weslmap CLI: it records source maps for WESL
// modules and uses them to map mangled names back to their origin.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wesl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "weslmap",
	Short:         "WESL source map recorder and inspector",
	Long:          `weslmap resolves WESL modules, records which mangled names came from which declarations and renders diagnostics against the original sources`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	traceCleanup   = func() {}
	profileCleanup = func() {}
)

func cleanupAll() {
	traceCleanup()
	profileCleanup()
}

// main registers subcommands and persistent flags and executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(mangleCmd)
	rootCmd.AddCommand(unmangleCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file ('-' for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 0, "also keep the last N trace events in memory (0 = off)")
	rootCmd.PersistentFlags().String("trace-dump", "", "write the in-memory trace ring to file as ndjson on exit")
	rootCmd.PersistentFlags().String("manifest-dir", ".", "directory to search for wesl.toml")
	rootCmd.PersistentFlags().String("mangler", "escape", "mangling scheme (escape|hash|none)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := setupColor(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		if profileCleanup, err = setupProfiling(cmd); err != nil {
			profileCleanup = func() {}
			return err
		}
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		cleanupAll()
	}

	if err := rootCmd.Execute(); err != nil {
		cleanupAll()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
