package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wesl/internal/diag"
	"wesl/internal/diagfmt"
	"wesl/internal/source"
	"wesl/internal/sourcemap"
)

var errNotRecorded = errors.New("not recorded")

var lookupCmd = &cobra.Command{
	Use:   "lookup <dump-file> <mangled...>",
	Short: "Print where mangled names were declared",
	Args:  cobra.MinimumNArgs(2),
	RunE:  lookupExecution,
}

var explainCmd = &cobra.Command{
	Use:   "explain [flags] <dump-file> <message>",
	Short: "Render a diagnostic about linked output against the original sources",
	Long: `Explain renders a diagnostic message produced for linked output. Mangled
names in the message are replaced with declaration names and the span is
shown in the module it belongs to: --module, else the module of --decl,
else the root module.`,
	Args: cobra.ExactArgs(2),
	RunE: explainExecution,
}

func init() {
	explainCmd.Flags().String("decl", "", "mangled declaration the diagnostic is about")
	explainCmd.Flags().String("module", "", "module the span refers to")
	explainCmd.Flags().String("span", "", "byte range start-end inside the module")
	explainCmd.Flags().String("severity", "error", "severity (info|warning|error)")
	explainCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	explainCmd.Flags().Int("context", 0, "lines of context before the reported line")
	explainCmd.Flags().Bool("show-decl", true, "print the originating declaration")
}

func lookupExecution(cmd *cobra.Command, args []string) error {
	sm, err := readDump(args[0])
	if err != nil {
		return err
	}
	var missing []string
	for _, name := range args[1:] {
		if err := printLookup(cmd.OutOrStdout(), sm, name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(missing, ", "), errNotRecorded)
	}
	return nil
}

func printLookup(w io.Writer, sm sourcemap.SourceMap, mangled string) error {
	path, decl, ok := sm.Decl(mangled)
	if !ok {
		return fmt.Errorf("%s: %w", mangled, errNotRecorded)
	}
	line := fmt.Sprintf("%s -> %s::%s", mangled, path, decl)
	if name, ok := sm.DisplayName(path); ok {
		line += " (" + name + ")"
	}
	fmt.Fprintln(w, line)
	return nil
}

func explainExecution(cmd *cobra.Command, args []string) error {
	declFlag, err := cmd.Flags().GetString("decl")
	if err != nil {
		return err
	}
	moduleFlag, err := cmd.Flags().GetString("module")
	if err != nil {
		return err
	}
	spanFlag, err := cmd.Flags().GetString("span")
	if err != nil {
		return err
	}
	sevFlag, err := cmd.Flags().GetString("severity")
	if err != nil {
		return err
	}
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	contextLines, err := cmd.Flags().GetInt("context")
	if err != nil {
		return err
	}
	showDecl, err := cmd.Flags().GetBool("show-decl")
	if err != nil {
		return err
	}

	sev, err := diag.ParseSeverity(sevFlag)
	if err != nil {
		return err
	}
	d := diag.New(sev, args[1]).AtDecl(declFlag)
	var span source.Span
	if spanFlag != "" {
		if span, err = source.ParseSpan(spanFlag); err != nil {
			return err
		}
	}
	if moduleFlag != "" {
		p, err := source.ParseModulePath(moduleFlag)
		if err != nil {
			return err
		}
		d = d.In(p, span)
	} else {
		d.Span = span
	}

	sm, err := readDump(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(formatFlag) {
	case "pretty":
		return diagfmt.Pretty(out, d, sm, diagfmt.PrettyOpts{
			Color:    useColor && out == os.Stdout,
			Context:  contextLines,
			ShowDecl: showDecl,
		})
	case "json":
		bag := diag.NewBag(1)
		bag.Add(d)
		return diagfmt.JSON(out, bag, sm, diagfmt.JSONOpts{IncludePositions: true})
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", formatFlag)
	}
}
