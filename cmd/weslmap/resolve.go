package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"wesl/internal/resolve"
	"wesl/internal/source"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] <module>",
	Short: "Resolve a module and print its display name, file and source",
	Args:  cobra.ExactArgs(1),
	RunE:  resolveExecution,
}

func init() {
	resolveCmd.Flags().Bool("no-source", false, "print only the header")
}

func resolveExecution(cmd *cobra.Command, args []string) error {
	noSource, err := cmd.Flags().GetBool("no-source")
	if err != nil {
		return err
	}
	path, err := source.ParseModulePath(args[0])
	if err != nil {
		return err
	}
	r, err := resolverFromFlags(cmd)
	if err != nil {
		return err
	}
	return printResolved(cmd.OutOrStdout(), r, path, !noSource)
}

func printResolved(w io.Writer, r resolve.Resolver, path source.ModulePath, withSource bool) error {
	text, err := r.ResolveSource(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "module:  %s\n", path)
	if name, ok := r.DisplayName(path); ok {
		fmt.Fprintf(w, "display: %s\n", name)
	}
	if fsPath, ok := r.FSPath(path); ok {
		fmt.Fprintf(w, "file:    %s\n", fsPath)
	}
	fmt.Fprintf(w, "size:    %d bytes\n", len(text))
	if withSource {
		fmt.Fprintln(w)
		fmt.Fprint(w, text)
		if text != "" && text[len(text)-1] != '\n' {
			fmt.Fprintln(w)
		}
	}
	return nil
}
