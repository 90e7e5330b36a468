package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wesl/internal/mangle"
	"wesl/internal/source"
)

var mangleCmd = &cobra.Command{
	Use:   "mangle [flags] <module> <decl> [type...]",
	Short: "Print the mangled name of a declaration",
	Long: `Print the mangled name of a declaration. Extra arguments are type
arguments of a generic instantiation, e.g. "vec3<f32>".`,
	Args: cobra.MinimumNArgs(2),
	RunE: mangleExecution,
}

var unmangleCmd = &cobra.Command{
	Use:   "unmangle <name>",
	Short: "Reverse a mangled name using the mangling scheme",
	Args:  cobra.ExactArgs(1),
	RunE:  unmangleExecution,
}

func init() {
	mangleCmd.Flags().Uint32("variant", 0, "instantiation variant for type arguments")
}

func mangleExecution(cmd *cobra.Command, args []string) error {
	variant, err := cmd.Flags().GetUint32("variant")
	if err != nil {
		return err
	}
	m, err := manglerFromFlags(cmd)
	if err != nil {
		return err
	}
	path, err := source.ParseModulePath(args[0])
	if err != nil {
		return err
	}
	if !source.IsIdent(args[1]) {
		return fmt.Errorf("bad declaration name %q", args[1])
	}
	types := make([]mangle.TypeExpr, 0, len(args)-2)
	for _, raw := range args[2:] {
		t, err := parseTypeExpr(raw)
		if err != nil {
			return err
		}
		types = append(types, t)
	}
	fmt.Fprintln(cmd.OutOrStdout(), mangleName(m, path, args[1], variant, types))
	return nil
}

func mangleName(m mangle.Mangler, path source.ModulePath, decl string, variant uint32, types []mangle.TypeExpr) string {
	name := m.Mangle(path, decl)
	if len(types) > 0 {
		name = m.MangleTypes(name, variant, types)
	}
	return name
}

func unmangleExecution(cmd *cobra.Command, args []string) error {
	m, err := manglerFromFlags(cmd)
	if err != nil {
		return err
	}
	path, decl, ok := m.Unmangle(args[0])
	if !ok {
		return fmt.Errorf("%q is not a name produced by this mangler; use 'weslmap lookup' with a recorded map", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s::%s\n", path, decl)
	return nil
}
