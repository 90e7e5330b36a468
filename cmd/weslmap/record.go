package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"wesl/internal/diag"
	"wesl/internal/diagfmt"
	"wesl/internal/mangle"
	"wesl/internal/observ"
	"wesl/internal/resolve"
	"wesl/internal/smdump"
	"wesl/internal/source"
	"wesl/internal/sourcemap"
	"wesl/internal/trace"
)

var recordCmd = &cobra.Command{
	Use:   "record [flags] <root-module> [module::decl ...]",
	Short: "Resolve modules, mangle declarations and dump the recorded source map",
	Long: `Record resolves the root module and every --modules entry concurrently
through a recording mapper, mangles the listed declarations and writes the
finished source map. Dumps written as json or msgpack can be read back by
"weslmap lookup" and "weslmap explain".`,
	Args: cobra.MinimumNArgs(1),
	RunE: recordExecution,
}

func init() {
	recordCmd.Flags().StringSlice("modules", nil, "additional modules to resolve (comma separated)")
	recordCmd.Flags().String("format", "text", "dump format (text|json|msgpack)")
	recordCmd.Flags().StringP("output", "o", "", "write the dump to file (format guessed from extension unless --format is set)")
	recordCmd.Flags().Bool("keep-going", false, "report unresolvable modules as warnings instead of failing")
	recordCmd.Flags().Int("jobs", 0, "max concurrent resolutions (0 = GOMAXPROCS)")
	recordCmd.Flags().Bool("timings", false, "print stage timings to stderr")
}

type declRef struct {
	path source.ModulePath
	decl string
}

type recordOptions struct {
	root      source.ModulePath
	modules   []source.ModulePath
	decls     []declRef
	keepGoing bool
	jobs      int
	timer     *observ.Timer
}

func recordExecution(cmd *cobra.Command, args []string) error {
	moduleArgs, err := cmd.Flags().GetStringSlice("modules")
	if err != nil {
		return err
	}
	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	keepGoing, err := cmd.Flags().GetBool("keep-going")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}

	format, err := smdump.ParseFormat(formatValue)
	if err != nil {
		return err
	}
	if output != "" && !cmd.Flags().Changed("format") {
		format = smdump.FormatForPath(output)
	}

	opts := recordOptions{keepGoing: keepGoing, jobs: jobs, timer: observ.NewTimer()}
	if opts.root, err = source.ParseModulePath(args[0]); err != nil {
		return fmt.Errorf("root module: %w", err)
	}
	for _, raw := range moduleArgs {
		p, err := source.ParseModulePath(raw)
		if err != nil {
			return err
		}
		opts.modules = append(opts.modules, p)
	}
	for _, raw := range args[1:] {
		p, decl, err := parseDeclRef(raw)
		if err != nil {
			return err
		}
		opts.decls = append(opts.decls, declRef{path: p, decl: decl})
	}

	r, err := resolverFromFlags(cmd)
	if err != nil {
		return err
	}
	m, err := manglerFromFlags(cmd)
	if err != nil {
		return err
	}

	sm, warnings, err := recordSourceMap(cmd.Context(), r, m, opts)
	if err != nil {
		return err
	}
	if err := printWarnings(cmd.ErrOrStderr(), warnings, sm); err != nil {
		return err
	}
	err = opts.timer.Measure("dump", func() error {
		return writeDump(cmd.OutOrStdout(), output, sm, format)
	})
	if timings {
		fmt.Fprint(cmd.ErrOrStderr(), opts.timer.Summary())
	}
	return err
}

// recordSourceMap drives a Mapper the way a linker would: the root first,
// then the other modules and declarations in parallel. With keepGoing every
// failed resolution becomes a warning in the returned bag, sorted by module.
func recordSourceMap(ctx context.Context, r resolve.Resolver, m mangle.Mangler, opts recordOptions) (*sourcemap.BasicSourceMap, *diag.Bag, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "record", 0).
		With(trace.F("root", opts.root.String()))
	defer span.End("")

	timer := opts.timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	mapper := sourcemap.NewMapper(opts.root, r, m, sourcemap.WithTracer(tracer))
	err := timer.Measure("resolve root", func() error {
		_, err := mapper.ResolveSource(opts.root)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("root module: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := opts.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(jobs)

	seen := map[source.ModulePath]struct{}{opts.root: {}}
	targets := make([]source.ModulePath, 0, len(opts.modules)+len(opts.decls))
	for _, p := range opts.modules {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			targets = append(targets, p)
		}
	}
	for _, d := range opts.decls {
		if _, ok := seen[d.path]; !ok {
			seen[d.path] = struct{}{}
			targets = append(targets, d.path)
		}
	}

	var mu sync.Mutex
	warnings := diag.NewBag(len(targets))
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: warnings})

	phase := timer.Begin("resolve+mangle")
	for _, p := range targets {
		p := p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := mapper.ResolveSource(p); err != nil {
				if !opts.keepGoing {
					return err
				}
				mu.Lock()
				reporter.Report(diag.New(diag.SevWarning, err.Error()).In(p, source.Span{}))
				mu.Unlock()
			}
			return nil
		})
	}
	for _, d := range opts.decls {
		d := d
		g.Go(func() error {
			mapper.Mangle(d.path, d.decl)
			return nil
		})
	}
	err = g.Wait()
	timer.End(phase, fmt.Sprintf("%d modules, %d decls", len(targets), len(opts.decls)))
	if err != nil {
		return nil, nil, err
	}

	warnings.Sort()

	var sm *sourcemap.BasicSourceMap
	_ = timer.Measure("finish", func() error {
		sm = mapper.Finish()
		return nil
	})
	span.With(trace.F("decls", fmt.Sprint(sm.Len())), trace.F("modules", fmt.Sprint(len(sm.Modules()))),
		trace.F("warnings", fmt.Sprint(warnings.Len())))
	return sm, warnings, nil
}

func printWarnings(w io.Writer, warnings *diag.Bag, sm sourcemap.SourceMap) error {
	return diagfmt.PrettyAll(w, warnings, sm, diagfmt.PrettyOpts{Color: useColor && w == os.Stderr})
}

func writeDump(stdout io.Writer, output string, sm *sourcemap.BasicSourceMap, format smdump.Format) error {
	if output == "" {
		return smdump.Write(stdout, sm.Snapshot(), format)
	}
	f, err := os.Create(filepath.Clean(output))
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	if err := smdump.Write(f, sm.Snapshot(), format); err != nil {
		_ = f.Close()
		return fmt.Errorf("write dump %s: %w", output, err)
	}
	return f.Close()
}
