// Command fuzzy-eval evaluates the song rating system for one input pair or for
// every row of a YAML scenario file.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/fuzzy/pkg/fuzzy/config"
	"github.com/cognicore/fuzzy/pkg/fuzzy/demo"
	"github.com/cognicore/fuzzy/pkg/fuzzy/explain"
	"github.com/cognicore/fuzzy/pkg/fuzzy/system"
)

type flags struct {
	voice        float64
	instrumental float64
	and          string
	inference    string
	strict       bool
	workers      int
	configPath   string
	explain      bool
	logLevel     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "fuzzy-eval",
		Short:         "Rate a song from its vocals and instrumentals with fuzzy rules",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), f.logLevel)
			if err != nil {
				return err
			}
			if err := run(cmd, f, logger); err != nil {
				logger.Error("evaluation failed", "error", err)
				return err
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.Float64Var(&f.voice, "voice", 0, "VoiceRate input (0-10)")
	fs.Float64Var(&f.instrumental, "instrumental", 0, "InstrumentalRate input (0-10)")
	fs.StringVar(&f.and, "and", "min", "AND method: min or prod")
	fs.StringVar(&f.inference, "inference", "last_of_maxima", "Inference method: first_of_maxima or last_of_maxima")
	fs.BoolVar(&f.strict, "strict-first", false, "Resolve first_of_maxima through first intersections")
	fs.IntVar(&f.workers, "workers", 0, "Concurrent evaluations for scenario files (0 = GOMAXPROCS)")
	fs.StringVar(&f.configPath, "config", "", "Path to a scenario YAML file")
	fs.BoolVar(&f.explain, "explain", false, "Print an explanation card per input row")
	fs.StringVar(&f.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	return cmd
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// scenario merges the scenario file, if any, with the command line flags.
// Flags set explicitly win over the file.
func scenario(cmd *cobra.Command, f flags) (*config.Scenario, error) {
	sc := &config.Scenario{}
	if f.configPath != "" {
		loaded, err := config.LoadScenario(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("load scenario: %w", err)
		}
		sc = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("and") || sc.AndMethod == "" {
		sc.AndMethod = f.and
	}
	if fs.Changed("inference") || sc.InferenceMethod == "" {
		sc.InferenceMethod = f.inference
	}
	if fs.Changed("strict-first") {
		sc.StrictFirstOfMaxima = f.strict
	}
	if fs.Changed("workers") {
		sc.Workers = f.workers
	}

	if fs.Changed("voice") || fs.Changed("instrumental") {
		sc.Inputs = append(sc.Inputs, map[string]float64{
			demo.VoiceRate:        f.voice,
			demo.InstrumentalRate: f.instrumental,
		})
	}
	if len(sc.Inputs) == 0 {
		return nil, fmt.Errorf("no inputs: pass --voice/--instrumental or --config")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func run(cmd *cobra.Command, f flags, logger *slog.Logger) error {
	sc, err := scenario(cmd, f)
	if err != nil {
		return err
	}
	and, method, err := sc.Methods()
	if err != nil {
		return err
	}

	opts := append([]system.Option{system.WithLogger(logger)}, sc.SystemOptions()...)
	sys, err := demo.SongRating(opts...)
	if err != nil {
		return fmt.Errorf("build system: %w", err)
	}
	snap := sys.Freeze()
	logger.Info("evaluating", "system", snap.Name(), "rows", len(sc.Inputs), "and", and, "inference", method)

	out := cmd.OutOrStdout()
	if f.explain {
		b := explain.New()
		for i, row := range sc.Inputs {
			exp, err := b.Explain(snap, row, and, method)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			if err := exp.Render(out); err != nil {
				return err
			}
		}
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := snap.RunBatch(ctx, sc.Inputs, and, method, sc.Workers)
	if err != nil {
		return err
	}
	for i, res := range results {
		fmt.Fprintf(out, "%d: %s\n", i, formatOutputs(res))
	}
	return nil
}

func formatOutputs(out map[string]float64) string {
	names := make([]string, 0, len(out))
	for name := range out {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%.4f", name, out[name])
	}
	return strings.Join(parts, " ")
}
