// lumen - Terminal Ray Tracer
// Renders spheres, planes, cones and cylinders with shadows and mirror
// reflections, live in your terminal.
//
// Controls:
//
//	A/D, Left/Right - Orbit around the scene
//	W/S, Up/Down    - Tilt the view
//	+/-             - Move closer / further
//	R               - Reset view
//	Q, Esc          - Quit
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/config"
	"github.com/taigrr/lumen/pkg/loader"
)

var version = "dev"

type options struct {
	configPath string
	depth      int
	workers    int
	fps        int
	fov        float64
	seed       int64
	logLevel   string
	logFile    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "lumen [scene.yaml|scene.gltf|scene.glb]",
		Short: "Real-time terminal ray tracer",
		Long: "lumen ray traces a scene of analytic primitives and streams the result to the terminal.\n" +
			"Without a scene file it renders a random demo scene.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			scenePath := ""
			if len(args) == 1 {
				scenePath = args[0]
			}
			return runViewer(cmd.Context(), cfg, scenePath, cmd.ErrOrStderr())
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	f.IntVarP(&opts.depth, "depth", "d", 0, "maximum reflection depth")
	f.IntVarP(&opts.workers, "workers", "w", 0, "rows shaded concurrently (0 = all CPUs)")
	f.IntVar(&opts.fps, "fps", 0, "viewer refresh rate")
	f.Float64Var(&opts.fov, "fov", 0, "horizontal field of view in degrees")
	f.Int64Var(&opts.seed, "seed", 0, "demo scene seed")
	f.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(newConfigCmd(&opts))
	return root
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// load reads the config file and applies every flag the user set on top.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("depth") {
		cfg.Render.Depth = o.depth
	}
	if flags.Changed("workers") {
		cfg.Render.Workers = o.workers
	}
	if flags.Changed("fps") {
		cfg.Viewer.FPS = o.fps
	}
	if flags.Changed("fov") {
		cfg.Render.FOVDegrees = o.fov
	}
	if flags.Changed("seed") {
		cfg.Render.Seed = o.seed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func runViewer(ctx context.Context, cfg *config.Config, scenePath string, stderr io.Writer) error {
	var out io.Writer
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	} else {
		// The terminal belongs to the viewer until it exits.
		buf := &bytes.Buffer{}
		defer func() { _, _ = io.Copy(stderr, buf) }()
		out = buf
	}

	logger, err := newLogger(cfg.Log.Level, out)
	if err != nil {
		return err
	}

	sc, err := loader.Load(scenePath, cfg.Render.Seed)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	logger.Info("scene loaded",
		"path", scenePath,
		"primitives", len(sc.Primitives()),
		"lights", len(sc.Lights()))

	v, err := newViewer(cfg, sc, logger)
	if err != nil {
		return err
	}
	return v.run(ctx)
}

func newLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "lumen",
		ReportTimestamp: true,
	}), nil
}
