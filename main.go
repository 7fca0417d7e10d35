package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/iburimskiy/dotfield/internal/background"
	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/logging"
	"github.com/iburimskiy/dotfield/internal/theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string
	verbose    bool
	themeName  string

	// render overrides
	spacing           float64
	dotRadius         float64
	dotColor          string
	opacity           float64
	baseDarkness      float64
	spotlightRadius   float64
	spotlightStrength float64
	spotlightColor    string

	settings config.Settings
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dotfield",
	Short: "Animated dotted background with a pointer-following spotlight",
	Long: `dotfield renders a jittered grid of dots that drifts with the pointer,
a soft ambiance glow and a spotlight that trails the cursor, in a dark or a
light theme.

Run without a subcommand to open a window. Settings are read from
~/.config/dotfield/config.yaml unless --config is given; flags override them.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/dotfield/config.yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&themeName, "theme", "", "force dark or light instead of following the theme file")

	pf.Float64Var(&spacing, "spacing", 0, "grid spacing in logical pixels")
	pf.Float64Var(&dotRadius, "dot-radius", 0, "base dot radius")
	pf.StringVar(&dotColor, "dot-color", "", "dot color, r,g,b or #rrggbb")
	pf.Float64Var(&opacity, "opacity", 0, "dot alpha in the dark theme")
	pf.Float64Var(&baseDarkness, "base-darkness", 0, "darkness of the dark base gradient")
	pf.Float64Var(&spotlightRadius, "spotlight-radius", 0, "spotlight outer radius")
	pf.Float64Var(&spotlightStrength, "spotlight-strength", 0, "spotlight peak alpha")
	pf.StringVar(&spotlightColor, "spotlight-color", "", "spotlight color, r,g,b or #rrggbb")

	rootCmd.AddCommand(windowCmd, termCmd, snapshotCmd, traceCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// setup loads settings, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	boot, err := logging.New(logging.Options{Level: "warn"})
	if err != nil {
		return err
	}
	s, err := config.Load(configPath, boot)
	_ = boot.Sync()
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, &s); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	settings = s

	opts := logging.Options{Level: s.Log.Level, Development: s.Log.Development}
	if logLevel != "" {
		opts.Level = logLevel
	}
	if verbose {
		opts.Level = "debug"
	}
	file := s.Log.File
	if file == "" && cmd == termCmd {
		file = os.DevNull
	}
	if file != "" {
		opts.OutputPaths = []string{config.ExpandPath(file)}
	}
	logger, err = logging.New(opts)
	return err
}

func applyOverrides(cmd *cobra.Command, s *config.Settings) error {
	flags := cmd.Flags()
	floats := []struct {
		name string
		src  float64
		dst  *float64
	}{
		{"spacing", spacing, &s.Render.Spacing},
		{"dot-radius", dotRadius, &s.Render.DotRadius},
		{"opacity", opacity, &s.Render.Opacity},
		{"base-darkness", baseDarkness, &s.Render.BaseDarkness},
		{"spotlight-radius", spotlightRadius, &s.Render.SpotlightRadius},
		{"spotlight-strength", spotlightStrength, &s.Render.SpotlightStrength},
	}
	for _, f := range floats {
		if flags.Changed(f.name) {
			*f.dst = f.src
		}
	}

	colors := []struct {
		name string
		src  string
		dst  *config.Color
	}{
		{"dot-color", dotColor, &s.Render.DotColor},
		{"spotlight-color", spotlightColor, &s.Render.SpotlightColor},
	}
	for _, c := range colors {
		if !flags.Changed(c.name) {
			continue
		}
		parsed, err := config.ParseColor(c.src)
		if err != nil {
			return fmt.Errorf("--%s: %w", c.name, err)
		}
		*c.dst = parsed
	}

	if themeName != "" {
		if _, ok := theme.Parse(themeName); !ok {
			return fmt.Errorf("--theme: %w: want dark or light, got %q", config.ErrInvalid, themeName)
		}
	}
	return nil
}

// openTheme returns the shared theme flag: an in-memory toggle when --theme
// is given, otherwise the theme file. The returned func releases it.
func openTheme() (theme.Switch, func(), error) {
	if themeName != "" {
		dark, _ := theme.Parse(themeName)
		return theme.NewToggle(dark), func() {}, nil
	}

	path := settings.Theme.File
	if path == "" {
		p, err := config.DefaultThemePath()
		if err != nil {
			return nil, nil, fmt.Errorf("theme file: %w", err)
		}
		path = p
	}
	f, err := theme.OpenFile(config.ExpandPath(path), settings.DefaultDark(), settings.Theme.PollInterval, logger.Named("theme"))
	if err != nil {
		return nil, nil, err
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logger.Warn("closing theme file", zap.Error(err))
		}
	}, nil
}

// headlessTheme is the flag for one-shot renders: --theme, else the default.
func headlessTheme() *theme.Toggle {
	if dark, ok := theme.Parse(themeName); ok {
		return theme.NewToggle(dark)
	}
	return theme.NewToggle(settings.DefaultDark())
}

func newRenderer(seed *uint64) (*background.Renderer, error) {
	opts := []background.Option{background.WithLogger(logger.Named("background"))}
	if seed != nil {
		opts = append(opts, background.WithRand(rand.New(rand.NewPCG(*seed, *seed))))
	}
	return background.New(settings.Render, opts...)
}
