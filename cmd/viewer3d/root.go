package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gogpu/viewer"
	"github.com/gogpu/viewer/convert"
	"github.com/gogpu/viewer/surface"
)

// flags shared by every command.
type flags struct {
	config    string
	width     int
	height    int
	logLevel  string
	trace     bool
	highlight string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "viewer3d",
		Short:         "Render scene documents to SVG or PNG",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.config, "config", "c", "", "TOML viewer settings")
	pf.IntVar(&f.width, "width", 800, "output width in pixels")
	pf.IntVar(&f.height, "height", 600, "output height in pixels")
	pf.StringVar(&f.logLevel, "log-level", "warn", "debug, info, warn or error")
	pf.BoolVar(&f.trace, "trace", false, "print OpenTelemetry spans to stderr")
	pf.StringVar(&f.highlight, "highlight", "", "highlight objects whose property matches key=value[,value...]")

	root.AddCommand(newExportCmd(f), newWatchCmd(f), newBackendsCmd())
	return root
}

func (f *flags) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func (f *flags) loadConfig() (viewer.Config, error) {
	cfg := viewer.DefaultConfig()
	if f.config != "" {
		file, err := os.Open(f.config)
		if err != nil {
			return cfg, err
		}
		defer file.Close()
		if cfg, err = viewer.LoadConfig(file); err != nil {
			return cfg, err
		}
	}
	if f.highlight != "" {
		h, err := parseHighlight(f.highlight)
		if err != nil {
			return cfg, err
		}
		cfg.Highlighter = h
	}
	return cfg, nil
}

// parseHighlight parses "key=value[,value...]".
func parseHighlight(s string) (viewer.PropertyHighlighter, error) {
	key, values, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" || values == "" {
		return viewer.PropertyHighlighter{}, fmt.Errorf("highlight %q: want key=value", s)
	}
	h := viewer.PropertyHighlighter{Key: key}
	for _, v := range strings.Split(values, ",") {
		if v = strings.TrimSpace(v); v != "" {
			h.Values = append(h.Values, v)
		}
	}
	return h, nil
}

// session is one headless viewer with its scene source.
type session struct {
	v      *viewer.Viewer
	host   *surface.Host
	logger *slog.Logger
}

func (f *flags) newSession(cmd *cobra.Command, reg prometheus.Registerer) (*session, error) {
	logger, err := f.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	viewer.SetLogger(logger)

	host := surface.NewHost(f.width, f.height)
	v, err := viewer.New(host, cfg,
		viewer.WithLogger(logger),
		viewer.WithMetrics(reg),
		viewer.WithDispatch(func(fn func()) { fn() }),
	)
	if err != nil {
		return nil, err
	}
	return &session{v: v, host: host, logger: logger}, nil
}

// load replaces the scene with the objects in path and waits until the
// camera has settled on them.
func (s *session) load(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	srcs, err := convert.Decode(file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	s.v.UnloadAll()
	s.v.Load(ctx, srcs, true)
	if err := s.v.Wait(ctx); err != nil {
		return err
	}

	now := time.Now()
	for i := 0; i < 16 && s.v.Animating(); i++ {
		if err := s.v.Tick(now); err != nil {
			return err
		}
		now = now.Add(time.Second)
	}
	s.logger.Info("scene loaded", "path", path, "objects", s.v.Scene().Len())
	return nil
}

func (s *session) close() {
	if err := s.v.Close(); err != nil {
		s.logger.Warn("close viewer", "err", err)
	}
}
