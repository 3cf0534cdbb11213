package main

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newWatchCmd(f *flags) *cobra.Command {
	ef := &exportFlags{}
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "watch SCENE",
		Short: "Re-export a scene document every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			shutdown, err := f.setupTracing(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer shutdown()

			reg := prometheus.NewRegistry()
			s, err := f.newSession(cmd, reg)
			if err != nil {
				return err
			}
			defer s.close()

			if metricsAddr != "" {
				srv := serveMetrics(metricsAddr, reg)
				defer srv.Close()
				s.logger.Info("serving metrics", "addr", metricsAddr)
			}
			return s.watch(ctx, args[0], ef)
		},
	}
	cmd.Flags().StringVarP(&ef.out, "out", "o", "", "output file (required)")
	cmd.Flags().StringVar(&ef.format, "format", "", "svg or png; defaults to the output extension")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}

// debounce collapses the burst of events editors emit for one save.
const debounce = 100 * time.Millisecond

func (s *session) watch(ctx context.Context, path string, ef *exportFlags) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors often replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	name := filepath.Clean(path)

	render := func() {
		if err := s.load(ctx, path); err != nil {
			s.logger.Error("reload failed", "path", path, "err", err)
			return
		}
		if err := s.export(ctx, ef); err != nil {
			s.logger.Error("export failed", "out", ef.out, "err", err)
		}
	}
	render()

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			timer = time.After(debounce)
		case <-timer:
			timer = nil
			render()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				timer = time.After(debounce)
				continue
			}
			s.logger.Warn("watch error", "err", err)
		}
	}
}
