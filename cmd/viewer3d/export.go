package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type exportFlags struct {
	out    string
	format string
}

func newExportCmd(f *flags) *cobra.Command {
	ef := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export SCENE",
		Short: "Render a scene document once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shutdown, err := f.setupTracing(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer shutdown()

			s, err := f.newSession(cmd, nil)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.load(cmd.Context(), args[0]); err != nil {
				return err
			}
			return s.export(cmd.Context(), ef)
		},
	}
	cmd.Flags().StringVarP(&ef.out, "out", "o", "", "output file (required)")
	cmd.Flags().StringVar(&ef.format, "format", "", "svg or png; defaults to the output extension")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (ef *exportFlags) resolveFormat() (string, error) {
	format := strings.ToLower(ef.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(ef.out)), ".")
	}
	switch format {
	case "svg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

// export writes the current frame atomically: a temporary file is renamed
// over the output.
func (s *session) export(ctx context.Context, ef *exportFlags) error {
	format, err := ef.resolveFormat()
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(ef.out), ".viewer3d-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if format == "svg" {
		err = s.v.ExportSVG(ctx, tmp)
	} else {
		err = s.v.ExportPNG(ctx, tmp)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), ef.out); err != nil {
		return err
	}
	s.logger.Info("exported", "out", ef.out, "format", format)
	return nil
}
