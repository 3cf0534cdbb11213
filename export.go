package viewer

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gogpu/viewer/surface"
)

// ExportSVG renders the current frame through the vector surface, sized to
// the host, and writes the SVG document to w.
func (v *Viewer) ExportSVG(ctx context.Context, w io.Writer) error {
	return v.export(ctx, "viewer.ExportSVG", v.vector, w)
}

// ExportPNG renders the current frame through the raster surface, sized to
// the host, and writes it to w as PNG.
func (v *Viewer) ExportPNG(ctx context.Context, w io.Writer) error {
	return v.export(ctx, "viewer.ExportPNG", v.raster, w)
}

func (v *Viewer) export(ctx context.Context, name string, s surface.Exporter, out io.Writer) (err error) {
	_, span := otel.Tracer(tracerName).Start(ctx, name)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	v.drain()
	w, h := v.host.Size()
	span.SetAttributes(
		attribute.Int("width", w),
		attribute.Int("height", h),
		attribute.Int("objects", v.scene.Len()),
	)
	if s != v.mounted {
		if err := s.SetSize(w, h); err != nil {
			return fmt.Errorf("viewer: export: %w", err)
		}
	}
	if err := s.Render(v.scene, v.cam); err != nil {
		return fmt.Errorf("viewer: export: %w", err)
	}
	if err := s.Export(out); err != nil {
		return fmt.Errorf("viewer: export: %w", err)
	}
	return nil
}
