package convert

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/cases"

	"github.com/gogpu/viewer/scene"
)

const tracerName = "github.com/gogpu/viewer/convert"

// Converter builds a scene object from a domain object. The returned
// object's identity fields are filled in by [Registry.Convert].
type Converter func(ctx context.Context, src Source) (*scene.Object, error)

// ErrNoGeometry is returned when a domain object carries nothing to draw.
var ErrNoGeometry = errors.New("convert: no geometry")

// UnsupportedTypeError is returned when no segment of a type path has a
// registered converter.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("convert: unsupported type %q", e.Type)
}

// Registry maps type names to converters.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
	names      map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[string]Converter),
		names:      make(map[string]string),
	}
}

// Default returns a registry with the built-in Mesh and Brep converters.
func Default() *Registry {
	r := NewRegistry()
	r.Register("Mesh", ConvertMesh)
	r.Register("Brep", ConvertBrep)
	return r
}

// fold returns the lookup key for a type name. A Caser is stateful, so
// each call gets its own.
func fold(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Register adds or replaces the converter for name.
func (r *Registry) Register(name string, c Converter) {
	if c == nil {
		panic("convert: nil converter for " + name)
	}
	key := fold(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[key] = c
	r.names[key] = name
}

// Unregister removes the converter for name.
func (r *Registry) Unregister(name string) {
	key := fold(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.converters, key)
	delete(r.names, key)
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.names))
	for _, n := range r.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the converter for the most specific known segment of
// typePath, scanning from the last segment backwards, and the name it was
// registered under.
func (r *Registry) Resolve(typePath string) (Converter, string, bool) {
	segments := strings.Split(typePath, "/")
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(segments) - 1; i >= 0; i-- {
		key := fold(segments[i])
		if c, ok := r.converters[key]; ok {
			return c, r.names[key], true
		}
	}
	return nil, "", false
}

// Convert resolves and runs the converter for src. The result carries the
// source's id, type path, selection id and flattened properties. Converter
// panics are returned as errors.
func (r *Registry) Convert(ctx context.Context, src Source) (obj *scene.Object, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "convert.Convert")
	span.SetAttributes(attribute.String("id", src.ID), attribute.String("type", src.Type))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	c, name, ok := r.Resolve(src.Type)
	if !ok {
		return nil, &UnsupportedTypeError{Type: src.Type}
	}
	span.SetAttributes(attribute.String("converter", name))

	obj, err = run(ctx, c, src)
	if err != nil {
		return nil, fmt.Errorf("convert %s (%s): %w", src.ID, name, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("convert %s (%s): %w", src.ID, name, ErrNoGeometry)
	}

	obj.ID = src.ID
	obj.Type = src.Type
	obj.SelectionID = src.SelectionID
	if obj.SelectionID == "" {
		obj.SelectionID = src.ID
	}
	obj.Properties = Flatten(src.Properties)
	return obj, nil
}

func run(ctx context.Context, c Converter, src Source) (obj *scene.Object, err error) {
	defer func() {
		if r := recover(); r != nil {
			obj = nil
			err = fmt.Errorf("converter panic: %v", r)
		}
	}()
	return c(ctx, src)
}
