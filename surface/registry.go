// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/gogpu/viewer/internal/logging"
	"github.com/gogpu/viewer/projector"
)

// Options configures surface creation.
type Options struct {
	Width, Height int

	// Projector projects scenes for the surface. Nil means projector.New().
	Projector projector.Projector

	// Logger receives surface diagnostics. Nil is silent.
	Logger *slog.Logger

	// PoolCapacity is the path handle pool size of vector surfaces.
	PoolCapacity int
}

func (o Options) withDefaults() Options {
	if o.Projector == nil {
		o.Projector = projector.New()
	}
	o.Logger = logging.OrNop(o.Logger)
	return o
}

// Factory creates a new Surface with the given options.
// Implementations should validate options and return descriptive errors.
type Factory func(opts Options) (Surface, error)

// RegistryEntry represents a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Kind is the kind of surface the factory produces.
	Kind Kind

	// Priority orders backends of the same kind (higher = preferred).
	Priority int

	// Factory creates surface instances.
	Factory Factory

	// Available reports if the backend is usable in this process.
	Available func() bool
}

var globalRegistry = &Registry{}

// Registry maps backend names to surface factories. Several backends may
// produce the same kind of surface; the viewer asks for a kind and gets the
// highest-priority available backend for it.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and NewSurface.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, kind Kind, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, kind, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available backends sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific backend.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// NewSurface creates a surface of the given kind using the best available
// backend for it.
func NewSurface(kind Kind, opts Options) (Surface, error) {
	return globalRegistry.NewSurface(kind, opts)
}

// NewSurfaceByName creates a surface using a specific named backend.
func NewSurfaceByName(name string, opts Options) (Surface, error) {
	return globalRegistry.NewSurfaceByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, kind Kind, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}
	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Kind:      kind,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(func(*RegistryEntry) bool { return true })
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(func(e *RegistryEntry) bool { return e.Available() })
}

// Get returns a copy of the entry for name.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// NewSurface creates a surface of the given kind. Backends are tried in
// priority order until one succeeds; the last error is returned when all
// of them fail.
func (r *Registry) NewSurface(kind Kind, opts Options) (Surface, error) {
	r.mu.RLock()
	candidates := r.sortedNames(func(e *RegistryEntry) bool {
		return e.Kind == kind && e.Available()
	})
	r.mu.RUnlock()

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoBackendAvailable, kind)
	}

	var lastErr error
	for _, name := range candidates {
		s, err := r.NewSurfaceByName(name, opts)
		if err == nil {
			return s, nil
		}
		opts.withDefaults().Logger.Debug("surface: backend failed",
			"backend", name, "kind", kind, "err", err)
		lastErr = err
	}
	return nil, lastErr
}

// NewSurfaceByName creates a surface using a specific backend.
func (r *Registry) NewSurfaceByName(name string, opts Options) (Surface, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	s, err := entry.Factory(opts)
	if err != nil {
		return nil, fmt.Errorf("surface: %s backend: %w", name, err)
	}
	if s.Kind() != entry.Kind {
		_ = s.Close()
		return nil, fmt.Errorf("surface: %s backend: %w: got %s, want %s",
			name, ErrKindMismatch, s.Kind(), entry.Kind)
	}
	return s, nil
}

// sortedNames returns the names of entries passing keep, sorted by
// priority (highest first), then by name. Must be called with lock held.
func (r *Registry) sortedNames(keep func(*RegistryEntry) bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if keep(e) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no backend of the requested
	// kind is registered and available.
	ErrNoBackendAvailable = errors.New("surface: no backend available")

	// ErrKindMismatch is returned when a factory produces a surface of a
	// kind other than the one it was registered for.
	ErrKindMismatch = errors.New("surface: backend produced the wrong kind")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// init registers the built-in raster (gg) and vector (SVG) backends.
func init() {
	Register("gg", KindRaster, 10, func(opts Options) (Surface, error) {
		return NewRaster(opts)
	}, nil)
	Register("svg", KindVector, 10, func(opts Options) (Surface, error) {
		return NewVector(opts)
	}, nil)
}
