package viewer

import (
	"fmt"

	"github.com/gogpu/viewer/surface"
)

// SwitchRenderer mounts the surface of the given kind in place of the
// current one. Pointer listeners and orbit controls move to the new
// surface's input element; the scene, selection and camera pose are left
// as they are.
func (v *Viewer) SwitchRenderer(kind surface.Kind) error {
	if v.mounted != nil && v.mounted.Kind() == kind {
		return nil
	}
	v.detach()
	v.host.Unmount()
	v.mounted = nil
	if err := v.mount(kind); err != nil {
		return err
	}
	v.metrics.ObserveSwitch(kind.String())
	v.logger.Info("viewer: renderer switched", "surface", kind)
	return nil
}

func (v *Viewer) mount(kind surface.Kind) error {
	var s surface.Surface = v.raster
	if kind == surface.KindVector {
		s = v.vector
	}
	w, h := v.host.Size()
	if err := s.SetSize(w, h); err != nil {
		return fmt.Errorf("viewer: size %s surface: %w", kind, err)
	}
	if err := v.host.Mount(s); err != nil {
		return fmt.Errorf("viewer: mount %s surface: %w", kind, err)
	}
	v.mounted = s
	v.attach()
	return nil
}
