package viewer

import "time"

// Tick advances the viewer by one display refresh: pending conversion
// results are applied, camera transitions sampled, the far plane fitted to
// the framing sphere, the orbit pivot re-applied, and the mounted surface
// rendered once.
func (v *Viewer) Tick(now time.Time) error {
	v.drain()
	v.anim.Advance(now)
	v.cam.UpdateFar(v.sphere.Center, v.sphere.Radius)
	if v.controls != nil {
		v.controls.Update()
	}
	return v.render()
}

func (v *Viewer) render() error {
	if v.mounted == nil {
		return nil
	}
	kind := v.mounted.Kind()
	start := time.Now()
	if err := v.mounted.Render(v.scene, v.cam); err != nil {
		v.logger.Error("viewer: render failed", "surface", kind, "err", err)
		return err
	}
	v.metrics.ObserveFrame(kind.String(), time.Since(start))
	if v.mounted == v.vector {
		st := v.vector.Renderer().Stats()
		v.metrics.AddFallbacks(st.Fallbacks)
		v.logger.Debug("viewer: vector frame",
			"faces", st.Faces, "groups", st.Groups, "rings", st.Rings, "fallbacks", st.Fallbacks)
	}
	return nil
}
