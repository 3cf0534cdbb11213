package viewer

import (
	"time"

	"github.com/gogpu/viewer/camera"
	"github.com/gogpu/viewer/scene"
)

// ZoomExtents frames every loaded object except placeholder-colored ones.
func (v *Viewer) ZoomExtents() {
	v.sphere = scene.BoundingSphere(v.scene.Objects(), scene.DefaultFraming(v.placeholder))
	v.frame(v.sphere, camera.ExtentsDuration)
}

// ZoomHighlightExtents frames the objects currently in focus: the opaque
// ones, restricted to highlighted ones while highlights are active.
func (v *Viewer) ZoomHighlightExtents() {
	v.sphere = scene.BoundingSphere(v.scene.Objects(), scene.Focused(v.machine.Highlighter()))
	v.frame(v.sphere, camera.ExtentsDuration)
}

// ZoomToObject frames a single loaded object. It reports whether the
// object exists.
func (v *Viewer) ZoomToObject(id string) bool {
	o, ok := v.scene.Get(id)
	if !ok {
		return false
	}
	v.frame(camera.ObjectSphere(o.Bounds), camera.ObjectDuration)
	return true
}

// ResetCamera restores the configured camera mode and the default pose,
// cancelling any transition, and optionally frames the scene.
func (v *Viewer) ResetCamera(zoomExtents bool) {
	v.anim.Stop()
	w, h := v.host.Size()
	v.cam.Reset(camera.ParseMode(v.cfg.Camera), aspect(w, h))
	if zoomExtents {
		v.ZoomExtents()
	}
}

func (v *Viewer) frame(s scene.Sphere, d time.Duration) {
	pose := camera.FramePose(v.cam, s, 1)
	camera.Animate(&v.anim, v.cam, pose, d, func() {
		if v.controls != nil {
			v.controls.Update()
		}
	})
}
