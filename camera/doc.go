// Package camera provides the viewer camera, framing poses, and the
// per-channel animator that moves the camera between poses.
//
// The camera is a perspective camera in both modes. Orthographic mode is a
// narrow field of view that approximates a parallel projection while keeping
// the same framing math:
//
//	offset = radius / tan(fov/2) * margin
//
// A framing request produces a [Pose]. The [Animator] interpolates each of
// the pose's channels (position, rotation, orbit target) with its own task,
// so a later request on a channel supersedes the task in flight there.
package camera
