// Package scene holds the viewer's loaded objects and the bounding volume
// engine that frames them.
//
// # Objects
//
// An [Object] is one loaded domain entity: a unique id, a triangle [Mesh],
// its own [Material], a precomputed bounding [Sphere], and a tagged visual
// state. The visual state has two orthogonal parts:
//
//   - emphasis: Normal, Selected, or Dimmed; opacity and the transparency
//     flag are derived from it and never set directly
//   - hover: when hovered, the object remembers the color it had before the
//     hover color was applied, so restoring is structural
//
// # Scene
//
// [Scene] is the id→record arena owned by the viewer. Objects keep their
// insertion order so projection, grouping, and iteration are deterministic.
// Putting an object whose id is already present replaces the old record.
//
// # Bounding volumes
//
// [BoundingSphere] grows an axis-aligned box from each filtered object's
// sphere, derives a sphere from the box, and scales it by [Overdraw] so the
// silhouette is never clipped. The two standing filters are
// [DefaultFraming] and [Focused].
package scene
