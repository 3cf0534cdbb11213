// Package convert turns domain objects into scene objects.
//
// A domain object ([Source]) carries a slash-delimited type path such as
// "Objects.Geometry/Brep". The [Registry] resolves the most specific known
// suffix of that path: the last segment is tried first, then the one before
// it, and so on. Lookups are case-insensitive.
//
// Two converters are built in:
//
//   - "Mesh": a flat vertex array (x, y, z triples) and a face list where
//     each face starts with a marker: 0 for a triangle, 1 for a quad, and
//     n ≥ 3 for an n-gon
//   - "Brep": renders the mesh held in its displayValue
//
// Conversion failures are per object. The caller logs them and moves on.
//
// Example:
//
//	reg := convert.Default()
//	obj, err := reg.Convert(ctx, src)
//	var unsupported *convert.UnsupportedTypeError
//	if errors.As(err, &unsupported) {
//	    // skip
//	}
package convert
