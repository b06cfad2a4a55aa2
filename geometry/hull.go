// SPDX-License-Identifier: EPL-2.0

package geometry

import (
	"slices"
)

const hullEps = 1e-10

// face is one oriented hull triangle; the normal points away from the hull.
type face struct {
	v      [3]int
	normal Vec3
	offset float64
	alive  bool
}

func newFace(pts []Vec3, a, b, c int) face {
	n := pts[b].Sub(pts[a]).Cross(pts[c].Sub(pts[a])).Normalize()
	return face{v: [3]int{a, b, c}, normal: n, offset: n.Dot(pts[a]), alive: true}
}

func (f *face) distance(p Vec3) float64 {
	return f.normal.Dot(p) - f.offset
}

// convexHull returns the triangles of the convex hull of pts, each with its
// outward unit normal and plane offset. Points are inserted in index order.
func convexHull(pts []Vec3) ([]face, error) {
	if len(pts) < 4 {
		return nil, setupErr(ErrTooFewSpeakers, "need at least 4 for a 3-D array, got %d", len(pts))
	}

	i0 := 0
	i1 := -1
	for i := 1; i < len(pts); i++ {
		if pts[i].Sub(pts[i0]).Len() > hullEps {
			i1 = i
			break
		}
	}
	if i1 < 0 {
		return nil, setupErr(ErrColinear, "all loudspeakers share one direction")
	}

	i2 := -1
	for i := i1 + 1; i < len(pts); i++ {
		if pts[i1].Sub(pts[i0]).Cross(pts[i].Sub(pts[i0])).Len() > hullEps {
			i2 = i
			break
		}
	}
	if i2 < 0 {
		return nil, setupErr(ErrColinear, "no three loudspeakers span a plane")
	}

	base := newFace(pts, i0, i1, i2)
	i3 := -1
	for i := i2 + 1; i < len(pts); i++ {
		if abs(base.distance(pts[i])) > hullEps {
			i3 = i
			break
		}
	}
	if i3 < 0 {
		return nil, setupErr(ErrCoplanar, "all loudspeakers lie on one plane")
	}

	// Orient the seed tetrahedron so every face looks away from its centroid.
	if base.distance(pts[i3]) > 0 {
		i1, i2 = i2, i1
	}
	faces := []face{
		newFace(pts, i0, i1, i2),
		newFace(pts, i0, i3, i1),
		newFace(pts, i1, i3, i2),
		newFace(pts, i2, i3, i0),
	}

	seed := [4]int{i0, i1, i2, i3}
	for p := range pts {
		if slices.Contains(seed[:], p) {
			continue
		}
		faces = addPoint(pts, faces, p)
	}

	alive := faces[:0]
	for _, f := range faces {
		if f.alive {
			alive = append(alive, f)
		}
	}
	return alive, nil
}

// addPoint grows the hull to include pts[p]. Faces that see p are removed and
// the hole is closed with a fan of new faces from the horizon to p.
func addPoint(pts []Vec3, faces []face, p int) []face {
	visible := make(map[[2]int]struct{})
	var seen []int
	for i := range faces {
		f := &faces[i]
		if !f.alive || f.distance(pts[p]) <= hullEps {
			continue
		}
		seen = append(seen, i)
		for k := range 3 {
			visible[[2]int{f.v[k], f.v[(k+1)%3]}] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return faces
	}

	for _, i := range seen {
		v := faces[i].v
		faces[i].alive = false
		for k := range 3 {
			a, b := v[k], v[(k+1)%3]
			if _, shared := visible[[2]int{b, a}]; shared {
				continue
			}
			faces = append(faces, newFace(pts, a, b, p))
		}
	}
	return faces
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
