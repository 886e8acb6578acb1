package trellis

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line in 3D space.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // normalized for world-space rays
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl64.Vec3
}

// IsZero reports whether the box is the zero value (no extent at origin).
func (b AABB) IsZero() bool {
	return b.Min == (mgl64.Vec3{}) && b.Max == (mgl64.Vec3{})
}

// Center returns the box midpoint.
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// IntersectRay tests the ray against the box using the slab method and
// returns the distance along the ray to the hit. If the ray starts inside
// the box, the exit distance is returned. NaN components fail every slab
// comparison, so malformed rays simply miss.
func (b AABB) IntersectRay(origin, direction mgl64.Vec3) (t float64, hit bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], direction[axis]
		lo, hi := b.Min[axis], b.Max[axis]
		if d != 0 {
			t1 := (lo - o) / d
			t2 := (hi - o) / d
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if o < lo || o > hi {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 || math.IsNaN(tmin) || math.IsNaN(tmax) {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// HitVolume is a custom hit region tested in a node's local space.
// Implementations return the distance along the (local-space) ray to the
// nearest hit.
type HitVolume interface {
	IntersectRay(origin, direction mgl64.Vec3) (t float64, hit bool)
}

// HitBox is an axis-aligned box hit volume in local coordinates.
type HitBox struct {
	Box AABB
}

// IntersectRay tests the local-space ray against the box.
func (h HitBox) IntersectRay(origin, direction mgl64.Vec3) (float64, bool) {
	return h.Box.IntersectRay(origin, direction)
}

// HitSphere is a spherical hit volume in local coordinates.
type HitSphere struct {
	Center mgl64.Vec3
	Radius float64
}

// IntersectRay solves the ray/sphere quadratic and returns the nearest
// non-negative root.
func (h HitSphere) IntersectRay(origin, direction mgl64.Vec3) (float64, bool) {
	oc := origin.Sub(h.Center)
	a := direction.Dot(direction)
	if a == 0 {
		return 0, false
	}
	halfB := oc.Dot(direction)
	c := oc.Dot(oc) - h.Radius*h.Radius
	disc := halfB*halfB - a*c
	if disc < 0 || math.IsNaN(disc) {
		return 0, false
	}
	sqrtDisc := math.Sqrt(disc)
	t := (-halfB - sqrtDisc) / a
	if t < 0 {
		t = (-halfB + sqrtDisc) / a
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Intersection records one ray/node hit.
type Intersection struct {
	Node     *Node
	Distance float64    // world-space distance from the ray origin
	Point    mgl64.Vec3 // world-space hit point
}

// worldBounds transforms the node's local AABB into a conservative
// world-space AABB by running all eight corners through the world matrix.
func worldBounds(n *Node) AABB {
	b := n.Bounds
	min := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i < 8; i++ {
		corner := mgl64.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
		if i&1 != 0 {
			corner[0] = b.Max.X()
		}
		if i&2 != 0 {
			corner[1] = b.Max.Y()
		}
		if i&4 != 0 {
			corner[2] = b.Max.Z()
		}
		w := transformPoint(n.worldMatrix, corner)
		for axis := 0; axis < 3; axis++ {
			if w[axis] < min[axis] {
				min[axis] = w[axis]
			}
			if w[axis] > max[axis] {
				max[axis] = w[axis]
			}
		}
	}
	return AABB{Min: min, Max: max}
}

// intersectNode tests a world-space ray against a single node.
// A HitVolume takes precedence over Bounds; the volume is tested in local
// space and the hit distance converted back to world units for ordering.
func intersectNode(n *Node, ray Ray) (Intersection, bool) {
	if n.HitVolume != nil {
		inv := n.invWorldMatrix()
		localOrigin := transformPoint(inv, ray.Origin)
		localDir := transformDirection(inv, ray.Direction)
		t, ok := n.HitVolume.IntersectRay(localOrigin, localDir)
		if !ok {
			return Intersection{}, false
		}
		point := transformPoint(n.worldMatrix, localOrigin.Add(localDir.Mul(t)))
		return Intersection{Node: n, Distance: point.Sub(ray.Origin).Len(), Point: point}, true
	}

	if n.Bounds.IsZero() {
		return Intersection{}, false
	}
	t, ok := worldBounds(n).IntersectRay(ray.Origin, ray.Direction)
	if !ok {
		return Intersection{}, false
	}
	return Intersection{Node: n, Distance: t, Point: ray.At(t)}, true
}

// collectIntersections walks the subtree, appending every hit to buf.
// Invisible or disposed subtrees are skipped entirely. When recursive is
// false only the node itself is tested.
func collectIntersections(n *Node, ray Ray, recursive bool, buf []Intersection) []Intersection {
	if n == nil || n.disposed || !n.Visible {
		return buf
	}
	if ix, ok := intersectNode(n, ray); ok {
		buf = append(buf, ix)
	}
	if !recursive {
		return buf
	}
	for _, child := range n.children {
		buf = collectIntersections(child, ray, recursive, buf)
	}
	return buf
}

// intersectTargets casts the camera ray through ndc and returns all hits
// against the target set, ordered nearest-first. Degenerate coordinates
// (outside the NDC unit square) yield no hits.
func intersectTargets(cam *Camera, ndc Vec2, targets []*Node, recursive bool, buf []Intersection) []Intersection {
	buf = buf[:0]
	if !insideNDC(ndc) {
		return buf
	}
	ray, ok := cam.RayFromNDC(ndc)
	if !ok {
		return buf
	}
	for _, target := range targets {
		buf = collectIntersections(target, ray, recursive, buf)
	}
	sort.SliceStable(buf, func(i, j int) bool {
		return buf[i].Distance < buf[j].Distance
	})
	return buf
}
