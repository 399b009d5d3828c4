// pkg/physics/collision.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere represents a spherical collision shape
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Intersects checks if two spheres overlap
func (s Sphere) Intersects(other Sphere) bool {
	return s.Center.Sub(other.Center).Len() < s.Radius+other.Radius
}

// Contains reports whether p lies inside the sphere
func (s Sphere) Contains(p mgl64.Vec3) bool {
	return p.Sub(s.Center).Len() <= s.Radius
}

// AABB is an axis-aligned box given by its center and half extents
type AABB struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
}

// Min returns the lowest corner of the box
func (b AABB) Min() mgl64.Vec3 {
	return b.Center.Sub(b.HalfExtents)
}

// Max returns the highest corner of the box
func (b AABB) Max() mgl64.Vec3 {
	return b.Center.Add(b.HalfExtents)
}

// BoundingSphere returns the smallest sphere enclosing the box
func (b AABB) BoundingSphere() Sphere {
	return Sphere{Center: b.Center, Radius: b.HalfExtents.Len()}
}

// Ray is a half-line starting at Origin. Direction must be a unit vector.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewSegmentRay builds a ray covering the segment from a to b and returns its
// length. A degenerate segment yields a zero length and a forward direction.
func NewSegmentRay(from, to mgl64.Vec3) (Ray, float64) {
	delta := to.Sub(from)
	length := delta.Len()
	return Ray{Origin: from, Direction: SafeNormalize(delta, Forward)}, length
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RayHit describes the first intersection of a ray with a shape
type RayHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// RaySphere returns the first intersection of r with s within maxDist.
// A ray starting inside the sphere hits at its origin.
func RaySphere(r Ray, s Sphere, maxDist float64) (RayHit, bool) {
	oc := r.Origin.Sub(s.Center)
	c := oc.Dot(oc) - s.Radius*s.Radius
	if c <= 0 {
		return RayHit{Point: r.Origin, Normal: SafeNormalize(oc, r.Direction.Mul(-1)), Distance: 0}, true
	}

	b := oc.Dot(r.Direction)
	if b > 0 {
		// Origin outside and pointing away
		return RayHit{}, false
	}

	disc := b*b - c
	if disc < 0 {
		return RayHit{}, false
	}

	t := -b - math.Sqrt(disc)
	if t < 0 || t > maxDist {
		return RayHit{}, false
	}

	point := r.At(t)
	return RayHit{
		Point:    point,
		Normal:   SafeNormalize(point.Sub(s.Center), Up),
		Distance: t,
	}, true
}

// RayAABB returns the first intersection of r with b within maxDist using the
// slab method.
func RayAABB(r Ray, b AABB, maxDist float64) (RayHit, bool) {
	minCorner := b.Min()
	maxCorner := b.Max()
	tNear := 0.0
	tFar := maxDist
	var normal mgl64.Vec3

	for axis := 0; axis < 3; axis++ {
		origin := r.Origin[axis]
		dir := r.Direction[axis]
		if math.Abs(dir) < Epsilon {
			if origin < minCorner[axis] || origin > maxCorner[axis] {
				return RayHit{}, false
			}
			continue
		}

		inv := 1 / dir
		t1 := (minCorner[axis] - origin) * inv
		t2 := (maxCorner[axis] - origin) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tNear {
			tNear = t1
			normal = mgl64.Vec3{}
			normal[axis] = sign
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return RayHit{}, false
		}
	}

	if IsZero(normal) {
		normal = r.Direction.Mul(-1)
	}
	return RayHit{Point: r.At(tNear), Normal: normal, Distance: tNear}, true
}

// minNodeSize is the smallest quadtree node width that may subdivide
const minNodeSize = 1.0

// QuadTree partitions objects on the horizontal XZ plane for broadphase queries
type QuadTree struct {
	Boundary  Rect
	Capacity  int
	Points    []mgl64.Vec2
	Objects   []any
	Divided   bool
	NorthWest *QuadTree
	NorthEast *QuadTree
	SouthWest *QuadTree
	SouthEast *QuadTree
}

// Rect represents a rectangular area on the XZ plane
type Rect struct {
	Center mgl64.Vec2
	Width  float64
	Height float64
}

// RectAround returns the XZ rectangle covering the segment from a to b,
// padded by margin on every side.
func RectAround(a, b mgl64.Vec3, margin float64) Rect {
	minX := math.Min(a.X(), b.X()) - margin
	maxX := math.Max(a.X(), b.X()) + margin
	minZ := math.Min(a.Z(), b.Z()) - margin
	maxZ := math.Max(a.Z(), b.Z()) + margin
	return Rect{
		Center: mgl64.Vec2{(minX + maxX) / 2, (minZ + maxZ) / 2},
		Width:  maxX - minX,
		Height: maxZ - minZ,
	}
}

func (r Rect) Contains(point mgl64.Vec2) bool {
	return point.X() >= r.Center.X()-r.Width/2 &&
		point.X() < r.Center.X()+r.Width/2 &&
		point.Y() >= r.Center.Y()-r.Height/2 &&
		point.Y() < r.Center.Y()+r.Height/2
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]mgl64.Vec2, 0, capacity),
		Objects:  make([]any, 0, capacity),
	}
}

// Insert adds object at the horizontal projection of position
func (qt *QuadTree) Insert(position mgl64.Vec3, object any) bool {
	return qt.insert(mgl64.Vec2{position.X(), position.Z()}, object)
}

func (qt *QuadTree) insert(point mgl64.Vec2, object any) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	// nodes at minNodeSize hold any number of points
	if !qt.Divided && (len(qt.Points) < qt.Capacity || qt.Boundary.Width <= minNodeSize) {
		qt.Points = append(qt.Points, point)
		qt.Objects = append(qt.Objects, object)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.insert(point, object) ||
		qt.NorthEast.insert(point, object) ||
		qt.SouthWest.insert(point, object) ||
		qt.SouthEast.insert(point, object)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree) Subdivide() {
	x := qt.Boundary.Center.X()
	y := qt.Boundary.Center.Y()
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	nw := Rect{Center: mgl64.Vec2{x - w/2, y + h/2}, Width: w, Height: h}
	ne := Rect{Center: mgl64.Vec2{x + w/2, y + h/2}, Width: w, Height: h}
	sw := Rect{Center: mgl64.Vec2{x - w/2, y - h/2}, Width: w, Height: h}
	se := Rect{Center: mgl64.Vec2{x + w/2, y - h/2}, Width: w, Height: h}

	qt.NorthWest = NewQuadTree(nw, qt.Capacity)
	qt.NorthEast = NewQuadTree(ne, qt.Capacity)
	qt.SouthWest = NewQuadTree(sw, qt.Capacity)
	qt.SouthEast = NewQuadTree(se, qt.Capacity)
	qt.Divided = true
}

// Clear removes every object while keeping the boundary
func (qt *QuadTree) Clear() {
	qt.Points = qt.Points[:0]
	qt.Objects = qt.Objects[:0]
	qt.Divided = false
	qt.NorthWest = nil
	qt.NorthEast = nil
	qt.SouthWest = nil
	qt.SouthEast = nil
}

// Query returns all objects whose points lie in area
func (qt *QuadTree) Query(area Rect) []any {
	found := make([]any, 0)

	if !qt.intersects(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.Objects[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = append(found, qt.NorthWest.Query(area)...)
	found = append(found, qt.NorthEast.Query(area)...)
	found = append(found, qt.SouthWest.Query(area)...)
	found = append(found, qt.SouthEast.Query(area)...)

	return found
}

func (qt *QuadTree) intersects(area Rect) bool {
	return !(area.Center.X()-area.Width/2 > qt.Boundary.Center.X()+qt.Boundary.Width/2 ||
		area.Center.X()+area.Width/2 < qt.Boundary.Center.X()-qt.Boundary.Width/2 ||
		area.Center.Y()-area.Height/2 > qt.Boundary.Center.Y()+qt.Boundary.Height/2 ||
		area.Center.Y()+area.Height/2 < qt.Boundary.Center.Y()-qt.Boundary.Height/2)
}
