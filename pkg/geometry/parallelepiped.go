package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Parallelepiped is a solid spanned by three edge vectors from one corner.
// Its six faces are stored as 12 triangles wound so their normals face outward.
type Parallelepiped struct {
	Corner    core.Vec3
	Edges     [3]core.Vec3
	Material  material.Material
	triangles [12]Triangle
	bbox      core.AABB
}

// NewParallelepiped creates a parallelepiped from a corner and three edge vectors.
// An axis-aligned box of size (w, h, d) at corner c is
// NewParallelepiped(c, [3]core.Vec3{{X: w}, {Y: h}, {Z: d}}, mat).
func NewParallelepiped(corner core.Vec3, edges [3]core.Vec3, mat material.Material) *Parallelepiped {
	p := &Parallelepiped{
		Corner:   corner,
		Edges:    edges,
		Material: mat,
	}
	p.generateFaces()
	return p
}

// generateFaces builds two triangles for each of the 6 faces
func (p *Parallelepiped) generateFaces() {
	a, b, c := p.Edges[0], p.Edges[1], p.Edges[2]
	center := p.Corner.Add(a.Add(b).Add(c).Multiply(0.5))

	// Each face is spanned by two edges and offset by zero or the third
	spans := [3][3]core.Vec3{
		{a, b, c},
		{b, c, a},
		{c, a, b},
	}

	i := 0
	for _, span := range spans {
		u, v, w := span[0], span[1], span[2]
		for _, origin := range [2]core.Vec3{p.Corner, p.Corner.Add(w)} {
			faceCenter := origin.Add(u.Add(v).Multiply(0.5))
			if u.Cross(v).Dot(faceCenter.Subtract(center)) < 0 {
				u, v = v, u
			}
			p.triangles[i] = NewTriangle(origin, origin.Add(u), origin.Add(u).Add(v), p.Material)
			p.triangles[i+1] = NewTriangle(origin, origin.Add(u).Add(v), origin.Add(v), p.Material)
			i += 2
		}
	}

	corners := make([]core.Vec3, 0, 8)
	for _, da := range [2]float64{0, 1} {
		for _, db := range [2]float64{0, 1} {
			for _, dc := range [2]float64{0, 1} {
				corners = append(corners, p.Corner.Add(a.Multiply(da)).Add(b.Multiply(db)).Add(c.Multiply(dc)))
			}
		}
	}
	p.bbox = core.NewAABBFromPoints(corners...).Pad(flatAxisPadding)
}

// Hit tests if a ray intersects with any face
func (p *Parallelepiped) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestT := tMax

	for _, triangle := range p.triangles {
		if hit, isHit := triangle.Hit(ray, tMin, closestT); isHit {
			closestT = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the box around the 8 corners
func (p *Parallelepiped) BoundingBox() core.AABB {
	return p.bbox
}

// Triangles returns the 12 outward-wound face triangles
func (p *Parallelepiped) Triangles() [12]Triangle {
	return p.triangles
}
