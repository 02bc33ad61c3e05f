package shape

import (
	"math"

	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/types"
)

// A sphere centered at the object-space origin, optionally clipped along z
// and sweeping only phiMax radians around the z axis.
type Sphere struct {
	objectToWorld geom.Transform
	worldToObject geom.Transform

	radius     float32
	zMin, zMax float32
	thetaMin   float32
	thetaMax   float32
	phiMax     float32
}

// NewSphere creates a full sphere of the given radius centered at center.
func NewSphere(center types.Vec3, radius float32) *Sphere {
	return NewPartialSphere(geom.Translate(center), radius, -radius, radius, 360)
}

// NewPartialSphere creates a sphere clipped to [zMin, zMax] in object space
// and swept phiMaxDeg degrees around the z axis.
func NewPartialSphere(objectToWorld geom.Transform, radius, zMin, zMax, phiMaxDeg float32) *Sphere {
	lo := clamp(float32(math.Min(float64(zMin), float64(zMax))), -radius, radius)
	hi := clamp(float32(math.Max(float64(zMin), float64(zMax))), -radius, radius)
	return &Sphere{
		objectToWorld: objectToWorld,
		worldToObject: objectToWorld.Inverse(),
		radius:        radius,
		zMin:          lo,
		zMax:          hi,
		thetaMin:      float32(math.Acos(float64(clamp(lo/radius, -1, 1)))),
		thetaMax:      float32(math.Acos(float64(clamp(hi/radius, -1, 1)))),
		phiMax:        clamp(phiMaxDeg, 0, 360) * math.Pi / 180,
	}
}

func (s *Sphere) ObjectBound() geom.Bounds3 {
	return geom.Bounds3{
		Min: types.XYZ(-s.radius, -s.radius, s.zMin),
		Max: types.XYZ(s.radius, s.radius, s.zMax),
	}
}

func (s *Sphere) WorldBound() geom.Bounds3 {
	return s.objectToWorld.Bounds(s.ObjectBound())
}

func (s *Sphere) Area() float32 {
	return s.phiMax * s.radius * (s.zMax - s.zMin)
}

func (s *Sphere) Intersect(ray geom.Ray) (Interaction, bool) {
	local := s.worldToObject.Ray(ray)
	tHit, pHit, phi, ok := s.hit(local)
	if !ok {
		return Interaction{}, false
	}

	u := phi / s.phiMax
	cosTheta := clamp(pHit[2]/s.radius, -1, 1)
	theta := float32(math.Acos(float64(cosTheta)))
	v := (theta - s.thetaMin) / (s.thetaMax - s.thetaMin)

	zRadius := float32(math.Sqrt(float64(pHit[0]*pHit[0] + pHit[1]*pHit[1])))
	var cosPhi, sinPhi float32
	if zRadius > 0 {
		cosPhi = pHit[0] / zRadius
		sinPhi = pHit[1] / zRadius
	}
	dpdu := types.XYZ(-s.phiMax*pHit[1], s.phiMax*pHit[0], 0)
	dpdv := types.XYZ(pHit[2]*cosPhi, pHit[2]*sinPhi, -s.radius*float32(math.Sin(float64(theta)))).
		Mul(s.thetaMax - s.thetaMin)

	return Interaction{
		T:    tHit,
		P:    s.objectToWorld.Point(pHit),
		N:    s.objectToWorld.Normal(pHit).Normalize(),
		Wo:   ray.Dir.Neg().Normalize(),
		UV:   types.XY(u, v),
		Dpdu: s.objectToWorld.Vector(dpdu),
		Dpdv: s.objectToWorld.Vector(dpdv),
	}, true
}

func (s *Sphere) IntersectP(ray geom.Ray) bool {
	_, _, _, ok := s.hit(s.worldToObject.Ray(ray))
	return ok
}

// hit finds the closest valid root of the ray/sphere quadratic in object
// space, skipping roots that fall in the clipped region.
func (s *Sphere) hit(ray geom.Ray) (tHit float32, pHit types.Vec3, phi float32, ok bool) {
	ox, oy, oz := float64(ray.Origin[0]), float64(ray.Origin[1]), float64(ray.Origin[2])
	dx, dy, dz := float64(ray.Dir[0]), float64(ray.Dir[1]), float64(ray.Dir[2])
	r := float64(s.radius)

	a := dx*dx + dy*dy + dz*dz
	b := 2 * (dx*ox + dy*oy + dz*oz)
	c := ox*ox + oy*oy + oz*oz - r*r

	t0, t1, ok := quadratic(a, b, c)
	if !ok {
		return 0, types.Vec3{}, 0, false
	}
	if t0 > float64(ray.TMax) || t1 <= 0 {
		return 0, types.Vec3{}, 0, false
	}

	tShapeHit := t0
	if tShapeHit <= 0 {
		tShapeHit = t1
		if tShapeHit > float64(ray.TMax) {
			return 0, types.Vec3{}, 0, false
		}
	}

	pHit, phi = s.surfacePoint(ray, float32(tShapeHit))
	if s.clipped(pHit, phi) {
		if tShapeHit == t1 || t1 > float64(ray.TMax) {
			return 0, types.Vec3{}, 0, false
		}
		tShapeHit = t1
		pHit, phi = s.surfacePoint(ray, float32(tShapeHit))
		if s.clipped(pHit, phi) {
			return 0, types.Vec3{}, 0, false
		}
	}

	return float32(tShapeHit), pHit, phi, true
}

func (s *Sphere) surfacePoint(ray geom.Ray, t float32) (types.Vec3, float32) {
	p := ray.At(t)
	// Refine the hit point so it lies on the surface.
	if l := p.Len(); l > 0 {
		p = p.Mul(s.radius / l)
	}
	if p[0] == 0 && p[1] == 0 {
		p[0] = 1e-5 * s.radius
	}
	phi := float32(math.Atan2(float64(p[1]), float64(p[0])))
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return p, phi
}

func (s *Sphere) clipped(p types.Vec3, phi float32) bool {
	return (s.zMin > -s.radius && p[2] < s.zMin) ||
		(s.zMax < s.radius && p[2] > s.zMax) ||
		phi > s.phiMax
}

// quadratic solves a*t^2 + b*t + c = 0 returning the roots in ascending
// order.
func quadratic(a, b, c float64) (t0, t1 float64, ok bool) {
	discrim := b*b - 4*a*c
	if discrim < 0 || a == 0 {
		return 0, 0, false
	}
	rootDiscrim := math.Sqrt(discrim)

	var q float64
	if b < 0 {
		q = -0.5 * (b - rootDiscrim)
	} else {
		q = -0.5 * (b + rootDiscrim)
	}
	if q == 0 {
		// b == 0 and discrim == 0: tangent at the origin.
		return 0, 0, true
	}
	t0 = q / a
	t1 = c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
