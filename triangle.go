package tripick

import (
	"errors"
	"math"
)

// ErrDegenerateTriangle is returned when three vertices are collinear.
// No barycentric mapping exists for a zero-area triangle, so construction
// is the last point where the problem can be reported.
var ErrDegenerateTriangle = errors.New("tripick: degenerate triangle (collinear vertices)")

// InsideTolerance is the default slack applied to containment tests.
// Barycentric weights may undershoot zero by this amount and still count
// as inside, so a pointer landing exactly on an edge is accepted.
const InsideTolerance = 1e-6

// degenerateArea is the |signed area| at or below which a triangle is
// treated as collinear.
const degenerateArea = 1e-9

// Triangle is the picker's active region: three vertices tagged by the
// role they play in the weighting. A Triangle is immutable once computed
// for an image; recompute it only when the image or its displayed size
// changes.
type Triangle struct {
	Top, Left, Right Point
}

// NewTriangle builds a triangle from its three role-tagged vertices.
// It returns ErrDegenerateTriangle when the vertices are collinear, since
// every later conversion divides by the triangle's area.
func NewTriangle(top, left, right Point) (Triangle, error) {
	t := Triangle{Top: top, Left: left, Right: right}
	if math.Abs(t.SignedArea()) <= degenerateArea {
		return Triangle{}, ErrDegenerateTriangle
	}
	return t, nil
}

// signedArea returns twice the signed area of triangle abc. The sign
// encodes winding, and the value is the denominator of every barycentric
// conversion.
func signedArea(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// SignedArea returns twice the signed area of the triangle.
func (t Triangle) SignedArea() float64 {
	return signedArea(t.Top, t.Left, t.Right)
}

// Centroid returns the arithmetic center of the three vertices.
func (t Triangle) Centroid() Point {
	return t.Top.Add(t.Left).Add(t.Right).Mul(1.0 / 3.0)
}

// Barycentric converts p into weights relative to the triangle's three
// vertices. The conversion is exact for points inside, on, or outside the
// triangle; outside points produce one or more negative weights. The
// weights sum to exactly 1 by construction.
//
// The triangle must not be degenerate; NewTriangle and NewPicker both
// guarantee that.
func (t Triangle) Barycentric(p Point) Barycentric {
	d := t.SignedArea()
	top := signedArea(p, t.Left, t.Right) / d
	left := signedArea(p, t.Right, t.Top) / d
	return Barycentric{Top: top, Left: left, Right: 1 - top - left}
}

// PointAt maps barycentric weights back into the triangle's coordinate
// space as the weighted sum of its vertices. It is the inverse of
// Barycentric and positions the selection marker for a weight vector.
func (t Triangle) PointAt(b Barycentric) Point {
	return t.Top.Mul(b.Top).Add(t.Left.Mul(b.Left)).Add(t.Right.Mul(b.Right))
}

// Contains reports whether p lies inside the triangle, edges included,
// using the default InsideTolerance.
func (t Triangle) Contains(p Point) bool {
	return t.Barycentric(p).Inside(InsideTolerance)
}

// Barycentric holds a point's weights relative to a Triangle's three
// vertices. The weights always sum to 1; one or more turn negative when
// the point lies outside the triangle. It is an intermediate value,
// derived from a Point or a WeightVector and never stored.
type Barycentric struct {
	Top, Left, Right float64
}

// Inside reports whether the weights describe a point inside the
// triangle, allowing each weight to undershoot zero by tol.
func (b Barycentric) Inside(tol float64) bool {
	return b.Top >= -tol && b.Left >= -tol && b.Right >= -tol
}
