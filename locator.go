package tripick

import (
	"image"
	"math"
)

// Scan defaults. Both values were tuned against the picker's triangular
// glyph asset; override them with LocateOptions when scanning a
// different asset.
const (
	// DefaultAlphaThreshold is the alpha value, out of 255, at or above
	// which a pixel counts as visible during a vertex scan.
	DefaultAlphaThreshold uint8 = 30

	// DefaultBandWidth is the width in pixels of the band around an
	// extremal row or column considered when picking a vertex.
	DefaultBandWidth = 3
)

// Locate finds the triangle drawn in img by scanning its alpha channel.
// It returns the three vertices in image-local pixel coordinates: the
// apex of the silhouette as Top and the lowest points of its left and
// right edges as Left and Right.
//
// Locate never fails. An image with no pixel at or above the alpha
// threshold yields the canonical fallback triangle spanning the pixel
// bounds (top center, bottom left, bottom right), so a malformed asset
// shifts the triangle instead of breaking the picker. A silhouette too
// thin to span a real triangle can still produce collinear vertices;
// NewPicker rejects those.
func Locate(img image.Image, opts ...LocateOption) Triangle {
	alpha, w, h := alphaPlane(img)
	return LocateAlpha(alpha, w, h, opts...)
}

// LocateAlpha is Locate for a raw alpha plane, one byte per pixel in
// row-major order. A plane shorter than width*height is scanned as far
// as it reaches; the missing pixels count as transparent.
func LocateAlpha(alpha []uint8, width, height int, opts ...LocateOption) Triangle {
	o := defaultLocateOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if width <= 0 || height <= 0 {
		Logger().Warn("vertex scan on empty image, using fallback triangle",
			"width", width, "height", height)
		return fallbackTriangle(width, height)
	}

	limit := width * height
	if len(alpha) < limit {
		limit = len(alpha)
	}

	// Collect the visible silhouette and remember one representative
	// pixel per extreme for the defensive band fallbacks below.
	pts := make([]image.Point, 0, 256)
	minY, minX, maxX := -1, -1, -1
	var atMinY, atMinX, atMaxX image.Point
	for i := range limit {
		if alpha[i] < o.threshold {
			continue
		}
		p := image.Pt(i%width, i/width)
		pts = append(pts, p)
		if minY < 0 || p.Y < minY {
			minY, atMinY = p.Y, p
		}
		if minX < 0 || p.X < minX {
			minX, atMinX = p.X, p
		}
		if p.X > maxX {
			maxX, atMaxX = p.X, p
		}
	}
	if len(pts) == 0 {
		Logger().Warn("no pixels at or above alpha threshold, using fallback triangle",
			"threshold", o.threshold, "width", width, "height", height)
		return fallbackTriangle(width, height)
	}

	// The bands are drawn from the same point set, so they cannot come
	// up empty; the representative pixels cover the impossible case.
	top, ok := topVertex(pts, minY, o.band)
	if !ok {
		top = atMinY
	}
	left, ok := leftVertex(pts, minX, o.band)
	if !ok {
		left = atMinX
	}
	right, ok := rightVertex(pts, maxX, o.band)
	if !ok {
		right = atMaxX
	}

	Logger().Debug("vertex scan",
		"visible", len(pts), "threshold", o.threshold, "band", o.band,
		"top", top, "left", left, "right", right)

	return Triangle{
		Top:   Pt(float64(top.X), float64(top.Y)),
		Left:  Pt(float64(left.X), float64(left.Y)),
		Right: Pt(float64(right.X), float64(right.Y)),
	}
}

// fallbackTriangle spans the pixel bounds of a width x height image:
// apex at the top center, base at the bottom corners. For images smaller
// than 2x2 the result is degenerate; NewPicker reports that.
func fallbackTriangle(width, height int) Triangle {
	w := math.Max(float64(width-1), 0)
	h := math.Max(float64(height-1), 0)
	return Triangle{
		Top:   Pt(w/2, 0),
		Left:  Pt(0, h),
		Right: Pt(w, h),
	}
}

// topVertex picks the apex: among the points within band of the minimum
// y, the one whose x is closest to the band's mean x. Against an
// anti-aliased edge the single topmost pixel lands wherever the
// thresholded tip happens to survive; averaging the band re-centers the
// apex horizontally.
func topVertex(pts []image.Point, minY, band int) (image.Point, bool) {
	sum, count := 0, 0
	for _, p := range pts {
		if p.Y <= minY+band {
			sum += p.X
			count++
		}
	}
	if count == 0 {
		return image.Point{}, false
	}
	mean := float64(sum) / float64(count)

	var best image.Point
	bestDist := math.Inf(1)
	for _, p := range pts {
		if p.Y > minY+band {
			continue
		}
		if d := math.Abs(float64(p.X) - mean); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}

// leftVertex picks the lowest point within band of the minimum x, the
// bottom corner of the left edge. The band absorbs jagged thresholded
// pixels along the bottom rows.
func leftVertex(pts []image.Point, minX, band int) (image.Point, bool) {
	var best image.Point
	found := false
	for _, p := range pts {
		if p.X > minX+band {
			continue
		}
		if !found || p.Y > best.Y {
			best, found = p, true
		}
	}
	return best, found
}

// rightVertex picks the lowest point within band of the maximum x, the
// bottom corner of the right edge.
func rightVertex(pts []image.Point, maxX, band int) (image.Point, bool) {
	var best image.Point
	found := false
	for _, p := range pts {
		if p.X < maxX-band {
			continue
		}
		if !found || p.Y > best.Y {
			best, found = p, true
		}
	}
	return best, found
}
