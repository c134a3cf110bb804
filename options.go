package tripick

// LocateOption configures a vertex scan.
//
// Example:
//
//	// Default scan: threshold 30, band 3px
//	tri := tripick.Locate(img)
//
//	// A soft drop-shadowed asset needs a higher cutoff
//	tri := tripick.Locate(img, tripick.WithAlphaThreshold(96))
type LocateOption func(*locateOptions)

// locateOptions holds the configuration of one vertex scan.
type locateOptions struct {
	threshold uint8
	band      int
}

// defaultLocateOptions returns the documented scan defaults.
func defaultLocateOptions() locateOptions {
	return locateOptions{
		threshold: DefaultAlphaThreshold,
		band:      DefaultBandWidth,
	}
}

// WithAlphaThreshold sets the alpha value at or above which a pixel
// counts as visible. Lower values pull anti-aliased fringe pixels into
// the silhouette; higher values shrink it.
func WithAlphaThreshold(threshold uint8) LocateOption {
	return func(o *locateOptions) {
		o.threshold = threshold
	}
}

// WithBandWidth sets the width in pixels of the band around each
// extremal row or column considered when picking a vertex. A width of 0
// reduces every pick to the single extremal pixel. Negative widths are
// treated as 0.
func WithBandWidth(px int) LocateOption {
	return func(o *locateOptions) {
		o.band = max(px, 0)
	}
}

// PickerOption configures a Picker during creation.
//
// Example:
//
//	// Default containment tolerance
//	p, err := tripick.NewPicker(tri, cm)
//
//	// Admit pointer positions up to half a pixel outside each edge
//	p, err := tripick.NewPicker(tri, cm, tripick.WithInsideTolerance(0.5))
type PickerOption func(*pickerOptions)

// pickerOptions holds optional configuration for Picker creation.
type pickerOptions struct {
	insideTolerance float64
}

// defaultPickerOptions returns the default picker options.
func defaultPickerOptions() pickerOptions {
	return pickerOptions{insideTolerance: InsideTolerance}
}

// WithInsideTolerance sets how far a barycentric weight may undershoot
// zero before UpdateFromPoint rejects the point. The default
// InsideTolerance admits points exactly on an edge; larger values widen
// the accepted region around the triangle, which helps with coarse
// pointer grids.
func WithInsideTolerance(tol float64) PickerOption {
	return func(o *pickerOptions) {
		o.insideTolerance = tol
	}
}
