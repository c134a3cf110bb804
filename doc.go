// Package tripick implements the numeric core of a triangular three-way
// weight picker.
//
// # Overview
//
// tripick turns pointer positions inside a triangular region of an image,
// and direct edits to three linked percentage fields, into one
// authoritative percentage triple that always sums to 100. It covers
// three concerns:
//
//   - Vertex location: scanning a raster's alpha channel once to find
//     the triangle's apex and base corners (Locate, LocateAlpha).
//   - Geometry: converting between points, barycentric weights and
//     channel percentages (Triangle, Barycentric, ChannelMap).
//   - Weight state: the Picker, holding the current WeightVector and
//     rebalancing it on every pointer or field event (UpdateFromPoint,
//     UpdateFromEdit, Rebalance).
//
// Rendering, event capture and dialogs stay with the embedding
// application; it forwards raw coordinates or field values and draws
// whatever Weights and MarkerPoint report. See cmd/tripickdemo for a
// complete terminal adapter.
//
// # Quick Start
//
//	tri := tripick.Locate(img) // once, after decoding the asset
//	cm, _ := tripick.NewChannelMap(2, 0, 1)
//	picker, err := tripick.NewPicker(tri, cm)
//	if err != nil {
//	    // collinear vertices or invalid channel map
//	}
//
//	// Pointer event, image-local coordinates:
//	if v, ok := picker.UpdateFromPoint(tripick.Pt(120, 88)); ok {
//	    render(v, picker.MarkerPoint())
//	}
//
//	// The user typed 60 into the first field:
//	v := picker.UpdateFromEdit(0, 60)
//
//	// Confirmation:
//	sub := picker.OnConfirm(func(v tripick.WeightVector) { apply(v) })
//	defer sub.Cancel()
//	picker.Confirm()
//
// # Coordinate Space
//
// All geometry lives in one coordinate space at a time, with the origin
// at the top left, x increasing right and y increasing down. Locate
// reports image-local pixel coordinates; scaling between image-local and
// screen coordinates is the caller's job, and pointer positions handed
// to UpdateFromPoint must be in the space the triangle was located in.
//
// # Concurrency
//
// The core is synchronous and performs no I/O. Locate and LocateAlpha
// are pure functions, safe to call from any goroutine (for example off
// the UI thread for a large image). A Picker is not safe for concurrent
// use; the caller serializes events. SetLogger and Logger are safe for
// concurrent use.
package tripick

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
