package tripick

import "image"

// alphaPlane extracts the alpha channel of img as one byte per pixel in
// row-major order, plus the pixel dimensions. NRGBA, RGBA and Alpha
// images are read straight from their Pix buffers; every other type goes
// through the generic color interface. Sub-images and other buffers with
// a non-zero bounds origin are handled.
func alphaPlane(img image.Image) ([]uint8, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, w, h
	}
	plane := make([]uint8, w*h)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := range h {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := range w {
				plane[y*w+x] = row[x*4+3]
			}
		}
	case *image.RGBA:
		// Premultiplication changes the color bytes, not the alpha byte.
		for y := range h {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := range w {
				plane[y*w+x] = row[x*4+3]
			}
		}
	case *image.Alpha:
		for y := range h {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(plane[y*w:(y+1)*w], row[:w])
		}
	default:
		for y := range h {
			for x := range w {
				_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				// RGBA() returns 16-bit values; the shift fits uint8.
				plane[y*w+x] = uint8(a >> 8)
			}
		}
	}
	return plane, w, h
}
