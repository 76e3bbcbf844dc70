// Package layout carves screen rectangles into the regions screens draw in.
// Every function accepts rectangles with swapped corners and clamps sizes
// into the rectangle it is given, so results never leave their parent.
package layout

import "image"

// Inset shrinks r by pad pixels per side. A pad larger than half of r
// collapses that axis onto its midpoint.
func Inset(r image.Rectangle, pad int) image.Rectangle {
	r = r.Canon()
	if pad <= 0 {
		return r
	}
	padX := min(pad, r.Dx()/2)
	padY := min(pad, r.Dy()/2)
	return image.Rect(r.Min.X+padX, r.Min.Y+padY, r.Max.X-padX, r.Max.Y-padY)
}

// SplitVertical cuts r at x offset w into a left and a right part.
func SplitVertical(r image.Rectangle, w int) (left, right image.Rectangle) {
	r = r.Canon()
	x := r.Min.X + clamp(w, r.Dx())
	left, right = r, r
	left.Max.X, right.Min.X = x, x
	return left, right
}

// SplitHorizontal cuts r at y offset h into a top and a bottom part.
func SplitHorizontal(r image.Rectangle, h int) (top, bottom image.Rectangle) {
	r = r.Canon()
	y := r.Min.Y + clamp(h, r.Dy())
	top, bottom = r, r
	top.Max.Y, bottom.Min.Y = y, y
	return top, bottom
}

// Rows stacks n rows of height h from the top of r. Rows below r come back
// empty.
func Rows(r image.Rectangle, n, h int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	r = r.Canon()
	h = max(h, 0)
	rows := make([]image.Rectangle, n)
	for i := range rows {
		row := r
		row.Min.Y = r.Min.Y + i*h
		row.Max.Y = row.Min.Y + h
		rows[i] = row.Intersect(r)
	}
	return rows
}

// CenterIn places a w x h box in the middle of r, shrunk to fit.
func CenterIn(r image.Rectangle, w, h int) image.Rectangle {
	r = r.Canon()
	w, h = clamp(w, r.Dx()), clamp(h, r.Dy())
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// FitSquare returns the largest square in the top-left corner of r.
func FitSquare(r image.Rectangle) image.Rectangle {
	r = r.Canon()
	side := min(r.Dx(), r.Dy())
	return image.Rectangle{Min: r.Min, Max: r.Min.Add(image.Pt(side, side))}
}

func clamp(v, limit int) int {
	return min(max(v, 0), limit)
}
