// Package raster produces integer pixel outlines for the shapes drawn each frame.
//
// Outlines are computed once as offsets around a logical centre and then
// translated, never regenerated, as the owner moves:
//
//	circle := raster.Circle(0, 0, 10)
//	pts = raster.Translate(pts[:0], circle, orb.X, orb.Y)
package raster

import "image"

// Offset is a pixel displacement from a shape's centre.
type Offset struct {
	DX, DY int
}

// Circle returns the outline of a circle of radius r around (cx, cy) using the
// decision-variable midpoint algorithm with eight-way symmetry. Points close to
// the diagonals may appear twice. A zero or negative radius yields no points.
func Circle(cx, cy, r int) []Offset {
	if r <= 0 {
		return nil
	}

	x := r - 1
	y := 0
	tx := 1
	ty := 1
	diameter := r << 1
	errAcc := tx - diameter

	points := make([]Offset, 0, 8*r)
	for x >= y {
		points = append(points,
			Offset{cx + x, cy - y},
			Offset{cx + x, cy + y},
			Offset{cx - x, cy - y},
			Offset{cx - x, cy + y},
			Offset{cx + y, cy - x},
			Offset{cx + y, cy + x},
			Offset{cx - y, cy - x},
			Offset{cx - y, cy + x},
		)

		if errAcc <= 0 {
			y++
			errAcc += ty
			ty += 2
		}
		if errAcc > 0 {
			x--
			tx += 2
			errAcc += tx - diameter
		}
	}
	return points
}

// Translate appends the offsets moved to (x, y) onto dst. Coordinates are
// truncated toward zero, the same as a plain float-to-int conversion.
func Translate(dst []image.Point, offsets []Offset, x, y float64) []image.Point {
	for _, o := range offsets {
		dst = append(dst, image.Point{
			X: int(x + float64(o.DX)),
			Y: int(y + float64(o.DY)),
		})
	}
	return dst
}
