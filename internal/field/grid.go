package field

import "math"

// Point is a grid position in device pixels.
type Point struct {
	X, Y float64
}

// BuildGrid lays out a centered lattice with the given logical spacing,
// scaled to device pixels. At most limit points are produced; when the
// limit truncates the lattice the result is a raster-order prefix, so
// the bottom rows go first.
func BuildGrid(vp Viewport, spacing float64, limit int) []Point {
	if spacing <= 0 || limit <= 0 {
		return nil
	}
	cols := cells(vp.CSSWidth, spacing)
	rows := cells(vp.CSSHeight, spacing)
	total := min(cols*rows, limit)
	if total <= 0 {
		return nil
	}

	sx := (vp.CSSWidth - float64(cols-1)*spacing) / 2
	sy := (vp.CSSHeight - float64(rows-1)*spacing) / 2

	points := make([]Point, 0, total)
	for r := 0; r < rows && len(points) < total; r++ {
		for c := 0; c < cols && len(points) < total; c++ {
			points = append(points, Point{
				X: (sx + float64(c)*spacing) * vp.Ratio,
				Y: (sy + float64(r)*spacing) * vp.Ratio,
			})
		}
	}
	return points
}

func cells(length, spacing float64) int {
	if length <= 0 {
		return 0
	}
	return int(math.Ceil(length / spacing))
}
