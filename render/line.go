package render

// Line visits every cell from (x0, y0) to (x1, y1) inclusive via Bresenham
func Line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := x1 - x0
	dy := y1 - y0

	stepX, stepY := 1, 1
	absDx, absDy := dx, dy
	if absDx < 0 {
		absDx = -absDx
		stepX = -1
	}
	if absDy < 0 {
		absDy = -absDy
		stepY = -1
	}

	totalSteps := max(absDx, absDy)
	err := absDx - absDy
	x, y := x0, y0

	for step := 0; step <= totalSteps; step++ {
		plot(x, y)
		if step < totalSteps {
			e2 := 2 * err
			if e2 > -absDy {
				err -= absDy
				x += stepX
			}
			if e2 < absDx {
				err += absDx
				y += stepY
			}
		}
	}
}
