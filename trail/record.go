package trail

// Scaler maps meters to display units, satisfied by *viewport.Mapper
type Scaler interface {
	ScaleX(x float64) float64
	ScaleY(y float64) float64
	LengthX(w float64) float64
}

// Record applies the decimation policy for a body now at (x, y) meters that moved deltaMeters
// The point is committed only once accrued display displacement exceeds thresholdPixels,
// which resets the accrued delta and the live point; otherwise it becomes the live point
// Returns whether a point was committed
func Record(p *PathBuffer, s Scaler, x, y, deltaMeters, thresholdPixels float64) (bool, error) {
	p.AccruePositionDelta(deltaMeters)
	if s.LengthX(p.AccruedDelta()) > thresholdPixels {
		if err := p.AddPoint(x, y); err != nil {
			return false, err
		}
		p.ResetPositionDelta()
		p.ClearLatestPoint()
		return true, nil
	}
	return false, p.SetLatestPoint(x, y)
}
