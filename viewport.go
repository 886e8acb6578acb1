package trellis

import "math"

// degenerateNDC is the coordinate returned for unusable input. It is finite
// but outside the NDC unit square, so hit testing yields no intersections.
var degenerateNDC = Vec2{X: -2, Y: -2}

// MapToNDC converts a device point to normalized device coordinates in
// [-1, 1] with Y up. When viewport is non-nil the point is mapped relative
// to that sub-rectangle of the canvas (split-screen); otherwise the full
// canvas is the frame.
//
// Unusable input (NaN/±Inf coordinates, zero or negative frame size, a
// result that overflows) never panics; it maps to a finite coordinate
// outside the unit square instead.
func MapToNDC(canvasW, canvasH float64, viewport *Rect, x, y float64) Vec2 {
	frameX, frameY := 0.0, 0.0
	frameW, frameH := canvasW, canvasH
	if viewport != nil {
		frameX, frameY = viewport.X, viewport.Y
		frameW, frameH = viewport.Width, viewport.Height
	}

	if !isFinite(x) || !isFinite(y) ||
		!isFinite(frameX) || !isFinite(frameY) ||
		!(frameW > 0) || !(frameH > 0) || !isFinite(frameW) || !isFinite(frameH) {
		return degenerateNDC
	}

	nx := (x-frameX)/frameW*2 - 1
	ny := -((y-frameY)/frameH*2 - 1)
	if !isFinite(nx) || !isFinite(ny) {
		return degenerateNDC
	}
	return Vec2{X: nx, Y: ny}
}

// MapFromNDC converts a normalized device coordinate back to a device point,
// the inverse of MapToNDC. Degenerate frames map to (-1, -1).
func MapFromNDC(canvasW, canvasH float64, viewport *Rect, ndc Vec2) Vec2 {
	frameX, frameY := 0.0, 0.0
	frameW, frameH := canvasW, canvasH
	if viewport != nil {
		frameX, frameY = viewport.X, viewport.Y
		frameW, frameH = viewport.Width, viewport.Height
	}
	if !(frameW > 0) || !(frameH > 0) || !isFinite(frameW) || !isFinite(frameH) {
		return Vec2{X: -1, Y: -1}
	}
	return Vec2{
		X: frameX + (ndc.X+1)/2*frameW,
		Y: frameY + (-ndc.Y+1)/2*frameH,
	}
}

// insideNDC reports whether a mapped coordinate lies within the unit square
// and is therefore worth casting a ray through.
func insideNDC(ndc Vec2) bool {
	return ndc.X >= -1 && ndc.X <= 1 && ndc.Y >= -1 && ndc.Y <= 1
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
