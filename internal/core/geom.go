// Package core provides fundamental types and utilities for the playroom.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned area on the screen, in cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAround returns a w×h rectangle centred on (cx, cy).
func RectAround(cx, cy, w, h int) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Viewport maps a fixed world (the 1280x720 puzzle table) onto a screen
// area measured in cells.
type Viewport struct {
	WorldW, WorldH float64
	Area           Rect
}

// ToCell converts world coordinates to the nearest cell.
func (v Viewport) ToCell(wx, wy float64) (int, int) {
	cx := v.Area.X + int(wx/v.WorldW*float64(v.Area.W-1)+0.5)
	cy := v.Area.Y + int(wy/v.WorldH*float64(v.Area.H-1)+0.5)
	return cx, cy
}

// ToWorld converts a cell to world coordinates, clamped to the world.
func (v Viewport) ToWorld(cx, cy int) (float64, float64) {
	if v.Area.W < 2 || v.Area.H < 2 {
		return 0, 0
	}
	wx := float64(cx-v.Area.X) / float64(v.Area.W-1) * v.WorldW
	wy := float64(cy-v.Area.Y) / float64(v.Area.H-1) * v.WorldH
	return ClampF(wx, 0, v.WorldW), ClampF(wy, 0, v.WorldH)
}

// ScaleX converts a world width to cells, at least one.
func (v Viewport) ScaleX(w float64) int {
	return Max(1, int(w/v.WorldW*float64(v.Area.W)+0.5))
}

// ScaleY converts a world height to cells, at least one.
func (v Viewport) ScaleY(h float64) int {
	return Max(1, int(h/v.WorldH*float64(v.Area.H)+0.5))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
