// Package puzzle provides the level-progression state machine and the types
// shared by the matching and ordering boards.
// It contains no rendering code; presentation layers drive it with method
// calls and observe it through a Listener.
package puzzle

import (
	"fmt"
	"math"
)

const (
	// SnapDistance is the radius within which a matching drop is accepted.
	SnapDistance = 100.0

	// SlotSnapDistance is the wider radius used for ordering slots,
	// which are larger drop zones than matching targets.
	SlotSnapDistance = SnapDistance + 50

	// MaxLevel is the number of levels in each built-in catalog.
	MaxLevel = 20
)

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// String formats the point as (x, y).
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Within reports whether b lies within radius of a.
// The comparison is inclusive: a distance equal to radius counts.
func Within(a, b Point, radius float64) bool {
	return Distance(a, b) <= radius
}
