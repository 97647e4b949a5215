package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(20, 10, 6, 3)
	if r.X != 17 || r.Y != 9 || r.W != 6 || r.H != 3 {
		t.Errorf("RectAround() = %+v", r)
	}
	if cx, cy := r.Center(); cx != 20 || cy != 10 {
		t.Errorf("Center() = (%d, %d), expected (20, 10)", cx, cy)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{WorldW: 1280, WorldH: 720, Area: NewRect(0, 2, 129, 37)}

	tests := []struct {
		wx, wy float64
		cx, cy int
	}{
		{0, 0, 0, 2},
		{1280, 720, 128, 38},
		{640, 360, 64, 20},
		{500, 300, 50, 17},
	}

	for _, tc := range tests {
		cx, cy := v.ToCell(tc.wx, tc.wy)
		if cx != tc.cx || cy != tc.cy {
			t.Errorf("ToCell(%v, %v) = (%d, %d), expected (%d, %d)", tc.wx, tc.wy, cx, cy, tc.cx, tc.cy)
		}
		wx, wy := v.ToWorld(cx, cy)
		if d := wx - tc.wx; d > 10 || d < -10 {
			t.Errorf("ToWorld(%d, %d) x = %v, expected near %v", cx, cy, wx, tc.wx)
		}
		if d := wy - tc.wy; d > 20 || d < -20 {
			t.Errorf("ToWorld(%d, %d) y = %v, expected near %v", cx, cy, wy, tc.wy)
		}
	}

	// Cells outside the area clamp to the world edge
	if wx, wy := v.ToWorld(-5, 100); wx != 0 || wy != 720 {
		t.Errorf("ToWorld outside = (%v, %v), expected (0, 720)", wx, wy)
	}
}

func TestViewportScale(t *testing.T) {
	v := Viewport{WorldW: 1280, WorldH: 720, Area: NewRect(0, 0, 128, 36)}
	if w := v.ScaleX(180); w != 18 {
		t.Errorf("ScaleX(180) = %d, expected 18", w)
	}
	if h := v.ScaleY(1); h != 1 {
		t.Errorf("ScaleY(1) = %d, expected at least 1", h)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestColorRGB(t *testing.T) {
	c := RGB(0xFF69B4)
	if !c.IsRGB() || c.Hex() != "#ff69b4" {
		t.Errorf("RGB(0xFF69B4) = %v (%q)", c, c.Hex())
	}
	if ColorRed.IsRGB() || ColorRed.Hex() != "" {
		t.Error("palette colours are not RGB")
	}
	if RGB(0).IsRGB() == false || RGB(0) == ColorDefault {
		t.Error("RGB black must differ from the default colour")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionCheck)
	f.Point(PointerPress, 3, 4)

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionCheck) || len(f.Pointer) != 0 {
		t.Error("Clear should drop actions and pointer events")
	}
	if !clone.Has(ActionCheck) || len(clone.Pointer) != 1 || clone.Pointer[0].X != 3 {
		t.Errorf("Clone should be independent, got %+v", clone)
	}
	if ActionCheck.String() != "Check" {
		t.Errorf("String() = %q", ActionCheck.String())
	}
}
