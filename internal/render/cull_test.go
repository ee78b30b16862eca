package render

import "testing"

func TestIsVisible_MarginBoundary(t *testing.T) {
	cam := Camera{X: 0, Y: 0, Width: 800, Height: 600}
	cases := []struct {
		name string
		x, y float64
		r    float64
		want bool
	}{
		{"centre", 400, 300, 10, true},
		{"left edge of margin", -60, 300, 10, true},
		{"just past left margin", -61, 300, 10, false},
		{"right edge of margin", 860, 300, 10, true},
		{"just past right margin", 861, 300, 10, false},
		{"top edge of margin", 400, -60, 10, true},
		{"just past bottom margin", 400, 661, 10, false},
		{"big radius reaches in", -200, 300, 150, true},
		{"negative radius is zero", -50, 300, -5, true},
		{"negative radius past margin", -51, 300, -5, false},
	}
	for _, tc := range cases {
		if got := IsVisible(tc.x, tc.y, tc.r, cam); got != tc.want {
			t.Fatalf("%s: IsVisible(%.0f,%.0f,%.0f) = %v, want %v", tc.name, tc.x, tc.y, tc.r, got, tc.want)
		}
	}
}

func TestIsVisible_OffsetCamera(t *testing.T) {
	cam := Camera{X: 1000, Y: 2000, Width: 640, Height: 480}
	if !IsVisible(1320, 2240, 5, cam) {
		t.Fatal("camera centre should be visible")
	}
	if cam.CenterX() != 1320 || cam.CenterY() != 2240 {
		t.Fatalf("centre = (%.0f,%.0f), want (1320,2240)", cam.CenterX(), cam.CenterY())
	}
	if IsVisible(100, 100, 5, cam) {
		t.Fatal("origin should be culled by an offset camera")
	}
}
