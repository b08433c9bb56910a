package core

import "testing"

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", NewRect(5, 5, 10, 10), true},
		{"contained", NewRect(2, 2, 3, 3), true},
		{"touching edge", NewRect(10, 0, 5, 5), false},
		{"separate", NewRect(20, 20, 5, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxOverlaps(t *testing.T) {
	a := NewBox(0, 0, 40, 40)

	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"overlapping", NewBox(30, 30, 40, 40), true},
		{"contained", NewBox(10, 10, 5, 5), true},
		{"touching edge", NewBox(40, 0, 10, 10), false},
		{"separate", NewBox(100, 100, 10, 10), false},
		{"vertical only", NewBox(0, 50, 40, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(10, 20, 30, 40)

	if b.Right() != 40 {
		t.Errorf("Right = %f, want 40", b.Right())
	}
	if b.Bottom() != 60 {
		t.Errorf("Bottom = %f, want 60", b.Bottom())
	}
	if b.CenterX() != 25 {
		t.Errorf("CenterX = %f, want 25", b.CenterX())
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5,0,10) = %d", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1,0,10) = %d", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11,0,10) = %d", got)
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(5.5, 0, 10); got != 5.5 {
		t.Errorf("ClampF(5.5,0,10) = %f", got)
	}
	if got := ClampF(-0.1, 0, 10); got != 0 {
		t.Errorf("ClampF(-0.1,0,10) = %f", got)
	}
	if got := ClampF(10.1, 0, 10); got != 10 {
		t.Errorf("ClampF(10.1,0,10) = %f", got)
	}
}
