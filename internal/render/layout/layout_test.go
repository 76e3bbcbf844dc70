package layout

import (
	"image"
	"testing"
)

func TestInset(t *testing.T) {
	tests := []struct {
		name string
		r    image.Rectangle
		pad  int
		want image.Rectangle
	}{
		{"plain", image.Rect(0, 0, 100, 50), 10, image.Rect(10, 10, 90, 40)},
		{"no pad", image.Rect(0, 0, 10, 10), 0, image.Rect(0, 0, 10, 10)},
		{"swapped corners", image.Rect(100, 50, 0, 0), 10, image.Rect(10, 10, 90, 40)},
		{"over inset", image.Rect(0, 0, 10, 30), 8, image.Rect(5, 8, 5, 22)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inset(tt.r, tt.pad); got != tt.want {
				t.Fatalf("Inset = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestSplitsClamp(t *testing.T) {
	r := image.Rect(0, 0, 100, 60)
	left, right := SplitVertical(r, 150)
	if left != r || !right.Empty() {
		t.Fatalf("SplitVertical clamp = %v, %v", left, right)
	}
	left, right = SplitVertical(r, 30)
	if left != image.Rect(0, 0, 30, 60) || right != image.Rect(30, 0, 100, 60) {
		t.Fatalf("SplitVertical = %v, %v", left, right)
	}
	top, bottom := SplitHorizontal(r, 20)
	if top != image.Rect(0, 0, 100, 20) || bottom != image.Rect(0, 20, 100, 60) {
		t.Fatalf("SplitHorizontal = %v, %v", top, bottom)
	}
	top, bottom = SplitHorizontal(r, -5)
	if !top.Empty() || bottom != r {
		t.Fatalf("SplitHorizontal negative = %v, %v", top, bottom)
	}
}

func TestRows(t *testing.T) {
	rows := Rows(image.Rect(0, 10, 50, 40), 4, 10)
	want := []image.Rectangle{
		image.Rect(0, 10, 50, 20),
		image.Rect(0, 20, 50, 30),
		image.Rect(0, 30, 50, 40),
		{},
	}
	for i := range want {
		if rows[i] != want[i] && !(want[i].Empty() && rows[i].Empty()) {
			t.Errorf("row %d = %v; want %v", i, rows[i], want[i])
		}
	}
	if Rows(image.Rect(0, 0, 1, 1), 0, 5) != nil {
		t.Error("zero rows should be nil")
	}
}

func TestCenterInAndFitSquare(t *testing.T) {
	r := image.Rect(0, 0, 100, 40)
	if got, want := CenterIn(r, 20, 10), image.Rect(40, 15, 60, 25); got != want {
		t.Fatalf("CenterIn = %v; want %v", got, want)
	}
	if got := CenterIn(r, 500, 500); got != r {
		t.Fatalf("CenterIn oversize = %v; want %v", got, r)
	}
	if got, want := CenterIn(image.Rect(10, 10, 30, 30), -4, 4), image.Rect(20, 18, 20, 22); got != want {
		t.Fatalf("CenterIn negative width = %v; want %v", got, want)
	}
	if got, want := FitSquare(r), image.Rect(0, 0, 40, 40); got != want {
		t.Fatalf("FitSquare = %v; want %v", got, want)
	}
	if got, want := FitSquare(image.Rect(50, 80, 20, 0)), image.Rect(20, 0, 50, 30); got != want {
		t.Fatalf("FitSquare swapped = %v; want %v", got, want)
	}
}
