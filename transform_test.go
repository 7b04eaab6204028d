package lmx

import "testing"

// row8 builds a 1-high, 8-wide buffer with a single white pixel at x.
func row8(x int) []Pixel {
	buf := NewBuffer(8, 1)
	buf[x] = Pixel{255, 255, 255}
	return buf
}

func TestScrollNoWrap(t *testing.T) {
	// A single white pixel scrolling right must walk off the edge and
	// never wrap back to x=0.
	base := row8(0)
	params := ScrollParams{Direction: DirRight, Offset: 1}

	tests := []struct {
		step  int
		wantX int // -1 means the row must be entirely black
	}{
		{0, 0},
		{1, 1},
		{7, 7},
		{8, -1},
		{100, -1},
	}
	for _, tt := range tests {
		got := applyAction(base, params, tt.step, 8, 1)
		for x := 0; x < 8; x++ {
			want := Black
			if x == tt.wantX {
				want = Pixel{255, 255, 255}
			}
			if got[x] != want {
				t.Errorf("step %d: pixel at x=%d is %v, want %v", tt.step, x, got[x], want)
			}
		}
	}
	// The source buffer must never be modified.
	if base[0] != (Pixel{255, 255, 255}) {
		t.Error("scroll mutated its input buffer")
	}
}

func TestScrollDirections(t *testing.T) {
	// 3x3 with a white pixel in the center.
	mid := Pixel{255, 255, 255}
	base := NewBuffer(3, 3)
	base[Index(1, 1, 3)] = mid

	tests := []struct {
		name   string
		dir    Direction
		wantX  int
		wantY  int
	}{
		{"right", DirRight, 2, 1},
		{"left", DirLeft, 0, 1},
		{"down", DirDown, 1, 2},
		{"up", DirUp, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyAction(base, ScrollParams{Direction: tt.dir, Offset: 1}, 1, 3, 3)
			if got[Index(tt.wantX, tt.wantY, 3)] != mid {
				t.Errorf("white pixel not at (%d,%d) after scroll %v", tt.wantX, tt.wantY, tt.dir)
			}
			if got[Index(1, 1, 3)] == mid {
				t.Error("vacated center position still white")
			}
		})
	}
}

func TestScrollOffsetClamp(t *testing.T) {
	// Offsets below one behave as one pixel per step.
	base := row8(0)
	got := applyAction(base, ScrollParams{Direction: DirRight, Offset: 0}, 2, 8, 1)
	if got[2] != (Pixel{255, 255, 255}) {
		t.Error("offset 0 did not clamp to 1 pixel per step")
	}
}

func TestRotateQuarterTurns(t *testing.T) {
	// 2x2 marker layout:
	//   A B        C A
	//   C D  -CW-> D B
	a, b, c, d := Pixel{R: 1}, Pixel{R: 2}, Pixel{R: 3}, Pixel{R: 4}
	base := []Pixel{a, b, c, d}

	tests := []struct {
		name string
		mode RotateMode
		step int
		want []Pixel
	}{
		{"cw step 0 is identity", RotateClockwise, 0, []Pixel{a, b, c, d}},
		{"cw step 1", RotateClockwise, 1, []Pixel{c, a, d, b}},
		{"cw step 2", RotateClockwise, 2, []Pixel{d, c, b, a}},
		{"cw step 3", RotateClockwise, 3, []Pixel{b, d, a, c}},
		{"cw step 4 cycles back", RotateClockwise, 4, []Pixel{a, b, c, d}},
		{"ccw step 1", RotateCounterClockwise, 1, []Pixel{b, d, a, c}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyAction(base, RotateParams{Mode: tt.mode}, tt.step, 2, 2)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("pixel %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRotateNonSquare(t *testing.T) {
	// On non-square matrices the legacy tool flattens the rotated
	// coordinate against the original width, so destinations past the
	// right edge alias into later rows and only writes past the end of
	// the buffer disappear. Buffers hold R = index+1 so every pixel is
	// traceable.
	numbered := func(n int) []Pixel {
		buf := make([]Pixel, n)
		for i := range buf {
			buf[i] = Pixel{R: uint8(i + 1)}
		}
		return buf
	}

	tests := []struct {
		name          string
		mode          RotateMode
		width, height int
		wantR         []uint8
	}{
		// 2x4 tall, cw: dst = x*2 + (3-y). Rows 0 and 1 land at
		// aliased columns 3 and 2; nothing exceeds the buffer.
		{"tall cw", RotateClockwise, 2, 4, []uint8{7, 5, 8, 6, 4, 2, 0, 0}},
		// 2x4 tall, ccw: dst = (1-x)*2 + y.
		{"tall ccw", RotateCounterClockwise, 2, 4, []uint8{2, 4, 6, 8, 5, 7, 0, 0}},
		// 4x2 wide, cw: dst = x*4 + (1-y). Columns 2 and 3 map past
		// the end of the buffer and are dropped.
		{"wide cw", RotateClockwise, 4, 2, []uint8{5, 1, 0, 0, 6, 2, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := numbered(tt.width * tt.height)
			got := applyAction(base, RotateParams{Mode: tt.mode}, 1, tt.width, tt.height)
			for i, want := range tt.wantR {
				if got[i].R != want {
					t.Errorf("pixel %d R = %d, want %d", i, got[i].R, want)
				}
			}
		})
	}
}

func TestMirror(t *testing.T) {
	// 2x2: A B / C D
	a, b, c, d := Pixel{R: 1}, Pixel{R: 2}, Pixel{R: 3}, Pixel{R: 4}
	base := []Pixel{a, b, c, d}

	gotH := applyAction(base, MirrorParams{Axis: AxisHorizontal}, 5, 2, 2)
	wantH := []Pixel{b, a, d, c}
	for i := range wantH {
		if gotH[i] != wantH[i] {
			t.Errorf("horizontal mirror pixel %d = %v, want %v", i, gotH[i], wantH[i])
		}
	}

	gotV := applyAction(base, MirrorParams{Axis: AxisVertical}, 5, 2, 2)
	wantV := []Pixel{c, d, a, b}
	for i := range wantV {
		if gotV[i] != wantV[i] {
			t.Errorf("vertical mirror pixel %d = %v, want %v", i, gotV[i], wantV[i])
		}
	}
}

func TestBounceAlternates(t *testing.T) {
	a, b := Pixel{R: 1}, Pixel{R: 2}
	base := []Pixel{a, b}
	params := BounceParams{Axis: AxisHorizontal}

	for _, step := range []int{0, 2, 4} {
		got := applyAction(base, params, step, 2, 1)
		if got[0] != a || got[1] != b {
			t.Errorf("even step %d flipped the buffer", step)
		}
	}
	for _, step := range []int{1, 3, 9} {
		got := applyAction(base, params, step, 2, 1)
		if got[0] != b || got[1] != a {
			t.Errorf("odd step %d did not flip the buffer", step)
		}
	}
}

func TestInvert(t *testing.T) {
	base := []Pixel{{0, 128, 255}}
	got := applyAction(base, InvertParams{}, 0, 1, 1)
	want := Pixel{255, 127, 0}
	if got[0] != want {
		t.Errorf("invert = %v, want %v", got[0], want)
	}
}

func TestWipeLeftToRight(t *testing.T) {
	// 4-wide all-white row, boundary at 2: full brightness before the
	// boundary, linear fade after it over the remaining span.
	base := []Pixel{{200, 200, 200}, {200, 200, 200}, {200, 200, 200}, {200, 200, 200}}
	got := applyAction(base, WipeParams{Mode: WipeLeftToRight, Offset: 2}, 1, 4, 1)

	// span = 4-2 = 2: x=0,1 full; x=2 fade 1.0; x=3 fade 0.5 truncated.
	want := []Pixel{{200, 200, 200}, {200, 200, 200}, {200, 200, 200}, {100, 100, 100}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("x=%d: %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWipeRightToLeft(t *testing.T) {
	base := []Pixel{{200, 200, 200}, {200, 200, 200}, {200, 200, 200}, {200, 200, 200}}
	got := applyAction(base, WipeParams{Mode: WipeRightToLeft, Offset: 2}, 1, 4, 1)

	// Mirror image of the left-to-right case.
	want := []Pixel{{100, 100, 100}, {200, 200, 200}, {200, 200, 200}, {200, 200, 200}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("x=%d: %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWipeVertical(t *testing.T) {
	// 1x4 column, top to bottom with boundary at 2.
	base := []Pixel{{200, 0, 0}, {200, 0, 0}, {200, 0, 0}, {200, 0, 0}}
	got := applyAction(base, WipeParams{Mode: WipeTopToBottom, Offset: 1}, 2, 1, 4)
	want := []Pixel{{200, 0, 0}, {200, 0, 0}, {200, 0, 0}, {100, 0, 0}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("y=%d: %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWipePastEnd(t *testing.T) {
	// Once the boundary travels past the matrix the buffer is untouched.
	base := []Pixel{{10, 20, 30}, {40, 50, 60}}
	got := applyAction(base, WipeParams{Mode: WipeLeftToRight, Offset: 1}, 10, 2, 1)
	for i := range base {
		if got[i] != base[i] {
			t.Errorf("x=%d changed after boundary passed: %v, want %v", i, got[i], base[i])
		}
	}
}

func TestReveal(t *testing.T) {
	white := Pixel{255, 255, 255}
	base := []Pixel{white, white, white, white}

	tests := []struct {
		name string
		edge Edge
		pos  int
		want []Pixel
	}{
		{"left band of 2", EdgeLeft, 2, []Pixel{white, white, Black, Black}},
		{"right band of 1", EdgeRight, 1, []Pixel{Black, Black, Black, white}},
		{"band covers all", EdgeLeft, 9, []Pixel{white, white, white, white}},
		{"zero band hides all", EdgeLeft, 0, []Pixel{Black, Black, Black, Black}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := revealPixels(base, 4, 1, tt.edge, tt.pos)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("x=%d: %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRevealVerticalEdges(t *testing.T) {
	white := Pixel{255, 255, 255}
	base := []Pixel{white, white, white}

	gotTop := revealPixels(base, 1, 3, EdgeTop, 1)
	if gotTop[0] != white || gotTop[1] != Black || gotTop[2] != Black {
		t.Errorf("top reveal = %v", gotTop)
	}
	gotBottom := revealPixels(base, 1, 3, EdgeBottom, 2)
	if gotBottom[0] != Black || gotBottom[1] != white || gotBottom[2] != white {
		t.Errorf("bottom reveal = %v", gotBottom)
	}
}

func TestApplyOpacityTruncates(t *testing.T) {
	tests := []struct {
		name    string
		in      Pixel
		opacity float64
		want    Pixel
	}{
		{"half red", Pixel{255, 0, 0}, 0.5, Pixel{127, 0, 0}},
		{"full passes through", Pixel{12, 34, 56}, 1.0, Pixel{12, 34, 56}},
		{"zero blacks out", Pixel{255, 255, 255}, 0.0, Black},
		{"dim to black disappears", Pixel{1, 1, 1}, 0.5, Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyOpacity([]Pixel{tt.in}, tt.opacity)
			if got[0] != tt.want {
				t.Errorf("applyOpacity(%v, %v) = %v, want %v", tt.in, tt.opacity, got[0], tt.want)
			}
		})
	}
}
