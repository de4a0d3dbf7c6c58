package coord

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const epsilon = 1e-9

func assertNear(t *testing.T, gotX, gotY, wantX, wantY float64) {
	t.Helper()
	if d := math.Hypot(gotX-wantX, gotY-wantY); d > epsilon {
		t.Fatalf("got (%g, %g), expected (%g, %g)", gotX, gotY, wantX, wantY)
	}
}

func TestFrameBasic(t *testing.T) {
	x, y := World.Transform(3, 4)
	assertNear(t, x, y, 3, 4)

	f := NewFrame(1, 2, 90, World)
	x, y = f.Transform(3, 4)
	assertNear(t, x, y, 1-4, 2+3)

	f = NewFrame(5, 0, 180, World)
	x, y = f.Transform(1, 0)
	assertNear(t, x, y, 4, 0)
}

func TestFrameParentChain(t *testing.T) {
	root := NewFrame(10, 0, 90, World)
	child := NewFrame(2, 0, 0, root)
	assertNear(t, child.X, child.Y, 10, 2)
	if got := child.Heading(); math.Abs(got-90) > epsilon {
		t.Fatalf("heading = %g, want 90", got)
	}

	grandchild := NewFrame(0, 1, -45, child)
	assertNear(t, grandchild.X, grandchild.Y, 9, 2)
	if got := grandchild.Heading(); math.Abs(got-45) > epsilon {
		t.Fatalf("heading = %g, want 45", got)
	}
}

func TestFrameAssociativity(t *testing.T) {
	frames := []Frame{
		{X: 1, Y: 2, Yaw: Radians(30)},
		{X: -3, Y: 0.5, Yaw: Radians(-120)},
		{X: 0.25, Y: 7, Yaw: Radians(10)},
		{X: 4, Y: -4, Yaw: Radians(270)},
	}

	left := World
	for _, f := range frames {
		left = left.Then(f)
	}
	right := frames[len(frames)-1]
	for i := len(frames) - 2; i >= 0; i-- {
		right = frames[i].Then(right)
	}
	mixed := frames[0].Then(frames[1]).Then(frames[2].Then(frames[3]))

	opt := cmpopts.EquateApprox(0, epsilon)
	for _, tt := range []struct {
		name string
		f    Frame
	}{{"right-grouped", right}, {"mixed", mixed}} {
		t.Run(tt.name, func(t *testing.T) {
			if d := cmp.Diff(left, tt.f, opt); d != "" {
				t.Error(d)
			}
			lx, ly := left.Transform(1.5, -2)
			gx, gy := tt.f.Transform(1.5, -2)
			assertNear(t, gx, gy, lx, ly)
		})
	}
}

func TestFrameAffineMatchesTransform(t *testing.T) {
	f := NewFrame(2, -1, 37, NewFrame(-4, 3, 12, World))
	a := f.Affine()
	for _, p := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {3.5, -2.25}} {
		wx, wy := f.Transform(p[0], p[1])
		ax := a[0]*p[0] + a[2]*p[1] + a[4]
		ay := a[1]*p[0] + a[3]*p[1] + a[5]
		assertNear(t, ax, ay, wx, wy)
	}
}

func TestPolygon(t *testing.T) {
	f := NewFrame(1, 1, 90, World)
	p := Path(f, [2]float64{0, 0}, [2]float64{2, 0})
	if len(p) != 2 {
		t.Fatalf("len = %d", len(p))
	}
	assertNear(t, p[1].X, p[1].Y, 1, 3)
	if p[1].LX != 2 || p[1].LY != 0 {
		t.Fatalf("local coordinates not kept: %v", p[1])
	}

	r := p.Reversed()
	if r[0] != p[1] || r[1] != p[0] {
		t.Fatalf("Reversed = %v", r)
	}
	if !p.Finite() {
		t.Fatal("expected finite polygon")
	}
	if Path(f, [2]float64{math.NaN(), 0}).Finite() {
		t.Fatal("expected non-finite polygon")
	}
}
