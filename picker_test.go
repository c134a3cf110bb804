package tripick

import (
	"errors"
	"testing"
)

func newTestPicker(t *testing.T, opts ...PickerOption) *Picker {
	t.Helper()
	m, err := NewChannelMap(0, 1, 2)
	if err != nil {
		t.Fatalf("NewChannelMap() error = %v", err)
	}
	p, err := NewPicker(testTriangle(), m, opts...)
	if err != nil {
		t.Fatalf("NewPicker() error = %v", err)
	}
	return p
}

func TestNewPicker(t *testing.T) {
	p := newTestPicker(t)

	if got, want := p.Weights(), UniformWeights(); got != want {
		t.Errorf("new picker Weights() = %v, want %v", got, want)
	}
	if got := p.Triangle(); got != testTriangle() {
		t.Errorf("Triangle() = %+v, want %+v", got, testTriangle())
	}
	if got := (ChannelMap{Top: 0, Left: 1, Right: 2}); p.ChannelMap() != got {
		t.Errorf("ChannelMap() = %+v, want %+v", p.ChannelMap(), got)
	}
}

func TestNewPicker_Errors(t *testing.T) {
	valid := ChannelMap{Top: 0, Left: 1, Right: 2}

	degenerate := Triangle{Top: Pt(0, 0), Left: Pt(5, 5), Right: Pt(10, 10)}
	if _, err := NewPicker(degenerate, valid); !errors.Is(err, ErrDegenerateTriangle) {
		t.Errorf("NewPicker(degenerate) error = %v, want ErrDegenerateTriangle", err)
	}

	if _, err := NewPicker(testTriangle(), ChannelMap{Top: 0, Left: 0, Right: 1}); !errors.Is(err, ErrChannelMap) {
		t.Errorf("NewPicker(bad map) error = %v, want ErrChannelMap", err)
	}
	if _, err := NewPicker(testTriangle(), ChannelMap{}); !errors.Is(err, ErrChannelMap) {
		t.Errorf("NewPicker(zero map) error = %v, want ErrChannelMap", err)
	}
}

func TestPicker_UpdateFromPoint(t *testing.T) {
	p := newTestPicker(t)
	tri := p.Triangle()

	tests := []struct {
		name   string
		pt     Point
		expect WeightVector
	}{
		{"centroid", tri.Centroid(), UniformWeights()},
		{"top vertex", tri.Top, WeightVector{100, 0, 0}},
		{"left vertex", tri.Left, WeightVector{0, 100, 0}},
		{"right vertex", tri.Right, WeightVector{0, 0, 100}},
		{"base midpoint", Pt(50, 100), WeightVector{0, 50, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.UpdateFromPoint(tt.pt)
			if !ok {
				t.Fatalf("UpdateFromPoint(%v) rejected an inside point", tt.pt)
			}
			if !weightsNear(got, tt.expect, 1e-9) {
				t.Errorf("UpdateFromPoint(%v) = %v, want %v", tt.pt, got, tt.expect)
			}
			if got != p.Weights() {
				t.Errorf("returned %v but Weights() = %v", got, p.Weights())
			}
			if err := got.Validate(); err != nil {
				t.Errorf("UpdateFromPoint(%v) result invalid: %v", tt.pt, err)
			}
		})
	}
}

func TestPicker_UpdateFromPoint_Outside(t *testing.T) {
	p := newTestPicker(t)
	before, ok := p.UpdateFromPoint(Pt(30, 50))
	if !ok {
		t.Fatal("UpdateFromPoint rejected an inside point")
	}

	got, ok := p.UpdateFromPoint(Pt(-40, -40))
	if ok {
		t.Error("UpdateFromPoint accepted a point far outside the triangle")
	}
	if got != (WeightVector{}) {
		t.Errorf("rejected update returned %v, want zero vector", got)
	}
	if p.Weights() != before {
		t.Errorf("rejected update changed state: %v, want %v", p.Weights(), before)
	}
}

// TestPicker_UpdateFromPoint_Tolerance checks that the containment
// tolerance is what admits points just past an edge, and that admitted
// edge points still produce a valid vector.
func TestPicker_UpdateFromPoint_Tolerance(t *testing.T) {
	just := Pt(50, 100.5) // barycentric top weight is -0.005

	strict := newTestPicker(t)
	if _, ok := strict.UpdateFromPoint(just); ok {
		t.Error("default tolerance admitted a point 0.5px past the base edge")
	}

	loose := newTestPicker(t, WithInsideTolerance(0.01))
	got, ok := loose.UpdateFromPoint(just)
	if !ok {
		t.Fatal("widened tolerance rejected the same point")
	}
	if err := got.Validate(); err != nil {
		t.Errorf("edge point produced invalid weights: %v (%v)", err, got)
	}
	if got[0] != 0 {
		t.Errorf("edge point weights = %v, want the negative channel clamped to 0", got)
	}
}

func TestPicker_UpdateFromPoint_ChannelMap(t *testing.T) {
	m, err := NewChannelMap(2, 0, 1)
	if err != nil {
		t.Fatalf("NewChannelMap() error = %v", err)
	}
	p, err := NewPicker(testTriangle(), m)
	if err != nil {
		t.Fatalf("NewPicker() error = %v", err)
	}

	got, ok := p.UpdateFromPoint(p.Triangle().Top)
	if !ok {
		t.Fatal("UpdateFromPoint rejected the top vertex")
	}
	if want := (WeightVector{0, 0, 100}); !weightsNear(got, want, 1e-9) {
		t.Errorf("top vertex under map %+v = %v, want %v", m, got, want)
	}
}

// TestPicker_CenterScenario checks that a point a third of the way up
// the triangle splits the three channels evenly, whatever the channel
// assignment.
func TestPicker_CenterScenario(t *testing.T) {
	m, err := NewChannelMap(2, 0, 1)
	if err != nil {
		t.Fatalf("NewChannelMap() error = %v", err)
	}
	p, err := NewPicker(testTriangle(), m)
	if err != nil {
		t.Fatalf("NewPicker() error = %v", err)
	}

	got, ok := p.UpdateFromPoint(Pt(50, 66.67))
	if !ok {
		t.Fatal("UpdateFromPoint rejected the near-centroid point")
	}
	for ch, w := range got {
		if !almostEqual(w, 100.0/3, 0.1) {
			t.Errorf("channel %d = %v, want about 33.33", ch, w)
		}
	}
}

func TestPicker_UpdateFromEdit(t *testing.T) {
	p := newTestPicker(t)

	got := p.UpdateFromEdit(0, 50)
	if want := (WeightVector{50, 25, 25}); !weightsNear(got, want, 1e-9) {
		t.Errorf("UpdateFromEdit(0, 50) = %v, want %v", got, want)
	}
	if got != p.Weights() {
		t.Errorf("returned %v but Weights() = %v", got, p.Weights())
	}

	// Edits chain off the stored state: the remaining 60 splits across
	// the other two channels in their 50:25 ratio.
	got = p.UpdateFromEdit(1, 40)
	if want := (WeightVector{40, 40, 20}); !weightsNear(got, want, 1e-9) {
		t.Errorf("UpdateFromEdit(1, 40) = %v, want %v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("chained edit result invalid: %v", err)
	}
}

func TestPicker_MarkerPoint(t *testing.T) {
	p := newTestPicker(t)
	tri := p.Triangle()

	if got := p.MarkerPoint(); !pointsNear(got, tri.Centroid(), 1e-9) {
		t.Errorf("initial MarkerPoint() = %v, want centroid %v", got, tri.Centroid())
	}

	inside := Pt(42, 70)
	if _, ok := p.UpdateFromPoint(inside); !ok {
		t.Fatalf("UpdateFromPoint(%v) rejected an inside point", inside)
	}
	if got := p.MarkerPoint(); !pointsNear(got, inside, 1e-9) {
		t.Errorf("MarkerPoint() after pointing at %v = %v", inside, got)
	}

	// The edit rescales the stored {30, 43, 27} to {50, 215/7, 135/7},
	// whose marker sits at x = 310/7.
	p.UpdateFromEdit(0, 50)
	if got, want := p.MarkerPoint(), Pt(310.0/7, 50); !pointsNear(got, want, 1e-9) {
		t.Errorf("MarkerPoint() after edit = %v, want %v", got, want)
	}
}

// TestPicker_MarkerRoundTrip drives the marker back through the pointer
// path and checks the weights survive the loop.
func TestPicker_MarkerRoundTrip(t *testing.T) {
	p := newTestPicker(t)
	p.UpdateFromEdit(0, 62.5)
	p.UpdateFromEdit(2, 10)
	before := p.Weights()

	got, ok := p.UpdateFromPoint(p.MarkerPoint())
	if !ok {
		t.Fatal("UpdateFromPoint rejected the picker's own marker")
	}
	if !weightsNear(got, before, 1e-9) {
		t.Errorf("marker round trip: %v, want %v", got, before)
	}
}

func TestPicker_Confirm(t *testing.T) {
	p := newTestPicker(t)
	p.UpdateFromEdit(0, 50)

	var order []int
	var seen []WeightVector
	p.OnConfirm(func(v WeightVector) { order = append(order, 1); seen = append(seen, v) })
	p.OnConfirm(func(v WeightVector) { order = append(order, 2); seen = append(seen, v) })

	got := p.Confirm()
	if got != p.Weights() {
		t.Errorf("Confirm() = %v, want current weights %v", got, p.Weights())
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("subscriber order = %v, want [1 2]", order)
	}
	for i, v := range seen {
		if v != got {
			t.Errorf("subscriber %d saw %v, want %v", i, v, got)
		}
	}

	// A second confirmation fires the same subscribers again.
	p.Confirm()
	if len(order) != 4 {
		t.Errorf("after two confirms, %d notifications, want 4", len(order))
	}
}

func TestSubscription_Cancel(t *testing.T) {
	p := newTestPicker(t)

	var order []int
	subA := p.OnConfirm(func(WeightVector) { order = append(order, 1) })
	subB := p.OnConfirm(func(WeightVector) { order = append(order, 2) })
	p.OnConfirm(func(WeightVector) { order = append(order, 3) })

	subB.Cancel()
	p.Confirm()
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Fatalf("after cancel, order = %v, want [1 3]", order)
	}

	// Idempotent: a second cancel must not detach anyone else.
	subB.Cancel()
	subA.Cancel()
	subA.Cancel()

	order = order[:0]
	p.Confirm()
	if len(order) != 1 || order[0] != 3 {
		t.Errorf("after more cancels, order = %v, want [3]", order)
	}
}

// TestSubscription_CancelDuringConfirm checks that canceling during
// delivery never skips or repeats anyone: the in-flight confirmation
// reaches every subscriber registered at its start exactly once, and
// the cancellations take effect from the next one.
func TestSubscription_CancelDuringConfirm(t *testing.T) {
	p := newTestPicker(t)

	var counts [3]int
	var subA, subC *Subscription
	subA = p.OnConfirm(func(WeightVector) {
		counts[0]++
		subA.Cancel()
		subC.Cancel()
	})
	p.OnConfirm(func(WeightVector) { counts[1]++ })
	subC = p.OnConfirm(func(WeightVector) { counts[2]++ })

	p.Confirm()
	if want := [3]int{1, 1, 1}; counts != want {
		t.Fatalf("counts after confirm = %v, want %v", counts, want)
	}

	p.Confirm()
	if want := [3]int{1, 2, 1}; counts != want {
		t.Errorf("counts after second confirm = %v, want %v", counts, want)
	}
}
