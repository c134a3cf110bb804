package tripick

import "slices"

// Picker owns the weight selection of one picker session: the located
// Triangle, the ChannelMap fixed at construction, and the current
// WeightVector. The vector is the single source of truth for the
// selection; both the pointer path and the field-edit path mutate it
// through the methods below, and every view renders from Weights or
// MarkerPoint afterwards.
//
// A Picker is not safe for concurrent use. The presentation layer
// delivers events one at a time, in order; the picker assumes at most
// one mutation in progress.
type Picker struct {
	tri   Triangle
	chans ChannelMap
	tol   float64

	weights WeightVector
	subs    []confirmSub
	nextSub int
}

// confirmSub pairs a confirmation callback with its subscription id.
type confirmSub struct {
	id int
	fn func(WeightVector)
}

// NewPicker builds a picker for the given triangle and channel
// assignment, starting from the uniform split. It returns
// ErrDegenerateTriangle for collinear vertices (Locate can produce those
// from a silhouette too thin to span a triangle) and ErrChannelMap for
// an assignment that is not a bijection.
func NewPicker(tri Triangle, m ChannelMap, opts ...PickerOption) (*Picker, error) {
	if _, err := NewTriangle(tri.Top, tri.Left, tri.Right); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	o := defaultPickerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Picker{
		tri:     tri,
		chans:   m,
		tol:     o.insideTolerance,
		weights: UniformWeights(),
	}, nil
}

// Triangle returns the triangle the picker was built with.
func (p *Picker) Triangle() Triangle {
	return p.tri
}

// ChannelMap returns the channel assignment fixed at construction.
func (p *Picker) ChannelMap() ChannelMap {
	return p.chans
}

// Weights returns the current weight vector. The array value is a
// snapshot; mutating it does not touch the picker.
func (p *Picker) Weights() WeightVector {
	return p.weights
}

// UpdateFromPoint converts pt into channel percentages and stores them.
// A point outside the triangle, beyond the configured tolerance, is
// rejected: ok is false and the state is unchanged. A rejected mousedown
// tells the caller not to begin a drag there.
func (p *Picker) UpdateFromPoint(pt Point) (WeightVector, bool) {
	b := p.tri.Barycentric(pt)
	if !b.Inside(p.tol) {
		return WeightVector{}, false
	}
	p.weights = p.chans.Vector(b)
	return p.weights, true
}

// UpdateFromEdit stores the rebalanced vector after the user set one
// channel to value. It always succeeds; see Rebalance for the
// rebalancing contract.
func (p *Picker) UpdateFromEdit(channel int, value float64) WeightVector {
	p.weights = Rebalance(p.weights, channel, value)
	return p.weights
}

// MarkerPoint returns the position of the current selection inside the
// triangle, for drawing the marker. It is the inverse of
// UpdateFromPoint: the current vector mapped back through the channel
// assignment into the triangle's coordinate space.
func (p *Picker) MarkerPoint() Point {
	return p.tri.PointAt(p.chans.Barycentric(p.weights))
}

// OnConfirm registers fn to receive the weight snapshot of every
// Confirm. Subscribers run in registration order, each at most once per
// confirmation. The returned subscription detaches the callback.
func (p *Picker) OnConfirm(fn func(WeightVector)) *Subscription {
	id := p.nextSub
	p.nextSub++
	p.subs = append(p.subs, confirmSub{id: id, fn: fn})
	return &Subscription{picker: p, id: id}
}

// Confirm snapshots the current weights, hands the snapshot to every
// subscriber and returns it. Delivery covers the subscribers registered
// when Confirm starts: a callback canceled mid-delivery still receives
// this confirmation and is detached from the next. The picker state is
// not changed; a session can confirm more than once.
func (p *Picker) Confirm() WeightVector {
	snap := p.weights
	// Iterate a copy so a callback canceling inside the loop cannot
	// shift entries under the iteration.
	for _, s := range slices.Clone(p.subs) {
		s.fn(snap)
	}
	return snap
}

// Subscription ties a confirmation callback to its picker.
type Subscription struct {
	picker *Picker
	id     int
}

// Cancel detaches the callback so later confirmations no longer reach
// it. Cancel is idempotent.
func (s *Subscription) Cancel() {
	if s.picker == nil {
		return
	}
	subs := s.picker.subs
	for i := range subs {
		if subs[i].id == s.id {
			s.picker.subs = slices.Delete(subs, i, i+1)
			break
		}
	}
	s.picker = nil
}
