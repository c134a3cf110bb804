package tripick

import (
	"errors"
	"fmt"
	"math"
)

// ErrChannelMap is returned when a role-to-channel assignment is not a
// bijection over the channel indices 0, 1 and 2.
var ErrChannelMap = errors.New("tripick: channel map is not a bijection over channels 0..2")

const (
	// weightSum is the total every published WeightVector holds.
	weightSum = 100.0

	// weightSumTolerance is the acceptable deviation from weightSum.
	weightSumTolerance = 1e-3

	// normalizeEpsilon stands in for the sum when normalizing an
	// effectively all-zero vector, keeping the result defined instead of
	// dividing by zero.
	normalizeEpsilon = 1e-9
)

// WeightVector holds the three channel percentages. A valid vector has
// non-negative channels summing to 100 within tolerance, and every
// operation in this package publishes only valid vectors. The array value
// makes snapshots free: assignment copies.
type WeightVector [3]float64

// UniformWeights returns the even split every session starts from.
func UniformWeights() WeightVector {
	return WeightVector{weightSum / 3, weightSum / 3, weightSum / 3}
}

// Sum returns the total of the three channels.
func (v WeightVector) Sum() float64 {
	return v[0] + v[1] + v[2]
}

// Normalized rescales the vector so its channels sum to 100. A sum at or
// below a tiny epsilon is treated as the epsilon, so an all-zero input
// yields a defined (if arbitrary) result rather than NaN.
func (v WeightVector) Normalized() WeightVector {
	sum := v.Sum()
	if sum <= normalizeEpsilon {
		sum = normalizeEpsilon
	}
	k := weightSum / sum
	return WeightVector{v[0] * k, v[1] * k, v[2] * k}
}

// Validate checks that the channels sum to 100 within tolerance and that
// none are negative.
func (v WeightVector) Validate() error {
	if math.Abs(v.Sum()-weightSum) > weightSumTolerance {
		return fmt.Errorf("tripick: weights sum to %.4f, must sum to 100", v.Sum())
	}
	for _, c := range v {
		if c < 0 {
			return fmt.Errorf("tripick: negative weight: %f", c)
		}
	}
	return nil
}

// clampPercent restricts a value to the [0, 100] percentage range.
func clampPercent(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > weightSum {
		return weightSum
	}
	return x
}

// ChannelMap assigns the triangle's three roles to the caller's three
// channel indices. The assignment is a bijection over 0..2, fixed at
// picker construction and never mutated afterwards.
type ChannelMap struct {
	Top, Left, Right int
}

// NewChannelMap builds a role-to-channel assignment. Each of top, left
// and right must be a distinct channel index in 0..2.
func NewChannelMap(top, left, right int) (ChannelMap, error) {
	m := ChannelMap{Top: top, Left: left, Right: right}
	if err := m.Validate(); err != nil {
		return ChannelMap{}, err
	}
	return m, nil
}

// Validate checks that the assignment is a bijection over the channel
// indices 0..2. The zero ChannelMap is invalid; use NewChannelMap or
// assign all three roles explicitly.
func (m ChannelMap) Validate() error {
	var seen [3]bool
	for _, ch := range [3]int{m.Top, m.Left, m.Right} {
		if ch < 0 || ch > 2 || seen[ch] {
			return ErrChannelMap
		}
		seen[ch] = true
	}
	return nil
}

// Vector relabels barycentric weights into channel percentages. Tiny
// negative weights, as produced by edge points admitted through the
// containment tolerance, are clamped to zero before normalizing, so the
// result is always a valid vector.
func (m ChannelMap) Vector(b Barycentric) WeightVector {
	var v WeightVector
	v[m.Top] = math.Max(b.Top, 0)
	v[m.Left] = math.Max(b.Left, 0)
	v[m.Right] = math.Max(b.Right, 0)
	return v.Normalized()
}

// Barycentric relabels channel percentages back into barycentric weights.
// The result sums to exactly 1.
func (m ChannelMap) Barycentric(v WeightVector) Barycentric {
	n := v.Normalized()
	top := n[m.Top] / weightSum
	left := n[m.Left] / weightSum
	return Barycentric{Top: top, Left: left, Right: 1 - top - left}
}

// Rebalance returns v with the focus channel set to value, clamped to
// [0, 100], and the other two channels scaled to absorb the difference
// while keeping their mutual ratio. When both non-focus channels are
// zero, the remainder is split evenly between them. The focus channel of
// the result equals the clamped value exactly; any floating-point residue
// is pushed into the other two channels, so the result always sums to 100
// within tolerance.
//
// Rebalance is total and idempotent: an out-of-range focus index returns
// the normalized vector unchanged, and applying the same edit to its own
// result changes nothing further.
func Rebalance(v WeightVector, focus int, value float64) WeightVector {
	// Normalize first so drift from earlier operations cannot leak in.
	v = v.Normalized()
	if focus < 0 || focus > 2 {
		return v
	}
	value = clampPercent(value)

	a, b := otherChannels(focus)
	rem := v[a] + v[b]
	if rem > 0 {
		k := (weightSum - value) / rem
		v[a] *= k
		v[b] *= k
	} else {
		v[a] = (weightSum - value) / 2
		v[b] = (weightSum - value) / 2
	}
	v[focus] = value

	// Absorb floating-point residue in the non-focus channels only; the
	// edited channel keeps exactly the value that was asked for.
	if diff := weightSum - v.Sum(); math.Abs(diff) > weightSumTolerance {
		rest := v[a] + v[b]
		if rest > 0 {
			v[a] += diff * v[a] / rest
			v[b] += diff * v[b] / rest
		} else {
			v[a] += diff / 2
			v[b] += diff / 2
		}
	}
	return v
}

// otherChannels returns the two channel indices that are not focus.
func otherChannels(focus int) (int, int) {
	switch focus {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}
