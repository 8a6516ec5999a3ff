package dice

import (
	"github.com/KirkDiggler/dicebits/internal/models"
)

// rejected is the zero outcome returned alongside ok == false
var rejected = Outcome{}

// greedyCodes is the variable-length code used by SingleGreedy, indexed by
// face value. Faces 1 and 6 carry one bit, faces 2..5 carry two.
var greedyCodes = [7]Outcome{
	1: {Value: 0, Entropy: 1},
	2: {Value: 0, Entropy: 2},
	3: {Value: 2, Entropy: 2},
	4: {Value: 3, Entropy: 2},
	5: {Value: 1, Entropy: 2},
	6: {Value: 1, Entropy: 1},
}

// SingleDiscard converts one face character into two unbiased bits.
//
// Faces 1 and 6 are rejected to reduce the sample space to a power of two;
// faces 2..5 map to 0..3.
func SingleDiscard(top byte) (Outcome, bool) {
	t := face(top)
	if t < 2 || t > 5 {
		return rejected, false
	}
	return Outcome{Value: uint64(t - 2), Entropy: 2}, true
}

// SingleGreedy converts one face character using a fixed code that wastes
// no roll:
//
//	Roll  Bits  Entropy
//	   1     0        1
//	   2    00        2
//	   3    10        2
//	   4    11        2
//	   5    01        2
//	   6     1        1
//
// The code is not prefix free, so individual rolls cannot be recovered from
// the concatenated output.
func SingleGreedy(top byte) (Outcome, bool) {
	t := face(top)
	if t < 1 {
		return rejected, false
	}
	return greedyCodes[t], true
}

// OrientationDiscard converts the top and side faces of a die resting along
// one edge of a box into four unbiased bits.
//
// Of the 24 orientations, the 8 with the 1 or 6 on top are rejected, leaving
// 16. The side face is ranked among the four faces that can appear beside
// the top one.
func OrientationDiscard(top, side byte) (Outcome, bool) {
	t := face(top)
	if t < 2 || t > 5 {
		return rejected, false
	}

	s, ok := sideCode(t, face(side))
	if !ok {
		return rejected, false
	}

	return Outcome{Value: uint64(4*(t-2) + s), Entropy: 4}, true
}

// OrientationGreedy is OrientationDiscard that also accepts the 1 or 6 on
// top, yielding three bits for those rolls and four otherwise.
func OrientationGreedy(top, side byte) (Outcome, bool) {
	t := face(top)
	if t < 1 {
		return rejected, false
	}

	s, ok := sideCode(t, face(side))
	if !ok {
		return rejected, false
	}

	if t >= 2 && t <= 5 {
		return Outcome{Value: uint64(4*(t-2) + s), Entropy: 4}, true
	}

	topBit := 0
	if t == 6 {
		topBit = 1
	}
	return Outcome{Value: uint64(4*topBit + s), Entropy: 3}, true
}

// face returns the die value of an ASCII face character, or 0 if c is not
// one of '1'..'6'.
func face(c byte) int {
	if c < '1' || c > '6' {
		return 0
	}
	return int(c - '0')
}

// sideCode ranks side into 0..3 after removing top and its opposite face.
func sideCode(top, side int) (int, bool) {
	bottom := 7 - top
	if side < 1 || side == top || side == bottom {
		return 0, false
	}

	code := side - 1
	if side > top {
		code--
	}
	if side > bottom {
		code--
	}
	return code, true
}

// Extractor maps a roll to an outcome
type Extractor interface {
	Extract(roll Roll) (Outcome, bool)
}

// ExtractorFunc adapts a function to the Extractor interface
type ExtractorFunc func(roll Roll) (Outcome, bool)

// Extract calls f(roll)
func (f ExtractorFunc) Extract(roll Roll) (Outcome, bool) {
	return f(roll)
}

// NewExtractor returns the extractor for a mode and policy
func NewExtractor(mode models.Mode, policy models.Policy) (Extractor, error) {
	if !mode.Valid() {
		return nil, ErrUnknownMode
	}
	if !policy.Valid() {
		return nil, ErrUnknownPolicy
	}

	switch {
	case mode == models.ModeSingle && policy == models.PolicyDiscard:
		return ExtractorFunc(func(r Roll) (Outcome, bool) { return SingleDiscard(r.Top) }), nil
	case mode == models.ModeSingle:
		return ExtractorFunc(func(r Roll) (Outcome, bool) { return SingleGreedy(r.Top) }), nil
	case policy == models.PolicyDiscard:
		return ExtractorFunc(func(r Roll) (Outcome, bool) { return OrientationDiscard(r.Top, r.Side) }), nil
	default:
		return ExtractorFunc(func(r Roll) (Outcome, bool) { return OrientationGreedy(r.Top, r.Side) }), nil
	}
}
