package dice

import (
	"testing"

	"github.com/KirkDiggler/dicebits/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleDiscard(t *testing.T) {
	tests := []struct {
		face     byte
		expected Outcome
		ok       bool
	}{
		{'1', Outcome{}, false},
		{'2', Outcome{Value: 0, Entropy: 2}, true},
		{'3', Outcome{Value: 1, Entropy: 2}, true},
		{'4', Outcome{Value: 2, Entropy: 2}, true},
		{'5', Outcome{Value: 3, Entropy: 2}, true},
		{'6', Outcome{}, false},
		{'0', Outcome{}, false},
		{'7', Outcome{}, false},
		{'x', Outcome{}, false},
		{' ', Outcome{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.face), func(t *testing.T) {
			outcome, ok := SingleDiscard(tt.face)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, outcome)
		})
	}
}

func TestSingleGreedy(t *testing.T) {
	tests := []struct {
		face     byte
		expected Outcome
		ok       bool
	}{
		{'1', Outcome{Value: 0, Entropy: 1}, true},
		{'2', Outcome{Value: 0, Entropy: 2}, true},
		{'3', Outcome{Value: 2, Entropy: 2}, true},
		{'4', Outcome{Value: 3, Entropy: 2}, true},
		{'5', Outcome{Value: 1, Entropy: 2}, true},
		{'6', Outcome{Value: 1, Entropy: 1}, true},
		{'0', Outcome{}, false},
		{'9', Outcome{}, false},
		{'a', Outcome{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.face), func(t *testing.T) {
			outcome, ok := SingleGreedy(tt.face)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, outcome)
		})
	}
}

func TestOrientationDiscard(t *testing.T) {
	tests := []struct {
		name     string
		top      byte
		side     byte
		expected Outcome
		ok       bool
	}{
		{"four over two", '4', '2', Outcome{Value: 9, Entropy: 4}, true},
		{"two over one", '2', '1', Outcome{Value: 0, Entropy: 4}, true},
		{"five over six", '5', '6', Outcome{Value: 15, Entropy: 4}, true},
		{"side matches top", '3', '3', Outcome{}, false},
		{"side is bottom", '3', '4', Outcome{}, false},
		{"one on top", '1', '2', Outcome{}, false},
		{"six on top", '6', '2', Outcome{}, false},
		{"bad side", '3', '9', Outcome{}, false},
		{"bad top", 'x', '2', Outcome{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, ok := OrientationDiscard(tt.top, tt.side)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, outcome)
		})
	}
}

func TestOrientationDiscardRejectsOneOnTopForAnySide(t *testing.T) {
	for side := byte('0'); side <= '9'; side++ {
		_, ok := OrientationDiscard('1', side)
		assert.False(t, ok, "side %c", side)
	}
}

func TestOrientationDiscardCoversSixteenValues(t *testing.T) {
	seen := make(map[uint64]bool)
	accepted := 0
	for top := byte('1'); top <= '6'; top++ {
		for side := byte('1'); side <= '6'; side++ {
			outcome, ok := OrientationDiscard(top, side)
			if !ok {
				continue
			}
			accepted++
			require.Equal(t, uint(4), outcome.Entropy)
			require.Less(t, outcome.Value, uint64(16))
			seen[outcome.Value] = true
		}
	}
	assert.Equal(t, 16, accepted)
	assert.Len(t, seen, 16)
}

func TestOrientationGreedy(t *testing.T) {
	tests := []struct {
		name     string
		top      byte
		side     byte
		expected Outcome
		ok       bool
	}{
		{"six over two", '6', '2', Outcome{Value: 4, Entropy: 3}, true},
		{"six over five", '6', '5', Outcome{Value: 7, Entropy: 3}, true},
		{"one over two", '1', '2', Outcome{Value: 0, Entropy: 3}, true},
		{"one over five", '1', '5', Outcome{Value: 3, Entropy: 3}, true},
		{"four over two", '4', '2', Outcome{Value: 9, Entropy: 4}, true},
		{"side is bottom", '6', '1', Outcome{}, false},
		{"side matches top", '1', '1', Outcome{}, false},
		{"bad top", '7', '2', Outcome{}, false},
		{"bad side", '2', '0', Outcome{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, ok := OrientationGreedy(tt.top, tt.side)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, outcome)
		})
	}
}

func TestOrientationGreedyCoversEveryOrientation(t *testing.T) {
	three, four := make(map[uint64]bool), make(map[uint64]bool)
	for top := byte('1'); top <= '6'; top++ {
		for side := byte('1'); side <= '6'; side++ {
			outcome, ok := OrientationGreedy(top, side)
			if !ok {
				continue
			}
			switch outcome.Entropy {
			case 3:
				three[outcome.Value] = true
			case 4:
				four[outcome.Value] = true
			default:
				t.Fatalf("unexpected entropy %d", outcome.Entropy)
			}

			// 2..5 on top agrees with the discard policy
			if discard, ok := OrientationDiscard(top, side); ok {
				assert.Equal(t, discard, outcome)
			}
		}
	}
	assert.Len(t, three, 8)
	assert.Len(t, four, 16)
}

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		mode     models.Mode
		policy   models.Policy
		roll     Roll
		expected Outcome
		ok       bool
	}{
		{models.ModeSingle, models.PolicyDiscard, Roll{Top: '3'}, Outcome{Value: 1, Entropy: 2}, true},
		{models.ModeSingle, models.PolicyDiscard, Roll{Top: '6'}, Outcome{}, false},
		{models.ModeSingle, models.PolicyGreedy, Roll{Top: '6'}, Outcome{Value: 1, Entropy: 1}, true},
		{models.ModeOrientation, models.PolicyDiscard, Roll{Top: '4', Side: '2'}, Outcome{Value: 9, Entropy: 4}, true},
		{models.ModeOrientation, models.PolicyDiscard, Roll{Top: '6', Side: '2'}, Outcome{}, false},
		{models.ModeOrientation, models.PolicyGreedy, Roll{Top: '6', Side: '2'}, Outcome{Value: 4, Entropy: 3}, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+string(tt.policy), func(t *testing.T) {
			extractor, err := NewExtractor(tt.mode, tt.policy)
			require.NoError(t, err)

			outcome, ok := extractor.Extract(tt.roll)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, outcome)
		})
	}
}

func TestNewExtractorRejectsUnknown(t *testing.T) {
	_, err := NewExtractor("triple", models.PolicyDiscard)
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = NewExtractor(models.ModeSingle, "lazy")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
