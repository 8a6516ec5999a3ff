package dice

import (
	"math/rand"
	"strings"
	"time"

	"github.com/KirkDiggler/dicebits/internal/models"
)

// Roller simulates physical rolls as face characters. It is a stand-in for
// a real die in demos and tests; its output is not physical entropy.
type Roller struct {
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// NewRoller creates a new simulated roller
func NewRoller(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// RollFace returns one face character '1'..'6'
func (r *Roller) RollFace() byte {
	return byte('1' + r.random.Intn(6))
}

// RollOrientation returns the top and side face characters of a die resting
// along an edge. The side is never the top face or its opposite.
func (r *Roller) RollOrientation() (top, side byte) {
	t := 1 + r.random.Intn(6)

	sides := make([]int, 0, 4)
	for s := 1; s <= 6; s++ {
		if s != t && s != 7-t {
			sides = append(sides, s)
		}
	}
	s := sides[r.random.Intn(len(sides))]

	return byte('0' + t), byte('0' + s)
}

// Transcript returns n simulated rolls written the way a person would type
// them: bare faces for single mode, space separated pairs for orientation
// mode.
func (r *Roller) Transcript(mode models.Mode, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if mode == models.ModeOrientation {
			if i > 0 {
				b.WriteByte(' ')
			}
			top, side := r.RollOrientation()
			b.WriteByte(top)
			b.WriteByte(side)
			continue
		}
		b.WriteByte(r.RollFace())
	}
	return b.String()
}
