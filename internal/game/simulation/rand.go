package simulation

import (
	"time"

	"github.com/MichaelTJones/pcg"
)

const PCG_SEQUENCE = 0xda3e39cb94b95bdb

// Rand is the simulation's seedable random source. It is not safe for
// concurrent use; the Simulation serializes access under its mutex.
type Rand struct {
	r *pcg.PCG32
}

// NewRand returns a source seeded with seed, or with the clock when seed is 0.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := &Rand{r: pcg.NewPCG32()}
	r.Seed(seed)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), PCG_SEQUENCE)
}

func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.r.Random()) / (1 << 32)
}

func (r *Rand) FloatInRange(minF, maxF float64) float64 {
	return minF + r.Float64()*(maxF-minF)
}
