package mango

// tomRandomMultiplier is the LCG-style multiplier driving TomRandom's
// state recurrence. Chosen to match the reference implementation bit for
// bit; changing it breaks every determinism property in the spec.
const tomRandomMultiplier int64 = 6364136223846793005

// TomRandom is the deterministic PRNG consumed by every transform in the
// registry. Its entire contract is: identical (table, seed) must produce
// an identical byte/int stream on every platform, forever — so the
// 32-bit-wrap arithmetic below is written out explicitly rather than
// delegated to any general-purpose RNG.
type TomRandom struct {
	table *[256]byte
	state int32
}

// NewTomRandom seeds a PRNG against the given 256-byte table (the
// session's currently active CBox or CoinTable permutation) and a 32-bit
// seed, typically a single coin byte widened to int32.
func NewTomRandom(table *[256]byte, seed int32) *TomRandom {
	return &TomRandom{table: table, state: seed}
}

// absNonNeg returns |state| widened to int64 so that state == math.MinInt32
// does not overflow on negation.
func absNonNeg(state int32) int64 {
	if state < 0 {
		return -int64(state)
	}
	return int64(state)
}

// step draws one byte from the table at the index implied by the current
// state, advances the LCG, and returns both the drawn mask and the
// resulting (non-negative) state value used for rejection sampling.
func (r *TomRandom) step() (mask byte, nextState int64) {
	idx := absNonNeg(r.state) % 256
	mask = r.table[idx]
	product := int64(r.state)*tomRandomMultiplier + int64(mask)
	r.state = int32(uint32(product))
	return mask, absNonNeg(r.state)
}

// NextMask returns the mask byte for this step; a mask of 0 would make a
// transform's XOR/add a no-op, so the stream substitutes Next(1, 256)
// instead of ever yielding zero.
func (r *TomRandom) NextMask() byte {
	mask, _ := r.step()
	if mask == 0 {
		return byte(r.NextRange(1, 256))
	}
	return mask
}

// Next returns a value in [0, max) using rejection sampling to avoid
// modulo bias.
func (r *TomRandom) Next(max int) int {
	if max <= 0 {
		return 0
	}
	const intMax int64 = 1<<31 - 1
	threshold := intMax - intMax%int64(max)
	for {
		_, v := r.step()
		if v < threshold {
			return int(v % int64(max))
		}
	}
}

// NextRange returns a value in [min, max).
func (r *TomRandom) NextRange(min, max int) int {
	if min == max {
		return min
	}
	return min + r.Next(max-min)
}
