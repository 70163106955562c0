package mango

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// Permutation is a bijective byte permutation together with its inverse,
// the shape shared by the CoinTable, every per-message CBox, and the
// header/coins shuffles derived from them.
type Permutation struct {
	Forward [256]byte
	Inverse [256]byte
}

// fisherYatesFromHash builds a Permutation by walking a 32-byte hash as
// the entropy source for a Fisher-Yates shuffle of the identity
// permutation, exactly as specified for both CoinTable and CBox
// derivation: for i := 255 downTo 1, j = h[hi mod 32] (hi incrementing
// once per step), swap T[i] with T[(j+i) mod (i+1)].
func fisherYatesFromHash(h [32]byte) Permutation {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	hi := 0
	for i := 255; i >= 1; i-- {
		j := int(h[hi%32])
		hi++
		k := (j + i) % (i + 1)
		t[i], t[k] = t[k], t[i]
	}
	var perm Permutation
	perm.Forward = t
	for i, v := range t {
		perm.Inverse[v] = byte(i)
	}
	return perm
}

// Options configures a Session at construction time.
type Options struct {
	Password   []byte
	ZoneInfo   []byte
	Salt       []byte
	Iterations int
	// Rfc2898 enables PBKDF2-HMAC-SHA256 stretching of the password (and
	// zone info, if present) before the CoinTable's Fisher-Yates pass.
	// Disabling it is tolerated for fast, non-interactive test sessions;
	// the CoinTable is still fully deterministic, just not stretched.
	Rfc2898 bool
}

const saltLen = 12
const defaultIterations = 100000

func deriveCoinTable(opts Options) (Permutation, error) {
	if len(opts.Salt) != saltLen {
		return Permutation{}, newErr(ErrConfiguration, "salt must be exactly 12 bytes")
	}
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = defaultIterations
	}

	hasZone := len(opts.ZoneInfo) > 0
	iters := iterations
	if hasZone {
		if iterations%2 != 0 {
			iterations++
		}
		iters = iterations / 2
	}

	var derivedPw, derivedZone []byte
	if opts.Rfc2898 {
		derivedPw = pbkdf2.Key(opts.Password, opts.Salt, iters, 32, sha256.New)
		if hasZone {
			derivedZone = pbkdf2.Key(opts.ZoneInfo, opts.Salt, iters, 32, sha256.New)
		}
	} else {
		pwSum := sha256.Sum256(opts.Password)
		derivedPw = pwSum[:]
		if hasZone {
			zoneSum := sha256.Sum256(opts.ZoneInfo)
			derivedZone = zoneSum[:]
		}
	}

	combined := make([]byte, 0, len(derivedPw)+len(derivedZone))
	combined = append(combined, derivedPw...)
	combined = append(combined, derivedZone...)
	h := sha256.Sum256(combined)
	return fisherYatesFromHash(h), nil
}

// deriveCBox builds the per-message substitution permutation from
// SHA-256(plaintext || CoinTable) at encrypt time.
func deriveCBox(plaintext []byte, coinTable *[256]byte) ([32]byte, Permutation) {
	buf := make([]byte, 0, len(plaintext)+256)
	buf = append(buf, plaintext...)
	buf = append(buf, coinTable[:]...)
	h := sha256.Sum256(buf)
	return h, fisherYatesFromHash(h)
}

// cboxFromHash rebuilds the CBox at decrypt time from the hash field
// recovered from the packet header, without re-hashing the plaintext.
func cboxFromHash(h [32]byte) Permutation {
	return fisherYatesFromHash(h)
}

// activeSlot names which permutation transform implementations currently
// read as "the active CBox": either the per-message CBox (Default, used
// for payload transforms) or the session CoinTable (used while the
// header codec is doing its own, independently-profiled encryption).
type activeSlot int

const (
	activeDefault activeSlot = iota
	activeCoinTable
)

// transformContext is what a registry transform implementation actually
// receives. The base spec's transform signature is "(buffer, coin)";
// Go has no implicit session-global state to close over safely, so the
// coin and buffer travel alongside an explicit context exposing the
// currently-active table, the per-message CBox, and the immutable
// session CoinTable (CascadeSub3x needs the CoinTable unconditionally,
// even while the active slot is Default).
type transformContext struct {
	session *Session
	coin    byte
	round   int
}

// active returns the table transforms read as "the" permutation for
// this invocation (CascadeSub3x reads it as its middle layer, next to
// coinTable): the per-message CBox
// while processing payload bytes, or the CoinTable while the header
// codec has scoped it in.
func (c *transformContext) active() *Permutation {
	return c.session.activeTable()
}

func (c *transformContext) coinTable() *Permutation {
	return &c.session.coinTable
}

// activeTable resolves the scoped active-CBox selection. Selecting
// Default before the first per-message CBox exists is a programmer
// error in this library (the engine never does it), so it panics rather
// than returning a zero-value permutation that would silently corrupt
// output.
func (s *Session) activeTable() *Permutation {
	switch s.active {
	case activeCoinTable:
		return &s.coinTable
	default:
		if s.currentCBox == nil {
			panic("mango: active CBox selected before a per-message CBox was generated")
		}
		return s.currentCBox
	}
}

// withActiveCBox scopes the active-CBox selection to slot for the
// duration of fn, restoring the previous selection on every exit path
// (including a panic unwinding through fn) via defer.
func (s *Session) withActiveCBox(slot activeSlot, fn func() error) error {
	prev := s.active
	s.active = slot
	defer func() { s.active = prev }()
	return fn()
}
