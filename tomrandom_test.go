package mango

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func identityTable() *[256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	return &t
}

func TestTomRandomDeterministic(t *testing.T) {
	table := identityTable()
	r1 := NewTomRandom(table, 12345)
	r2 := NewTomRandom(table, 12345)

	for i := 0; i < 64; i++ {
		a := r1.NextMask()
		b := r2.NextMask()
		qt.Assert(t, qt.Equals(a, b))
	}
}

func TestTomRandomNeverYieldsZeroMask(t *testing.T) {
	// A table of all zeros forces every raw draw to be zero, so this
	// exercises the NextMask -> NextRange(1,256) substitution path on
	// every single call.
	var zeroTable [256]byte
	rng := NewTomRandom(&zeroTable, 7)
	for i := 0; i < 256; i++ {
		qt.Assert(t, qt.Not(qt.Equals(rng.NextMask(), 0)))
	}
}

func TestTomRandomNextRespectsBound(t *testing.T) {
	table := identityTable()
	rng := NewTomRandom(table, -999)
	for i := 0; i < 512; i++ {
		v := rng.Next(7)
		qt.Assert(t, qt.IsTrue(v >= 0 && v < 7))
	}
}

func TestTomRandomNextRangeMinEqualsMax(t *testing.T) {
	rng := NewTomRandom(identityTable(), 1)
	qt.Assert(t, qt.Equals(rng.NextRange(5, 5), 5))
}

func TestTomRandomMinInt32SeedDoesNotPanic(t *testing.T) {
	table := identityTable()
	rng := NewTomRandom(table, int32(-1)<<31) // math.MinInt32
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("NextMask panicked on MinInt32 seed: %v", r)
		}
	}()
	for i := 0; i < 8; i++ {
		rng.NextMask()
	}
}
