package mango

import "fmt"

// TransformFunc is the shape every registry entry implements: mutate buf
// in place using the coin and round carried on ctx. This is the Go
// rendering of the base spec's "(buffer: &mut [u8], coin: u8)" contract —
// ctx additionally exposes the session's active-CBox selection and
// CoinTable, since those can't be closed over implicitly the way a
// dynamically-scoped variable would in the reference implementation.
type TransformFunc func(ctx *transformContext, buf []byte) error

// TransformInfo describes one registry entry: its id, human name, the id
// of its paired inverse (itself, for self-inverse transforms), the
// implementation, the coin-preference index assigned at registration,
// and whether it is excluded from the header-profile candidate walk
// (Passthrough: a no-op has no business being picked as a "strong"
// header transform; PatternEqualizer: its flip at position i reads
// already-mutated neighbors, so it is not a true involution and must
// never be selected for the header, which relies on its own transforms
// being exactly reversible).
type TransformInfo struct {
	ID                      int
	Name                    string
	InverseID               int
	Impl                    TransformFunc
	CoinPreference          int
	ExcludeFromPermutations bool
}

type registryBuilder struct {
	entries []TransformInfo
}

func (b *registryBuilder) add(name string, impl TransformFunc, opts ...func(*TransformInfo)) int {
	id := len(b.entries) + 1
	info := TransformInfo{
		ID:             id,
		Name:           name,
		InverseID:      id, // self-inverse by default
		Impl:           impl,
		CoinPreference: len(b.entries),
	}
	for _, opt := range opts {
		opt(&info)
	}
	b.entries = append(b.entries, info)
	return id
}

func withInverse(id int) func(*TransformInfo) {
	return func(info *TransformInfo) { info.InverseID = id }
}

func excluded(info *TransformInfo) { info.ExcludeFromPermutations = true }

// pairInverse links two already-registered entries as each other's
// inverse and unifies their coin preference, so that the engine hands the
// inverse the same coin bytes (coins[CoinPreference+round]) the forward
// transform drew.
func (b *registryBuilder) pairInverse(fwd, inv int) {
	b.entries[fwd-1].InverseID = inv
	b.entries[inv-1].InverseID = fwd
	b.entries[inv-1].CoinPreference = b.entries[fwd-1].CoinPreference
}

// registry is the dense catalog of every transform, ordered by id: entry
// i holds the transform whose TransformInfo.ID is i+1 (see lookupTransform).
var registry []TransformInfo

func init() {
	registry = buildRegistry()
	if err := validateRegistry(registry); err != nil {
		panic(err)
	}
}

func validateRegistry(reg []TransformInfo) error {
	if len(reg) == 0 {
		return fmt.Errorf("mango: registry is empty")
	}
	for i, t := range reg {
		wantID := i + 1
		if t.ID != wantID {
			return fmt.Errorf("mango: registry ids are not dense: entry %d has id %d", i, t.ID)
		}
		if t.InverseID < 1 || t.InverseID > len(reg) {
			return fmt.Errorf("mango: transform %d (%s) has out-of-range inverse id %d", t.ID, t.Name, t.InverseID)
		}
		inv := reg[t.InverseID-1]
		if inv.InverseID != t.ID {
			return fmt.Errorf("mango: transform %d (%s) and its claimed inverse %d (%s) do not reference each other", t.ID, t.Name, inv.ID, inv.Name)
		}
		if inv.CoinPreference != t.CoinPreference {
			return fmt.Errorf("mango: transform %d and inverse %d must share a coin preference", t.ID, t.InverseID)
		}
	}
	return nil
}

// registrySize is the highest transform id currently known. The version
// gate (§4.8) compares a packet's maximum referenced id against this.
func registrySize() int { return len(registry) }

func lookupTransform(id int) (TransformInfo, bool) {
	if id < 1 || id > len(registry) {
		return TransformInfo{}, false
	}
	return registry[id-1], true
}
