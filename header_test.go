package mango

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
)

func TestPackParseHeaderRoundTrip(t *testing.T) {
	var hash [32]byte
	for i := range hash {
		hash[i] = byte(i)
	}
	var salt [saltLen]byte
	for i := range salt {
		salt[i] = byte(i + 1)
	}
	seq := []SeqEntry{{ID: 8, TR: 3}, {ID: 10, TR: 1}}

	packed := packHeader(1, 0, hash, salt, 6, seq)
	qt.Assert(t, qt.Equals(len(packed), headerFixedLen+2*len(seq)))

	gotHash, gotSalt, gotRounds, gotSeq, err := parseHeader(packed)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(gotHash, hash))
	qt.Assert(t, qt.DeepEquals(gotSalt, salt))
	qt.Assert(t, qt.Equals(gotRounds, byte(6)))
	if diff := cmp.Diff(seq, gotSeq); diff != "" {
		t.Fatalf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHeaderRejectsTruncatedInput(t *testing.T) {
	_, _, _, _, err := parseHeader(make([]byte, headerFixedLen-1))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseHeaderRejectsTruncatedSequence(t *testing.T) {
	packed := packHeader(1, 0, [32]byte{}, [saltLen]byte{}, 6, []SeqEntry{{ID: 1, TR: 1}, {ID: 2, TR: 1}})
	_, _, _, _, err := parseHeader(packed[:len(packed)-1])
	qt.Assert(t, qt.IsNotNil(err))
}

// TestDeriveHeaderProfileStable covers S6 from spec.md §8: the header
// profile derivation over a known CoinTable begins with (35, 3),
// contains no duplicates, and references only valid registry ids.
func TestDeriveHeaderProfileStable(t *testing.T) {
	table, err := deriveCoinTable(Options{Password: []byte("sample-password"), Salt: make([]byte, saltLen)})
	qt.Assert(t, qt.IsNil(err))

	profile, err := deriveHeaderProfile(&table)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(profile.Sequence), 6))
	qt.Assert(t, qt.Equals(profile.Sequence[0].ID, 35))
	qt.Assert(t, qt.Equals(profile.Sequence[0].TR, 3))

	seen := make(map[int]bool)
	for _, e := range profile.Sequence {
		qt.Assert(t, qt.IsFalse(seen[e.ID]), qt.Commentf("duplicate id %d", e.ID))
		seen[e.ID] = true
		qt.Assert(t, qt.IsTrue(e.ID >= 1 && e.ID <= registrySize()))
	}
}

func TestDeriveHeaderProfileIsPureFunctionOfCoinTable(t *testing.T) {
	table, err := deriveCoinTable(Options{Password: []byte("sample-password"), Salt: make([]byte, saltLen)})
	qt.Assert(t, qt.IsNil(err))

	a, err := deriveHeaderProfile(&table)
	qt.Assert(t, qt.IsNil(err))
	b, err := deriveHeaderProfile(&table)
	qt.Assert(t, qt.IsNil(err))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("header profile not stable across calls (-first +second):\n%s", diff)
	}
}

func TestEncryptDecryptHeaderRoundTrip(t *testing.T) {
	s := testSession(t)
	copy(s.salt[:], make([]byte, saltLen))

	cleartext := packHeader(1, 0, [32]byte{1, 2, 3}, s.salt, 6,
		[]SeqEntry{{ID: 8, TR: 3}, {ID: 10, TR: 1}})

	encrypted, err := s.encryptHeader(cleartext)
	qt.Assert(t, qt.IsNil(err))

	decrypted, consumed, err := s.decryptHeader(encrypted)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(consumed, len(encrypted)))
	qt.Assert(t, qt.DeepEquals([]byte(decrypted), []byte(cleartext)))
}
