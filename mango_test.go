package mango

import (
	"bytes"
	"testing"

	"github.com/go-quicktest/qt"
)

// TestS1SeedScenarioRoundTripsAndSizesMatch is scenario S1 from
// spec.md §8: a fixed password/salt/profile over 16 bytes of
// 0x00..0x0F must round-trip and produce an 82-byte packet.
func TestS1SeedScenarioRoundTripsAndSizesMatch(t *testing.T) {
	s := testSession(t)
	plain := make([]byte, 16)
	for i := range plain {
		plain[i] = byte(i)
	}
	profile := combinedProfile()

	cipher, err := s.Encrypt(profile, plain)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(cipher), 82))

	recovered, err := s.Decrypt(cipher)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(bytes.Equal(recovered, plain)))
}

// TestS2EmptyPlaintextRoundTrips is scenario S2 from spec.md §8.
func TestS2EmptyPlaintextRoundTrips(t *testing.T) {
	s := testSession(t)
	profile := combinedProfile()

	cipher, err := s.Encrypt(profile, nil)
	qt.Assert(t, qt.IsNil(err))

	recovered, err := s.Decrypt(cipher)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(recovered), 0))
}

func TestEncryptDecryptWithProfileMatchesPlainDecrypt(t *testing.T) {
	s := testSession(t)
	profile := combinedProfile()
	plain := []byte("round trip via an explicit profile")

	cipher, err := s.Encrypt(profile, plain)
	qt.Assert(t, qt.IsNil(err))

	viaDefault, err := s.Decrypt(cipher)
	qt.Assert(t, qt.IsNil(err))

	reversed, err := reverseSequence(profile.Sequence)
	qt.Assert(t, qt.IsNil(err))
	explicitProfile := InputProfile{Sequence: reversed, GlobalRounds: profile.GlobalRounds}

	s2 := testSession(t)
	viaExplicit, err := s2.DecryptWithProfile(explicitProfile, cipher)
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.IsTrue(bytes.Equal(viaDefault, viaExplicit)))
	qt.Assert(t, qt.IsTrue(bytes.Equal(viaDefault, plain)))
}

func TestEncryptBlockDecryptBlockRoundTrip(t *testing.T) {
	s := testSession(t)
	profile := combinedProfile()

	_, err := s.Encrypt(profile, []byte("prime the session's LastHeader"))
	qt.Assert(t, qt.IsNil(err))

	block := []byte("a standalone block sharing the last header's metadata")
	cipherBlock, err := s.EncryptBlock(block)
	qt.Assert(t, qt.IsNil(err))

	recovered, err := s.DecryptBlock(cipherBlock)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(bytes.Equal(recovered, block)))
}

func TestEncryptBlockWithoutPriorEncryptFails(t *testing.T) {
	s := testSession(t)
	_, err := s.EncryptBlock([]byte("no header yet"))
	qt.Assert(t, qt.IsNotNil(err))
	var merr *Error
	qt.Assert(t, qt.ErrorAs(err, &merr))
	qt.Assert(t, qt.Equals(merr.Kind, ErrState))
}

func TestDecryptBlockWithoutPriorDecryptFails(t *testing.T) {
	s := testSession(t)
	_, err := s.DecryptBlock([]byte("no header yet"))
	qt.Assert(t, qt.IsNotNil(err))
	var merr *Error
	qt.Assert(t, qt.ErrorAs(err, &merr))
	qt.Assert(t, qt.Equals(merr.Kind, ErrState))
}

func TestGetPayloadOnlyReturnsRawUnpaddedBody(t *testing.T) {
	s := testSession(t)
	profile := combinedProfile()
	plain := []byte("some payload bytes to extract")

	cipher, err := s.Encrypt(profile, plain)
	qt.Assert(t, qt.IsNil(err))

	s2 := testSession(t)
	payload, err := s2.GetPayloadOnly(cipher)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(payload), len(plain)))
}

// TestVersionGateRejectsFutureTransformIDs is property 9 from
// spec.md §8: a sequence referencing an id beyond the current
// registry size fails with the derived required version.
func TestVersionGateRejectsFutureTransformIDs(t *testing.T) {
	k := 3
	badProfile := InputProfile{
		Sequence:     []SeqEntry{{ID: registrySize() + k, TR: 1}},
		GlobalRounds: 1,
	}
	s := testSession(t)
	_, err := s.Encrypt(badProfile, []byte("anything"))
	qt.Assert(t, qt.IsNotNil(err))
	var merr *Error
	qt.Assert(t, qt.ErrorAs(err, &merr))
	qt.Assert(t, qt.Equals(merr.Kind, ErrVersion))
	qt.Assert(t, qt.Equals(merr.RequiredVersion, registrySize()+k-40+1))
}

func TestNewSessionRejectsWrongSaltLength(t *testing.T) {
	_, err := NewSession(Options{Password: []byte("x"), Salt: []byte{1, 2, 3}})
	qt.Assert(t, qt.IsNotNil(err))
	var merr *Error
	qt.Assert(t, qt.ErrorAs(err, &merr))
	qt.Assert(t, qt.Equals(merr.Kind, ErrConfiguration))
}

// TestDecryptIsSelfContainedAcrossFreshSessions is property 7 from
// spec.md §8: a fresh session with the same password/salt/zone can
// decrypt a packet produced by an entirely different session object.
func TestDecryptIsSelfContainedAcrossFreshSessions(t *testing.T) {
	opts := Options{Password: []byte("shared-secret"), Salt: make([]byte, saltLen), Iterations: 1000, Rfc2898: true}
	enc, err := NewSession(opts)
	qt.Assert(t, qt.IsNil(err))
	dec, err := NewSession(opts)
	qt.Assert(t, qt.IsNil(err))

	plain := []byte("a message encrypted by one session, decrypted by another")
	cipher, err := enc.Encrypt(combinedProfile(), plain)
	qt.Assert(t, qt.IsNil(err))

	recovered, err := dec.Decrypt(cipher)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(bytes.Equal(recovered, plain)))
}

// TestKeyDependencyScenario is a bounded form of scenario S5 from
// spec.md §8: two encryptions of the same plaintext under passwords
// differing by one bit must produce different packets. Only inequality
// is checked here; the share of differing bits is not measured (the
// scorer package's own tests cover the Hamming-percentage metric
// against controlled samples).
func TestKeyDependencyScenario(t *testing.T) {
	plain := bytes.Repeat([]byte{0x5A}, 256)
	profile := combinedProfile()

	sA, err := NewSession(Options{Password: []byte{0x00}, Salt: make([]byte, saltLen)})
	qt.Assert(t, qt.IsNil(err))
	sB, err := NewSession(Options{Password: []byte{0x01}, Salt: make([]byte, saltLen)})
	qt.Assert(t, qt.IsNil(err))

	cipherA, err := sA.Encrypt(profile, plain)
	qt.Assert(t, qt.IsNil(err))
	cipherB, err := sB.Encrypt(profile, plain)
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.IsFalse(bytes.Equal(cipherA, cipherB)))
}
