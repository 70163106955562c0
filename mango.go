package mango

import (
	"crypto/sha256"
	"fmt"
)

// Session holds one CoinTable, the currently active CBox selection, the
// cached last header (for block-mode continuation), and a per-session
// scratch pool. A Session is not safe for concurrent Encrypt/Decrypt
// calls; use one Session per goroutine.
type Session struct {
	coinTable   Permutation
	active      activeSlot
	currentCBox *Permutation
	lastHeader  []byte
	salt        [saltLen]byte
	scratch     *scratchPool
}

// NewSession derives a CoinTable from opts and returns a ready-to-use
// Session. When Options.Rfc2898 is set, the password and optional zone
// info are stretched via PBKDF2-HMAC-SHA256 before the CoinTable's
// Fisher-Yates pass; otherwise each is hashed once with SHA-256.
func NewSession(opts Options) (*Session, error) {
	if opts.Password == nil {
		return nil, newErr(ErrConfiguration, "password must not be nil")
	}
	coinTable, err := deriveCoinTable(opts)
	if err != nil {
		return nil, err
	}
	s := &Session{
		coinTable: coinTable,
		active:    activeDefault,
		scratch:   newScratchPool(),
	}
	copy(s.salt[:], opts.Salt)
	return s, nil
}

// checkVersionGate fails if any transform id referenced by seq exceeds
// what this build's registry knows about. The required version number
// follows the spec's ID-41 -> v2 convention: ids 1..40 are version 1,
// and each id above 40 raises the required version by one
// (required = maxID - 40 + 1).
func checkVersionGate(seq []SeqEntry) error {
	maxID := 0
	for _, e := range seq {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	if maxID <= registrySize() {
		return nil
	}
	required := maxID - 40 + 1
	return versionErr(required, fmt.Sprintf("packet references transform id %d beyond registry size %d", maxID, registrySize()))
}

// Encrypt runs the full pipeline for profile over input: derive the
// per-message CBox, apply the forward transform sequence, build and
// encrypt the cleartext header, and concatenate. The cleartext header
// is cached as LastHeader for later EncryptBlock/DecryptBlock calls.
func (s *Session) Encrypt(profile InputProfile, input []byte) ([]byte, error) {
	if len(s.salt) != saltLen {
		return nil, newErr(ErrConfiguration, "salt must be exactly 12 bytes")
	}
	if err := checkVersionGate(profile.Sequence); err != nil {
		return nil, err
	}

	hash, cbox := deriveCBox(input, &s.coinTable.Forward)
	s.currentCBox = &cbox
	s.active = activeDefault

	coins := fisherYatesFromHash(sha256.Sum256(append(append([]byte(nil), hash[:]...), s.salt[:]...)))

	payload, err := applyTransformations(s, profile, input, &coins.Forward, false)
	if err != nil {
		return nil, err
	}

	header := packHeader(1, 0, hash, s.salt, byte(profile.GlobalRounds), profile.Sequence)
	s.lastHeader = header

	encHeader, err := s.encryptHeader(header)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(encHeader)+len(payload))
	out = append(out, encHeader...)
	out = append(out, payload...)
	return out, nil
}

// Decrypt recovers the metadata embedded in input's header (hash, salt,
// global rounds, sequence) and delegates to the profile-taking overload
// with the reversed+inverse-mapped sequence.
func (s *Session) Decrypt(input []byte) ([]byte, error) {
	cleartext, body, err := s.decryptHeaderAndBody(input)
	if err != nil {
		return nil, err
	}
	hash, salt, globalRounds, seq, err := parseHeader(cleartext)
	if err != nil {
		return nil, err
	}
	if err := checkVersionGate(seq); err != nil {
		return nil, err
	}
	reversed, err := reverseSequence(seq)
	if err != nil {
		return nil, err
	}
	profile := InputProfile{Sequence: reversed, GlobalRounds: int(globalRounds)}
	return s.decryptWithMetadata(profile, hash, salt, body)
}

// DecryptWithProfile decrypts input using an explicitly supplied
// profile (expected to already be the reversed+inverse-mapped
// sequence), still recovering hash/salt from the packet header.
func (s *Session) DecryptWithProfile(profile InputProfile, input []byte) ([]byte, error) {
	cleartext, body, err := s.decryptHeaderAndBody(input)
	if err != nil {
		return nil, err
	}
	hash, salt, _, seq, err := parseHeader(cleartext)
	if err != nil {
		return nil, err
	}
	if err := checkVersionGate(seq); err != nil {
		return nil, err
	}
	return s.decryptWithMetadata(profile, hash, salt, body)
}

func (s *Session) decryptWithMetadata(profile InputProfile, hash [32]byte, salt [saltLen]byte, body []byte) ([]byte, error) {
	if err := checkVersionGate(profile.Sequence); err != nil {
		return nil, err
	}
	cbox := cboxFromHash(hash)
	s.currentCBox = &cbox
	s.active = activeDefault

	coins := fisherYatesFromHash(sha256.Sum256(append(append([]byte(nil), hash[:]...), salt[:]...)))

	return applyTransformations(s, profile, body, &coins.Forward, true)
}

func (s *Session) decryptHeaderAndBody(input []byte) ([]byte, []byte, error) {
	cleartext, encHeaderLen, err := s.decryptHeader(input)
	if err != nil {
		return nil, nil, err
	}
	if encHeaderLen > len(input) {
		return nil, nil, newErr(ErrFormat, "encrypted input shorter than header")
	}
	s.lastHeader = cleartext
	return cleartext, input[encHeaderLen:], nil
}

// EncryptBlock applies the forward transform sequence from the cached
// LastHeader directly to block, without emitting a header. A prior
// Encrypt or Decrypt call must have populated LastHeader.
func (s *Session) EncryptBlock(block []byte) ([]byte, error) {
	if s.lastHeader == nil {
		return nil, newErr(ErrState, "EncryptBlock called with no cached header; call Encrypt or Decrypt first")
	}
	hash, salt, globalRounds, seq, err := parseHeader(s.lastHeader)
	if err != nil {
		return nil, err
	}
	cbox := cboxFromHash(hash)
	s.currentCBox = &cbox
	s.active = activeDefault
	coins := fisherYatesFromHash(sha256.Sum256(append(append([]byte(nil), hash[:]...), salt[:]...)))
	profile := InputProfile{Sequence: seq, GlobalRounds: int(globalRounds)}
	return applyTransformations(s, profile, block, &coins.Forward, false)
}

// DecryptBlock is the EncryptBlock counterpart: it applies the
// reversed+inverse-mapped sequence from LastHeader without consuming a
// header from block.
func (s *Session) DecryptBlock(block []byte) ([]byte, error) {
	if s.lastHeader == nil {
		return nil, newErr(ErrState, "DecryptBlock called with no cached header; call Encrypt or Decrypt first")
	}
	hash, salt, globalRounds, seq, err := parseHeader(s.lastHeader)
	if err != nil {
		return nil, err
	}
	reversed, err := reverseSequence(seq)
	if err != nil {
		return nil, err
	}
	cbox := cboxFromHash(hash)
	s.currentCBox = &cbox
	s.active = activeDefault
	coins := fisherYatesFromHash(sha256.Sum256(append(append([]byte(nil), hash[:]...), salt[:]...)))
	profile := InputProfile{Sequence: reversed, GlobalRounds: int(globalRounds)}
	return applyTransformations(s, profile, block, &coins.Forward, true)
}

// GetPayloadOnly decrypts only the header, strips the trailing padding
// byte the engine would otherwise interpret, and returns the raw
// unpadded ciphertext body without applying any transform.
func (s *Session) GetPayloadOnly(input []byte) ([]byte, error) {
	_, body, err := s.decryptHeaderAndBody(input)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, newErr(ErrFormat, "payload empty after extraction")
	}
	p := int(body[len(body)-1])
	inner := body[:len(body)-1]
	if p > len(inner) {
		return nil, newErr(ErrFormat, "invalid padding byte")
	}
	return append([]byte(nil), inner[:len(inner)-p]...), nil
}

// LastHeader returns a copy of the cleartext header cached by the most
// recent Encrypt or Decrypt call, or nil if none has run yet.
func (s *Session) LastHeader() []byte {
	if s.lastHeader == nil {
		return nil
	}
	return append([]byte(nil), s.lastHeader...)
}
