package mango

import "crypto/sha256"

// headerFixedLen is the length, in bytes, of the cleartext header's
// fixed-size prefix: version(2) + hash(32) + salt(12) + global_rounds(1)
// + seq_len(1). The variable (id, tr) tail follows immediately after.
//
// This is also exactly the on-wire size of encrypted header part 1: it
// is a multiple of 16, so the engine's block padding count is always
// zero for it and the generic trailing padding-count byte the forward
// path appends is always 0x00. encryptHeader/decryptHeader drop and
// reconstitute that byte rather than carrying it on the wire, which is
// what keeps part 1 at exactly 48 bytes as the packet layout in §6
// requires (unlike part 2 and the body, which are variable-length and
// do carry their trailing padding-count byte). See DESIGN.md.
const headerFixedLen = 48

func roundUp16(n int) int {
	return (n + 15) / 16 * 16
}

// packHeader serializes the cleartext header layout from §3 of the
// governing spec: [ver_major][ver_minor][hash:32][salt:12][global_rounds][seq_len][(id,tr)*seq_len].
func packHeader(verMajor, verMinor byte, hash [32]byte, salt [saltLen]byte, globalRounds byte, seq []SeqEntry) []byte {
	buf := make([]byte, headerFixedLen+2*len(seq))
	buf[0] = verMajor
	buf[1] = verMinor
	copy(buf[2:34], hash[:])
	copy(buf[34:46], salt[:])
	buf[46] = globalRounds
	buf[47] = byte(len(seq))
	for i, e := range seq {
		buf[headerFixedLen+2*i] = byte(e.ID)
		buf[headerFixedLen+2*i+1] = byte(e.TR)
	}
	return buf
}

func parseHeader(cleartext []byte) (hash [32]byte, salt [saltLen]byte, globalRounds byte, seq []SeqEntry, err error) {
	if len(cleartext) < headerFixedLen {
		err = newErr(ErrFormat, "cleartext header shorter than fixed prefix")
		return
	}
	copy(hash[:], cleartext[2:34])
	copy(salt[:], cleartext[34:46])
	globalRounds = cleartext[46]
	seqLen := int(cleartext[47])
	need := headerFixedLen + 2*seqLen
	if len(cleartext) < need {
		err = newErr(ErrFormat, "cleartext header truncated before end of sequence")
		return
	}
	seq = make([]SeqEntry, seqLen)
	for i := range seq {
		idx := headerFixedLen + 2*i
		seq[i] = SeqEntry{ID: int(cleartext[idx]), TR: int(cleartext[idx+1])}
	}
	return
}

// headerProfileCandidateMod is the spec's fixed modulus for walking the
// CoinTable hash into candidate transform ids; candidates always land
// in [1, 40] regardless of how large the registry has grown since.
const headerProfileCandidateMod = 40

// deriveHeaderProfile is a pure function of the CoinTable: it is
// session-stable and used exclusively to encrypt/decrypt the packet
// header.
func deriveHeaderProfile(coinTable *Permutation) (InputProfile, error) {
	h := sha256.Sum256(coinTable.Forward[:])
	entries := []SeqEntry{{ID: 35, TR: 3}}

	k := 0
	const maxAttempts = 1 << 16
	for len(entries) < 6 {
		if k > maxAttempts {
			return InputProfile{}, newErr(ErrRegistry, "could not derive header profile: registry too constrained")
		}
		candidate := (int(h[k%32]) + int(h[(k+1)%32]))%headerProfileCandidateMod + 1
		k++

		info, ok := lookupTransform(candidate)
		if !ok || info.ExcludeFromPermutations {
			continue
		}
		dup := false
		for _, e := range entries {
			if e.ID == candidate {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		entries = append(entries, SeqEntry{ID: candidate, TR: 3})
	}
	return InputProfile{Name: "header", Sequence: entries, GlobalRounds: 6}, nil
}

// headerCoins derives the coin permutation used solely for header
// encryption/decryption: a function of the CoinTable alone, distinct
// from the per-message coins array used for the payload.
func headerCoins(coinTable *Permutation) Permutation {
	h := sha256.Sum256(coinTable.Forward[:])
	var salt [saltLen]byte
	copy(salt[:], coinTable.Forward[:saltLen])
	combined := sha256.Sum256(append(append([]byte(nil), h[:]...), salt[:]...))
	return fisherYatesFromHash(combined)
}

// encryptHeader packs and encrypts cleartext under the deterministic
// header profile, scoping the active CBox to the CoinTable for the
// duration of the call.
//
// Part 1 (the fixed-size prefix) always encrypts to exactly
// headerFixedLen bytes on the wire: headerFixedLen is a multiple of 16,
// so the engine's padding count is always zero and the generic
// trailing padding-count byte it appends is always 0x00 and redundant
// (the decoder already knows to expect exactly headerFixedLen
// plaintext bytes back, unlike the variable-length tail or body). That
// guaranteed-zero byte is dropped here and reconstituted in
// decryptHeader, which is what makes part 1 exactly 48 bytes on the
// wire as the packet layout in §6 requires.
func (s *Session) encryptHeader(cleartext []byte) ([]byte, error) {
	profile, err := deriveHeaderProfile(&s.coinTable)
	if err != nil {
		return nil, err
	}

	var out []byte
	err = s.withActiveCBox(activeCoinTable, func() error {
		coins := headerCoins(&s.coinTable)
		part1Plain := cleartext[:headerFixedLen]
		part2Plain := cleartext[headerFixedLen:]

		part1Cipher, err := applyTransformations(s, profile, part1Plain, &coins.Forward, false)
		if err != nil {
			return err
		}
		part2Cipher, err := applyTransformations(s, profile, part2Plain, &coins.Forward, false)
		if err != nil {
			return err
		}
		out = make([]byte, 0, headerFixedLen+len(part2Cipher))
		out = append(out, part1Cipher[:headerFixedLen]...)
		out = append(out, part2Cipher...)
		return nil
	})
	return out, err
}

// decryptHeader recovers the cleartext header from the front of input
// and reports how many encrypted bytes it consumed, so the caller can
// slice the remaining encrypted body.
func (s *Session) decryptHeader(input []byte) ([]byte, int, error) {
	profile, err := deriveHeaderProfile(&s.coinTable)
	if err != nil {
		return nil, 0, err
	}
	reversed, err := reverseSequence(profile.Sequence)
	if err != nil {
		return nil, 0, err
	}
	reversedProfile := InputProfile{Name: profile.Name, Sequence: reversed, GlobalRounds: profile.GlobalRounds}

	var cleartext []byte
	var consumed int
	err = s.withActiveCBox(activeCoinTable, func() error {
		coins := headerCoins(&s.coinTable)

		// Part 1 is exactly headerFixedLen bytes on the wire (see
		// encryptHeader): reconstitute the guaranteed-zero trailing
		// padding-count byte the engine's reverse path expects before
		// handing it the ciphertext.
		part1CipherLen := headerFixedLen
		if len(input) < part1CipherLen {
			return newErr(ErrFormat, "encrypted input shorter than header part 1")
		}
		part1CipherPadded := append(append([]byte(nil), input[:part1CipherLen]...), 0)
		part1Plain, err := applyTransformations(s, reversedProfile, part1CipherPadded, &coins.Forward, true)
		if err != nil {
			return err
		}
		if len(part1Plain) != headerFixedLen {
			return newErr(ErrFormat, "decrypted header part 1 has unexpected length")
		}

		seqLen := int(part1Plain[47])
		part2PlainLen := 2 * seqLen
		part2CipherLen := roundUp16(part2PlainLen) + 1
		need := part1CipherLen + part2CipherLen
		if len(input) < need {
			return newErr(ErrFormat, "encrypted input shorter than header part 2")
		}
		part2Plain, err := applyTransformations(s, reversedProfile, input[part1CipherLen:need], &coins.Forward, true)
		if err != nil {
			return err
		}

		cleartext = make([]byte, 0, len(part1Plain)+len(part2Plain))
		cleartext = append(cleartext, part1Plain...)
		cleartext = append(cleartext, part2Plain...)
		consumed = need
		return nil
	})
	return cleartext, consumed, err
}
