package mango

import "fmt"

// SeqEntry is one (transform id, per-transform rounds) pair in an
// InputProfile's sequence.
type SeqEntry struct {
	ID int
	TR int
}

// InputProfile names an ordered transform sequence plus the global round
// count the engine repeats it for. AggregateScore is informational,
// carried through from whatever scored the profile (see the scorer
// package) but never consulted by the engine itself.
type InputProfile struct {
	Name           string
	Sequence       []SeqEntry
	GlobalRounds   int
	AggregateScore float64
}

// reverseSequence builds the sequence the engine should walk to undo a
// forward profile: reverse the entry order and swap each transform id
// for its registered inverse.
func reverseSequence(fwd []SeqEntry) ([]SeqEntry, error) {
	out := make([]SeqEntry, len(fwd))
	for i, e := range fwd {
		info, ok := lookupTransform(e.ID)
		if !ok {
			return nil, wrapErr(ErrRegistry, fmt.Sprintf("unknown transform id %d", e.ID), nil)
		}
		out[len(fwd)-1-i] = SeqEntry{ID: info.InverseID, TR: e.TR}
	}
	return out, nil
}

// applyTransformations is the heart of the transform engine (padding,
// round/sequence walk, per-invocation coin selection). buf is the raw
// plaintext on a forward call, or the padded+tagged ciphertext body on a
// reverse call. coins is the 256-byte coin permutation for this
// operation (distinct from the CoinTable and from any CBox).
func applyTransformations(session *Session, profile InputProfile, buf []byte, coins *[256]byte, reverse bool) ([]byte, error) {
	var working []byte
	var p int

	if !reverse {
		p = (16 - len(buf)%16) % 16
		working = session.scratch.Rent(len(buf) + p)
		copy(working, buf)
		if p > 0 {
			active := session.activeTable()
			copy(working[len(buf):], active.Forward[:p])
		}
	} else {
		if len(buf) == 0 {
			return nil, newErr(ErrFormat, "encrypted body is empty")
		}
		p = int(buf[len(buf)-1])
		inner := buf[:len(buf)-1]
		if p > len(inner) {
			return nil, newErr(ErrFormat, "invalid padding byte")
		}
		working = session.scratch.Rent(len(inner))
		copy(working, inner)
	}

	for r := 0; r < profile.GlobalRounds; r++ {
		for _, entry := range profile.Sequence {
			info, ok := lookupTransform(entry.ID)
			if !ok {
				return nil, wrapErr(ErrRegistry, fmt.Sprintf("unknown transform id %d", entry.ID), nil)
			}
			for round := 0; round < entry.TR; round++ {
				selected := round
				if reverse {
					selected = entry.TR - round - 1
				}
				coinIndex := (info.CoinPreference + selected) % 256
				ctx := &transformContext{session: session, coin: coins[coinIndex], round: round}
				if err := info.Impl(ctx, working); err != nil {
					return nil, err
				}
			}
		}
	}

	if !reverse {
		out := make([]byte, len(working)+1)
		copy(out, working)
		out[len(working)] = byte(p)
		return out, nil
	}
	return append([]byte(nil), working[:len(working)-p]...), nil
}
