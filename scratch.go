package mango

// scratchPool is a per-session, size-keyed reusable byte buffer cache.
// A Session is documented as single-threaded, so this needs no locking;
// it exists purely to avoid re-allocating the padded working buffer on
// every Encrypt/Decrypt/EncryptBlock/DecryptBlock call.
//
// Rent does not zero the returned buffer — callers always overwrite
// every byte they read before returning, so zeroing would be wasted
// work on the hot path.
type scratchPool struct {
	bySize map[int][]byte
}

func newScratchPool() *scratchPool {
	return &scratchPool{bySize: make(map[int][]byte)}
}

// Rent returns a buffer of exactly length n, reusing a cached allocation
// of the same size when one exists.
func (p *scratchPool) Rent(n int) []byte {
	if buf, ok := p.bySize[n]; ok {
		return buf
	}
	buf := make([]byte, n)
	p.bySize[n] = buf
	return buf
}

// Return is a no-op: rented buffers are kept for the session's lifetime
// and simply handed out again the next time the same size is requested.
func (p *scratchPool) Return([]byte) {}
