package scorer

import "math"

func byteHistogram(buf []byte) [256]int {
	var h [256]int
	for _, b := range buf {
		h[b]++
	}
	return h
}

func meanStddev(counts []float64) (mean, stddev float64) {
	if len(counts) == 0 {
		return 0, 0
	}
	var sum float64
	for _, c := range counts {
		sum += c
	}
	mean = sum / float64(len(counts))
	var variance float64
	for _, c := range counts {
		d := c - mean
		variance += d * d
	}
	variance /= float64(len(counts))
	return mean, math.Sqrt(variance)
}

func metricEntropy(s Sample) float64 {
	if len(s.Cipher) == 0 {
		return 0
	}
	hist := byteHistogram(s.Cipher)
	total := float64(len(s.Cipher))
	var h float64
	for _, c := range hist {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

func metricBitVariance(s Sample) float64 {
	if len(s.Cipher) == 0 {
		return 0
	}
	var ones, total int
	for _, b := range s.Cipher {
		ones += popcount(b)
		total += 8
	}
	return float64(ones) / float64(total)
}

// bitAt returns bit i of buf, counting from the MSB of buf[0] as bit 0.
func bitAt(buf []byte, i int) byte {
	return (buf[i/8] >> uint(7-i%8)) & 1
}

// metricSlidingWindow counts 8-bit patterns over every overlapping
// bit-aligned window of the first maxWindowBytes bytes (window start
// advances one bit at a time, not one byte), then scores 1 - stddev/mean
// over the resulting 256-bin distribution. This is deliberately distinct
// from FrequencyDistribution's byte-aligned histogram: a cipher can look
// uniform when sampled only at byte boundaries yet still leak structure
// between them, which an overlapping bit window catches and a
// byte-aligned one cannot.
func metricSlidingWindow(s Sample) float64 {
	buf := s.Cipher
	const maxWindowBytes = 4096
	if len(buf) > maxWindowBytes {
		buf = buf[:maxWindowBytes]
	}
	totalBits := len(buf) * 8
	if totalBits < 8 {
		return 0
	}

	var counts [256]float64
	var window byte
	for i := 0; i < 8; i++ {
		window = (window << 1) | bitAt(buf, i)
	}
	counts[window]++
	for start := 8; start < totalBits; start++ {
		window = (window << 1) | bitAt(buf, start)
		counts[window]++
	}

	mean, stddev := meanStddev(counts[:])
	if mean == 0 {
		return 0
	}
	return 1 - stddev/mean
}

func metricFrequencyDistribution(s Sample) float64 {
	return distributionUniformity(s.Cipher)
}

func distributionUniformity(buf []byte) float64 {
	if len(buf) == 0 {
		return 0
	}
	hist := byteHistogram(buf)
	counts := make([]float64, 256)
	for i, c := range hist {
		counts[i] = float64(c)
	}
	mean, stddev := meanStddev(counts)
	if mean == 0 {
		return 0
	}
	return 1 - stddev/mean
}

func metricPeriodicityCheck(s Sample) float64 {
	buf := s.Cipher
	n := len(buf)
	if n < 2 {
		return 1.0
	}
	maxPeriod := n / 2
	if maxPeriod > 64 {
		maxPeriod = 64
	}
	if maxPeriod == 0 {
		return 1.0
	}
	periodicCount := 0
	for p := 1; p <= maxPeriod; p++ {
		periodic := true
		for i := p; i < n; i++ {
			if buf[i] != buf[i-p] {
				periodic = false
				break
			}
		}
		if periodic {
			periodicCount++
		}
	}
	return 1 - float64(periodicCount)/float64(maxPeriod)
}

func metricMangosCorrelation(s Sample) float64 {
	a, b := s.Input, s.Cipher
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	a, b = a[:n], b[:n]

	identical := true
	for i := range a {
		if a[i] != b[i] {
			identical = false
			break
		}
	}
	if identical {
		return 1.0
	}

	constA, constB := isConstant(a), isConstant(b)
	if constA || constB {
		return 0.0
	}

	return pearson(a, b)
}

func isConstant(buf []byte) bool {
	if len(buf) == 0 {
		return true
	}
	for _, b := range buf[1:] {
		if b != buf[0] {
			return false
		}
	}
	return true
}

func pearson(a, b []byte) float64 {
	n := float64(len(a))
	var sumA, sumB float64
	for i := range a {
		sumA += float64(a[i])
		sumB += float64(b[i])
	}
	meanA, meanB := sumA/n, sumB/n

	var cov, varA, varB float64
	for i := range a {
		da := float64(a[i]) - meanA
		db := float64(b[i]) - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	denom := math.Sqrt(varA * varB)
	if denom == 0 {
		return 0
	}
	return cov / denom
}

// metricPositionalMapping compares on-bit positions byte by byte: an
// identical byte pair is fully penalized (it reveals the plaintext
// byte outright), a differing popcount contributes no penalty (the
// positions aren't comparable), and an equal popcount contributes the
// L1 distance between the sorted on-bit position lists, normalized.
func metricPositionalMapping(s Sample) float64 {
	a, b := s.Input, s.Cipher
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		total += positionalPenalty(a[i], b[i])
	}
	return total / float64(n)
}

func positionalPenalty(x, y byte) float64 {
	if x == y {
		return 1.0
	}
	px, py := bitPositions(x), bitPositions(y)
	if len(px) != len(py) {
		return 0.0
	}
	var l1 int
	for i := range px {
		d := px[i] - py[i]
		if d < 0 {
			d = -d
		}
		l1 += d
	}
	return float64(l1) / 28.0
}

func bitPositions(b byte) []int {
	positions := make([]int, 0, 8)
	for i := 0; i < 8; i++ {
		if b&(1<<uint(i)) != 0 {
			positions = append(positions, i)
		}
	}
	return positions
}

func popcount(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

func metricAvalancheScore(s Sample) float64 {
	return percentDifferingBits(s.AvalancheA, s.AvalancheB)
}

func metricKeyDependency(s Sample) float64 {
	return percentDifferingBits(s.KeyDependentA, s.KeyDependentB)
}

func percentDifferingBits(a, b []byte) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	var diff, total int
	for i := 0; i < n; i++ {
		diff += popcount(a[i] ^ b[i])
		total += 8
	}
	return float64(diff) / float64(total) * 100
}
