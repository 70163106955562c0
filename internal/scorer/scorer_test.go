package scorer

import (
	"bytes"
	"testing"

	"github.com/go-quicktest/qt"
)

func uniformCipher(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i % 256)
	}
	return buf
}

func TestMangosCorrelationIdenticalIsOne(t *testing.T) {
	buf := []byte("identical on both sides")
	got := metricMangosCorrelation(Sample{Input: buf, Cipher: buf})
	qt.Assert(t, qt.Equals(got, 1.0))
}

func TestMangosCorrelationConstantButDifferentIsZero(t *testing.T) {
	got := metricMangosCorrelation(Sample{
		Input:  bytes.Repeat([]byte{0x01}, 16),
		Cipher: bytes.Repeat([]byte{0x02}, 16),
	})
	qt.Assert(t, qt.Equals(got, 0.0))
}

func TestPositionalMappingIdenticalBytesPenalized(t *testing.T) {
	buf := []byte{0xAB, 0xCD}
	got := metricPositionalMapping(Sample{Input: buf, Cipher: buf})
	qt.Assert(t, qt.Equals(got, 1.0))
}

func TestPositionalMappingDifferingPopcountsNoPenalty(t *testing.T) {
	// 0x01 has popcount 1, 0xFF has popcount 8: differing popcounts
	// contribute zero penalty per the spec's definition.
	got := metricPositionalMapping(Sample{
		Input:  []byte{0x01},
		Cipher: []byte{0xFF},
	})
	qt.Assert(t, qt.Equals(got, 0.0))
}

func TestBitVarianceOfConstantBuffer(t *testing.T) {
	// 0xAA is 10101010, exactly half-set: this is scenario S4 from
	// the governing spec (§8), BitVariance must land exactly at 0.5.
	got := metricBitVariance(Sample{Cipher: bytes.Repeat([]byte{0xAA}, 1024)})
	qt.Assert(t, qt.Equals(got, 0.5))
}

func TestEntropyOfUniformBufferIsHigh(t *testing.T) {
	got := metricEntropy(Sample{Cipher: uniformCipher(2048)})
	qt.Assert(t, qt.IsTrue(got > 7.9))
}

func TestPeriodicityChecksDetectsRepeatingBuffer(t *testing.T) {
	periodic := bytes.Repeat([]byte{1, 2, 3, 4}, 32)
	got := metricPeriodicityCheck(Sample{Cipher: periodic})
	qt.Assert(t, qt.IsTrue(got < 1.0))

	nonPeriodic := uniformCipher(128)
	got2 := metricPeriodicityCheck(Sample{Cipher: nonPeriodic})
	qt.Assert(t, qt.Equals(got2, 1.0))
}

func TestAvalancheAndKeyDependencyAreHammingPercentages(t *testing.T) {
	a := []byte{0x00, 0x00}
	b := []byte{0xFF, 0x00} // 8 of 16 bits differ
	got := metricAvalancheScore(Sample{AvalancheA: a, AvalancheB: b})
	qt.Assert(t, qt.Equals(got, 50.0))

	got2 := metricKeyDependency(Sample{KeyDependentA: a, KeyDependentB: b})
	qt.Assert(t, qt.Equals(got2, 50.0))
}

func TestRunProducesAReportForEveryMetric(t *testing.T) {
	sample := Sample{
		Input:         uniformCipher(256),
		Cipher:        uniformCipher(256),
		AvalancheA:    uniformCipher(256),
		AvalancheB:    bytes.Repeat([]byte{0x00}, 256),
		KeyDependentA: uniformCipher(256),
		KeyDependentB: bytes.Repeat([]byte{0xFF}, 256),
	}
	report := Run(sample, ModeCryptographic, ScoringMetric)
	qt.Assert(t, qt.Equals(len(report.Metrics), len(registry)))
	qt.Assert(t, qt.IsTrue(report.Aggregate >= 0 && report.Aggregate <= 100))
}

func TestRunPracticalModeStaysInBounds(t *testing.T) {
	sample := Sample{
		Input:         uniformCipher(256),
		Cipher:        uniformCipher(256),
		AvalancheA:    uniformCipher(256),
		AvalancheB:    bytes.Repeat([]byte{0x00}, 256),
		KeyDependentA: uniformCipher(256),
		KeyDependentB: bytes.Repeat([]byte{0xFF}, 256),
	}
	report := Run(sample, ModeExploratory, ScoringPractical)
	qt.Assert(t, qt.IsTrue(report.Aggregate >= 0 && report.Aggregate <= 100))
}

func TestZeroModeWeightsEverythingOut(t *testing.T) {
	sample := Sample{Cipher: uniformCipher(64)}
	report := Run(sample, ModeZero, ScoringMetric)
	qt.Assert(t, qt.Equals(report.Aggregate, 0.0))
}
