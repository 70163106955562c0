package mango

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestTSVCacheKeyIncludesPerformanceTier(t *testing.T) {
	tsv := ComputeTSV([]byte("hello"))
	fast := tsvCacheKey(tsv, PerformanceFast)
	best := tsvCacheKey(tsv, PerformanceBest)
	qt.Assert(t, qt.Not(qt.Equals(fast, best)))
}

func TestProfileEligibleRespectsSuffixedTiers(t *testing.T) {
	qt.Assert(t, qt.IsTrue(profileEligible("Combined", PerformanceFast)))
	qt.Assert(t, qt.IsTrue(profileEligible("Combined", PerformanceBest)))
	qt.Assert(t, qt.IsTrue(profileEligible("TextSafe.Fast", PerformanceFast)))
	qt.Assert(t, qt.IsFalse(profileEligible("TextSafe.Fast", PerformanceBest)))
	qt.Assert(t, qt.IsTrue(profileEligible("Cryptographic.Best", PerformanceBest)))
	qt.Assert(t, qt.IsFalse(profileEligible("Cryptographic.Best", PerformanceFast)))
}

func TestGetInputProfileFallsBackAndCaches(t *testing.T) {
	input := []byte("a short sample input for profile selection")
	profile, err := GetInputProfile(input, testWeighting(), ScoringMetric, PerformanceBest)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(len(profile.Sequence) > 0))

	tsv := ComputeTSV(input)
	key := tsvCacheKey(tsv, PerformanceBest)
	_, ok := selectorCache.Get(key)
	qt.Assert(t, qt.IsTrue(ok))

	// A second call for the same input/tier must hit the cache and
	// return the identical profile without re-scoring.
	again, err := GetInputProfile(input, testWeighting(), ScoringMetric, PerformanceBest)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(again.Name, profile.Name))
}

// testWeighting picks a representative weighting mode for the selector
// tests; the full per-mode weight tables are exercised in
// internal/scorer's own test suite.
func testWeighting() Weighting {
	return "Cryptographic"
}
