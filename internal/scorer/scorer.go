// Package scorer implements the cryptanalysis metric battery used to
// compare candidate transform profiles: a fixed registry of named
// metrics, each with a baseline/threshold and leniency band, combined
// into either a weighted "Metric" score or a pass/fail "Practical"
// band score.
package scorer

import "math"

// Mode is the operating mode a metric's weight table is drawn from.
type Mode string

const (
	ModeCryptographic Mode = "Cryptographic"
	ModeExploratory   Mode = "Exploratory"
	ModeFlattening    Mode = "Flattening"
	ModeNone          Mode = "None"
	ModeZero          Mode = "Zero"
)

// Scoring selects which aggregation rule combines the per-metric
// results into a single 0-100 score.
type Scoring int

const (
	ScoringMetric Scoring = iota
	ScoringPractical
)

// Sample bundles the byte streams a full metric pass needs.
type Sample struct {
	Input         []byte
	Cipher        []byte
	AvalancheA    []byte // cipher(input)
	AvalancheB    []byte // cipher(input with one bit flipped)
	KeyDependentA []byte // cipher(input) under the base key
	KeyDependentB []byte // cipher(input) under a one-byte-perturbed key
}

// metricDef is one entry in the fixed metric registry.
type metricDef struct {
	name             string
	baseline         float64
	leniency         float64
	twoSided         bool
	maxValue         float64
	compute          func(Sample) float64
}

var registry = []metricDef{
	{name: "Entropy", baseline: 7.9523, leniency: 0, twoSided: false, maxValue: 8.0, compute: metricEntropy},
	{name: "BitVariance", baseline: 0.5003, leniency: 0.002, twoSided: true, maxValue: 1.0, compute: metricBitVariance},
	{name: "SlidingWindow", baseline: 0.9027, leniency: 0.005, twoSided: true, maxValue: 1.0, compute: metricSlidingWindow},
	{name: "FrequencyDistribution", baseline: 0.7426, leniency: 0.010, twoSided: true, maxValue: 1.0, compute: metricFrequencyDistribution},
	{name: "PeriodicityCheck", baseline: 1.0, leniency: 0, twoSided: false, maxValue: 1.0, compute: metricPeriodicityCheck},
	{name: "MangosCorrelation", baseline: 0.0, leniency: 0.05, twoSided: true, maxValue: 1.0, compute: metricMangosCorrelation},
	{name: "PositionalMapping", baseline: 0.0, leniency: 0.05, twoSided: true, maxValue: 1.0, compute: metricPositionalMapping},
	{name: "AvalancheScore", baseline: 50.0, leniency: 5.0, twoSided: true, maxValue: 100.0, compute: metricAvalancheScore},
	{name: "KeyDependency", baseline: 50.0, leniency: 5.0, twoSided: true, maxValue: 100.0, compute: metricKeyDependency},
}

// weightTables gives each metric's weight per operating mode. Modes
// not listed for a metric default to 0 (the metric still runs, but
// contributes nothing to the aggregate).
var weightTables = map[Mode]map[string]float64{
	ModeCryptographic: {
		"Entropy": 0.20, "BitVariance": 0.15, "SlidingWindow": 0.10,
		"FrequencyDistribution": 0.10, "PeriodicityCheck": 0.10,
		"MangosCorrelation": 0.10, "PositionalMapping": 0.05,
		"AvalancheScore": 0.10, "KeyDependency": 0.10,
	},
	ModeExploratory: {
		"Entropy": 0.10, "BitVariance": 0.10, "SlidingWindow": 0.10,
		"FrequencyDistribution": 0.10, "PeriodicityCheck": 0.05,
		"MangosCorrelation": 0.15, "PositionalMapping": 0.15,
		"AvalancheScore": 0.15, "KeyDependency": 0.10,
	},
	ModeFlattening: {
		"Entropy": 0.30, "BitVariance": 0.20, "SlidingWindow": 0.15,
		"FrequencyDistribution": 0.15, "PeriodicityCheck": 0.05,
		"MangosCorrelation": 0.05, "PositionalMapping": 0.0,
		"AvalancheScore": 0.05, "KeyDependency": 0.05,
	},
	ModeNone: {
		"Entropy": 1.0 / 9, "BitVariance": 1.0 / 9, "SlidingWindow": 1.0 / 9,
		"FrequencyDistribution": 1.0 / 9, "PeriodicityCheck": 1.0 / 9,
		"MangosCorrelation": 1.0 / 9, "PositionalMapping": 1.0 / 9,
		"AvalancheScore": 1.0 / 9, "KeyDependency": 1.0 / 9,
	},
	ModeZero: {},
}

// MetricResult is one metric's raw value, its reference threshold, and
// whether it passed its leniency band.
type MetricResult struct {
	Name      string
	Raw       float64
	Threshold float64
	Pass      bool
	Weight    float64
}

// Report is the full battery output for one sample.
type Report struct {
	Metrics   []MetricResult
	Aggregate float64
	PassCount int
}

// Run executes every registered metric against sample and aggregates
// the results per mode/scoring.
func Run(sample Sample, mode Mode, scoring Scoring) Report {
	weights := weightTables[mode]
	var rpt Report
	rpt.Metrics = make([]MetricResult, 0, len(registry))

	for _, m := range registry {
		raw := m.compute(sample)
		threshold := m.baseline
		if !m.twoSided {
			threshold = m.baseline
		}
		pass := withinLeniency(raw, m)
		w := weights[m.name]
		rpt.Metrics = append(rpt.Metrics, MetricResult{
			Name: m.name, Raw: raw, Threshold: threshold, Pass: pass, Weight: w,
		})
		if pass {
			rpt.PassCount++
		}
	}

	switch scoring {
	case ScoringPractical:
		rpt.Aggregate = aggregatePractical(rpt.Metrics)
	default:
		rpt.Aggregate = aggregateMetric(rpt.Metrics)
	}
	return rpt
}

func withinLeniency(raw float64, m metricDef) bool {
	if m.twoSided {
		return math.Abs(raw-m.baseline) <= m.leniency
	}
	return raw >= m.baseline-m.leniency
}

// aggregateMetric implements the "Metric mode" rule: weighted sum of
// per-metric rescaled scores, then a logarithmic compression.
func aggregateMetric(metrics []MetricResult) float64 {
	var sum, totalWeight float64
	for _, m := range metrics {
		if m.Weight <= 0 {
			continue
		}
		def := lookupDef(m.Name)
		rescaled := rescale(m.Raw, def)
		sum += rescaled * m.Weight
		totalWeight += m.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	raw := sum / totalWeight
	if raw <= 0 {
		return 0
	}
	scaled := math.Log(raw) / math.Log(100) * 100
	return clamp(scaled, 0, 100)
}

// rescale linearly maps [threshold, maxValue] to [0, 100] when
// maxValue > threshold; otherwise it penalizes deviation from the
// threshold symmetrically.
func rescale(raw float64, def metricDef) float64 {
	threshold := def.baseline
	if def.maxValue > threshold {
		frac := (raw - threshold) / (def.maxValue - threshold)
		return clamp(frac*100, 0, 100)
	}
	delta := math.Abs(raw - threshold)
	return clamp(100-delta*100, 0, 100)
}

// aggregatePractical implements the "Practical mode" rule: banded
// pass/fail scoring plus a bounded overperformance bonus, normalized by
// weight.
func aggregatePractical(metrics []MetricResult) float64 {
	var sum, totalWeight float64
	for _, m := range metrics {
		if m.Weight <= 0 {
			continue
		}
		def := lookupDef(m.Name)
		reference := def.baseline
		deltaFrac := 0.0
		if reference != 0 {
			deltaFrac = math.Abs(m.Raw-reference) / math.Abs(reference)
		} else {
			deltaFrac = math.Abs(m.Raw - reference)
		}

		band := bandScore(m.Pass, deltaFrac)
		bonus := overperformanceBonus(deltaFrac, m.Weight)
		sum += (band + bonus) * m.Weight
		totalWeight += m.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return clamp(sum/totalWeight, 0, 100)
}

func bandScore(pass bool, deltaFrac float64) float64 {
	switch {
	case pass && deltaFrac <= 0.01:
		return 100
	case pass && deltaFrac <= 0.03:
		return 90
	case pass:
		return 70
	case deltaFrac <= 0.03:
		return 50
	case deltaFrac <= 0.20:
		return 20
	default:
		return 0
	}
}

// overperformanceBonus is a sigmoid centered at 5% normalized delta
// with steepness 20, capped at +2.0 and weighted by min(weight/0.20, 1.0).
func overperformanceBonus(deltaFrac float64, weight float64) float64 {
	sigmoid := 1 / (1 + math.Exp(-20*(deltaFrac-0.05)))
	scale := weight / 0.20
	if scale > 1.0 {
		scale = 1.0
	}
	return 2.0 * sigmoid * scale
}

func lookupDef(name string) metricDef {
	for _, m := range registry {
		if m.name == name {
			return m
		}
	}
	return metricDef{}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
