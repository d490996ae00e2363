package utils

import (
	"fmt"
	"math"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Warn   WarningSeverity = "warning"
	Danger WarningSeverity = "danger"
)

// Warning is a structured finding returned by the API.
type Warning struct {
	Code           string          `json:"code"`
	Severity       WarningSeverity `json:"type"`
	Message        string          `json:"message"`
	Metric         string          `json:"metric,omitempty"`
	Value          float64         `json:"value,omitempty"`
	Limit          float64         `json:"limit,omitempty"`
	PercentOfLimit float64         `json:"percent_of_limit,omitempty"`
}

// RapidChangeLimitPct is the largest weight change between two consecutive
// entries that does not raise a warning.
const RapidChangeLimitPct = 2.0

// WeightChangeWarning compares two consecutive weights. Gains are flagged as
// danger, losses as warning.
func WeightChangeWarning(prev, curr float64) (Warning, bool) {
	if prev <= 0 {
		return Warning{}, false
	}
	pct := (curr - prev) / prev * 100
	if math.Abs(pct) <= RapidChangeLimitPct {
		return Warning{}, false
	}
	kind, sev := "loss", Warn
	if pct > 0 {
		kind, sev = "gain", Danger
	}
	return Warning{
		Code:           "rapid_weight_" + kind,
		Severity:       sev,
		Message:        fmt.Sprintf("Rapid weight %s detected (%.1f%% in one week). Please consult a doctor.", kind, pct),
		Metric:         "weight_change_pct",
		Value:          round2(pct),
		Limit:          RapidChangeLimitPct,
		PercentOfLimit: round2(math.Abs(pct) / RapidChangeLimitPct * 100),
	}, true
}

// WeightChangeWarnings scans an ordered series of weights.
func WeightChangeWarnings(weights []float64) []Warning {
	out := []Warning{}
	for i := 1; i < len(weights); i++ {
		if w, ok := WeightChangeWarning(weights[i-1], weights[i]); ok {
			out = append(out, w)
		}
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
