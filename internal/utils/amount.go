package utils

import (
	"math"
	"strconv"
	"strings"
)

// SquareFeetPerAcre is the conversion factor for acreage phrases.
const SquareFeetPerAcre = 43560.0

// ParseAmount parses a human-written currency or quantity string. Commas and
// spaces are stripped, a case-insensitive k/m/mill suffix multiplies by
// 1,000 / 1,000,000, and anything else is parsed as a bare decimal. Returns
// nil when the value is not numeric; callers must treat nil as "no
// constraint", never as zero.
func ParseAmount(s string) *float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "mill"):
		multiplier = 1000000
		s = strings.TrimSuffix(s, "mill")
	case strings.HasSuffix(s, "m"):
		multiplier = 1000000
		s = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "k"):
		multiplier = 1000
		s = strings.TrimSuffix(s, "k")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil
	}

	value *= multiplier
	return &value
}

// AcresToSquareFeet converts acreage to square feet.
func AcresToSquareFeet(acres float64) float64 {
	return acres * SquareFeetPerAcre
}
