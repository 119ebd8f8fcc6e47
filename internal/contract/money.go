package contract

import "math"

// RoundCents rounds an amount to two decimals, half away from zero. It is the
// only place money is rounded.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundTenths(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundAll[K ~string](m map[K]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[string(k)] = RoundCents(v)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
