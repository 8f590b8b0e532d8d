package recommend

import (
	"math"

	"myTerpMarket/domain"
)

// TerpeneSimilarity scores how close a candidate profile is to the target,
// in [0, 1]. For every terpene present in both profiles it computes a
// normalized closeness 1 - |a-b|/max(a,b) and averages across the shared
// set. No overlap, or either profile empty, scores 0: no data never claims
// similarity. Terpenes shared at exactly zero carry no signal and are
// excluded from the average.
func TerpeneSimilarity(target, candidate domain.TerpeneProfile) float64 {
	if len(target) == 0 || len(candidate) == 0 {
		return 0
	}

	sum := 0.0
	shared := 0

	for name, tv := range target {
		cv, ok := candidate[name]
		if !ok {
			continue
		}

		m := math.Max(tv, cv)
		if m <= 0 {
			continue
		}

		sum += 1 - math.Abs(tv-cv)/m
		shared++
	}

	if shared == 0 {
		return 0
	}

	score := sum / float64(shared)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// InventoryScore rates stock health as a step function. Very-low-stock items
// are deprioritized without being excluded, so a kiosk rarely recommends
// something that sells out mid-interaction.
func InventoryScore(level int) float64 {
	switch {
	case level <= 0:
		return 0
	case level <= 2:
		return 0.3
	case level <= 9:
		return 0.7
	default:
		return 1.0
	}
}
