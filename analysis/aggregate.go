package analysis

import "stock-sentiment/models"

// Aggregate computes the arithmetic mean score per polarity class. The
// result always carries exactly the three polarity keys; a class with no
// items reports 0 so the dashboard can lay out its three summary figures
// regardless of data sparsity.
func Aggregate(series models.SentimentSeries) models.SentimentAggregate {
	sums := make(map[models.Polarity]float64)
	counts := make(map[models.Polarity]int)

	for _, item := range series {
		sums[item.Polarity] += item.Score
		counts[item.Polarity]++
	}

	agg := make(models.SentimentAggregate, 3)
	for _, p := range models.Polarities() {
		if counts[p] > 0 {
			agg[p] = sums[p] / float64(counts[p])
		} else {
			agg[p] = 0
		}
	}

	return agg
}
