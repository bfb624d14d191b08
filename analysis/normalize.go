package analysis

import (
	"sort"
	"time"

	"stock-sentiment/models"
)

// CompactTimeLayout is the sentiment service's timestamp format,
// e.g. "20230101T141404".
const CompactTimeLayout = "20060102T150405"

// NormalizeTimestamps parses every item's compact time_published string into
// a structured time and returns a copy of the series sorted ascending by
// publication time. The sort is stable, so an already-ordered series comes
// back unchanged.
//
// If any value does not conform, the whole series is rejected with a
// FormatError. Chronological sort and x-axis alignment are undefined without
// this transform, so callers must not skip it.
func NormalizeTimestamps(series models.SentimentSeries) (models.SentimentSeries, error) {
	out := make(models.SentimentSeries, len(series))
	copy(out, series)

	for i := range out {
		ts, err := time.Parse(CompactTimeLayout, out[i].RawTimePublished)
		if err != nil {
			return nil, &FormatError{Value: out[i].RawTimePublished, Err: err}
		}
		out[i].TimePublished = ts
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimePublished.Before(out[j].TimePublished)
	})

	return out, nil
}
