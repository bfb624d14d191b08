package models

import "time"

// Polarity is the sentiment classification of a news item. The set is
// closed; every switch over it is exhaustive and there is no fallback for
// unknown labels.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNeutral  Polarity = "neutral"
	PolarityNegative Polarity = "negative"
)

// Polarities returns all polarity classes in display order.
func Polarities() []Polarity {
	return []Polarity{PolarityPositive, PolarityNeutral, PolarityNegative}
}

// Valid reports whether p is one of the three known classes.
func (p Polarity) Valid() bool {
	switch p {
	case PolarityPositive, PolarityNeutral, PolarityNegative:
		return true
	}
	return false
}

// SentimentItem is one sentiment-scored news record. RawTimePublished holds
// the compact timestamp exactly as received from the service; TimePublished
// stays zero until the normalizer has parsed it. Headline, Summary, Source
// and URL are opaque passthrough for display.
type SentimentItem struct {
	Headline         string    `json:"headline"`
	Summary          string    `json:"summary"`
	Source           string    `json:"source,omitempty"`
	URL              string    `json:"url,omitempty"`
	RawTimePublished string    `json:"time_published"`
	TimePublished    time.Time `json:"published_at"`
	Polarity         Polarity  `json:"sentiment"`
	Score            float64   `json:"sentiment_score"`
}

// SentimentSeries holds the scored news items for one query. Source order is
// not guaranteed; the pipeline re-sorts ascending by TimePublished once the
// timestamps have been normalized.
type SentimentSeries []SentimentItem

// SentimentAggregate maps every polarity class to the mean score over the
// items in that class. All three keys are always present; a class with no
// items reports 0. The zero is a display simplification, not a statistical
// statement.
type SentimentAggregate map[Polarity]float64
