package presentation

import (
	"html"

	"stock-sentiment/models"
)

// TableRow is one annotated row of the raw sentiment table. Text fields are
// HTML-escaped here so the frontend can inject them without further
// treatment; PolarityClass carries the CSS class that colors the label.
type TableRow struct {
	Headline      string          `json:"headline"`
	Summary       string          `json:"summary"`
	Source        string          `json:"source,omitempty"`
	URL           string          `json:"url,omitempty"`
	TimePublished string          `json:"time_published"`
	Polarity      models.Polarity `json:"sentiment"`
	PolarityClass string          `json:"sentiment_class"`
	Score         float64         `json:"score"`
}

// tableClass returns the CSS class for a polarity label in table context.
// Exhaustive over the closed enum.
func tableClass(p models.Polarity) string {
	switch p {
	case models.PolarityPositive:
		return "positive-sentiment"
	case models.PolarityNegative:
		return "negative-sentiment"
	case models.PolarityNeutral:
		return "neutral-sentiment"
	}
	panic("unreachable polarity: " + string(p))
}

// buildTable maps a normalized sentiment series to escaped table rows.
func (a *Adapter) buildTable(series models.SentimentSeries) []TableRow {
	rows := make([]TableRow, 0, len(series))
	for _, item := range series {
		rows = append(rows, TableRow{
			Headline:      html.EscapeString(item.Headline),
			Summary:       html.EscapeString(item.Summary),
			Source:        html.EscapeString(item.Source),
			URL:           html.EscapeString(item.URL),
			TimePublished: item.TimePublished.Format(a.cfg.DateTimeFormat),
			Polarity:      item.Polarity,
			PolarityClass: tableClass(item.Polarity),
			Score:         item.Score,
		})
	}
	return rows
}
