package presentation

import (
	"stock-sentiment/models"
)

// ChartSpec is a renderable chart description in the shape the frontend
// plotting library consumes: a list of traces plus a layout.
type ChartSpec struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one plotted series.
type Trace struct {
	Type   string    `json:"type"`
	Name   string    `json:"name"`
	Mode   string    `json:"mode,omitempty"`
	X      []string  `json:"x"`
	Y      []float64 `json:"y"`
	Marker *Marker   `json:"marker,omitempty"`
}

// Marker styles a trace.
type Marker struct {
	Color string `json:"color"`
}

// Layout describes titles and axes.
type Layout struct {
	Title   string `json:"title"`
	XAxis   Axis   `json:"xaxis"`
	YAxis   Axis   `json:"yaxis"`
	BarMode string `json:"barmode,omitempty"`
}

// Axis describes one chart axis.
type Axis struct {
	Title      string `json:"title"`
	TickFormat string `json:"tickformat,omitempty"`
	Type       string `json:"type,omitempty"`
	FixedRange bool   `json:"fixedrange,omitempty"`
}

// chartColor returns the bar color for a polarity class. The enum is
// closed, so the switch is exhaustive; there is no unknown-label fallback.
func chartColor(p models.Polarity) string {
	switch p {
	case models.PolarityPositive:
		return "green"
	case models.PolarityNegative:
		return "red"
	case models.PolarityNeutral:
		return "orange"
	}
	panic("unreachable polarity: " + string(p))
}

// buildPriceChart maps a price series to a line chart. Returns nil for an
// empty series; the frontend skips the chart rather than drawing an empty
// frame.
func (a *Adapter) buildPriceChart(series models.PriceSeries) *ChartSpec {
	if len(series) == 0 {
		return nil
	}

	x := make([]string, len(series))
	y := make([]float64, len(series))
	for i, p := range series {
		x[i] = p.Date.Format(a.cfg.DateFormat)
		y[i] = p.Close.InexactFloat64()
	}

	return &ChartSpec{
		Data: []Trace{
			{
				Type: "scatter",
				Name: "Stock Price",
				Mode: "lines",
				X:    x,
				Y:    y,
			},
		},
		Layout: Layout{
			Title: "Stock Price",
			XAxis: Axis{Title: "Date"},
			YAxis: Axis{Title: "Price"},
		},
	}
}

// buildSentimentChart maps a normalized sentiment series to a grouped bar
// chart, one trace per polarity class in fixed order. Classes with no items
// contribute no trace.
func (a *Adapter) buildSentimentChart(series models.SentimentSeries) *ChartSpec {
	if len(series) == 0 {
		return nil
	}

	spec := &ChartSpec{
		Layout: Layout{
			Title:   "Sentiment Analysis",
			XAxis:   Axis{Title: "Date and Time", TickFormat: a.cfg.TickFormat, Type: "category"},
			YAxis:   Axis{Title: "Score", FixedRange: true},
			BarMode: "group",
		},
	}

	for _, p := range models.Polarities() {
		var x []string
		var y []float64
		for _, item := range series {
			if item.Polarity != p {
				continue
			}
			x = append(x, item.TimePublished.Format(a.cfg.DateTimeFormat))
			y = append(y, item.Score)
		}
		if len(x) == 0 {
			continue
		}
		spec.Data = append(spec.Data, Trace{
			Type:   "bar",
			Name:   titleCase(string(p)),
			X:      x,
			Y:      y,
			Marker: &Marker{Color: chartColor(p)},
		})
	}

	return spec
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
