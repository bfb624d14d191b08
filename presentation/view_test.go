package presentation

import (
	"strings"
	"testing"
	"time"

	"stock-sentiment/analysis"
	"stock-sentiment/models"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleReport() *analysis.Report {
	return &analysis.Report{
		ID:      "report-1",
		Company: "Apple Inc.",
		Ticker:  "AAPL",
		Window:  models.DateRange{Start: day("2023-01-01"), End: day("2023-03-01")},
		Prices: models.PriceSeries{
			{Date: day("2023-01-03"), Close: decimal.NewFromFloat(130.5)},
			{Date: day("2023-01-04"), Close: decimal.NewFromFloat(131.25)},
		},
		Sentiment: models.SentimentSeries{
			{
				Headline:      "Apple beats estimates",
				Summary:       "Strong quarter.",
				TimePublished: time.Date(2023, 1, 5, 14, 14, 0, 0, time.UTC),
				Polarity:      models.PolarityPositive,
				Score:         0.8,
			},
			{
				Headline:      "Supply concerns linger",
				Summary:       "Component shortages.",
				TimePublished: time.Date(2023, 2, 10, 9, 0, 0, 0, time.UTC),
				Polarity:      models.PolarityNegative,
				Score:         0.5,
			},
		},
		Aggregate: models.SentimentAggregate{
			models.PolarityPositive: 0.8,
			models.PolarityNeutral:  0,
			models.PolarityNegative: 0.5,
		},
	}
}

func TestBuildReportView(t *testing.T) {
	view := NewAdapter(DefaultConfig()).BuildReportView(sampleReport())

	if view.ReportID != "report-1" || view.Ticker != "AAPL" {
		t.Errorf("report identity not carried over: %+v", view)
	}
	if view.PriceChart == nil {
		t.Fatal("expected a price chart")
	}
	if view.SentimentChart == nil {
		t.Fatal("expected a sentiment chart")
	}
	if len(view.KPIs) != 3 {
		t.Fatalf("expected 3 KPIs, got %d", len(view.KPIs))
	}
	if len(view.Table) != 2 {
		t.Fatalf("expected 2 table rows, got %d", len(view.Table))
	}
}

func TestKPIsFixedOrderAndRounding(t *testing.T) {
	report := sampleReport()
	report.Aggregate = models.SentimentAggregate{
		models.PolarityPositive: 0.70000000001,
		models.PolarityNeutral:  0,
		models.PolarityNegative: 0.456,
	}

	view := NewAdapter(DefaultConfig()).BuildReportView(report)

	wantLabels := []string{
		"Average Positive Sentiment Score",
		"Average Neutral Sentiment Score",
		"Average Negative Sentiment Score",
	}
	wantValues := []float64{0.70, 0, 0.46}

	for i, kpi := range view.KPIs {
		if kpi.Label != wantLabels[i] {
			t.Errorf("KPI %d label: expected %q, got %q", i, wantLabels[i], kpi.Label)
		}
		if kpi.Value != wantValues[i] {
			t.Errorf("KPI %d value: expected %v, got %v", i, wantValues[i], kpi.Value)
		}
	}
}

func TestPriceChartShape(t *testing.T) {
	view := NewAdapter(DefaultConfig()).BuildReportView(sampleReport())

	chart := view.PriceChart
	if len(chart.Data) != 1 {
		t.Fatalf("expected 1 trace, got %d", len(chart.Data))
	}
	trace := chart.Data[0]
	if trace.Type != "scatter" || trace.Mode != "lines" {
		t.Errorf("expected a scatter/lines trace, got %s/%s", trace.Type, trace.Mode)
	}
	if trace.X[0] != "2023-01-03" {
		t.Errorf("expected formatted date, got %q", trace.X[0])
	}
	if trace.Y[0] != 130.5 {
		t.Errorf("expected close 130.5, got %v", trace.Y[0])
	}
}

func TestPriceChartNilOnEmptySeries(t *testing.T) {
	report := sampleReport()
	report.Prices = nil

	view := NewAdapter(DefaultConfig()).BuildReportView(report)
	if view.PriceChart != nil {
		t.Error("expected nil price chart for an empty series")
	}
}

func TestSentimentChartTraceColors(t *testing.T) {
	report := sampleReport()
	report.Sentiment = append(report.Sentiment, models.SentimentItem{
		Headline:      "Mixed outlook",
		TimePublished: time.Date(2023, 2, 20, 10, 0, 0, 0, time.UTC),
		Polarity:      models.PolarityNeutral,
		Score:         0.3,
	})

	view := NewAdapter(DefaultConfig()).BuildReportView(report)
	chart := view.SentimentChart

	wantColors := map[string]string{
		"Positive": "green",
		"Neutral":  "orange",
		"Negative": "red",
	}

	if len(chart.Data) != 3 {
		t.Fatalf("expected 3 traces, got %d", len(chart.Data))
	}
	for _, trace := range chart.Data {
		if trace.Type != "bar" {
			t.Errorf("expected bar trace, got %s", trace.Type)
		}
		if trace.Marker == nil || trace.Marker.Color != wantColors[trace.Name] {
			t.Errorf("trace %s: expected color %s, got %+v", trace.Name, wantColors[trace.Name], trace.Marker)
		}
	}
	if chart.Layout.BarMode != "group" {
		t.Errorf("expected grouped bars, got %q", chart.Layout.BarMode)
	}
}

func TestSentimentChartSkipsEmptyClasses(t *testing.T) {
	view := NewAdapter(DefaultConfig()).BuildReportView(sampleReport())

	// The sample has no neutral items, so only two traces.
	chart := view.SentimentChart
	if len(chart.Data) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(chart.Data))
	}
	for _, trace := range chart.Data {
		if trace.Name == "Neutral" {
			t.Error("empty class must not contribute a trace")
		}
	}
}

func TestSentimentChartNilOnEmptySeries(t *testing.T) {
	report := sampleReport()
	report.Sentiment = nil

	view := NewAdapter(DefaultConfig()).BuildReportView(report)
	if view.SentimentChart != nil {
		t.Error("expected nil sentiment chart for an empty series")
	}
}

func TestTableRowsEscapedAndClassed(t *testing.T) {
	report := sampleReport()
	report.Sentiment = models.SentimentSeries{
		{
			Headline:      `<script>alert("x")</script>`,
			Summary:       "a & b",
			TimePublished: time.Date(2023, 1, 5, 14, 14, 0, 0, time.UTC),
			Polarity:      models.PolarityNeutral,
			Score:         0.3,
		},
	}

	view := NewAdapter(DefaultConfig()).BuildReportView(report)
	row := view.Table[0]

	if strings.Contains(row.Headline, "<script>") {
		t.Errorf("headline not escaped: %q", row.Headline)
	}
	if row.Summary != "a &amp; b" {
		t.Errorf("summary not escaped: %q", row.Summary)
	}
	if row.PolarityClass != "neutral-sentiment" {
		t.Errorf("expected neutral-sentiment class, got %q", row.PolarityClass)
	}
	if row.TimePublished != "2023-01-05 14:14" {
		t.Errorf("unexpected timestamp format %q", row.TimePublished)
	}
}

func TestTableClassPerPolarity(t *testing.T) {
	tests := []struct {
		polarity models.Polarity
		want     string
	}{
		{models.PolarityPositive, "positive-sentiment"},
		{models.PolarityNegative, "negative-sentiment"},
		{models.PolarityNeutral, "neutral-sentiment"},
	}

	for _, tt := range tests {
		if got := tableClass(tt.polarity); got != tt.want {
			t.Errorf("tableClass(%s) = %q, want %q", tt.polarity, got, tt.want)
		}
	}
}
