// Package presentation maps analysis reports into renderable chart
// specifications, summary figures and an HTML-safe table. It never talks to
// the network and carries no global state; all display policy lives in the
// Config handed to NewAdapter.
package presentation

import (
	"fmt"
	"math"

	"stock-sentiment/analysis"
	"stock-sentiment/models"
)

// Config holds the display settings for one adapter instance.
type Config struct {
	DateFormat     string // price chart x labels
	DateTimeFormat string // sentiment timestamps
	TickFormat     string // sentiment chart tick format hint for the frontend
}

// DefaultConfig returns the adapter settings used by the dashboard.
func DefaultConfig() Config {
	return Config{
		DateFormat:     "2006-01-02",
		DateTimeFormat: "2006-01-02 15:04",
		TickFormat:     "%Y-%m-%d %H:%M",
	}
}

// Adapter turns reports into views.
type Adapter struct {
	cfg Config
}

// NewAdapter creates an Adapter with the given display settings.
func NewAdapter(cfg Config) *Adapter {
	if cfg.DateFormat == "" {
		cfg.DateFormat = DefaultConfig().DateFormat
	}
	if cfg.DateTimeFormat == "" {
		cfg.DateTimeFormat = DefaultConfig().DateTimeFormat
	}
	if cfg.TickFormat == "" {
		cfg.TickFormat = DefaultConfig().TickFormat
	}
	return &Adapter{cfg: cfg}
}

// KPI is one of the three summary figures shown above the table.
type KPI struct {
	Label    string          `json:"label"`
	Polarity models.Polarity `json:"polarity"`
	Value    float64         `json:"value"`
}

// ReportView is everything the dashboard needs to render one analysis run.
// Nil chart specs mean the corresponding chart is skipped, not an error.
type ReportView struct {
	ReportID       string           `json:"report_id"`
	Company        string           `json:"company"`
	Ticker         string           `json:"ticker"`
	Window         models.DateRange `json:"window"`
	PriceChart     *ChartSpec       `json:"price_chart,omitempty"`
	SentimentChart *ChartSpec       `json:"sentiment_chart,omitempty"`
	KPIs           []KPI            `json:"kpis"`
	Table          []TableRow       `json:"table"`
}

// BuildReportView assembles the full view for one report. The three KPIs
// are always present in fixed order, zero-valued when a polarity class had
// no items.
func (a *Adapter) BuildReportView(report *analysis.Report) *ReportView {
	kpis := make([]KPI, 0, 3)
	for _, p := range models.Polarities() {
		kpis = append(kpis, KPI{
			Label:    fmt.Sprintf("Average %s Sentiment Score", titleCase(string(p))),
			Polarity: p,
			Value:    round2(report.Aggregate[p]),
		})
	}

	return &ReportView{
		ReportID:       report.ID,
		Company:        report.Company,
		Ticker:         report.Ticker,
		Window:         report.Window,
		PriceChart:     a.buildPriceChart(report.Prices),
		SentimentChart: a.buildSentimentChart(report.Sentiment),
		KPIs:           kpis,
		Table:          a.buildTable(report.Sentiment),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
