package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"stock-sentiment/models"
	"stock-sentiment/observability"

	"github.com/google/uuid"
)

// PriceFetcher retrieves daily closing prices for a ticker over a validated
// window. An empty series is a valid result; errors are *FetchError.
type PriceFetcher interface {
	FetchDailyCloses(ctx context.Context, ticker string, window models.DateRange) (models.PriceSeries, error)
}

// SentimentFetcher retrieves up to limit sentiment-scored news items scoped
// by company, ticker and window.
type SentimentFetcher interface {
	FetchSentiment(ctx context.Context, company, ticker string, window models.DateRange, limit int) (models.SentimentSeries, error)
}

// Phase marks pipeline progress for the caller's state machine.
type Phase string

const (
	PhaseValidating Phase = "validating"
	PhaseFetching   Phase = "fetching"
)

// PhaseFunc observes phase transitions. May be nil.
type PhaseFunc func(Phase)

// Request is one user submission, already parsed from the transport layer.
// Zero time values mean the field was unset.
type Request struct {
	Company string
	Ticker  string
	Start   time.Time
	End     time.Time
	Limit   int
}

// Report is the outcome of one analysis run. Prices and Sentiment share only
// the (company, ticker, window) scoping; there is no row-level join between
// them.
type Report struct {
	ID          string                    `json:"id"`
	Company     string                    `json:"company"`
	Ticker      string                    `json:"ticker"`
	Window      models.DateRange          `json:"window"`
	Prices      models.PriceSeries        `json:"prices"`
	Sentiment   models.SentimentSeries    `json:"sentiment"`
	Aggregate   models.SentimentAggregate `json:"aggregate"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// Pipeline wires the validator, the two fetchers, the timestamp normalizer
// and the aggregator into one validate-fetch-normalize-aggregate pass.
type Pipeline struct {
	prices       PriceFetcher
	sentiment    SentimentFetcher
	now          Clock
	defaultLimit int
}

// NewPipeline creates a pipeline. now may be nil to use the wall clock.
func NewPipeline(prices PriceFetcher, sentiment SentimentFetcher, defaultLimit int, now Clock) *Pipeline {
	if now == nil {
		now = time.Now
	}
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &Pipeline{
		prices:       prices,
		sentiment:    sentiment,
		now:          now,
		defaultLimit: defaultLimit,
	}
}

// Run executes one analysis pass. Both fetches run concurrently; they have
// no data dependency on each other. Failure is all-or-nothing: if either
// fetch errors, the run is abandoned and partial results are discarded.
//
// A malformed sentiment timestamp does not fail the run. The sentiment
// series degrades to empty so the dashboard still renders; the loss is
// logged and counted so operators can see it.
func (p *Pipeline) Run(ctx context.Context, req Request, onPhase PhaseFunc) (*Report, error) {
	metrics := observability.GetMetrics()
	metrics.RecordAnalysisRequest(req.Ticker)
	timer := metrics.NewTimer()

	notify := func(ph Phase) {
		if onPhase != nil {
			onPhase(ph)
		}
	}

	notify(PhaseValidating)
	window, err := ValidateRequest(req.Company, req.Ticker, req.Start, req.End, p.now)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			metrics.RecordValidationRejection(string(verr.Reason))
		} else {
			metrics.RecordValidationRejection("incomplete_input")
		}
		timer.ObserveAnalysis(req.Ticker, "rejected")
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = p.defaultLimit
	}

	notify(PhaseFetching)
	var (
		wg           sync.WaitGroup
		prices       models.PriceSeries
		priceErr     error
		sentiment    models.SentimentSeries
		sentimentErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		prices, priceErr = p.prices.FetchDailyCloses(ctx, req.Ticker, window)
	}()
	go func() {
		defer wg.Done()
		sentiment, sentimentErr = p.sentiment.FetchSentiment(ctx, req.Company, req.Ticker, window, limit)
	}()
	wg.Wait()

	if priceErr != nil {
		timer.ObserveAnalysis(req.Ticker, "error")
		metrics.RecordAnalysisError(req.Ticker, "price_fetch")
		return nil, priceErr
	}
	if sentimentErr != nil {
		timer.ObserveAnalysis(req.Ticker, "error")
		metrics.RecordAnalysisError(req.Ticker, "sentiment_fetch")
		return nil, sentimentErr
	}

	normalized, err := NormalizeTimestamps(sentiment)
	if err != nil {
		var ferr *FormatError
		if errors.As(err, &ferr) {
			observability.Warn("dropping sentiment series, malformed timestamp",
				"ticker", req.Ticker,
				"value", ferr.Value,
				"error", ferr.Err)
			metrics.RecordMalformedTimestamp(req.Ticker)
			normalized = models.SentimentSeries{}
		} else {
			timer.ObserveAnalysis(req.Ticker, "error")
			return nil, err
		}
	}

	metrics.RecordSentimentItems(req.Ticker, len(normalized))

	report := &Report{
		ID:          uuid.NewString(),
		Company:     req.Company,
		Ticker:      req.Ticker,
		Window:      window,
		Prices:      prices,
		Sentiment:   normalized,
		Aggregate:   Aggregate(normalized),
		GeneratedAt: p.now(),
	}

	timer.ObserveAnalysis(req.Ticker, "success")
	return report, nil
}
