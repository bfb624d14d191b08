package services

import (
	"context"
	"fmt"
	"time"

	"stock-sentiment/analysis"
	"stock-sentiment/models"
	"stock-sentiment/observability"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// YahooService fetches daily closing prices from Yahoo Finance. It needs no
// API key and is the default price provider.
type YahooService struct{}

// NewYahooService creates a new YahooService instance
func NewYahooService() *YahooService {
	return &YahooService{}
}

// FetchDailyCloses returns the daily closes for ticker over the window,
// ascending by trading day. Days the market was closed are absent. A ticker
// with no data in the window yields an empty, non-error series.
func (s *YahooService) FetchDailyCloses(ctx context.Context, ticker string, window models.DateRange) (models.PriceSeries, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerYahoo, "daily_closes")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI(BreakerYahoo, "daily_closes")

	series, err := WithCircuitBreaker(ctx, BreakerYahoo, func() (models.PriceSeries, error) {
		var result models.PriceSeries
		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			start := window.Start
			end := window.End
			params := &chart.Params{
				Symbol:   ticker,
				Start:    datetime.New(&start),
				End:      datetime.New(&end),
				Interval: datetime.OneDay,
			}

			iter := chart.Get(params)

			points := make(models.PriceSeries, 0)
			for iter.Next() {
				bar := iter.Bar()
				points = append(points, models.PricePoint{
					Date:  time.Unix(int64(bar.Timestamp), 0).UTC(),
					Close: bar.Close,
				})
			}

			if err := iter.Err(); err != nil {
				return fmt.Errorf("failed to get daily bars for %s: %w", ticker, err)
			}

			result = points
			return nil
		})
		return result, err
	})

	if err != nil {
		metrics.RecordExternalAPIError(BreakerYahoo, "daily_closes", "fetch")
		return nil, &analysis.FetchError{Source: "market data", Err: err}
	}

	return series, nil
}
