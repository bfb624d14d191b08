package services

import (
	"context"
	"fmt"

	"stock-sentiment/analysis"
	"stock-sentiment/models"
	"stock-sentiment/observability"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// AlpacaService fetches daily closing prices from the Alpaca market-data
// API. Used instead of Yahoo when Alpaca credentials are configured.
type AlpacaService struct {
	dataClient *marketdata.Client
}

// NewAlpacaService creates a new AlpacaService instance
func NewAlpacaService(apiKey, apiSecret string) *AlpacaService {
	dataClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &AlpacaService{
		dataClient: dataClient,
	}
}

// FetchDailyCloses returns the daily closes for ticker over the window,
// ascending by trading day.
func (s *AlpacaService) FetchDailyCloses(ctx context.Context, ticker string, window models.DateRange) (models.PriceSeries, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerAlpaca, "daily_closes")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI(BreakerAlpaca, "daily_closes")

	series, err := WithCircuitBreaker(ctx, BreakerAlpaca, func() (models.PriceSeries, error) {
		var result models.PriceSeries
		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			bars, err := s.dataClient.GetBars(ticker, marketdata.GetBarsRequest{
				TimeFrame: marketdata.OneDay,
				Start:     window.Start,
				End:       window.End,
			})
			if err != nil {
				return fmt.Errorf("failed to get daily bars for %s: %w", ticker, err)
			}

			points := make(models.PriceSeries, 0, len(bars))
			for _, bar := range bars {
				points = append(points, models.PricePoint{
					Date:  bar.Timestamp.UTC(),
					Close: decimal.NewFromFloat(bar.Close),
				})
			}

			result = points
			return nil
		})
		return result, err
	})

	if err != nil {
		metrics.RecordExternalAPIError(BreakerAlpaca, "daily_closes", "fetch")
		return nil, &analysis.FetchError{Source: "market data", Err: err}
	}

	return series, nil
}
