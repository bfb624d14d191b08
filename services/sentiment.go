package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stock-sentiment/analysis"
	"stock-sentiment/models"
	"stock-sentiment/observability"

	"github.com/go-resty/resty/v2"
)

// DefaultSentimentLimit is the number of news items requested when the
// caller does not specify one.
const DefaultSentimentLimit = 10

// SentimentAPIService is the client for the finance-news sentiment service.
// The service returns recent news records with a model-assigned sentiment
// label and score.
type SentimentAPIService struct {
	client *resty.Client
}

// NewSentimentAPIService creates a new SentimentAPIService instance
func NewSentimentAPIService(baseURL string, timeout time.Duration) *SentimentAPIService {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)

	return &SentimentAPIService{
		client: client,
	}
}

// sentimentRecord mirrors the service's wire format. Keys carry the
// service's display-oriented column names; Preprocessed is model-internal
// and dropped on conversion.
type sentimentRecord struct {
	Headline       string  `json:"Headline"`
	Summary        string  `json:"Summary"`
	Source         string  `json:"Source"`
	URL            string  `json:"URL"`
	TimePublished  string  `json:"Time Published"`
	ModelSentiment string  `json:"Model Sentiment"`
	SentimentScore float64 `json:"Model Sentiment Score"`
	Preprocessed   string  `json:"Preprocessed"`
}

// FetchSentiment returns up to limit sentiment-scored news items for the
// company over the window. Dates are encoded compactly (YYYYMMDD) in the
// query string. A non-success status is a FetchError and is not retried;
// the service owns its own retry policy. A success response with zero items
// is a valid empty series.
//
// Timestamps come back raw; the analysis normalizer owns parsing them.
func (s *SentimentAPIService) FetchSentiment(ctx context.Context, company, ticker string, window models.DateRange, limit int) (models.SentimentSeries, error) {
	if limit <= 0 {
		limit = DefaultSentimentLimit
	}
	if limit > 100 {
		limit = 100
	}

	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerSentiment, "news")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI(BreakerSentiment, "news")

	series, err := WithCircuitBreaker(ctx, BreakerSentiment, func() (models.SentimentSeries, error) {
		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"company_name":   company,
				"company_ticker": ticker,
				"time_from":      window.Start.Format(models.CompactDateLayout),
				"time_to":        window.End.Format(models.CompactDateLayout),
				"limit":          strconv.Itoa(limit),
			}).
			Get("/")

		if err != nil {
			return nil, fmt.Errorf("failed to fetch sentiment for %s: %w", ticker, err)
		}

		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("sentiment service returned status %d", resp.StatusCode())
		}

		var records []sentimentRecord
		if err := json.Unmarshal(resp.Body(), &records); err != nil {
			return nil, fmt.Errorf("failed to parse sentiment response: %w", err)
		}

		items := make(models.SentimentSeries, 0, len(records))
		for _, rec := range records {
			// The polarity enum is closed; everything downstream switches
			// over it exhaustively, so off-enum labels stop here.
			polarity := models.Polarity(strings.ToLower(rec.ModelSentiment))
			if !polarity.Valid() {
				observability.Warn("dropping news item, unknown sentiment label",
					"ticker", ticker,
					"label", rec.ModelSentiment,
					"headline", rec.Headline)
				metrics.RecordUnknownSentimentLabel(ticker)
				continue
			}

			items = append(items, models.SentimentItem{
				Headline:         rec.Headline,
				Summary:          rec.Summary,
				Source:           rec.Source,
				URL:              rec.URL,
				RawTimePublished: rec.TimePublished,
				Polarity:         polarity,
				Score:            rec.SentimentScore,
			})
		}

		return items, nil
	})

	if err != nil {
		metrics.RecordExternalAPIError(BreakerSentiment, "news", "fetch")
		return nil, &analysis.FetchError{Source: "sentiment", Err: err}
	}

	return series, nil
}
