package services

import (
	"stock-sentiment/analysis"
)

// Compile-time verification that every client satisfies the pipeline
// contracts it claims to implement.
var _ analysis.PriceFetcher = (*YahooService)(nil)
var _ analysis.PriceFetcher = (*AlpacaService)(nil)
var _ analysis.SentimentFetcher = (*SentimentAPIService)(nil)
