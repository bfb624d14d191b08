package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one trading day's closing price.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// PriceSeries is an ascending-by-date sequence of daily closes. Non-trading
// days are simply absent; an empty series is a valid result, distinct from a
// fetch failure.
type PriceSeries []PricePoint
