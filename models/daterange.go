package models

import "time"

// DateRange bounds both the price and the sentiment fetch. Instances are
// produced by analysis.ValidateRequest; a DateRange that exists has already
// passed the window rules and is never mutated afterwards.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the whole number of days between Start and End.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// CompactDateLayout is the wire format the sentiment service expects for
// time_from/time_to query parameters.
const CompactDateLayout = "20060102"
