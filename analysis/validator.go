package analysis

import (
	"time"

	"stock-sentiment/models"
)

// MinWindowDays is the smallest gap allowed between start and end. The
// sentiment service returns too little signal below a month to be worth
// charting.
const MinWindowDays = 29

// Clock supplies the current time. Injected so the future-date rules are
// testable.
type Clock func() time.Time

// ValidateRequest gates all downstream work. It checks completeness first,
// then the date-range rules in a fixed order where the first failure wins:
// window too short, start in future, end in future, identical dates, end
// before start. The gap check deliberately runs before the ordering checks,
// so a reversed pair of dates less than MinWindowDays apart reports a short
// window, not a reversed range.
func ValidateRequest(company, ticker string, start, end time.Time, now Clock) (models.DateRange, error) {
	var missing []string
	if company == "" {
		missing = append(missing, "company name")
	}
	if ticker == "" {
		missing = append(missing, "ticker")
	}
	if start.IsZero() {
		missing = append(missing, "start date")
	}
	if end.IsZero() {
		missing = append(missing, "end date")
	}
	if len(missing) > 0 {
		return models.DateRange{}, &IncompleteInputError{Missing: missing}
	}

	if end.Sub(start) < MinWindowDays*24*time.Hour {
		return models.DateRange{}, &ValidationError{
			Reason:  ReasonWindowTooShort,
			Message: "the gap between start date and end date should be at least 30 days",
		}
	}

	today := truncateToDate(now())
	if start.After(today) {
		return models.DateRange{}, &ValidationError{
			Reason:  ReasonStartInFuture,
			Message: "start date cannot be in the future",
		}
	}
	if end.After(today) {
		return models.DateRange{}, &ValidationError{
			Reason:  ReasonEndInFuture,
			Message: "end date cannot be in the future",
		}
	}
	if start.Equal(end) {
		return models.DateRange{}, &ValidationError{
			Reason:  ReasonIdenticalDates,
			Message: "start date and end date cannot be the same",
		}
	}
	if start.After(end) {
		return models.DateRange{}, &ValidationError{
			Reason:  ReasonEndBeforeStart,
			Message: "end date must be after the start date",
		}
	}

	return models.DateRange{Start: start, End: end}, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
