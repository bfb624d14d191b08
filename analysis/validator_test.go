package analysis

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestValidateRequestAcceptsCompleteWindow(t *testing.T) {
	now := fixedClock(day("2023-06-15"))

	window, err := ValidateRequest("Apple Inc.", "AAPL", day("2023-01-01"), day("2023-03-01"), now)
	if err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if !window.Start.Equal(day("2023-01-01")) || !window.End.Equal(day("2023-03-01")) {
		t.Errorf("unexpected window %v", window)
	}
}

func TestValidateRequestMinimumGapBoundary(t *testing.T) {
	now := fixedClock(day("2023-06-15"))

	_, err := ValidateRequest("Apple Inc.", "AAPL", day("2023-01-01"), day("2023-01-30"), now)
	if err != nil {
		t.Fatalf("a gap of exactly %d days is valid, got %v", MinWindowDays, err)
	}
}

func TestValidateRequestIncompleteInput(t *testing.T) {
	now := fixedClock(day("2023-06-15"))

	tests := []struct {
		name    string
		company string
		ticker  string
		start   time.Time
		end     time.Time
		missing int
	}{
		{"all missing", "", "", time.Time{}, time.Time{}, 4},
		{"no company", "", "AAPL", day("2023-01-01"), day("2023-03-01"), 1},
		{"no ticker", "Apple Inc.", "", day("2023-01-01"), day("2023-03-01"), 1},
		{"no start", "Apple Inc.", "AAPL", time.Time{}, day("2023-03-01"), 1},
		{"no end", "Apple Inc.", "AAPL", day("2023-01-01"), time.Time{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRequest(tt.company, tt.ticker, tt.start, tt.end, now)

			var incomplete *IncompleteInputError
			if !errors.As(err, &incomplete) {
				t.Fatalf("expected IncompleteInputError, got %v", err)
			}
			if len(incomplete.Missing) != tt.missing {
				t.Errorf("expected %d missing fields, got %v", tt.missing, incomplete.Missing)
			}
		})
	}
}

func TestValidateRequestDateRules(t *testing.T) {
	now := fixedClock(day("2023-06-15"))

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		reason ValidationReason
	}{
		{"window too short", day("2023-01-01"), day("2023-01-15"), ReasonWindowTooShort},
		{"one day below the minimum gap", day("2023-01-01"), day("2023-01-29"), ReasonWindowTooShort},
		{"start in future", day("2023-07-01"), day("2023-09-01"), ReasonStartInFuture},
		{"end in future", day("2023-05-01"), day("2023-07-01"), ReasonEndInFuture},
		{"end before start", day("2023-05-01"), day("2023-01-01"), ReasonWindowTooShort},
		{"end well before start", day("2023-05-01"), day("2022-01-01"), ReasonWindowTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRequest("Apple Inc.", "AAPL", tt.start, tt.end, now)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Reason != tt.reason {
				t.Errorf("expected reason %s, got %s", tt.reason, verr.Reason)
			}
		})
	}
}

func TestValidateRequestGapCheckRunsFirst(t *testing.T) {
	// A reversed pair less than the minimum apart must report a short
	// window, not a reversed range.
	now := fixedClock(day("2023-06-15"))

	_, err := ValidateRequest("Apple Inc.", "AAPL", day("2023-02-01"), day("2023-01-15"), now)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Reason != ReasonWindowTooShort {
		t.Errorf("expected window_too_short before end_before_start, got %s", verr.Reason)
	}
}

func TestValidateRequestIdenticalDates(t *testing.T) {
	// Identical dates fail the gap check first, since the gap is zero.
	now := fixedClock(day("2023-06-15"))

	_, err := ValidateRequest("Apple Inc.", "AAPL", day("2023-01-01"), day("2023-01-01"), now)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Reason != ReasonWindowTooShort {
		t.Errorf("expected window_too_short for zero gap, got %s", verr.Reason)
	}
}

func TestValidateRequestEndingToday(t *testing.T) {
	// Today is not the future; a window ending today is accepted.
	now := fixedClock(time.Date(2023, 6, 15, 14, 30, 0, 0, time.UTC))

	_, err := ValidateRequest("Apple Inc.", "AAPL", day("2023-05-01"), day("2023-06-15"), now)
	if err != nil {
		t.Fatalf("expected window ending today to be valid, got %v", err)
	}
}

func TestValidateRequestWindowTooShortMessage(t *testing.T) {
	now := fixedClock(day("2023-06-15"))

	_, err := ValidateRequest("Apple Inc.", "AAPL", day("2023-01-01"), day("2023-01-15"), now)
	if err == nil {
		t.Fatal("expected error")
	}

	want := "the gap between start date and end date should be at least 30 days"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
