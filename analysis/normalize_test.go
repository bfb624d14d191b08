package analysis

import (
	"errors"
	"testing"
	"time"

	"stock-sentiment/models"
)

func TestNormalizeTimestampsParsesCompactFormat(t *testing.T) {
	series := models.SentimentSeries{
		{Headline: "a", RawTimePublished: "20230101T141404"},
	}

	out, err := NormalizeTimestamps(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2023, 1, 1, 14, 14, 4, 0, time.UTC)
	if !out[0].TimePublished.Equal(want) {
		t.Errorf("expected %v, got %v", want, out[0].TimePublished)
	}
}

func TestNormalizeTimestampsSortsAscending(t *testing.T) {
	series := models.SentimentSeries{
		{Headline: "latest", RawTimePublished: "20230310T090000"},
		{Headline: "earliest", RawTimePublished: "20230101T141404"},
		{Headline: "middle", RawTimePublished: "20230215T120000"},
	}

	out, err := NormalizeTimestamps(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"earliest", "middle", "latest"}
	for i, want := range wantOrder {
		if out[i].Headline != want {
			t.Errorf("position %d: expected %q, got %q", i, want, out[i].Headline)
		}
	}
}

func TestNormalizeTimestampsIdempotent(t *testing.T) {
	series := models.SentimentSeries{
		{Headline: "first", RawTimePublished: "20230101T141404"},
		{Headline: "second", RawTimePublished: "20230215T120000"},
	}

	once, err := NormalizeTimestamps(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := NormalizeTimestamps(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range once {
		if once[i].Headline != twice[i].Headline {
			t.Errorf("position %d changed on second pass: %q vs %q", i, once[i].Headline, twice[i].Headline)
		}
	}
}

func TestNormalizeTimestampsDoesNotMutateInput(t *testing.T) {
	series := models.SentimentSeries{
		{Headline: "latest", RawTimePublished: "20230310T090000"},
		{Headline: "earliest", RawTimePublished: "20230101T141404"},
	}

	if _, err := NormalizeTimestamps(series); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if series[0].Headline != "latest" {
		t.Error("input series was reordered")
	}
	if !series[0].TimePublished.IsZero() {
		t.Error("input series was written to")
	}
}

func TestNormalizeTimestampsMalformedValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"iso format", "2023-01-01T14:14:04"},
		{"date only", "20230101"},
		{"garbage", "not-a-time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := models.SentimentSeries{
				{RawTimePublished: "20230101T141404"},
				{RawTimePublished: tt.raw},
			}

			out, err := NormalizeTimestamps(series)
			if out != nil {
				t.Error("expected nil series on malformed timestamp")
			}

			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("expected FormatError, got %v", err)
			}
			if ferr.Value != tt.raw {
				t.Errorf("expected offending value %q, got %q", tt.raw, ferr.Value)
			}
		})
	}
}

func TestNormalizeTimestampsEmptySeries(t *testing.T) {
	out, err := NormalizeTimestamps(models.SentimentSeries{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty series, got %d items", len(out))
	}
}
