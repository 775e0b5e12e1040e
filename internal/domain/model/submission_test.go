//go:build !integration

package model_test

import (
	"errors"
	"testing"

	"telegram-trending-ads/internal/domain/model"
	derror "telegram-trending-ads/internal/error"
)

func TestParseSubmission(t *testing.T) {
	t.Run("should parse the three-field form", func(t *testing.T) {
		sub, err := model.ParseSubmission(42, "CoinX - ABC123 - http://x.test")
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if sub.SubmitterID != 42 {
			t.Errorf("expected submitter 42, got %d", sub.SubmitterID)
		}
		if sub.Name != "CoinX" || sub.ContractAddress != "ABC123" || sub.Link != "http://x.test" {
			t.Errorf("unexpected fields: %q / %q / %q", sub.Name, sub.ContractAddress, sub.Link)
		}
		if sub.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		sub, err := model.ParseSubmission(1, "  CoinX -  ABC123  - http://x.test \n")
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if sub.Name != "CoinX" || sub.ContractAddress != "ABC123" || sub.Link != "http://x.test" {
			t.Errorf("expected trimmed fields, got %q / %q / %q", sub.Name, sub.ContractAddress, sub.Link)
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		cases := []string{
			"CoinX ABC123",
			"CoinX - ABC123",
			"CoinX - ABC123 - http://x.test - extra",
			"CoinX -  - http://x.test",
			"",
		}
		for _, text := range cases {
			if _, err := model.ParseSubmission(1, text); !errors.Is(err, derror.ErrMalformedSubmissionFormat) {
				t.Errorf("input %q: expected ErrMalformedSubmissionFormat, got %v", text, err)
			}
		}
	})
}
