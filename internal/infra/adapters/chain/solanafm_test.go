//go:build !integration

package chain_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"telegram-trending-ads/internal/infra/adapters/chain"
)

func TestSolanaFMLookup_Transfers(t *testing.T) {
	ctx := context.Background()

	t.Run("should decode the transfers payload", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"status": "success",
				"result": {
					"data": [
						{"action": "transfer", "status": "Successful",
						 "source": "SourceWallet", "destination": "DestWallet",
						 "amount": 700000000},
						{"action": "createAccount", "status": "Successful",
						 "destination": "Other", "amount": 2039280}
					]
				}
			}`))
		}))
		defer srv.Close()

		lookup := chain.NewSolanaFMLookup(srv.URL, 5*time.Second)
		res, err := lookup.Transfers(ctx, "txhash123")
		if err != nil {
			t.Fatalf("expected result, got: %v", err)
		}
		if gotPath != "/v0/transfers/txhash123" {
			t.Errorf("unexpected request path %q", gotPath)
		}
		if res.Status != "success" {
			t.Errorf("expected status success, got %q", res.Status)
		}
		if len(res.Transfers) != 2 {
			t.Fatalf("expected 2 transfers, got %d", len(res.Transfers))
		}
		first := res.Transfers[0]
		if first.Action != "transfer" || first.Status != "Successful" ||
			first.Destination != "DestWallet" || first.Amount != 700000000 {
			t.Errorf("unexpected first transfer: %+v", first)
		}
	})

	t.Run("should fail on a non-200 response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		lookup := chain.NewSolanaFMLookup(srv.URL, 5*time.Second)
		if _, err := lookup.Transfers(ctx, "missing"); err == nil {
			t.Error("expected an error for 404")
		}
	})

	t.Run("should fail on malformed json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": `))
		}))
		defer srv.Close()

		lookup := chain.NewSolanaFMLookup(srv.URL, 5*time.Second)
		if _, err := lookup.Transfers(ctx, "broken"); err == nil {
			t.Error("expected a decode error")
		}
	})
}
