package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUSDRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v6/latest/USD" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"result":"success","rates":{"USD":1,"INR":83.12,"EUR":0.92}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	rate, err := client.USDRate(context.Background(), "INR")
	if err != nil {
		t.Fatalf("USDRate() error = %v", err)
	}
	if rate != 83.12 {
		t.Errorf("rate = %v, want 83.12", rate)
	}
}

func TestUSDRateMissingCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success","rates":{"USD":1}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	if _, err := client.USDRate(context.Background(), "INR"); err == nil {
		t.Fatal("expected error for missing currency")
	}
}

func TestUSDRateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	if _, err := client.USDRate(context.Background(), "INR"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}
