package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edineros/portfolio-tracker-backend/internal/api/handlers"
	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
	"github.com/edineros/portfolio-tracker-backend/internal/testutil"
)

type stubSearcher struct {
	matches []marketdata.SymbolMatch
	err     error
}

func (s *stubSearcher) Search(_ context.Context, _ string) ([]marketdata.SymbolMatch, error) {
	return s.matches, s.err
}

func TestMarketHandler_Search(t *testing.T) {
	t.Run("returns provider matches", func(t *testing.T) {
		searcher := &stubSearcher{matches: []marketdata.SymbolMatch{
			{Symbol: "AAPL", Name: "Apple Inc.", Type: "EQUITY", Exchange: "NMS"},
		}}
		handler := handlers.NewMarketHandler(searcher, testutil.NewTestPriceService(t, testutil.NewTestProviders()))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/market/search",
			map[string]string{"q": "apple"})
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var matches []marketdata.SymbolMatch
		if err := json.NewDecoder(w.Body).Decode(&matches); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(matches) != 1 || matches[0].Symbol != "AAPL" {
			t.Errorf("Unexpected matches: %+v", matches)
		}
	})

	t.Run("empty query returns 400", func(t *testing.T) {
		handler := handlers.NewMarketHandler(&stubSearcher{}, testutil.NewTestPriceService(t, testutil.NewTestProviders()))

		req := httptest.NewRequest(http.MethodGet, "/api/market/search", nil)
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("provider failure returns 502", func(t *testing.T) {
		searcher := &stubSearcher{err: errors.New("upstream timeout")}
		handler := handlers.NewMarketHandler(searcher, testutil.NewTestPriceService(t, testutil.NewTestProviders()))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/market/search",
			map[string]string{"q": "apple"})
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("Expected 502, got %d", w.Code)
		}
	})
}

func TestMarketHandler_ClearCache(t *testing.T) {
	handler := handlers.NewMarketHandler(&stubSearcher{}, testutil.NewTestPriceService(t, testutil.NewTestProviders()))

	req := httptest.NewRequest(http.MethodPost, "/api/market/cache/clear", nil)
	w := httptest.NewRecorder()

	handler.ClearCache(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}
}
