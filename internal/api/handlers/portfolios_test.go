package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edineros/portfolio-tracker-backend/internal/api/handlers"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
	"github.com/edineros/portfolio-tracker-backend/internal/testutil"
)

func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("creates and returns 201", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders()))

		body := bytes.NewBufferString(`{"name":"Retirement","currency":"EUR"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio", body)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var portfolio model.Portfolio
		if err := json.NewDecoder(w.Body).Decode(&portfolio); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if portfolio.Name != "Retirement" || portfolio.Currency != "EUR" {
			t.Errorf("Unexpected portfolio: %+v", portfolio)
		}
		if portfolio.ID == "" {
			t.Error("Expected a generated ID")
		}
	})

	t.Run("missing name returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders()))

		body := bytes.NewBufferString(`{"currency":"EUR"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio", body)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders()))

		body := bytes.NewBufferString(`{"name":`)
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio", body)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown field returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders()))

		body := bytes.NewBufferString(`{"name":"X","currency":"EUR","nope":true}`)
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio", body)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})
}

func TestPortfolioHandler_GetPortfolio(t *testing.T) {
	t.Run("returns the portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		portfolio := testutil.NewPortfolio().WithName("Main").Build(t, db)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders()))

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID,
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var fetched model.Portfolio
		if err := json.NewDecoder(w.Body).Decode(&fetched); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if fetched.Name != "Main" {
			t.Errorf("Expected Main, got %s", fetched.Name)
		}
	})

	t.Run("unknown portfolio returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders()))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
	})
}

func TestPortfolioHandler_PortfolioStats(t *testing.T) {
	t.Run("returns stats with null total while pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		portfolio := testutil.NewPortfolio().WithCurrency("USD").Build(t, db)
		asset := testutil.NewAsset(portfolio.ID).WithSymbol("NOPE").WithCurrency("USD").Build(t, db)
		testutil.NewTransaction(asset.ID).Buy(10, 100).Build(t, db)

		// No quote registered: the asset stays pending.
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders()))

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID+"/stats",
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.PortfolioStats(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var payload map[string]any
		if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		// Pending totals are serialized as explicit nulls, not omitted.
		if value, present := payload["totalValue"]; !present || value != nil {
			t.Errorf("Expected totalValue null, got %v (present=%v)", value, present)
		}
		if payload["pendingCount"] != float64(1) {
			t.Errorf("Expected pendingCount 1, got %v", payload["pendingCount"])
		}
	})

	t.Run("unknown portfolio returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders()))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+id+"/stats",
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.PortfolioStats(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
	})
}

func TestPortfolioHandler_OverviewStats(t *testing.T) {
	t.Run("invalid currency returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders()))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/overview/stats",
			map[string]string{"currency": "EURO"})
		w := httptest.NewRecorder()

		handler.OverviewStats(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("empty database returns the synthetic identity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders()))

		req := httptest.NewRequest(http.MethodGet, "/api/overview/stats", nil)
		w := httptest.NewRecorder()

		handler.OverviewStats(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var payload map[string]any
		if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if payload["id"] != model.OverviewID {
			t.Errorf("Expected overview identity, got %v", payload["id"])
		}
	})
}
