package handlers

import (
	"net/http"
	"strings"

	"github.com/edineros/portfolio-tracker-backend/internal/api/response"
	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
	"github.com/edineros/portfolio-tracker-backend/internal/service"
)

// MarketHandler handles market data HTTP requests: symbol search and
// manual cache invalidation.
type MarketHandler struct {
	searcher     marketdata.SymbolSearcher
	priceService *service.PriceService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(searcher marketdata.SymbolSearcher, priceService *service.PriceService) *MarketHandler {
	return &MarketHandler{
		searcher:     searcher,
		priceService: priceService,
	}
}

// Search handles GET requests to look up symbols by name or ticker.
// Results are best effort and come straight from the provider.
//
// Endpoint: GET /api/market/search?q=apple
// Response: 200 OK with array of SymbolMatch
// Error: 400 Bad Request if the query is empty
// Error: 502 Bad Gateway if the provider is unreachable
func (h *MarketHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		response.RespondError(w, http.StatusBadRequest, "query parameter q is required", "")
		return
	}

	matches, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "symbol search failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, matches)
}

// ClearCache handles POST requests to drop every cached price and exchange
// rate. The next stats request re-fetches from the providers.
//
// Endpoint: POST /api/market/cache/clear
// Response: 204 No Content
func (h *MarketHandler) ClearCache(w http.ResponseWriter, _ *http.Request) {
	h.priceService.ClearCache()
	response.RespondJSON(w, http.StatusNoContent, nil)
}
