package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/storekit/catalog-search/pkg/httputil"
	"github.com/storekit/catalog-search/pkg/validator"

	"github.com/storekit/catalog-search/internal/domain"
	"github.com/storekit/catalog-search/internal/service"
)

const defaultResultsLimit = 20

// searchRequest is the parsed query-string input of the search endpoint.
type searchRequest struct {
	Phrase   string `validate:"required"`
	Currency string `validate:"required,len=3,alpha"`
	Limit    int    `validate:"gt=0,max=100"`
}

// SearchHandler handles HTTP requests for product search.
type SearchHandler struct {
	aggregator *service.SearchAggregator
	logger     *slog.Logger
}

// NewSearchHandler creates a search HTTP handler.
func NewSearchHandler(aggregator *service.SearchAggregator, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		aggregator: aggregator,
		logger:     logger,
	}
}

// Search handles GET /api/v1/search?q=...&currency=...&limit=...
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	phrase := strings.TrimSpace(r.URL.Query().Get("q"))
	currency := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency")))

	limit := defaultResultsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "limit must be a valid integer"},
			})
			return
		}
		limit = parsed
	}

	req := searchRequest{Phrase: phrase, Currency: currency, Limit: limit}
	if err := validator.Validate(req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()},
		})
		return
	}

	query := domain.SearchQuery{
		Phrase:          req.Phrase,
		CurrencyISOCode: req.Currency,
		ResultsLimit:    req.Limit,
	}

	products, err := h.aggregator.Handle(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: SearchResponse{
			Products: products,
			Count:    len(products),
		},
	})
}

// SearchResponse is the JSON payload of a successful search.
type SearchResponse struct {
	Products []domain.FoundProduct `json:"products"`
	Count    int                   `json:"count"`
}
