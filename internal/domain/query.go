package domain

import (
	"regexp"
	"strings"

	apperrors "github.com/storekit/catalog-search/pkg/errors"
)

// isoCodePattern matches a syntactically valid ISO 4217 alphabetic code.
var isoCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// SearchQuery is the immutable input of a search call.
type SearchQuery struct {
	Phrase          string `json:"phrase"`
	CurrencyISOCode string `json:"currency_iso_code"`
	ResultsLimit    int    `json:"results_limit"`
}

// Validate checks the query's syntactic invariants. A valid ISO code may
// still fail to resolve to a stored currency later.
func (q SearchQuery) Validate() error {
	if strings.TrimSpace(q.Phrase) == "" {
		return apperrors.InvalidInput("search phrase is required")
	}
	if !isoCodePattern.MatchString(strings.ToUpper(q.CurrencyISOCode)) {
		return apperrors.InvalidInput("currency must be a 3-letter ISO 4217 code")
	}
	if q.ResultsLimit <= 0 {
		return apperrors.InvalidInput("results limit must be positive")
	}
	return nil
}
