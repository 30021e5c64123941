package execctx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storekit/catalog-search/internal/domain"
)

func TestScope_SwapAndRestore(t *testing.T) {
	initial := State{
		LanguageID: 1,
		Locale:     "en-US",
		Currency:   domain.Currency{ID: 1, ISOCode: "USD", DecimalDigits: 2},
	}
	scope := NewScope(initial)

	next := initial
	next.Currency = domain.Currency{ID: 2, ISOCode: "EUR", DecimalDigits: 2}

	prev := scope.Swap(next)
	assert.Equal(t, initial, prev)
	assert.Equal(t, "EUR", scope.Active().Currency.ISOCode)

	scope.Swap(prev)
	assert.Equal(t, initial, scope.Active())
}
