// Package execctx holds the ambient execution state (active language, locale,
// active currency) that legacy pricing primitives consult implicitly. New code
// receives language and currency as explicit arguments; this shim exists only
// to honor the boundary contract that the ambient state is swapped for the
// duration of a search call and restored on every exit path.
package execctx

import (
	"github.com/storekit/catalog-search/internal/domain"
)

// State is a snapshot of the ambient execution context.
type State struct {
	LanguageID int64
	// Locale is the BCP 47 tag used for price display formatting.
	Locale   string
	Currency domain.Currency
}

// Scope owns one mutable ambient state. It is not safe for concurrent use:
// callers either serialize access to a shared scope or give each invocation
// its own.
type Scope struct {
	state State
}

// NewScope creates a scope with the given initial state.
func NewScope(initial State) *Scope {
	return &Scope{state: initial}
}

// Active returns the current ambient state.
func (s *Scope) Active() State {
	return s.state
}

// Swap installs next as the active state and returns the previous one, so the
// caller can restore it with a deferred Swap.
func (s *Scope) Swap(next State) (prev State) {
	prev = s.state
	s.state = next
	return prev
}
