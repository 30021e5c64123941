package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/storekit/catalog-search/internal/searchindex"
)

// Index is an in-memory ProductSearchIndex doing substring matching on names.
// Used in tests and local development. Thread-safe via sync.RWMutex.
type Index struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]searchindex.ProductDocument
}

// New creates an empty in-memory index.
func New() *Index {
	return &Index{docs: make(map[string]searchindex.ProductDocument)}
}

// Index adds or updates one product document.
func (i *Index) Index(_ context.Context, doc *searchindex.ProductDocument) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.docs[doc.ID]; !ok {
		i.order = append(i.order, doc.ID)
	}
	i.docs[doc.ID] = *doc
	return nil
}

// Delete removes a product document. Unknown IDs are ignored.
func (i *Index) Delete(_ context.Context, productID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.docs[productID]; !ok {
		return nil
	}
	delete(i.docs, productID)
	for n, id := range i.order {
		if id == productID {
			i.order = append(i.order[:n], i.order[n+1:]...)
			break
		}
	}
	return nil
}

// SearchByName matches the phrase case-insensitively against the name stored
// for the given language, in indexing order, capped at limit.
func (i *Index) SearchByName(_ context.Context, languageID int64, phrase string, limit int) ([]string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	phraseLower := strings.ToLower(strings.TrimSpace(phrase))
	matched := make([]string, 0)

	for _, id := range i.order {
		if limit > 0 && len(matched) >= limit {
			break
		}
		doc := i.docs[id]
		name, ok := doc.Names[languageID]
		if !ok {
			continue
		}
		if phraseLower == "" || strings.Contains(strings.ToLower(name), phraseLower) {
			matched = append(matched, id)
		}
	}

	return matched, nil
}
