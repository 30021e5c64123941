package searchindex

import (
	"context"
)

// ProductDocument is a product as stored in the search index, with its name
// per language ID.
type ProductDocument struct {
	ID    string           `json:"id"`
	Names map[int64]string `json:"names"`
	// Reference is the product SKU, searchable as a secondary field.
	Reference string `json:"reference,omitempty"`
}

// ProductSearchIndex locates candidate product IDs for a free-text phrase and
// keeps the underlying index current. Implementations may use Elasticsearch
// or in-memory storage.
type ProductSearchIndex interface {
	// SearchByName returns at most limit product IDs matching the phrase in
	// the given language, best match first. An empty result is not an error.
	SearchByName(ctx context.Context, languageID int64, phrase string, limit int) ([]string, error)

	// Index adds or updates one product document.
	Index(ctx context.Context, doc *ProductDocument) error

	// Delete removes a product from the index. Unknown IDs are not an error.
	Delete(ctx context.Context, productID string) error
}
