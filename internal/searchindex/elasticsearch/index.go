package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/storekit/catalog-search/internal/searchindex"
)

// Index is an Elasticsearch-backed ProductSearchIndex.
type Index struct {
	client    *elasticsearch.Client
	indexName string
	logger    *slog.Logger
}

// esSearchResponse decodes Elasticsearch search responses down to the hit IDs.
type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source searchindex.ProductDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// esErrorResponse decodes Elasticsearch error responses.
type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// New creates an Elasticsearch index client and ensures the product index
// exists. If indexName is empty, DefaultIndexName is used.
func New(esURL, indexName string, logger *slog.Logger) (*Index, error) {
	if indexName == "" {
		indexName = DefaultIndexName
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: create client: %w", err)
	}

	i := &Index{
		client:    client,
		indexName: indexName,
		logger:    logger,
	}

	if err := i.ensureIndex(); err != nil {
		return nil, fmt.Errorf("elasticsearch: ensure index: %w", err)
	}

	return i, nil
}

// Ping checks whether the Elasticsearch cluster is reachable.
func (i *Index) Ping(ctx context.Context) error {
	res, err := i.client.Ping(i.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: unexpected status %s", res.Status())
	}
	return nil
}

// ensureIndex creates the product index with its mapping when missing.
func (i *Index) ensureIndex() error {
	res, err := i.client.Indices.Exists([]string{i.indexName})
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == 200 {
		i.logger.Info("elasticsearch index already exists", "index", i.indexName)
		return nil
	}

	res, err = i.client.Indices.Create(
		i.indexName,
		i.client.Indices.Create.WithBody(strings.NewReader(buildIndexMapping())),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return decodeError(res.Body, res.Status(), "create index")
	}

	i.logger.Info("elasticsearch index created", "index", i.indexName)
	return nil
}

// Index adds or updates one product document.
func (i *Index) Index(ctx context.Context, doc *searchindex.ProductDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("elasticsearch index: marshal document: %w", err)
	}

	res, err := i.client.Index(
		i.indexName,
		bytes.NewReader(data),
		i.client.Index.WithDocumentID(doc.ID),
		i.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return decodeError(res.Body, res.Status(), "elasticsearch index")
	}

	i.logger.Debug("indexed product", "id", doc.ID)
	return nil
}

// Delete removes a product document. A 404 is ignored.
func (i *Index) Delete(ctx context.Context, productID string) error {
	res, err := i.client.Delete(
		i.indexName,
		productID,
		i.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() && res.StatusCode != 404 {
		return decodeError(res.Body, res.Status(), "elasticsearch delete")
	}

	i.logger.Debug("deleted product", "id", productID)
	return nil
}

// SearchByName runs a match query against the name field of one language and
// returns the matching product IDs, best score first.
func (i *Index) SearchByName(ctx context.Context, languageID int64, phrase string, limit int) ([]string, error) {
	query := map[string]any{
		"size": limit,
		"query": map[string]any{
			"match": map[string]any{
				fmt.Sprintf("names.%d", languageID): map[string]any{
					"query":     phrase,
					"fuzziness": "AUTO",
				},
			},
		},
	}

	data, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: marshal query: %w", err)
	}

	res, err := i.client.Search(
		i.client.Search.WithIndex(i.indexName),
		i.client.Search.WithBody(bytes.NewReader(data)),
		i.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, decodeError(res.Body, res.Status(), "elasticsearch search")
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("elasticsearch search: decode response: %w", err)
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}

func decodeError(body io.Reader, status, op string) error {
	var errResp esErrorResponse
	if decErr := json.NewDecoder(body).Decode(&errResp); decErr == nil && errResp.Error.Type != "" {
		return fmt.Errorf("%s: %s: %s", op, errResp.Error.Type, errResp.Error.Reason)
	}
	return fmt.Errorf("%s: unexpected status %s", op, status)
}
