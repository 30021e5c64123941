package elasticsearch

// DefaultIndexName is the default Elasticsearch index for product documents.
const DefaultIndexName = "catalog_products"

// buildIndexMapping returns the JSON mapping for the product index. Name
// fields are dynamic per language ID under the names object.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "id":        { "type": "keyword" },
      "reference": { "type": "keyword" }
    },
    "dynamic_templates": [
      {
        "language_names": {
          "path_match": "names.*",
          "mapping": {
            "type": "text",
            "analyzer": "standard",
            "fields": {
              "keyword": { "type": "keyword", "ignore_above": 256 }
            }
          }
        }
      }
    ]
  }
}`
}
