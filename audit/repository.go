// audit/repository.go
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

const indexName = "audit-logs"

type Repository interface {
	Append(ctx context.Context, entry Entry) (string, error)
	Search(ctx context.Context, q Query) ([]Entry, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
}

// NewElasticsearchRepository creates a repository against the given
// Elasticsearch URL.
func NewElasticsearchRepository(esURL string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient}, nil
}

// Append indexes one audit entry and returns its document id.
func (r *ElasticsearchRepository) Append(ctx context.Context, entry Entry) (string, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return "", err
	}

	docID := uuid.New().String()
	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: docID,
		Body:       strings.NewReader(string(data)),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", fmt.Errorf("error indexing audit entry: %s", res.String())
	}

	return docID, nil
}

// Search queries audit entries, newest first.
func (r *ElasticsearchRepository) Search(ctx context.Context, q Query) ([]Entry, error) {
	must := []interface{}{}

	if !q.From.IsZero() || !q.To.IsZero() {
		timeRange := map[string]interface{}{}
		if !q.From.IsZero() {
			timeRange["gte"] = q.From.Format(time.RFC3339)
		}
		if !q.To.IsZero() {
			timeRange["lte"] = q.To.Format(time.RFC3339)
		}
		must = append(must, map[string]interface{}{
			"range": map[string]interface{}{"timestamp": timeRange},
		})
	}
	if q.ActorID != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"actor.id": q.ActorID},
		})
	}
	if q.Action != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"action": q.Action},
		})
	}
	if q.Category != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"category": q.Category},
		})
	}
	if q.ResourceType != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"resource_type": q.ResourceType},
		})
	}

	size := q.Limit
	if size <= 0 {
		size = 50
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
		"sort": []interface{}{
			map[string]interface{}{"timestamp": map[string]interface{}{"order": "desc"}},
		},
		"size": size,
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(indexName),
		r.esClient.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching audit entries: %s", res.String())
	}

	var rmap map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&rmap); err != nil {
		return nil, err
	}

	hits := rmap["hits"].(map[string]interface{})["hits"].([]interface{})
	entries := make([]Entry, len(hits))
	for i, hit := range hits {
		source := hit.(map[string]interface{})["_source"]
		data, _ := json.Marshal(source)
		json.Unmarshal(data, &entries[i])
	}

	return entries, nil
}
