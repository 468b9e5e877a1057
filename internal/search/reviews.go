package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/stitchwell/storefront/internal/models"
)

const ReviewIndex = "reviews"

// ReviewIndexer keeps the review search index in sync and serves queries.
// Indexing is best-effort; callers log failures and move on.
type ReviewIndexer interface {
	Index(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Review, error)
}

type ESReviews struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewESReviews(es *elasticsearch.Client) *ESReviews {
	return &ESReviews{ES: es, IndexName: ReviewIndex}
}

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.Status())
	}

	return client, nil
}

func (s *ESReviews) Index(ctx context.Context, review *models.Review) error {
	doc, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	res, err := s.ES.Index(
		s.IndexName,
		bytes.NewReader(doc),
		s.ES.Index.WithDocumentID(review.ID.String()),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index review: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index review: %s", res.Status())
	}
	return nil
}

func (s *ESReviews) Delete(ctx context.Context, id string) error {
	res, err := s.ES.Delete(s.IndexName, id, s.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete review from index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete review from index: %s", res.Status())
	}
	return nil
}

func (s *ESReviews) Search(ctx context.Context, query string, from, size int) (int64, []models.Review, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "body", "customer_name"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.IndexName),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search reviews: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search reviews: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Review `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	reviews := make([]models.Review, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		reviews[i] = hit.Source
	}
	return r.Hits.Total.Value, reviews, nil
}
