// internal/search/indexer.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/sanjaykumar079/farmer-backend/internal/common/database"
	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
	"github.com/sanjaykumar079/farmer-backend/internal/models"
)

// queryDocument is the shape indexed per farmer query.
type queryDocument struct {
	QueryID   int64     `json:"query_id"`
	FarmerID  string    `json:"farmer_id"`
	QueryText string    `json:"query_text"`
	Language  string    `json:"language"`
	CropType  string    `json:"crop_type,omitempty"`
	Location  string    `json:"location,omitempty"`
	Status    string    `json:"status"`
	Urgency   string    `json:"urgency"`
	CreatedAt time.Time `json:"created_at"`
}

// Hit is one search result for the officer desk.
type Hit struct {
	QueryID   int64   `json:"query_id"`
	QueryText string  `json:"query_text"`
	FarmerID  string  `json:"farmer_id"`
	Status    string  `json:"status"`
	Score     float64 `json:"score"`
}

// Indexer maintains the query search index. Indexing is best effort: a
// failed index write is logged and reported but callers treat it as
// non-fatal, the database remains the source of truth.
type Indexer struct {
	es      *database.ElasticsearchClient
	index   string
	enabled bool
	logger  logger.Logger
}

func NewIndexer(es *database.ElasticsearchClient, index string, enabled bool, log logger.Logger) *Indexer {
	return &Indexer{es: es, index: index, enabled: enabled, logger: log}
}

// Enabled reports whether search is configured.
func (i *Indexer) Enabled() bool {
	return i.enabled && i.es != nil
}

// IndexQuery writes or refreshes a query document. The document ID is the
// query's database ID so re-indexing is idempotent.
func (i *Indexer) IndexQuery(ctx context.Context, query *models.Query) error {
	if !i.Enabled() {
		return nil
	}

	doc := queryDocument{
		QueryID:   query.ID,
		FarmerID:  query.FarmerID,
		QueryText: query.QueryText,
		Language:  query.Language,
		CropType:  query.CropType,
		Location:  query.Location,
		Status:    query.Status,
		Urgency:   query.Urgency,
		CreatedAt: query.CreatedAt,
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return errors.NewSearchIndexFailedError(err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: strconv.FormatInt(query.ID, 10),
		Body:       bytes.NewReader(payload),
	}

	res, err := req.Do(ctx, i.es.Client)
	if err != nil {
		i.logger.WithError(err).Warn("Search index write failed", map[string]interface{}{
			"queryId": query.ID,
		})
		return errors.NewSearchIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		err := fmt.Errorf("index request returned %s", res.Status())
		i.logger.WithError(err).Warn("Search index write rejected", map[string]interface{}{
			"queryId": query.ID,
		})
		return errors.NewSearchIndexFailedError(err)
	}

	return nil
}

// Search runs a full-text match over query text, crop type, and location.
func (i *Indexer) Search(ctx context.Context, term string, size int) ([]Hit, error) {
	if !i.Enabled() {
		return []Hit{}, nil
	}
	if size <= 0 {
		size = 20
	}

	body := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  term,
				"fields": []string{"query_text^2", "crop_type", "location"},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewSearchIndexFailedError(err)
	}

	res, err := i.es.Client.Search(
		i.es.Client.Search.WithContext(ctx),
		i.es.Client.Search.WithIndex(i.index),
		i.es.Client.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, errors.NewSearchIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchIndexFailedError(fmt.Errorf("search returned %s", res.Status()))
	}

	return decodeHits(res.Body)
}

func decodeHits(body io.Reader) ([]Hit, error) {
	var envelope struct {
		Hits struct {
			Hits []struct {
				Score  float64       `json:"_score"`
				Source queryDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return nil, errors.NewSearchIndexFailedError(err)
	}

	hits := make([]Hit, 0, len(envelope.Hits.Hits))
	for _, h := range envelope.Hits.Hits {
		hits = append(hits, Hit{
			QueryID:   h.Source.QueryID,
			QueryText: h.Source.QueryText,
			FarmerID:  h.Source.FarmerID,
			Status:    h.Source.Status,
			Score:     h.Score,
		})
	}
	return hits, nil
}
