package search

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
	"github.com/sanjaykumar079/farmer-backend/internal/models"
)

func TestIndexerDisabledIsNoOp(t *testing.T) {
	indexer := NewIndexer(nil, "farmer-queries", false, logger.NewTestLogger(t))

	assert.False(t, indexer.Enabled())
	assert.NoError(t, indexer.IndexQuery(context.Background(), &models.Query{ID: 1}))

	hits, err := indexer.Search(context.Background(), "blight", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDecodeHits(t *testing.T) {
	body := strings.NewReader(`{
		"hits": {
			"hits": [
				{"_score": 2.4, "_source": {"query_id": 7, "query_text": "yellow spots", "farmer_id": "farmer-1", "status": "pending"}},
				{"_score": 1.1, "_source": {"query_id": 3, "query_text": "aphids on cotton", "farmer_id": "farmer-2", "status": "answered"}}
			]
		}
	}`)

	hits, err := decodeHits(body)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, int64(7), hits[0].QueryID)
	assert.Equal(t, "yellow spots", hits[0].QueryText)
	assert.Equal(t, 2.4, hits[0].Score)
	assert.Equal(t, "answered", hits[1].Status)
}

func TestDecodeHitsMalformed(t *testing.T) {
	_, err := decodeHits(strings.NewReader("not json"))
	require.Error(t, err)
}
