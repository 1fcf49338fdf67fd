package walmart

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedbridge/internal/config"
	"feedbridge/internal/logger"
	"feedbridge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload() models.FeedPayload {
	return models.FeedPayload{
		Header: models.FeedHeader{Version: "3.2", BatchID: "batch-1", ItemCount: 1},
		Items:  []models.TargetRecord{{"SKU": "A-1"}},
	}
}

func TestSubmitFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "item", r.URL.Query().Get("feedType"))
		assert.NotEmpty(t, r.Header.Get("WM_QOS.CORRELATION_ID"))

		var payload models.FeedPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "batch-1", payload.Header.BatchID)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"feedId":"FEED-123"}`))
	}))
	defer server.Close()

	connector := New(&config.Config{WalmartFeedURL: server.URL}, logger.New("error"))

	result, err := connector.SubmitFeed(testPayload())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "FEED-123", result.TrackingID)
}

func TestSubmitItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload models.ItemPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "A-1", payload.Item["SKU"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"feedId":"FEED-456"}`))
	}))
	defer server.Close()

	connector := New(&config.Config{WalmartFeedURL: server.URL}, logger.New("error"))

	result, err := connector.SubmitItem(models.ItemPayload{Item: models.TargetRecord{"SKU": "A-1"}})
	require.NoError(t, err)
	assert.Equal(t, "FEED-456", result.TrackingID)
}

func TestSubmitFeedRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("invalid feed"))
	}))
	defer server.Close()

	connector := New(&config.Config{WalmartFeedURL: server.URL}, logger.New("error"))

	_, err := connector.SubmitFeed(testPayload())
	require.Error(t, err)

	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, http.StatusBadRequest, exportErr.StatusCode)
	assert.Equal(t, "invalid feed", exportErr.Message)
}
