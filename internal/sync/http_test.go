package sync_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/apologia/internal/sync"
)

/*
TestDownload_RejectsMalformedWatermark verifies that a non-numeric or
negative lastSync is rejected instead of being treated as a first run, which
would silently force a full re-download.
*/
func TestDownload_RejectsMalformedWatermark(t *testing.T) {
	handler := sync.NewHandler(newService(seedRepository(), &fakeCache{}))
	router := handler.Routes()

	tests := []struct {
		name     string
		lastSync string
		want     int
	}{
		{"absent_means_full", "", http.StatusOK},
		{"zero_means_full", "0", http.StatusOK},
		{"valid_watermark", "1700000000000", http.StatusOK},
		{"non_numeric", "yesterday", http.StatusBadRequest},
		{"negative", "-5", http.StatusBadRequest},
		{"float", "12.5", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/download?lastSync="+tt.lastSync, nil)
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)
			assert.Equal(t, tt.want, recorder.Code)

			if tt.want == http.StatusBadRequest {
				var body map[string]any
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Equal(t, "VALIDATION_ERROR", body["error"])
				assert.NotEmpty(t, body["message"])
				assert.NotZero(t, body["timestamp"])
			}
		})
	}
}

/*
TestDownload_EnvelopeShape verifies the legacy success wrapper the mobile
client parses: success flag, data object, and a top-level syncTimestamp.
*/
func TestDownload_EnvelopeShape(t *testing.T) {
	handler := sync.NewHandler(newService(seedRepository(), &fakeCache{}))
	router := handler.Routes()

	request := httptest.NewRequest(http.MethodGet, "/download?lastSync=0", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Success       bool           `json:"success"`
		Data          *sync.FeedData `json:"data"`
		SyncTimestamp int64          `json:"syncTimestamp"`
		Message       string         `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.True(t, body.Success)
	require.NotNil(t, body.Data)
	assert.Equal(t, sync.SyncTypeFull, body.Data.SyncType)
	assert.Equal(t, body.Data.SyncTimestamp, body.SyncTimestamp)
	assert.NotEmpty(t, body.Message)
}
