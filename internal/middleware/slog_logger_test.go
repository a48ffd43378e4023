package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familytrip/tripboard/internal/middleware"
)

func logOnce(t *testing.T, ctx context.Context, status int) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.NewSlogLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("{}"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/trips", nil).WithContext(ctx)
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSlogLogger_RequestFields(t *testing.T) {
	ctx := context.WithValue(context.Background(), chimiddleware.RequestIDKey, "req-42")

	entry := logOnce(t, ctx, http.StatusOK)

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/trips", entry["path"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.EqualValues(t, 2, entry["bytes"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.NotNil(t, entry["duration_ms"])
	assert.NotContains(t, entry, "user_id")
}

func TestSlogLogger_LevelFollowsStatus(t *testing.T) {
	assert.Equal(t, "WARN", logOnce(t, context.Background(), http.StatusNotFound)["level"])
	assert.Equal(t, "ERROR", logOnce(t, context.Background(), http.StatusInternalServerError)["level"])
}

func TestSlogLogger_SeesRejectionsAndUserOfLaterAuth(t *testing.T) {
	verifier := verifierFunc(func(_ context.Context, token string) (string, error) {
		if token == "good" {
			return "user-7", nil
		}
		return "", errors.New("expired")
	})
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := middleware.NewSlogLogger(logger)(middleware.NewAuthHandler(verifier, quietLogger())(echoUser()))

	for _, tc := range []struct {
		header string
		status float64
		user   any
	}{
		{header: "Bearer good", status: http.StatusOK, user: "user-7"},
		{header: "Bearer stale", status: http.StatusUnauthorized, user: nil},
	} {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/trips", nil)
		req.Header.Set("Authorization", tc.header)
		h.ServeHTTP(httptest.NewRecorder(), req)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), tc.header)
		assert.Equal(t, tc.status, entry["status"], tc.header)
		assert.Equal(t, tc.user, entry["user_id"], tc.header)
	}
}
