package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/portfoliobuilder/backend/internal/handlers"
	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/middleware"
	"github.com/portfoliobuilder/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "secret"

// stubUploadService stores nothing and answers every upload with a URL
type stubUploadService struct{}

func (stubUploadService) Upload(_ context.Context, key, contentType string, body io.Reader) (*models.Metadata, error) {
	io.Copy(io.Discard, body)
	return &models.Metadata{ID: key, ContentType: contentType, URL: "https://cdn.example.com/" + key}, nil
}

func (stubUploadService) GetMetadata(context.Context, string) (*models.Metadata, error) {
	return &models.Metadata{}, nil
}

func (stubUploadService) Open(context.Context, string) (io.ReadCloser, *models.Metadata, error) {
	return io.NopCloser(http.NoBody), &models.Metadata{}, nil
}

func (stubUploadService) Delete(context.Context, string) error {
	return nil
}

// stubPortfolioService returns an empty public page for every slug
type stubPortfolioService struct{}

func (stubPortfolioService) GetBySlug(context.Context, string) (*models.PublicPortfolio, error) {
	return &models.PublicPortfolio{}, nil
}

func (stubPortfolioService) GetService(context.Context, string, string) (*models.PublicService, error) {
	return &models.PublicService{}, nil
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	return newRouter(routerConfig{
		Logger:     logger,
		SwaggerURL: "/swagger/doc.json",
		Health:     func(context.Context) error { return nil },
		Metrics:    promhttp.Handler(),
		AuthMw:     func(next http.Handler) http.Handler { return next },
		APIKeyMw:   middleware.APIKeyMiddleware(testAPIKey),
		Upload:     handlers.NewUploadHandler(stubUploadService{}, logger),
		Portfolio:  handlers.NewPortfolioHandler(stubPortfolioService{}, logger),
	})
}

func TestRouter_UploadsAreNotLimitedPerIP(t *testing.T) {
	srv := httptest.NewServer(setupRouter(t))
	defer srv.Close()

	client := media.NewObjectStoreClient(srv.URL, testAPIKey, 5*time.Second)
	for i := 0; i < ipRequestsPerMinute+20; i++ {
		key := "logo-" + strconv.Itoa(i) + ".png"
		url, err := client.Upload(context.Background(), []byte("png"), "image/png", key)
		require.NoError(t, err, "upload %d", i)
		assert.Equal(t, "https://cdn.example.com/"+key, url)
	}
}

func TestRouter_UploadRequiresAPIKey(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/upload?filename=logo.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_APIIsLimitedPerIP(t *testing.T) {
	router := setupRouter(t)

	var last int
	for i := 0; i <= ipRequestsPerMinute; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/acme", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		last = w.Code
		if i < ipRequestsPerMinute {
			require.Equal(t, http.StatusOK, w.Code, "request %d", i)
		}
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestServerWriteTimeout(t *testing.T) {
	tests := []struct {
		name          string
		uploadTimeout time.Duration
		expected      time.Duration
	}{
		// 21 fields in waves of 4 is 6 waves
		{name: "default upload timeout", uploadTimeout: 30 * time.Second, expected: 6*30*time.Second + 30*time.Second},
		{name: "short upload timeout", uploadTimeout: 5 * time.Second, expected: 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serverWriteTimeout(tt.uploadTimeout)
			assert.Equal(t, tt.expected, got)
			assert.Greater(t, got, media.ResolveBudget(maxMediaFieldsPerForm, tt.uploadTimeout))
		})
	}
}
