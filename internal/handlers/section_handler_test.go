package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
	"github.com/portfoliobuilder/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectHandler_Create(t *testing.T) {
	svc := &mockProjectService{project: &models.Project{ID: "p-1", Title: "Site"}}
	drafts := &mockDraftHandles{table: media.NewMemoryHandleTable(media.SessionLimits{})}
	router := newTestRouter(NewProjectHandler(svc, newTestValidator(t), drafts, testLogger), testUserID)

	body := `{"title":"Site","coverImage":"blob:c1","images":["blob:i1","","https://cdn.example.com/a.png"],"date":"2024-03-01","tags":"go, web"}`
	w := serve(router, http.MethodPost, "/organizations/org-1/projects", body, map[string]string{DraftSessionHeader: "s-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "org-1", svc.gotOrgID)
	require.NotNil(t, svc.gotRequest)
	assert.Equal(t, media.KindEphemeral, svc.gotRequest.CoverImage.Kind())
	require.Len(t, svc.gotRequest.Images, 3)
	assert.True(t, svc.gotRequest.Images[1].IsEmpty())
	assert.Equal(t, media.KindPersisted, svc.gotRequest.Images[2].Kind())
	assert.Equal(t, drafts.table, svc.gotHandles)

	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "p-1", created.ID)
}

func TestProjectHandler_Routes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "list", method: http.MethodGet, target: "/organizations/org-1/projects", expectedStatus: http.StatusOK},
		{name: "get", method: http.MethodGet, target: "/projects/p-1", expectedStatus: http.StatusOK},
		{name: "update", method: http.MethodPut, target: "/projects/p-1", body: `{"title":"Site"}`, expectedStatus: http.StatusOK},
		{name: "update stale image", method: http.MethodPut, target: "/projects/p-1", body: `{"title":"Site","images":["not-a-url"]}`, expectedStatus: http.StatusUnprocessableEntity},
		{name: "delete", method: http.MethodDelete, target: "/projects/p-1", expectedStatus: http.StatusNoContent},
		{name: "missing", method: http.MethodGet, target: "/projects/p-1", serviceErr: services.ErrNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockProjectService{project: &models.Project{ID: "p-1"}, projects: []models.Project{}, err: tt.serviceErr}
			router := newTestRouter(NewProjectHandler(svc, newTestValidator(t), &mockDraftHandles{}, testLogger), testUserID)

			w := serve(router, tt.method, tt.target, tt.body, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestServiceHandler_Create(t *testing.T) {
	svc := &mockOfferedServiceService{service: &models.Service{ID: "s-1"}}
	router := newTestRouter(NewServiceHandler(svc, newTestValidator(t), &mockDraftHandles{}, testLogger), testUserID)

	body := `{"title":"Design","pricePerHour":45.5,"sampleWork":[{"title":"Landing","imageUrl":"https://cdn.example.com/w.png","technologies":["figma"]}]}`
	w := serve(router, http.MethodPost, "/organizations/org-1/services", body, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "org-1", svc.gotOrgID)
	require.NotNil(t, svc.gotRequest)
	require.NotNil(t, svc.gotRequest.PricePerHour)
	assert.Equal(t, 45.5, *svc.gotRequest.PricePerHour)
	require.Len(t, svc.gotRequest.SampleWork, 1)
	assert.Equal(t, media.KindPersisted, svc.gotRequest.SampleWork[0].ImageURL.Kind())
}

func TestClientHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", body: `{"name":"Globex","logo":"blob:l1","order":2}`, expectedStatus: http.StatusCreated},
		{name: "name too short", body: `{"name":"G"}`, expectedStatus: http.StatusBadRequest},
		{name: "negative order", body: `{"name":"Globex","order":-1}`, expectedStatus: http.StatusBadRequest},
		{name: "foreign organization", body: `{"name":"Globex"}`, serviceErr: services.ErrNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockClientService{client: &models.Client{ID: "c-1"}, err: tt.serviceErr}
			router := newTestRouter(NewClientHandler(svc, newTestValidator(t), &mockDraftHandles{}, testLogger), testUserID)

			w := serve(router, http.MethodPost, "/organizations/org-1/clients", tt.body, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestReviewHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectCall     bool
	}{
		{name: "success", body: `{"authorName":"Jane","rating":5,"content":"Great work on our site","date":"2024-01-15"}`, expectedStatus: http.StatusCreated, expectCall: true},
		{name: "rating out of range", body: `{"authorName":"Jane","rating":6,"content":"Great work on our site"}`, expectedStatus: http.StatusBadRequest},
		{name: "missing content", body: `{"authorName":"Jane","rating":4}`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReviewService{review: &models.Review{ID: "r-1"}}
			router := newTestRouter(NewReviewHandler(svc, newTestValidator(t), &mockDraftHandles{}, testLogger), testUserID)

			w := serve(router, http.MethodPost, "/organizations/org-1/reviews", tt.body, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectCall {
				require.NotNil(t, svc.gotRequest)
				assert.Equal(t, 5, svc.gotRequest.Rating)
				assert.Equal(t, "org-1", svc.gotOrgID)
			} else {
				assert.Nil(t, svc.gotRequest)
			}
		})
	}
}
