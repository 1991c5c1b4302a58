package services

import (
	"context"
	"testing"

	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServicesService_Create(t *testing.T) {
	orgs := newMockOrganizationRepository(&models.Organization{ID: "org-1", UserID: "user-1"})
	repo := &mockServiceRepository{}
	resolver := &mockResolver{}
	svc := NewServicesService(repo, orgs, resolver)

	price := 75.0
	persisted, err := media.Parse("https://cdn.example.com/existing.png")
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), "user-1", "org-1", nil, &models.ServiceRequest{
		Title:        "Web development",
		Icon:         "code",
		Logo:         media.Ephemeral("logo"),
		PricePerHour: &price,
		SampleWork: []models.SampleWorkRequest{
			{ID: "sw-1", Title: "Shop", ImageURL: persisted, Technologies: []string{"go"}},
			{Title: "Blog", ImageURL: media.Ephemeral("blog")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "code", created.Icon)
	assert.Equal(t, "https://cdn.example.com/service-logo-0.png", created.Logo)
	assert.Empty(t, created.Banner)
	assert.Equal(t, &price, created.PricePerHour)
	require.Len(t, created.SampleWork, 2)
	assert.Equal(t, "sw-1", created.SampleWork[0].ID)
	assert.Equal(t, "https://cdn.example.com/existing.png", created.SampleWork[0].ImageURL)
	assert.NotEmpty(t, created.SampleWork[1].ID)
	assert.Equal(t, "https://cdn.example.com/sample-work-3.png", created.SampleWork[1].ImageURL)
	assert.Equal(t, []string{}, created.SampleWork[1].Technologies)
	assert.Equal(t, created, repo.created)

	labels := make([]string, 0, len(resolver.fields))
	for _, f := range resolver.fields {
		labels = append(labels, f.Label)
	}
	assert.Equal(t, []string{LabelServiceLogo, LabelServiceBanner, LabelSampleWork, LabelSampleWork}, labels)
}

func TestServicesService_Ownership(t *testing.T) {
	orgs := newMockOrganizationRepository(
		&models.Organization{ID: "org-1", UserID: "user-1"},
		&models.Organization{ID: "org-2", UserID: "user-2"},
	)
	repo := &mockServiceRepository{services: map[string]*models.Service{
		"s-1": {ID: "s-1", OrganizationID: "org-2"},
	}}
	svc := NewServicesService(repo, orgs, &mockResolver{})
	ctx := context.Background()

	_, err := svc.Get(ctx, "user-1", "s-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, "user-1", "org-2", nil, &models.ServiceRequest{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "user-1", "s-1"), ErrNotFound)

	services, err := svc.ListByOrganization(ctx, "user-2", "org-2")
	require.NoError(t, err)
	assert.Len(t, services, 1)
}
