package services

import (
	"context"
	"errors"
	"testing"

	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
	"github.com/portfoliobuilder/backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService(t *testing.T) {
	orgs := newMockOrganizationRepository(
		&models.Organization{ID: "org-1", UserID: "user-1"},
		&models.Organization{ID: "org-2", UserID: "user-2"},
	)
	repo := &mockReviewRepository{byID: map[string]*models.Review{
		"r-1": {ID: "r-1", OrganizationID: "org-1", AuthorName: "Jane", Rating: 4},
		"r-2": {ID: "r-2", OrganizationID: "org-2", AuthorName: "John", Rating: 5},
	}}
	resolver := &mockResolver{}
	svc := NewReviewService(repo, orgs, resolver)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "org-1", nil, &models.ReviewRequest{
		AuthorName: "Jane",
		AuthorLogo: media.Ephemeral("avatar"),
		Rating:     5,
		Content:    "Great collaboration",
		Date:       "2024-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/client-avatar-0.png", created.AuthorLogo)
	require.NotNil(t, created.Date)
	assert.Equal(t, "2024-03-04", created.Date.Format(dateLayout))
	assert.Equal(t, LabelClientAvatar, resolver.fields[0].Label)

	_, err = svc.Create(ctx, "user-1", "org-1", nil, &models.ReviewRequest{AuthorName: "Jane", Rating: 5, Date: "04/03/2024"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"must be a date in YYYY-MM-DD format"}, verr.Fields["date"])

	_, err = svc.Get(ctx, "user-1", "r-2")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(ctx, "user-1", "r-1", nil, &models.ReviewRequest{AuthorName: "Jane D.", Rating: 3, Content: "Good enough work"})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
	assert.Nil(t, updated.Date)

	_, err = svc.ListByOrganization(ctx, "user-1", "org-1")
	require.NoError(t, err)
	assert.Zero(t, repo.limit)

	assert.ErrorIs(t, svc.Delete(ctx, "user-1", "r-2"), ErrNotFound)
}
