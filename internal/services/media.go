package services

import (
	"context"
	"fmt"

	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
)

// Media field labels; they become the prefix of the stored object key
const (
	LabelOrganizationLogo  = "organization-logo"
	LabelOrganizationCover = "organization-cover"
	LabelProjectCover      = "project-cover"
	LabelProjectImage      = "project-image"
	LabelServiceLogo       = "service-logo"
	LabelServiceBanner     = "service-banner"
	LabelSampleWork        = "sample-work"
	LabelClientLogo        = "client-logo"
	LabelClientAvatar      = "client-avatar"
)

// MediaResolver is the interface that wraps conditional upload of form media fields.
type MediaResolver interface {
	// Method ResolveAll uploads the ephemeral fields staged in handles and returns
	// the references to store, in field order. Empty and persisted fields are
	// returned unchanged. handles may be nil when the request names no draft session.
	//
	// If any field fails, the error matches media.ErrUploadFailed and nothing is returned.
	ResolveAll(ctx context.Context, handles media.HandleTable, fields []media.Field) ([]media.Ref, error)
	// Method Release drops the staged bytes of ephemeral fields after their record was saved.
	Release(ctx context.Context, handles media.HandleTable, fields []media.Field)
}

// OrganizationLookup is the part of the organization repository the section services need.
type OrganizationLookup interface {
	// Method GetByID returns the organization, or an error matching repositories.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Organization, error)
}

// ownedOrganization loads an organization and hides it from everybody but its owner
func ownedOrganization(ctx context.Context, orgs OrganizationLookup, userID, orgID string) (*models.Organization, error) {
	org, err := orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, notFound("get organization", err)
	}
	if org.UserID != userID {
		return nil, fmt.Errorf("get organization: %w", ErrNotFound)
	}
	return org, nil
}

func resolveMedia(ctx context.Context, resolver MediaResolver, handles media.HandleTable, fields []media.Field) ([]media.Ref, error) {
	refs, err := resolver.ResolveAll(ctx, handles, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media: %w", err)
	}
	return refs, nil
}
