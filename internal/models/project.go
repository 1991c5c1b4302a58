package models

import (
	"time"

	"github.com/portfoliobuilder/backend/internal/media"
)

// Project is a piece of work shown on a portfolio
type Project struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	CoverImage     string     `json:"coverImage"`
	Images         []string   `json:"images"`
	Date           *time.Time `json:"date"`
	IsPinned       bool       `json:"isPinned"`
	IsFeatured     bool       `json:"isFeatured"`
	ProjectURL     string     `json:"projectUrl"`
	Tags           []string   `json:"tags"`
	Order          int        `json:"order"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ProjectRequest is the body of project create and update requests.
// Tags is the comma-separated input of the form; Date is YYYY-MM-DD or "".
type ProjectRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CoverImage  media.Ref   `json:"coverImage"`
	Images      []media.Ref `json:"images"`
	Date        string      `json:"date"`
	IsPinned    bool        `json:"isPinned"`
	IsFeatured  bool        `json:"isFeatured"`
	ProjectURL  string      `json:"projectUrl"`
	Tags        string      `json:"tags"`
	Order       int         `json:"order"`
}
