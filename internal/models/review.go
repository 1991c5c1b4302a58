package models

import (
	"time"

	"github.com/portfoliobuilder/backend/internal/media"
)

// Review is a testimonial left by a client
type Review struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	AuthorName     string     `json:"authorName"`
	AuthorCompany  string     `json:"authorCompany"`
	AuthorLogo     string     `json:"authorLogo"`
	Rating         int        `json:"rating"`
	Content        string     `json:"content"`
	Date           *time.Time `json:"date"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ReviewRequest is the body of review create and update requests
type ReviewRequest struct {
	AuthorName    string    `json:"authorName"`
	AuthorCompany string    `json:"authorCompany"`
	AuthorLogo    media.Ref `json:"authorLogo"`
	Rating        int       `json:"rating"`
	Content       string    `json:"content"`
	Date          string    `json:"date"`
}
