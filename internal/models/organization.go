// Package models holds the records stored and served by the portfolio API.
package models

import (
	"time"

	"github.com/portfoliobuilder/backend/internal/media"
)

// Organization is a portfolio owned by one user. Logo and CoverImage hold
// persisted media URLs or "".
type Organization struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Tagline     string    `json:"tagline"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	CoverImage  string    `json:"coverImage"`
	Website     string    `json:"website"`
	Location    string    `json:"location"`
	TeamSize    string    `json:"teamSize"`
	Phone       string    `json:"phone"`
	Country     string    `json:"country"`
	Currency    string    `json:"currency"`
	Slug        string    `json:"slug"`
	LinkedIn    string    `json:"linkedin"`
	Twitter     string    `json:"twitter"`
	Instagram   string    `json:"instagram"`
	Facebook    string    `json:"facebook"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OrganizationSummary is an organization with the size of each of its sections
type OrganizationSummary struct {
	Organization
	ProjectCount int `json:"projectCount"`
	ServiceCount int `json:"serviceCount"`
	ClientCount  int `json:"clientCount"`
	ReviewCount  int `json:"reviewCount"`
}

// OrganizationRequest is the body of organization create and update requests
type OrganizationRequest struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Tagline     string    `json:"tagline"`
	Description string    `json:"description"`
	Logo        media.Ref `json:"logo"`
	CoverImage  media.Ref `json:"coverImage"`
	Website     string    `json:"website"`
	Location    string    `json:"location"`
	TeamSize    string    `json:"teamSize"`
	Phone       string    `json:"phone"`
	Country     string    `json:"country"`
	Currency    string    `json:"currency"`
	Slug        string    `json:"slug"`
	LinkedIn    string    `json:"linkedin"`
	Twitter     string    `json:"twitter"`
	Instagram   string    `json:"instagram"`
	Facebook    string    `json:"facebook"`
}
