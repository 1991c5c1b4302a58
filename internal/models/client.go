package models

import (
	"time"

	"github.com/portfoliobuilder/backend/internal/media"
)

// Client is a customer listed on a portfolio
type Client struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Name           string    `json:"name"`
	Logo           string    `json:"logo"`
	Order          int       `json:"order"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ClientRequest is the body of client create and update requests
type ClientRequest struct {
	Name  string    `json:"name"`
	Logo  media.Ref `json:"logo"`
	Order int       `json:"order"`
}
