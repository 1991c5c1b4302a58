package models

import (
	"time"

	"github.com/portfoliobuilder/backend/internal/media"
)

// Service is something an organization offers, priced per hour
type Service struct {
	ID             string       `json:"id"`
	OrganizationID string       `json:"organizationId"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Icon           string       `json:"icon"`
	Logo           string       `json:"logo"`
	Banner         string       `json:"banner"`
	PricePerHour   *float64     `json:"pricePerHour"`
	SampleWork     []SampleWork `json:"sampleWork"`
	Order          int          `json:"order"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// SampleWork is an example attached to a service. It is stored inline with
// the service as JSON.
type SampleWork struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
	ProjectURL   string   `json:"projectUrl"`
	Technologies []string `json:"technologies"`
}

// ServiceRequest is the body of service create and update requests
type ServiceRequest struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Icon         string              `json:"icon"`
	Logo         media.Ref           `json:"logo"`
	Banner       media.Ref           `json:"banner"`
	PricePerHour *float64            `json:"pricePerHour"`
	SampleWork   []SampleWorkRequest `json:"sampleWork"`
	Order        int                 `json:"order"`
}

// SampleWorkRequest is one sample work entry of a ServiceRequest
type SampleWorkRequest struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     media.Ref `json:"imageUrl"`
	ProjectURL   string    `json:"projectUrl"`
	Technologies []string  `json:"technologies"`
}
