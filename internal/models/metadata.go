package models

import "time"

// Metadata describes an object held by the object store
type Metadata struct {
	ID          string    `json:"id"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UploadResponse is the object store's answer to an upload
type UploadResponse struct {
	URL string `json:"url"`
}
