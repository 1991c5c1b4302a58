package models

// DraftSessionResponse is returned when a draft session is opened
type DraftSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// DraftFileResponse is returned when a file is staged in a draft session
type DraftFileResponse struct {
	Ref         string `json:"ref"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}
