package models

// PublicPortfolio is everything the public page of a published organization shows
type PublicPortfolio struct {
	Organization  Organization `json:"organization"`
	Projects      []Project    `json:"projects"`
	Services      []Service    `json:"services"`
	Clients       []Client     `json:"clients"`
	Reviews       []Review     `json:"reviews"`
	AverageRating string       `json:"averageRating"`
}

// PublicService is one service page of a published organization
type PublicService struct {
	Organization Organization `json:"organization"`
	Service      Service      `json:"service"`
}
