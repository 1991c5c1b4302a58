package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/portfoliobuilder/backend/internal/repositories"
	"github.com/portfoliobuilder/backend/internal/validation"
)

var (
	// ErrNotFound is returned for missing records and for records owned by another user
	ErrNotFound = errors.New("not found")
	// ErrSlugTaken is returned when another organization already uses the slug
	ErrSlugTaken = errors.New("slug is already taken")
	// ErrEmptyBody is returned when an upload carries no bytes
	ErrEmptyBody = errors.New("empty body")
	// ErrUnsupportedMedia is returned when a staged file is not an image
	ErrUnsupportedMedia = errors.New("unsupported media type")
	// ErrInvalidKey is returned for object keys that are not a single safe path segment
	ErrInvalidKey = errors.New("invalid object key")
	// ErrKeyExists is returned when an object with the key is already stored
	ErrKeyExists = errors.New("object already exists")
)

const dateLayout = "2006-01-02"

// notFound translates a repository miss into ErrNotFound and wraps anything else
func notFound(action string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%s: %w", action, ErrNotFound)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// parseDate reads an optional YYYY-MM-DD date of the named field
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, &validation.Error{Fields: map[string][]string{
			field: {"must be a date in YYYY-MM-DD format"},
		}}
	}
	return &date, nil
}

// splitTags turns the comma-separated tags input into a list
func splitTags(input string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(input, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
