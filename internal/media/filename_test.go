package media

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveExtension(t *testing.T) {
	tests := []struct {
		contentType string
		expected    string
	}{
		{contentType: "image/jpeg", expected: "jpg"},
		{contentType: "image/jpg", expected: "jpg"},
		{contentType: "image/png", expected: "png"},
		{contentType: "image/gif", expected: "gif"},
		{contentType: "image/webp", expected: "webp"},
		{contentType: "image/svg+xml", expected: "svg"},
		{contentType: "image/bmp", expected: "bmp"},
		{contentType: "image/tiff", expected: "tiff"},
		{contentType: "IMAGE/PNG", expected: "png"},
		{contentType: "image/svg+xml; charset=utf-8", expected: "svg"},
		{contentType: "application/pdf", expected: "jpg"},
		{contentType: "", expected: "jpg"},
		{contentType: "not a content type", expected: "jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveExtension(tt.contentType))
		})
	}
}

func TestGenerateKey(t *testing.T) {
	pattern := regexp.MustCompile(`^client-avatar-\d+-[0-9a-f]{12}\.jpg$`)

	first := GenerateKey("client-avatar", "jpg")
	second := GenerateKey("client-avatar", "jpg")

	assert.Regexp(t, pattern, first)
	assert.Regexp(t, pattern, second)
	assert.NotEqual(t, first, second)
}

func TestGenerateKey_Extension(t *testing.T) {
	assert.Regexp(t, `\.png$`, GenerateKey("logo", ".png"))
	assert.Regexp(t, `\.jpg$`, GenerateKey("logo", ""))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{label: "organization-logo", expected: "organization-logo"},
		{label: "Organization Cover", expected: "organization-cover"},
		{label: "  sample   work!! ", expected: "sample-work"},
		{label: "Ünïcode", expected: "n-code"},
		{label: "", expected: "file"},
		{label: "***", expected: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.label))
		})
	}
}
