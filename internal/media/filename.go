package media

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultExtension is used for content types missing from the table below.
// It is a lossy approximation: a key may end in .jpg while the stored object
// keeps its real content type.
const DefaultExtension = "jpg"

var extensionsByContentType = map[string]string{
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
	"image/bmp":     "bmp",
	"image/tiff":    "tiff",
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// DeriveExtension maps an image content type to a file extension without the
// leading dot. Parameters such as "; charset=" are ignored. Never returns "".
func DeriveExtension(contentType string) string {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if ext, ok := extensionsByContentType[mediaType]; ok {
		return ext
	}
	return DefaultExtension
}

// GenerateKey builds a storage key "{slug}-{unix millis}-{random}.{ext}".
// The random part keeps two uploads of the same label in the same millisecond
// apart; it only avoids collisions, the object store stays the authority on
// addressing.
func GenerateKey(label, extension string) string {
	ext := strings.TrimPrefix(extension, ".")
	if ext == "" {
		ext = DefaultExtension
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-%s.%s", slugify(label), time.Now().UnixMilli(), random, ext)
}

func slugify(label string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(label), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "file"
	}
	return slug
}
