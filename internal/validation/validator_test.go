package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func TestNew_CompilesEverySchema(t *testing.T) {
	v := newTestValidator(t)

	for _, name := range []string{Organization, Project, Service, Client, Review} {
		assert.Contains(t, v.schemas, name)
	}
}

func TestValidate(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name           string
		schema         string
		body           string
		expectedFields []string
	}{
		{
			name:   "valid organization",
			schema: Organization,
			body:   `{"name":"Acme","slug":"acme-studio","website":"https://acme.dev","linkedin":"","logo":"blob:1234"}`,
		},
		{
			name:           "organization missing slug",
			schema:         Organization,
			body:           `{"name":"Acme"}`,
			expectedFields: []string{"request"},
		},
		{
			name:           "organization bad slug and website",
			schema:         Organization,
			body:           `{"name":"Acme","slug":"Acme Studio","website":"acme.dev"}`,
			expectedFields: []string{"slug", "website"},
		},
		{
			name:           "organization name too short",
			schema:         Organization,
			body:           `{"name":"A","slug":"acme"}`,
			expectedFields: []string{"name"},
		},
		{
			name:   "valid project",
			schema: Project,
			body:   `{"title":"Redesign","images":["blob:1","https://cdn.example.com/a.png"],"tags":"go, web","date":"2024-05-01","isPinned":true,"order":2}`,
		},
		{
			name:           "project bad date and negative order",
			schema:         Project,
			body:           `{"title":"Redesign","date":"May 1st","order":-1}`,
			expectedFields: []string{"date", "order"},
		},
		{
			name:   "valid service",
			schema: Service,
			body:   `{"title":"Consulting","pricePerHour":120.5,"sampleWork":[{"title":"Shop","imageUrl":"blob:9","technologies":["go"]}]}`,
		},
		{
			name:           "service negative price and untitled sample",
			schema:         Service,
			body:           `{"title":"Consulting","pricePerHour":-1,"sampleWork":[{"description":"x"}]}`,
			expectedFields: []string{"pricePerHour", "sampleWork.0"},
		},
		{
			name:   "valid client",
			schema: Client,
			body:   `{"name":"Globex","logo":null}`,
		},
		{
			name:   "valid review",
			schema: Review,
			body:   `{"authorName":"Jane","rating":5,"content":"Great work, delivered on time."}`,
		},
		{
			name:           "review rating out of range and short content",
			schema:         Review,
			body:           `{"authorName":"Jane","rating":6,"content":"meh"}`,
			expectedFields: []string{"rating", "content"},
		},
		{
			name:           "review fractional rating",
			schema:         Review,
			body:           `{"authorName":"Jane","rating":4.5,"content":"Great work, delivered on time."}`,
			expectedFields: []string{"rating"},
		},
		{
			name:           "not json",
			schema:         Client,
			body:           `{"name":`,
			expectedFields: []string{"request"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.schema, []byte(tt.body))

			if len(tt.expectedFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *Error
			require.True(t, errors.As(err, &verr), "expected *Error, got %v", err)
			fields := make([]string, 0, len(verr.Fields))
			for field := range verr.Fields {
				fields = append(fields, field)
			}
			assert.ElementsMatch(t, tt.expectedFields, fields)
		})
	}
}

func TestValidate_MissingPropertiesMessage(t *testing.T) {
	v := newTestValidator(t)

	err := v.Validate(Review, []byte(`{}`))

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Fields["request"])
	assert.True(t, strings.Contains(verr.Fields["request"][0], "authorName"))
	assert.Contains(t, verr.Error(), "validation failed: request:")
}

func TestValidate_UnknownSchema(t *testing.T) {
	v := newTestValidator(t)

	err := v.Validate("invoice", []byte(`{}`))

	require.Error(t, err)
	var verr *Error
	assert.False(t, errors.As(err, &verr))
}
