// Package media resolves the image fields of a submitted form into durable
// references. Bytes staged during editing are uploaded at most once per field
// and submission; references that are already persisted pass through untouched.
package media

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// EphemeralScheme prefixes references to bytes staged in a draft session.
const EphemeralScheme = "blob:"

// Kind tells which variant a Ref holds.
type Kind int

const (
	// KindEmpty means no media is selected.
	KindEmpty Kind = iota
	// KindEphemeral points at bytes staged in a draft session, not yet stored.
	KindEphemeral
	// KindPersisted is an absolute URL of previously uploaded media.
	KindPersisted
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindEphemeral:
		return "ephemeral"
	case KindPersisted:
		return "persisted"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Ref is a classified media reference. It is built once, where the request
// enters the system, so later code switches on Kind instead of re-reading the
// string.
type Ref struct {
	kind  Kind
	value string
}

// Ephemeral returns the reference for a handle staged in a draft session.
func Ephemeral(handle string) Ref {
	return Ref{kind: KindEphemeral, value: EphemeralScheme + handle}
}

// IsEphemeral reports whether s uses the local-only scheme.
func IsEphemeral(s string) bool {
	return strings.HasPrefix(s, EphemeralScheme)
}

// IsPersisted reports whether s is an absolute http or https URL with a host.
// URLs served by the object store are always of that shape, so no separate
// storage-domain check is needed.
func IsPersisted(s string) bool {
	if s == "" || IsEphemeral(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Parse classifies s. Strings that are neither empty, ephemeral nor persisted
// are rejected: storing them would leave a link nobody can resolve.
func Parse(s string) (Ref, error) {
	switch {
	case s == "":
		return Ref{}, nil
	case IsEphemeral(s):
		if s == EphemeralScheme {
			return Ref{}, fmt.Errorf("%w: empty handle", ErrInvalidReference)
		}
		return Ref{kind: KindEphemeral, value: s}, nil
	case IsPersisted(s):
		return Ref{kind: KindPersisted, value: s}, nil
	}
	return Ref{}, fmt.Errorf("%w: %q is neither a draft handle nor an absolute url", ErrInvalidReference, s)
}

// Kind returns the variant of r.
func (r Ref) Kind() Kind {
	return r.kind
}

// IsEmpty reports whether r holds no media.
func (r Ref) IsEmpty() bool {
	return r.kind == KindEmpty
}

// Handle returns the draft handle of an ephemeral reference, or "".
func (r Ref) Handle() string {
	if r.kind != KindEphemeral {
		return ""
	}
	return strings.TrimPrefix(r.value, EphemeralScheme)
}

// String returns the textual form of r; "" for an empty reference.
func (r Ref) String() string {
	return r.value
}

// MarshalJSON encodes r as a JSON string.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

// UnmarshalJSON decodes and classifies a JSON string; null decodes as empty.
func (r *Ref) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ref{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
