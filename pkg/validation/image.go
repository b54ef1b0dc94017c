// Package validation checks image references against the engine's reference grammar.
package validation

import (
	"fmt"

	"github.com/distribution/reference"
)

// MaxImageReferenceLength bounds a full reference, registry included.
const MaxImageReferenceLength = 512

// ParseImageReference splits an image reference into its familiar name and
// its tag or digest. A reference without either gets "latest".
//
//	myapp                                  -> myapp, latest
//	myapp:v1                               -> myapp, v1
//	registry.example.com:5000/myapp:v1.0   -> registry.example.com:5000/myapp, v1.0
//	myapp@sha256:...                       -> myapp, sha256:...
func ParseImageReference(imageRef string) (name, ref string, err error) {
	if imageRef == "" {
		return "", "", fmt.Errorf("image reference cannot be empty")
	}
	if len(imageRef) > MaxImageReferenceLength {
		return "", "", fmt.Errorf("image reference too long: %d chars (max %d)", len(imageRef), MaxImageReferenceLength)
	}

	named, err := reference.ParseNormalizedNamed(imageRef)
	if err != nil {
		return "", "", fmt.Errorf("invalid image reference %q: %w", imageRef, err)
	}

	name = reference.FamiliarName(named)
	if digested, ok := named.(reference.Digested); ok {
		return name, digested.Digest().String(), nil
	}
	tagged, ok := reference.TagNameOnly(named).(reference.Tagged)
	if !ok {
		return name, "latest", nil
	}
	return name, tagged.Tag(), nil
}

// ValidateImageReference checks a reference such as "nginx", "nginx:latest",
// "registry.example.com:5000/team/app:v1" or "alpine@sha256:...".
// Repository paths must be lowercase.
func ValidateImageReference(imageRef string) error {
	_, _, err := ParseImageReference(imageRef)
	return err
}
