// Package imageref decides which image reference a product stores and how
// that reference is turned into a URL clients can load.
package imageref

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/config"
	"github.com/junaidrashid-git/jewelry-api/logger"
)

const (
	// UploadPrefix is the public path under which uploaded files are served.
	UploadPrefix   = "/uploads/"
	productsPrefix = UploadPrefix + "products/"

	MaxURLLength     = 5000
	MaxDataURILength = 14_000_000

	previewLength = 150
)

var (
	ErrEmpty        = errors.New("empty value")
	ErrTooLong      = errors.New("value too long")
	ErrLogOutput    = errors.New("value contains log output")
	ErrLocalPath    = errors.New("local file paths cannot be served")
	ErrUnrecognized = errors.New("unrecognized image reference")
)

// logFragments are pieces of console output that client builds have been
// seen pasting into the image field.
var logFragments = []string{
	"ImeTracker",
	"Exception caught",
	"RenderFlex overflowed",
	"InputConnectionAdaptor",
	"InsetsController",
	"WindowOnBackDispatcher",
	"AssetManager",
	"[nodemon]",
	"nodemon",
	"starting `",
	"watching path",
	"watching extensions",
	"to restart at any time",
}

var (
	quotes      = regexp.MustCompile(`^["']+|["']+$`)
	httpURL     = regexp.MustCompile(`(?i)^https?://.+`)
	dataImage   = regexp.MustCompile(`(?i)^data:image/[a-z0-9.+-]+;base64,`)
	windowsPath = regexp.MustCompile(`^[A-Za-z]:[\\/]`)
)

// Resolver picks the stored image reference for a product write.
type Resolver struct {
	policy config.ImagePolicy
}

func NewResolver(policy config.ImagePolicy) *Resolver {
	if policy == "" {
		policy = config.ImagePolicyLenient
	}
	return &Resolver{policy: policy}
}

// UploadPath is the stored reference of a freshly uploaded product image.
func UploadPath(filename string) string {
	return productsPrefix + filename
}

// Resolve returns the reference to store. An uploaded filename wins over a
// supplied URL; with neither the result is "". An unusable supplied URL is
// dropped with a warning under the lenient policy and is a validation error
// under the strict one.
func (r *Resolver) Resolve(filename string, supplied *string) (string, error) {
	if filename != "" {
		return UploadPath(filename), nil
	}
	if supplied == nil || *supplied == "" {
		return "", nil
	}

	ref, err := Clean(*supplied)
	if err == nil {
		return ref, nil
	}

	if r.policy == config.ImagePolicyStrict {
		return "", apperr.Validation(fmt.Sprintf("imageUrl is not a usable image reference: %v.", err))
	}
	logger.Warn().
		Err(err).
		Int("length", utf8.RuneCountInString(ref)).
		Str("preview", preview(ref)).
		Msg("discarding imageUrl")
	return "", nil
}

// Clean normalises a client-supplied image URL and reports why it cannot be
// used. The cleaned value is returned even on error so it can be logged.
func Clean(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	v = strings.TrimSpace(quotes.ReplaceAllString(v, ""))

	if v == "" {
		return v, ErrEmpty
	}

	limit := MaxURLLength
	if dataImage.MatchString(v) {
		limit = MaxDataURILength
	}
	if utf8.RuneCountInString(v) > limit {
		return v, ErrTooLong
	}

	for _, fragment := range logFragments {
		if strings.Contains(v, fragment) {
			return v, ErrLogOutput
		}
	}

	switch {
	case httpURL.MatchString(v), dataImage.MatchString(v), strings.HasPrefix(v, UploadPrefix):
		return v, nil
	case windowsPath.MatchString(v), strings.HasPrefix(v, "/"):
		return v, ErrLocalPath
	default:
		return v, ErrUnrecognized
	}
}

func preview(v string) string {
	n := 0
	for i := range v {
		if n == previewLength {
			return v[:i]
		}
		n++
	}
	return v
}
