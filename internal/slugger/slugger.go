// Package slugger derives URL-safe slugs from titles and names. Uniqueness is
// the caller's concern; this package only normalizes.
package slugger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonWord = regexp.MustCompile(`[^\w\s-]`)
	spaces  = regexp.MustCompile(`\s+`)
	hyphens = regexp.MustCompile(`-+`)
)

// Make lowercases the input, strips everything but word characters, spaces
// and hyphens, turns whitespace runs into single hyphens and trims the ends.
// An input that normalizes to nothing gets a generated fallback so an empty
// slug can never reach the store.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWord.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled-" + uuid.NewString()[:8]
	}
	return s
}

// WithSuffix returns the n-th collision candidate for base.
func WithSuffix(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}
