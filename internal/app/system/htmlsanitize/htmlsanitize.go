// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from user-supplied text before it is
// persisted. Step titles and descriptions are plain text; anything that
// looks like HTML is removed rather than escaped.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	strict *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	once.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// Strip removes all HTML elements and attributes from s, leaving plain text.
func Strip(s string) string {
	return strings.TrimSpace(policy().Sanitize(s))
}
