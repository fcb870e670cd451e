package utils

import "github.com/microcosm-cc/bluemonday"

// Every user-supplied text field here (study progress notes, locations, vote
// reasons, room descriptions) is plain text rendered by API clients, so all
// markup is stripped rather than allowing a UGC subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips HTML from user-supplied text to prevent stored XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
