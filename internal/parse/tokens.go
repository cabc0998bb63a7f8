package parse

import "strings"

// Not-a-time tokens, matched case-insensitively after trimming.
// Mirrors the conventional null spellings accepted alongside the empty string.
var natTokens = map[string]struct{}{
	"":     {},
	"nat":  {},
	"nan":  {},
	"null": {},
	"none": {},
}

// IsNaT reports whether s spells a not-a-time value.
func IsNaT(s string) bool {
	_, ok := natTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Literal relative tokens resolved against the injected clock at call time.
// Matched exactly; "Now" or "TODAY " are ordinary parse candidates.
const (
	TokenNow   = "now"
	TokenToday = "today"
)
