package chat

import (
	"regexp"
	"strings"
)

// The content filter keeps contact exchange off-platform until the rental
// closes. It screens URLs, email addresses, phone-like digit runs and a
// short list of messenger keywords.
var (
	urlPattern   = regexp.MustCompile(`(?i)https?://|www\.`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\b\d[\d\s\-]{6,}\d\b`)
)

var blockedKeywords = []string{"wa.me", "whatsapp", "telegram", "t.me"}

// Screen returns ok=false with a short reason when the body must not be
// sent. The reason names the rule, never echoes the matched text.
func Screen(body string) (string, bool) {
	if urlPattern.MatchString(body) {
		return "links are not allowed", false
	}
	if emailPattern.MatchString(body) {
		return "email addresses are not allowed", false
	}
	if phonePattern.MatchString(body) {
		return "phone numbers are not allowed", false
	}
	lower := strings.ToLower(body)
	for _, kw := range blockedKeywords {
		if strings.Contains(lower, kw) {
			return "external messaging references are not allowed", false
		}
	}
	return "", true
}
