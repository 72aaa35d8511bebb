package newsportal

import (
	"html"
	"math"
	"strings"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
)

const wordsPerMinute = 200

// Sanitizer cleans user and editor supplied markup.
type Sanitizer struct {
	rich  *bluemonday.Policy
	plain *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.AllowAttrs("class").Globally()

	return &Sanitizer{
		rich:  p,
		plain: bluemonday.StrictPolicy(),
	}
}

// HTML keeps safe formatting markup of article bodies.
func (s *Sanitizer) HTML(content string) string {
	return strings.TrimSpace(s.rich.Sanitize(content))
}

// PlainText drops every tag and returns unescaped text.
func (s *Sanitizer) PlainText(content string) string {
	return strings.TrimSpace(html.UnescapeString(s.plain.Sanitize(content)))
}

// ReadingTime estimates minutes needed to read the text of content, at least one.
func (s *Sanitizer) ReadingTime(content string) int {
	words := len(strings.Fields(s.PlainText(content)))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	return max(minutes, 1)
}

// Slugify turns a title into a url-safe identifier.
func Slugify(title string) string {
	return slug.Make(title)
}

// IsSlug reports whether s is already a valid slug.
func IsSlug(s string) bool {
	return slug.IsSlug(s)
}

// normalizeEmail lower-cases and trims an address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizePhone keeps digits and a leading plus.
func normalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", ErrInvalidPhone
		}
	}

	normalized := b.String()
	digits := len(strings.TrimPrefix(normalized, "+"))
	if digits < 7 || digits > 15 {
		return "", ErrInvalidPhone
	}

	return normalized, nil
}
