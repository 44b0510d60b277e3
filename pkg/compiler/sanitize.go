package compiler

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeMessageText strips raw HTML from message text so markup can never
// ride through a definition file into compiled artifacts. Entity escaping
// introduced by the policy is undone afterwards; text without markup passes
// through untouched.
func sanitizeMessageText(raw string) string {
	if !strings.ContainsRune(raw, '<') {
		return raw
	}
	cleaned := messageSanitizer().Sanitize(raw)
	return html.UnescapeString(cleaned)
}

func messageSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
