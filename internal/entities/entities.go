// Package entities replaces email addresses and URLs with fixed tokens.
package entities

import (
	"regexp"

	"mvdan.cc/xurls/v2"
)

const (
	EmailToken = " (email) "
	URLToken   = " (url) "
)

var (
	emailRe = regexp.MustCompile(`[\p{L}\p{N}!#$%&'*+/=?^_{|}~-]+(?:\.[\p{L}\p{N}!#$%&'*+/=?^_{|}~-]+)*@[\p{L}\p{N}](?:[\p{L}\p{N}-]*[\p{L}\p{N}])?(?:\.[\p{L}\p{N}](?:[\p{L}\p{N}-]*[\p{L}\p{N}])?)+`)
	// urlRe accepts URLs without a scheme, such as "example.com/path".
	urlRe = xurls.Relaxed()
)

// ReplaceEmails replaces every email address in s with EmailToken.
func ReplaceEmails(s string) string {
	return emailRe.ReplaceAllLiteralString(s, EmailToken)
}

// ReplaceURLs replaces every URL in s with URLToken. Run it after
// ReplaceEmails, the relaxed matcher also accepts bare email domains.
func ReplaceURLs(s string) string {
	return urlRe.ReplaceAllLiteralString(s, URLToken)
}
