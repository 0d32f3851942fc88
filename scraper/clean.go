package scraper

import (
	"regexp"
	"strings"
)

// Common boilerplate phrases that survive markup stripping on news pages
var boilerplateRe = regexp.MustCompile(`(?i)Advertisement|Advertise|Subscribe|Sign up|Follow us`)

// cleanText collapses whitespace runs to single spaces, trims, and strips
// boilerplate phrases. Every strategy runs its output through this.
func cleanText(text string) string {
	if text == "" {
		return ""
	}
	text = boilerplateRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
