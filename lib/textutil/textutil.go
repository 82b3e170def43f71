package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// QueryToken turns a title into a token safe to splice into a search
// query string. Only spaces and apostrophes are encoded, the lookup
// target accepts the rest verbatim.
func QueryToken(title string) string {
	title = strings.Trim(title, " \n\t")
	title = strings.ReplaceAll(title, " ", "%20")
	title = strings.ReplaceAll(title, "'", "%27")
	return title
}

var footnoteRegex = regexp.MustCompile(`\[[^\]]*\]`)

// StripFootnotes removes bracketed footnote markers ("[a]", "[12]")
// that wiki markup embeds inside table cells.
func StripFootnotes(s string) string {
	return footnoteRegex.ReplaceAllString(s, "")
}
