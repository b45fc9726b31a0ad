package service

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	figureRegexp     = regexp.MustCompile(`<figure>[\s\S]*?</figure>`)
	paragraphRegexp  = regexp.MustCompile(`</p><p>`)
	tagRegexp        = regexp.MustCompile(`<.*?>`)
	extraSpaceRegexp = regexp.MustCompile(` +`)
)

// TrailingReplacement replaces a trailing boilerplate of a summary
type TrailingReplacement struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// DefaultTrailingReplacements is applied in order
var DefaultTrailingReplacements = []TrailingReplacement{
	{regexp.MustCompile(` Read the full article on nintendolife\.com$`), ""},
	{regexp.MustCompile(` Continue reading…$`), "."},
	{regexp.MustCompile(`Read this article on TechRaptor$`), ""},
	{regexp.MustCompile(` View the full site RELATED LINKS:.*$`), ""},
	{regexp.MustCompile(` MORE FROM PCGAMESN: .*$`), "."},
	{regexp.MustCompile(` Read more$`), ""},
	{regexp.MustCompile(` \[…]$`), "..."},
}

// Cleaner turns raw entries into articles
type Cleaner struct {
	Trailing []TrailingReplacement
}

// NewCleaner return cleaner with the default trailing replacements
func NewCleaner() *Cleaner {
	return &Cleaner{Trailing: DefaultTrailingReplacements}
}

// RemoveHTMLTags drops figures and markup, decodes entities
func RemoveHTMLTags(text string) string {
	text = figureRegexp.ReplaceAllLiteralString(text, "")
	text = paragraphRegexp.ReplaceAllLiteralString(text, " ")
	text = tagRegexp.ReplaceAllLiteralString(text, "")
	return html.UnescapeString(text)
}

// RemoveExtraSpaces flattens whitespace to single spaces
func RemoveExtraSpaces(text string) string {
	text = strings.NewReplacer("\n", " ", "\t", " ").Replace(text)
	text = extraSpaceRegexp.ReplaceAllLiteralString(text, " ")
	return strings.TrimSpace(text)
}

// RemoveTrailingMessage strips source specific footers
func (c *Cleaner) RemoveTrailingMessage(text string) string {
	for _, r := range c.Trailing {
		text = r.Pattern.ReplaceAllLiteralString(text, r.Replacement)
	}
	return text
}

// CleanUpText return cleaned summary
func (c *Cleaner) CleanUpText(text string) string {
	return c.RemoveTrailingMessage(RemoveExtraSpaces(RemoveHTMLTags(text)))
}
