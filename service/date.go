package service

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// FreeTextOffset moves free text dates to UTC, the only known feed without
// structured dates reports UTC-5 wall clock time
var FreeTextOffset = 5 * time.Hour

var freeTextLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04:05",
}

var (
	guessZoneA = time.FixedZone("PLATEA", 3*3600)
	guessZoneB = time.FixedZone("PLATEB", -7*3600)
)

// isZoneless report whether a date text carries no zone or offset, a parser
// reading it has to guess the zone
func isZoneless(text string) bool {
	for _, layout := range freeTextLayouts {
		if _, err := time.Parse(layout, text); err == nil {
			return true
		}
	}
	a, err := dateparse.ParseIn(text, guessZoneA)
	if err != nil {
		return false
	}
	b, err := dateparse.ParseIn(text, guessZoneB)
	if err != nil {
		return false
	}
	return !a.Equal(b)
}

// structuredDate drop a parsed date whose text had no zone
func structuredDate(parsed *time.Time, text string) *time.Time {
	if parsed == nil || text == "" {
		return parsed
	}
	if isZoneless(text) {
		return nil
	}
	return parsed
}

// HasStructuredDate report whether the entry carries a parsed date
func HasStructuredDate(entry *Entry) bool {
	return entry.Published != nil || entry.Modified != nil
}

// ResolvePublished return publish time as epoch seconds
func ResolvePublished(entry *Entry) (int64, error) {
	if entry.Published != nil {
		return entry.Published.Unix(), nil
	}
	if entry.Modified != nil {
		return entry.Modified.Unix(), nil
	}
	if entry.PublishedRaw == "" {
		return 0, fmt.Errorf("entry %q has no date: %w", entry.ID, ErrMalformed)
	}
	parsed, err := parseFreeText(entry.PublishedRaw)
	if err != nil {
		return 0, fmt.Errorf("entry %q date %q: %v: %w", entry.ID, entry.PublishedRaw, err, ErrMalformed)
	}
	// the zone of the text is ignored, only the wall clock counts
	wall := time.Date(parsed.Year(), parsed.Month(), parsed.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC)
	return wall.Add(FreeTextOffset).Unix(), nil
}

func parseFreeText(text string) (time.Time, error) {
	for _, layout := range freeTextLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return dateparse.ParseIn(text, time.UTC)
}
