package service

import (
	"regexp"
	"strings"

	"github.com/thoas/go-funk"
)

var imageURLRegexp = regexp.MustCompile(`(?i)"(https?://[^"]*\.(?:png|jpg))"`)

// EnsureHTTPS converts http links into https links
func EnsureHTTPS(link string) string {
	if strings.HasPrefix(link, "http:") {
		return "https" + link[4:]
	}
	return link
}

// ResolveThumbnail pick the entry image, nil when there is none
func ResolveThumbnail(entry *Entry) *string {
	link := findThumbnail(entry)
	if link == "" {
		return nil
	}
	link = EnsureHTTPS(link)
	return &link
}

func findThumbnail(entry *Entry) string {
	if len(entry.MediaContent) > 0 {
		return entry.MediaContent[0]
	}
	if len(entry.MediaThumbnail) > 0 {
		return entry.MediaThumbnail[0]
	}
	if found := funk.Find(entry.Links, func(link Link) bool {
		return strings.HasPrefix(link.Type, "image")
	}); found != nil {
		return found.(Link).Href
	}
	if match := imageURLRegexp.FindStringSubmatch(entry.Summary); match != nil {
		return match[1]
	}
	return ""
}
