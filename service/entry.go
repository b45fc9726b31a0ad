package service

import (
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/samber/lo"
)

// Link is an entry link with its declared media type
type Link struct {
	Href string
	Type string
}

// Entry is a raw feed item, optional fields are nil or empty when absent
type Entry struct {
	ID             string
	Title          string
	Link           string
	Summary        string
	MediaContent   []string
	MediaThumbnail []string
	Links          []Link
	Published      *time.Time
	Modified       *time.Time
	PublishedRaw   string
	Author         *string
}

// NewEntry resolve the optional fields of a parsed item
func NewEntry(item *gofeed.Item) (*Entry, error) {
	if item.GUID == "" {
		return nil, fmt.Errorf("entry %q has no id: %w", item.Title, ErrMalformed)
	}
	if item.Link == "" {
		return nil, fmt.Errorf("entry %q has no link: %w", item.GUID, ErrMalformed)
	}
	entry := &Entry{
		ID:             item.GUID,
		Title:          item.Title,
		Link:           item.Link,
		Summary:        item.Description,
		MediaContent:   mediaURLs(item.Extensions, "content"),
		MediaThumbnail: mediaURLs(item.Extensions, "thumbnail"),
		Published:      structuredDate(item.PublishedParsed, item.Published),
		Modified:       structuredDate(item.UpdatedParsed, item.Updated),
		PublishedRaw:   item.Published,
		Author:         author(item),
	}
	if entry.Summary == "" {
		entry.Summary = item.Content
	}
	for _, enclosure := range item.Enclosures {
		if enclosure == nil || enclosure.URL == "" {
			continue
		}
		entry.Links = append(entry.Links, Link{Href: enclosure.URL, Type: enclosure.Type})
	}
	return entry, nil
}

// mediaURLs collect media:<name> urls, including the ones grouped in media:group
func mediaURLs(extensions ext.Extensions, name string) []string {
	media, ok := extensions["media"]
	if !ok {
		return nil
	}
	elements := append([]ext.Extension{}, media[name]...)
	for _, group := range media["group"] {
		elements = append(elements, group.Children[name]...)
	}
	urls := lo.FilterMap(elements, func(e ext.Extension, _ int) (string, bool) {
		return e.Attrs["url"], e.Attrs["url"] != ""
	})
	if len(urls) == 0 {
		return nil
	}
	return urls
}

func author(item *gofeed.Item) *string {
	person := item.Author
	if len(item.Authors) > 0 {
		person = item.Authors[0]
	}
	if person == nil {
		return nil
	}
	name := person.Name
	if name == "" {
		name = person.Email
	}
	if name == "" {
		return nil
	}
	return &name
}
