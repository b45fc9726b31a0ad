package service

import (
	"plate/entity"
)

// Normalize build the article of an entry, it does no I/O
func (c *Cleaner) Normalize(entry *Entry, sourceID int) (*entity.Article, error) {
	published, err := ResolvePublished(entry)
	if err != nil {
		return nil, err
	}
	return &entity.Article{
		OriginalID: entry.ID,
		SourceID:   sourceID,
		Title:      entry.Title,
		Summary:    c.CleanUpText(entry.Summary),
		Link:       entry.Link,
		Thumbnail:  ResolveThumbnail(entry),
		Published:  published,
		Author:     entry.Author,
	}, nil
}
