package service

import (
	"context"
	"fmt"

	"plate/entity"
	"plate/misc"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Updater runs the fetch, normalize, persist cycle of one source
type Updater struct {
	DB             *gorm.DB
	Fetcher        Fetcher
	Cleaner        *Cleaner
	DedupPerSource bool
}

// UpdateSource fetch the source and store its new articles in one transaction
func (u *Updater) UpdateSource(ctx context.Context, ref SourceRef) error {
	source, err := entity.GetSource(u.DB, ref.ID)
	if err != nil {
		return fmt.Errorf("failed to load source '%s': %w", ref.Name, err)
	}

	result, err := u.Fetcher.Fetch(ctx, source.FeedURL, lo.FromPtr(source.ETag), lo.FromPtr(source.Modified))
	if err != nil {
		return err
	}
	if result.NotModified {
		misc.Info(fmt.Sprintf("no new articles for %q", ref.Name))
		return nil
	}

	return u.DB.Transaction(func(tx *gorm.DB) error {
		if result.ETag != "" {
			if err := entity.UpdateETag(tx, source.ID, result.ETag); err != nil {
				return err
			}
		}
		if result.Modified != "" {
			if err := entity.UpdateModified(tx, source.ID, result.Modified); err != nil {
				return err
			}
		}
		if !result.HasValidators() {
			misc.Warn(fmt.Sprintf("%q does not support etag or last modified date", ref.Name))
		}

		inserted := 0
		for _, item := range result.Items {
			entry, err := NewEntry(item)
			if err != nil {
				return err
			}
			saved, err := SaveArticle(tx, entry.ID, source.ID, ref.Name, u.DedupPerSource, func() (*entity.Article, error) {
				if !HasStructuredDate(entry) {
					misc.Warn(fmt.Sprintf("no parsed date in %q article %q", ref.Name, entry.Title))
				}
				return u.Cleaner.Normalize(entry, source.ID)
			})
			if err != nil {
				return err
			}
			if saved {
				inserted++
			}
		}
		misc.Debug(fmt.Sprintf("%d new articles for %q", inserted, ref.Name))
		return nil
	})
}
