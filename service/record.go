package service

import (
	"fmt"

	"plate/entity"
	"plate/misc"

	"gorm.io/gorm"
)

// IsKnown report whether an article with the original id is stored, globally
// or, with perSource, for the source only
func IsKnown(tx *gorm.DB, originalID string, sourceID int, perSource bool) (bool, error) {
	scope := 0
	if perSource {
		scope = sourceID
	}
	return entity.ArticleExists(tx, originalID, scope)
}

// SaveArticle insert the article built by build unless the original id is
// known, build runs only for new ids. Returns whether a row was written
func SaveArticle(tx *gorm.DB, originalID string, sourceID int, sourceName string, perSource bool, build func() (*entity.Article, error)) (bool, error) {
	known, err := IsKnown(tx, originalID, sourceID, perSource)
	if err != nil {
		return false, err
	}
	if known {
		return false, nil
	}
	article, err := build()
	if err != nil {
		return false, err
	}
	return true, insertArticle(tx, article, sourceName)
}

func insertArticle(tx *gorm.DB, article *entity.Article, sourceName string) error {
	misc.Info(fmt.Sprintf("inserting %q article %q", sourceName, article.Title))
	if err := entity.InsertArticle(tx, article); err != nil {
		return fmt.Errorf("failed to insert article '%s': %w", article.OriginalID, err)
	}
	misc.Inserted(sourceName)
	return nil
}
