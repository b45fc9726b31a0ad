package entity

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleExists check an original id, sourceID > 0 scopes the check to that source
func ArticleExists(db *gorm.DB, originalID string, sourceID int) (bool, error) {
	var count int64
	query := db.Model(&Article{}).Where("original_id = ?", originalID)
	if sourceID > 0 {
		query = query.Where("source_id = ?", sourceID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertArticle insert an article, the source row is never touched
func InsertArticle(db *gorm.DB, article *Article) error {
	return db.Omit(clause.Associations).Create(article).Error
}

// CountArticles return number of stored articles of the source, 0 means all
func CountArticles(db *gorm.DB, sourceID int) (int64, error) {
	var count int64
	query := db.Model(&Article{})
	if sourceID > 0 {
		query = query.Where("source_id = ?", sourceID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
