package entity

import (
	"errors"

	"gorm.io/gorm"
)

// GetSourceByName return source by name, nil when absent
func GetSourceByName(db *gorm.DB, name string) (*Source, error) {
	var source Source
	err := db.Where("name = ?", name).Take(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &source, nil
}

// GetSource return source by id
func GetSource(db *gorm.DB, id int) (*Source, error) {
	var source Source
	if err := db.Take(&source, id).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

// CreateSource insert a source with empty validators
func CreateSource(db *gorm.DB, name, feedURL string, icon *string) (*Source, error) {
	source := Source{Name: name, FeedURL: feedURL, Icon: icon}
	if err := db.Create(&source).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

// UpdateIcon set source icon
func UpdateIcon(db *gorm.DB, id int, icon *string) error {
	return db.Model(&Source{}).Where("id = ?", id).Update("icon", icon).Error
}

// UpdateETag set source etag
func UpdateETag(db *gorm.DB, id int, etag string) error {
	return db.Model(&Source{}).Where("id = ?", id).Update("etag", etag).Error
}

// UpdateModified set source last modified token
func UpdateModified(db *gorm.DB, id int, modified string) error {
	return db.Model(&Source{}).Where("id = ?", id).Update("modified", modified).Error
}

// ListSources return all sources ordered by id
func ListSources(db *gorm.DB) ([]Source, error) {
	var sources []Source
	if err := db.Order("id").Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}
