// Package entity describes the persisted rows and the queries over them
package entity

// Source is a configured feed
type Source struct {
	ID       int    `gorm:"primaryKey"`
	Name     string `gorm:"uniqueIndex:source_name_unique;not null"`
	FeedURL  string `gorm:"column:feed_url"`
	Icon     *string
	ETag     *string `gorm:"column:etag"`
	Modified *string `gorm:"column:modified"`
}

// TableName is table name
func (Source) TableName() string { return "source" }

// Article is a normalized feed entry
type Article struct {
	ID         int    `gorm:"primaryKey"`
	OriginalID string `gorm:"column:original_id;index:original_id_index;index:source_id_original_id_index,priority:2"`
	SourceID   int    `gorm:"column:source_id;index:source_id_original_id_index,priority:1"`
	Source     Source `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title      string
	Summary    string
	Link       string
	Thumbnail  *string
	Published  int64 `gorm:"index:published_index"`
	Author     *string
}

// TableName is table name
func (Article) TableName() string { return "article" }

// Audit is a pass outcome
type Audit struct {
	ID         string `gorm:"primaryKey"`
	UpdateTime int64  `gorm:"column:update_time;index:update_time_index"`
	Success    bool
}

// TableName is table name
func (Audit) TableName() string { return "audit" }

// Models lists the models to migrate
func Models() []any {
	return []any{&Source{}, &Article{}, &Audit{}}
}
