package service_test

import (
	"fmt"

	"plate/entity"
	"plate/service"

	"github.com/stretchr/testify/assert"
)

func (t *SuiteTest) createSources(names ...string) []entity.Source {
	sources := make([]entity.Source, 0, len(names))
	for _, name := range names {
		source, err := entity.CreateSource(t.db, name, "https://"+name+".example.com/rss", nil)
		t.Require().NoError(err)
		sources = append(sources, *source)
	}
	return sources
}

func (t *SuiteTest) save(article entity.Article, sourceName string, perSource bool) bool {
	saved, err := service.SaveArticle(t.db, article.OriginalID, article.SourceID, sourceName, perSource, func() (*entity.Article, error) {
		return &article, nil
	})
	t.Require().NoError(err)
	return saved
}

func (t *SuiteTest) Test_Record_SaveArticle_Dedup() {
	sources := t.createSources("err")

	assert.True(t.T(), t.save(entity.Article{OriginalID: "err#123", SourceID: sources[0].ID, Title: "title", Link: "link", Published: 1}, "err", false))

	built := false
	saved, err := service.SaveArticle(t.db, "err#123", sources[0].ID, "err", false, func() (*entity.Article, error) {
		built = true
		return &entity.Article{OriginalID: "err#123", SourceID: sources[0].ID, Title: "changed", Link: "link_new", Published: 2}, nil
	})
	if assert.NoError(t.T(), err) {
		assert.False(t.T(), saved)
		assert.False(t.T(), built)
	}

	var articles []entity.Article
	result := t.db.Where("original_id = ?", "err#123").Find(&articles)
	assert.NoError(t.T(), result.Error)
	assert.EqualValues(t.T(), 1, result.RowsAffected)
	assert.Equal(t.T(), "title", articles[0].Title)
	assert.Equal(t.T(), "link", articles[0].Link)
}

func (t *SuiteTest) Test_Record_SaveArticle_BuildError() {
	sources := t.createSources("err")

	saved, err := service.SaveArticle(t.db, "err#1", sources[0].ID, "err", false, func() (*entity.Article, error) {
		return nil, fmt.Errorf("no date: %w", service.ErrMalformed)
	})
	assert.False(t.T(), saved)
	assert.ErrorIs(t.T(), err, service.ErrMalformed)

	count, err := entity.CountArticles(t.db, 0)
	assert.NoError(t.T(), err)
	assert.EqualValues(t.T(), 0, count)
}

func (t *SuiteTest) Test_Record_SaveArticle_GlobalScope() {
	sources := t.createSources("err", "pm")

	assert.True(t.T(), t.save(entity.Article{OriginalID: "shared", SourceID: sources[0].ID}, "err", false))
	assert.False(t.T(), t.save(entity.Article{OriginalID: "shared", SourceID: sources[1].ID}, "pm", false))

	count, err := entity.CountArticles(t.db, sources[1].ID)
	assert.NoError(t.T(), err)
	assert.EqualValues(t.T(), 0, count)
}

func (t *SuiteTest) Test_Record_SaveArticle_PerSourceScope() {
	sources := t.createSources("err", "pm")

	assert.True(t.T(), t.save(entity.Article{OriginalID: "shared", SourceID: sources[0].ID}, "err", true))
	assert.True(t.T(), t.save(entity.Article{OriginalID: "shared", SourceID: sources[1].ID}, "pm", true))
	assert.False(t.T(), t.save(entity.Article{OriginalID: "shared", SourceID: sources[1].ID}, "pm", true))

	count, err := entity.CountArticles(t.db, 0)
	assert.NoError(t.T(), err)
	assert.EqualValues(t.T(), 2, count)
}
