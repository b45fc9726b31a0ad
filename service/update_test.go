package service_test

import (
	"errors"
	"fmt"
	"time"

	"plate/entity"
	"plate/service"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
)

func (t *SuiteTest) newUpdater(fetcher service.Fetcher) *service.Updater {
	return &service.Updater{DB: t.db, Fetcher: fetcher, Cleaner: service.NewCleaner()}
}

func (t *SuiteTest) Test_Update_UpdateSource() {
	sources := t.createSources("err")
	published := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{results: map[string]*service.FeedResult{
		sources[0].FeedURL: {
			ETag:     `"v1"`,
			Modified: "Mon, 01 Jan 2024 10:00:00 GMT",
			Items: []*gofeed.Item{
				newItem("err#1", "first", published),
				newItem("err#2", "second", published.Add(time.Hour)),
				newItem("err#1", "first again", published),
			},
		},
	}}

	err := t.newUpdater(fetcher).UpdateSource(t.ctx, service.SourceRef{ID: sources[0].ID, Name: "err"})
	if assert.NoError(t.T(), err) {
		var articles []entity.Article
		result := t.db.Order("id").Find(&articles)
		assert.NoError(t.T(), result.Error)
		assert.EqualValues(t.T(), 2, result.RowsAffected)
		assert.Equal(t.T(), "err#1", articles[0].OriginalID)
		assert.Equal(t.T(), "first", articles[0].Summary)
		assert.Equal(t.T(), published.Unix(), articles[0].Published)
		assert.Equal(t.T(), "err#2", articles[1].OriginalID)
		assert.Equal(t.T(), sources[0].ID, articles[1].SourceID)

		stored, err := entity.GetSource(t.db, sources[0].ID)
		assert.NoError(t.T(), err)
		if assert.NotNil(t.T(), stored.ETag) && assert.NotNil(t.T(), stored.Modified) {
			assert.Equal(t.T(), `"v1"`, *stored.ETag)
			assert.Equal(t.T(), "Mon, 01 Jan 2024 10:00:00 GMT", *stored.Modified)
		}
	}

	err = t.newUpdater(fetcher).UpdateSource(t.ctx, service.SourceRef{ID: sources[0].ID, Name: "err"})
	if assert.NoError(t.T(), err) {
		count, err := entity.CountArticles(t.db, sources[0].ID)
		assert.NoError(t.T(), err)
		assert.EqualValues(t.T(), 2, count)
		assert.Equal(t.T(), fetchCall{URL: sources[0].FeedURL, ETag: `"v1"`, Modified: "Mon, 01 Jan 2024 10:00:00 GMT"}, fetcher.calls[1])
	}
}

func (t *SuiteTest) Test_Update_UpdateSource_NotModified() {
	sources := t.createSources("err")
	t.Require().NoError(entity.UpdateETag(t.db, sources[0].ID, `"old"`))
	fetcher := &fakeFetcher{results: map[string]*service.FeedResult{
		sources[0].FeedURL: {NotModified: true},
	}}

	err := t.newUpdater(fetcher).UpdateSource(t.ctx, service.SourceRef{ID: sources[0].ID, Name: "err"})
	if assert.NoError(t.T(), err) {
		assert.Equal(t.T(), `"old"`, fetcher.calls[0].ETag)
		assert.Equal(t.T(), "", fetcher.calls[0].Modified)

		count, err := entity.CountArticles(t.db, 0)
		assert.NoError(t.T(), err)
		assert.EqualValues(t.T(), 0, count)

		stored, err := entity.GetSource(t.db, sources[0].ID)
		assert.NoError(t.T(), err)
		if assert.NotNil(t.T(), stored.ETag) {
			assert.Equal(t.T(), `"old"`, *stored.ETag)
		}
		assert.Nil(t.T(), stored.Modified)
	}
}

func (t *SuiteTest) Test_Update_UpdateSource_NoValidators() {
	sources := t.createSources("err")
	fetcher := &fakeFetcher{results: map[string]*service.FeedResult{
		sources[0].FeedURL: {Items: []*gofeed.Item{newItem("err#1", "first", time.Now())}},
	}}

	err := t.newUpdater(fetcher).UpdateSource(t.ctx, service.SourceRef{ID: sources[0].ID, Name: "err"})
	if assert.NoError(t.T(), err) {
		count, err := entity.CountArticles(t.db, sources[0].ID)
		assert.NoError(t.T(), err)
		assert.EqualValues(t.T(), 1, count)

		stored, err := entity.GetSource(t.db, sources[0].ID)
		assert.NoError(t.T(), err)
		assert.Nil(t.T(), stored.ETag)
		assert.Nil(t.T(), stored.Modified)
	}
}

func (t *SuiteTest) Test_Update_UpdateSource_FreeTextDate() {
	sources := t.createSources("err")
	item := parseDatedItem(t.T(), "Mon, 01 Jan 2024 00:00:00")
	fetcher := &fakeFetcher{results: map[string]*service.FeedResult{
		sources[0].FeedURL: {Items: []*gofeed.Item{item}},
	}}

	err := t.newUpdater(fetcher).UpdateSource(t.ctx, service.SourceRef{ID: sources[0].ID, Name: "err"})
	if assert.NoError(t.T(), err) {
		var article entity.Article
		assert.NoError(t.T(), t.db.Take(&article).Error)
		assert.Equal(t.T(), time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC).Unix(), article.Published)
	}
}

func (t *SuiteTest) Test_Update_UpdateSource_Rollback() {
	sources := t.createSources("err")
	fetcher := &fakeFetcher{results: map[string]*service.FeedResult{
		sources[0].FeedURL: {
			ETag: `"v2"`,
			Items: []*gofeed.Item{
				newItem("err#1", "first", time.Now()),
				{Title: "no id", Link: "https://example.com/x"},
			},
		},
	}}

	err := t.newUpdater(fetcher).UpdateSource(t.ctx, service.SourceRef{ID: sources[0].ID, Name: "err"})
	assert.ErrorIs(t.T(), err, service.ErrMalformed)
	assert.True(t.T(), service.IsRecoverable(err))

	count, err := entity.CountArticles(t.db, 0)
	assert.NoError(t.T(), err)
	assert.EqualValues(t.T(), 0, count)

	stored, err := entity.GetSource(t.db, sources[0].ID)
	assert.NoError(t.T(), err)
	assert.Nil(t.T(), stored.ETag)
}

func (t *SuiteTest) Test_Update_UpdateSource_FetchError() {
	sources := t.createSources("err")
	fetcher := &fakeFetcher{errs: map[string]error{
		sources[0].FeedURL: fmt.Errorf("connection reset: %w", service.ErrFetch),
	}}

	err := t.newUpdater(fetcher).UpdateSource(t.ctx, service.SourceRef{ID: sources[0].ID, Name: "err"})
	assert.True(t.T(), errors.Is(err, service.ErrFetch))
}
