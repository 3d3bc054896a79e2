package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

func postRows(ids ...int64) *sqlmock.Rows {
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "account_id", "project_id", "domain_id", "brief_id", "slug", "target_kw",
		"outline", "draft_url", "publish_url", "serp_target", "current_position", "status",
		"word_count", "author_id", "published_at", "indexed_at", "created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(id, int64(7), nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil, string(models.PostReview),
			nil, nil, nil, nil, now, now)
	}
	return rows
}

func TestListPostsByStatusScopesToAccount(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewPosts(store, logger.NewNop())

	mock.ExpectQuery(`SELECT .+ FROM posts WHERE account_id = \$1 AND status = \$2 ORDER BY created_at DESC`).
		WithArgs(int64(7), string(models.PostReview)).
		WillReturnRows(postRows(2, 1))

	posts, err := repo.ListByStatus(context.Background(), 7, models.PostReview)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(2), posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPostsByStatusRejectsUnknownStatus(t *testing.T) {
	repo := NewPosts(unavailableStore(), logger.NewNop())

	posts, err := repo.ListByStatus(context.Background(), 7, models.PostStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, posts)
}

func TestListKeywordsByAccount(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewKeywords(store, logger.NewNop())

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "account_id", "project_id", "keyword", "search_volume", "difficulty", "cpc",
		"intent", "current_rank", "target_rank", "assigned_post_id", "status",
		"created_at", "updated_at",
	}).AddRow(int64(1), int64(3), nil, "plumber near me", nil, nil, nil,
		nil, nil, nil, nil, string(models.KeywordResearched), now, now)

	mock.ExpectQuery(`SELECT .+ FROM keywords WHERE account_id = \$1 ORDER BY created_at DESC`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	keywords, err := repo.ListByAccount(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, "plumber near me", keywords[0].Keyword)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBriefDefaultsToDraft(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewBriefs(store, logger.NewNop())

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "account_id", "project_id", "keyword_id", "title", "target_keyword", "outline",
		"serp_analysis", "word_count_target", "tone_guidelines", "internal_link_suggestions",
		"status", "assigned_to", "created_at", "updated_at",
	}).AddRow(int64(1), int64(3), nil, nil, "HVAC guide", nil, nil,
		nil, nil, nil, nil, string(models.BriefDraft), nil, now, now)

	mock.ExpectQuery(`INSERT INTO briefs`).
		WithArgs(int64(3), nil, nil, "HVAC guide", nil, nil,
			nil, nil, nil, nil, string(models.BriefDraft), nil).
		WillReturnRows(rows)

	brief, err := repo.Create(context.Background(), &models.Brief{AccountID: 3, Title: "HVAC guide"})
	require.NoError(t, err)
	require.NotNil(t, brief)
	assert.Equal(t, models.BriefDraft, brief.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
