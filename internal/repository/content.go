package repository

import (
	"context"
	"fmt"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const keywordColumns = `id, account_id, project_id, keyword, search_volume, difficulty, cpc, intent,
	current_rank, target_rank, assigned_post_id, status, created_at, updated_at`

const briefColumns = `id, account_id, project_id, keyword_id, title, target_keyword, outline,
	serp_analysis, word_count_target, tone_guidelines, internal_link_suggestions, status,
	assigned_to, created_at, updated_at`

const postColumns = `id, account_id, project_id, domain_id, brief_id, slug, target_kw, outline,
	draft_url, publish_url, serp_target, current_position, status, word_count, author_id,
	published_at, indexed_at, created_at, updated_at`

// Keywords persists tracked search terms.
type Keywords struct {
	store *database.Store
	log   logger.Logger
}

// NewKeywords creates the keyword repository.
func NewKeywords(store *database.Store, log logger.Logger) *Keywords {
	return &Keywords{store: store, log: log}
}

// ListByAccount returns the account's keywords, newest first.
func (r *Keywords) ListByAccount(ctx context.Context, accountID int64) ([]models.Keyword, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Keyword{}, nil
	}

	keywords := []models.Keyword{}
	query := "SELECT " + keywordColumns + " FROM keywords WHERE account_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &keywords, query, accountID); err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	return keywords, nil
}

// Create inserts a keyword and returns the stored row. Returns nil when the
// store is unavailable.
func (r *Keywords) Create(ctx context.Context, k *models.Keyword) (*models.Keyword, error) {
	if k.Status != "" && !k.Status.Valid() {
		return nil, fmt.Errorf("invalid keyword status %q: %w", k.Status, ErrInvalidInput)
	}
	if k.Intent != nil && !k.Intent.Valid() {
		return nil, fmt.Errorf("invalid keyword intent %q: %w", *k.Intent, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if k.Status == "" {
		k.Status = models.KeywordResearched
	}

	var stored models.Keyword
	query := `INSERT INTO keywords (account_id, project_id, keyword, search_volume, difficulty, cpc,
		intent, current_rank, target_rank, assigned_post_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + keywordColumns
	err := db.GetContext(ctx, &stored, query,
		k.AccountID, k.ProjectID, k.Keyword, k.SearchVolume, k.Difficulty, k.CPC,
		k.Intent, k.CurrentRank, k.TargetRank, k.AssignedPostID, k.Status)
	if err != nil {
		return nil, fmt.Errorf("create keyword: %w", err)
	}
	return &stored, nil
}

// Briefs persists content briefs.
type Briefs struct {
	store *database.Store
	log   logger.Logger
}

// NewBriefs creates the brief repository.
func NewBriefs(store *database.Store, log logger.Logger) *Briefs {
	return &Briefs{store: store, log: log}
}

// ListByAccount returns the account's briefs, newest first.
func (r *Briefs) ListByAccount(ctx context.Context, accountID int64) ([]models.Brief, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Brief{}, nil
	}

	briefs := []models.Brief{}
	query := "SELECT " + briefColumns + " FROM briefs WHERE account_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &briefs, query, accountID); err != nil {
		return nil, fmt.Errorf("list briefs: %w", err)
	}
	return briefs, nil
}

// Create inserts a brief and returns the stored row. Returns nil when the
// store is unavailable.
func (r *Briefs) Create(ctx context.Context, b *models.Brief) (*models.Brief, error) {
	if b.Status != "" && !b.Status.Valid() {
		return nil, fmt.Errorf("invalid brief status %q: %w", b.Status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if b.Status == "" {
		b.Status = models.BriefDraft
	}

	var stored models.Brief
	query := `INSERT INTO briefs (account_id, project_id, keyword_id, title, target_keyword, outline,
		serp_analysis, word_count_target, tone_guidelines, internal_link_suggestions, status, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + briefColumns
	err := db.GetContext(ctx, &stored, query,
		b.AccountID, b.ProjectID, b.KeywordID, b.Title, b.TargetKeyword, b.Outline,
		b.SerpAnalysis, b.WordCountTarget, b.ToneGuidelines, b.InternalLinkSuggestions, b.Status, b.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("create brief: %w", err)
	}
	return &stored, nil
}

// Posts persists content assets in production.
type Posts struct {
	store *database.Store
	log   logger.Logger
}

// NewPosts creates the post repository.
func NewPosts(store *database.Store, log logger.Logger) *Posts {
	return &Posts{store: store, log: log}
}

// ListByAccount returns the account's posts, newest first.
func (r *Posts) ListByAccount(ctx context.Context, accountID int64) ([]models.Post, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Post{}, nil
	}

	posts := []models.Post{}
	query := "SELECT " + postColumns + " FROM posts WHERE account_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &posts, query, accountID); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListByStatus returns the account's posts in a given pipeline state, newest
// first. Both filters apply together so tenants stay isolated.
func (r *Posts) ListByStatus(ctx context.Context, accountID int64, status models.PostStatus) ([]models.Post, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid post status %q: %w", status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Post{}, nil
	}

	posts := []models.Post{}
	query := "SELECT " + postColumns + " FROM posts WHERE account_id = $1 AND status = $2 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &posts, query, accountID, status); err != nil {
		return nil, fmt.Errorf("list posts by status: %w", err)
	}
	return posts, nil
}

// Create inserts a post and returns the stored row. Returns nil when the
// store is unavailable.
func (r *Posts) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if p.Status != "" && !p.Status.Valid() {
		return nil, fmt.Errorf("invalid post status %q: %w", p.Status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if p.Status == "" {
		p.Status = models.PostBriefReady
	}

	var stored models.Post
	query := `INSERT INTO posts (account_id, project_id, domain_id, brief_id, slug, target_kw,
		outline, draft_url, publish_url, serp_target, current_position, status, word_count,
		author_id, published_at, indexed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + postColumns
	err := db.GetContext(ctx, &stored, query,
		p.AccountID, p.ProjectID, p.DomainID, p.BriefID, p.Slug, p.TargetKw,
		p.Outline, p.DraftURL, p.PublishURL, p.SerpTarget, p.CurrentPosition, p.Status, p.WordCount,
		p.AuthorID, p.PublishedAt, p.IndexedAt)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &stored, nil
}
