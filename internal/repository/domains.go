package repository

import (
	"context"
	"fmt"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const domainColumns = `id, account_id, project_id, domain, cms, api_key, status, crawl_frequency,
	last_crawl_at, total_pages, indexed_pages, technical_score, created_at, updated_at`

const pageColumns = `id, domain_id, url, url_hash, status, cms, word_count, has_schema, schema_types,
	internal_links, external_links, last_crawl_at, indexed_at, title, meta_description, h1,
	created_at, updated_at`

// Domains persists monitored websites, unique on the domain name.
type Domains struct {
	store *database.Store
	log   logger.Logger
}

// NewDomains creates the domain repository.
func NewDomains(store *database.Store, log logger.Logger) *Domains {
	return &Domains{store: store, log: log}
}

// List returns all domains, newest first.
func (r *Domains) List(ctx context.Context) ([]models.Domain, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Domain{}, nil
	}

	domains := []models.Domain{}
	query := "SELECT " + domainColumns + " FROM domains ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &domains, query); err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	return domains, nil
}

// ListByAccount returns the account's domains, newest first.
func (r *Domains) ListByAccount(ctx context.Context, accountID int64) ([]models.Domain, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Domain{}, nil
	}

	domains := []models.Domain{}
	query := "SELECT " + domainColumns + " FROM domains WHERE account_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &domains, query, accountID); err != nil {
		return nil, fmt.Errorf("list domains by account: %w", err)
	}
	return domains, nil
}

// Upsert inserts or updates a domain by name. Crawl counters and score are
// overwritten on conflict; account ownership is not reassigned. Returns nil
// when the store is unavailable.
func (r *Domains) Upsert(ctx context.Context, d *models.Domain) (*models.Domain, error) {
	if d.Status != "" && !d.Status.Valid() {
		return nil, fmt.Errorf("invalid domain status %q: %w", d.Status, ErrInvalidInput)
	}
	if d.CMS != nil && !d.CMS.Valid() {
		return nil, fmt.Errorf("invalid cms %q: %w", *d.CMS, ErrInvalidInput)
	}
	if d.CrawlFrequency != nil && !d.CrawlFrequency.Valid() {
		return nil, fmt.Errorf("invalid crawl frequency %q: %w", *d.CrawlFrequency, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if d.Status == "" {
		d.Status = models.DomainActive
	}

	var stored models.Domain
	query := `INSERT INTO domains (account_id, project_id, domain, cms, api_key, status,
		crawl_frequency, last_crawl_at, total_pages, indexed_pages, technical_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (domain) DO UPDATE SET
			cms = EXCLUDED.cms,
			api_key = EXCLUDED.api_key,
			status = EXCLUDED.status,
			crawl_frequency = EXCLUDED.crawl_frequency,
			last_crawl_at = EXCLUDED.last_crawl_at,
			total_pages = EXCLUDED.total_pages,
			indexed_pages = EXCLUDED.indexed_pages,
			technical_score = EXCLUDED.technical_score,
			updated_at = now()
		RETURNING ` + domainColumns
	err := db.GetContext(ctx, &stored, query,
		d.AccountID, d.ProjectID, d.Domain, d.CMS, d.APIKey, d.Status,
		d.CrawlFrequency, d.LastCrawlAt, d.TotalPages, d.IndexedPages, d.TechnicalScore)
	if err != nil {
		return nil, fmt.Errorf("upsert domain: %w", err)
	}
	return &stored, nil
}

// Pages persists crawled URLs, deduplicated by url_hash.
type Pages struct {
	store *database.Store
	log   logger.Logger
}

// NewPages creates the page repository.
func NewPages(store *database.Store, log logger.Logger) *Pages {
	return &Pages{store: store, log: log}
}

// ListByDomain returns the domain's pages, newest first, bounded by limit
// (defaults to DefaultPageLimit).
func (r *Pages) ListByDomain(ctx context.Context, domainID int64, limit int) ([]models.Page, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Page{}, nil
	}

	pages := []models.Page{}
	query := "SELECT " + pageColumns + " FROM pages WHERE domain_id = $1 ORDER BY created_at DESC LIMIT $2"
	if err := db.SelectContext(ctx, &pages, query, domainID, limitOrDefault(limit, DefaultPageLimit)); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// UpsertByURLHash inserts or updates a page by its url_hash, keeping crawler
// writes idempotent. Returns nil when the store is unavailable.
func (r *Pages) UpsertByURLHash(ctx context.Context, p *models.Page) (*models.Page, error) {
	if p.Status != "" && !p.Status.Valid() {
		return nil, fmt.Errorf("invalid page status %q: %w", p.Status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if p.Status == "" {
		p.Status = models.PageLive
	}

	var stored models.Page
	query := `INSERT INTO pages (domain_id, url, url_hash, status, cms, word_count, has_schema,
		schema_types, internal_links, external_links, last_crawl_at, indexed_at, title,
		meta_description, h1)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (url_hash) DO UPDATE SET
			status = EXCLUDED.status,
			cms = EXCLUDED.cms,
			word_count = EXCLUDED.word_count,
			has_schema = EXCLUDED.has_schema,
			schema_types = EXCLUDED.schema_types,
			internal_links = EXCLUDED.internal_links,
			external_links = EXCLUDED.external_links,
			last_crawl_at = EXCLUDED.last_crawl_at,
			indexed_at = EXCLUDED.indexed_at,
			title = EXCLUDED.title,
			meta_description = EXCLUDED.meta_description,
			h1 = EXCLUDED.h1,
			updated_at = now()
		RETURNING ` + pageColumns
	err := db.GetContext(ctx, &stored, query,
		p.DomainID, p.URL, p.URLHash, p.Status, p.CMS, p.WordCount, p.HasSchema,
		p.SchemaTypes, p.InternalLinks, p.ExternalLinks, p.LastCrawlAt, p.IndexedAt, p.Title,
		p.MetaDescription, p.H1)
	if err != nil {
		return nil, fmt.Errorf("upsert page: %w", err)
	}
	return &stored, nil
}
