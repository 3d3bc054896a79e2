package models

import "time"

// CMS identifies the content management system behind a monitored domain.
type CMS string

const (
	CMSWordPress CMS = "wordpress"
	CMSDuda      CMS = "duda"
	CMSGHL       CMS = "ghl"
	CMSCustom    CMS = "custom"
)

func (c CMS) Valid() bool {
	switch c {
	case CMSWordPress, CMSDuda, CMSGHL, CMSCustom:
		return true
	}
	return false
}

// DomainStatus is the monitoring state of a domain.
type DomainStatus string

const (
	DomainActive   DomainStatus = "active"
	DomainInactive DomainStatus = "inactive"
	DomainPending  DomainStatus = "pending"
)

func (s DomainStatus) Valid() bool {
	switch s {
	case DomainActive, DomainInactive, DomainPending:
		return true
	}
	return false
}

// CrawlFrequency is how often the external crawler visits a domain.
type CrawlFrequency string

const (
	CrawlHourly CrawlFrequency = "hourly"
	CrawlDaily  CrawlFrequency = "daily"
	CrawlWeekly CrawlFrequency = "weekly"
)

func (f CrawlFrequency) Valid() bool {
	switch f {
	case CrawlHourly, CrawlDaily, CrawlWeekly:
		return true
	}
	return false
}

// Domain represents a monitored website, unique on the domain name.
// TechnicalScore is 0-100. Crawl fields are written by the crawler subsystem.
type Domain struct {
	ID             int64           `json:"id" db:"id"`
	AccountID      int64           `json:"account_id" db:"account_id"`
	ProjectID      *int64          `json:"project_id,omitempty" db:"project_id"`
	Domain         string          `json:"domain" db:"domain"`
	CMS            *CMS            `json:"cms,omitempty" db:"cms"`
	APIKey         *string         `json:"-" db:"api_key"`
	Status         DomainStatus    `json:"status" db:"status"`
	CrawlFrequency *CrawlFrequency `json:"crawl_frequency,omitempty" db:"crawl_frequency"`
	LastCrawlAt    *time.Time      `json:"last_crawl_at,omitempty" db:"last_crawl_at"`
	TotalPages     int             `json:"total_pages" db:"total_pages"`
	IndexedPages   int             `json:"indexed_pages" db:"indexed_pages"`
	TechnicalScore *int            `json:"technical_score,omitempty" db:"technical_score"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// PageStatus is the crawl status of a URL.
type PageStatus string

const (
	PageLive     PageStatus = "live"
	PageNotFound PageStatus = "404"
	PageRedirect PageStatus = "redirect"
	PageError    PageStatus = "error"
)

func (s PageStatus) Valid() bool {
	switch s {
	case PageLive, PageNotFound, PageRedirect, PageError:
		return true
	}
	return false
}

// Page is a crawled URL on a domain. URLHash is the dedup key that makes
// crawler writes idempotent.
type Page struct {
	ID              int64      `json:"id" db:"id"`
	DomainID        int64      `json:"domain_id" db:"domain_id"`
	URL             string     `json:"url" db:"url"`
	URLHash         string     `json:"url_hash" db:"url_hash"`
	Status          PageStatus `json:"status" db:"status"`
	CMS             *string    `json:"cms,omitempty" db:"cms"`
	WordCount       *int       `json:"word_count,omitempty" db:"word_count"`
	HasSchema       bool       `json:"has_schema" db:"has_schema"`
	SchemaTypes     *string    `json:"schema_types,omitempty" db:"schema_types"`
	InternalLinks   int        `json:"internal_links" db:"internal_links"`
	ExternalLinks   int        `json:"external_links" db:"external_links"`
	LastCrawlAt     *time.Time `json:"last_crawl_at,omitempty" db:"last_crawl_at"`
	IndexedAt       *time.Time `json:"indexed_at,omitempty" db:"indexed_at"`
	Title           *string    `json:"title,omitempty" db:"title"`
	MetaDescription *string    `json:"meta_description,omitempty" db:"meta_description"`
	H1              *string    `json:"h1,omitempty" db:"h1"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}
