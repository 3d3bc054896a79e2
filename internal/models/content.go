package models

import "time"

// KeywordIntent classifies the search intent behind a keyword.
type KeywordIntent string

const (
	IntentInformational KeywordIntent = "informational"
	IntentNavigational  KeywordIntent = "navigational"
	IntentCommercial    KeywordIntent = "commercial"
	IntentTransactional KeywordIntent = "transactional"
)

func (i KeywordIntent) Valid() bool {
	switch i {
	case IntentInformational, IntentNavigational, IntentCommercial, IntentTransactional:
		return true
	}
	return false
}

// KeywordStatus is the keyword pipeline state
// (researched -> assigned -> ranking -> achieved).
type KeywordStatus string

const (
	KeywordResearched KeywordStatus = "researched"
	KeywordAssigned   KeywordStatus = "assigned"
	KeywordRanking    KeywordStatus = "ranking"
	KeywordAchieved   KeywordStatus = "achieved"
)

func (s KeywordStatus) Valid() bool {
	switch s {
	case KeywordResearched, KeywordAssigned, KeywordRanking, KeywordAchieved:
		return true
	}
	return false
}

// Keyword is a tracked search term. Difficulty is 0-100, CPC is cents.
type Keyword struct {
	ID             int64          `json:"id" db:"id"`
	AccountID      int64          `json:"account_id" db:"account_id"`
	ProjectID      *int64         `json:"project_id,omitempty" db:"project_id"`
	Keyword        string         `json:"keyword" db:"keyword"`
	SearchVolume   *int           `json:"search_volume,omitempty" db:"search_volume"`
	Difficulty     *int           `json:"difficulty,omitempty" db:"difficulty"`
	CPC            *int64         `json:"cpc,omitempty" db:"cpc"`
	Intent         *KeywordIntent `json:"intent,omitempty" db:"intent"`
	CurrentRank    *int           `json:"current_rank,omitempty" db:"current_rank"`
	TargetRank     *int           `json:"target_rank,omitempty" db:"target_rank"`
	AssignedPostID *int64         `json:"assigned_post_id,omitempty" db:"assigned_post_id"`
	Status         KeywordStatus  `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// BriefStatus is the content brief pipeline state.
type BriefStatus string

const (
	BriefDraft    BriefStatus = "draft"
	BriefApproved BriefStatus = "approved"
	BriefAssigned BriefStatus = "assigned"
)

func (s BriefStatus) Valid() bool {
	switch s {
	case BriefDraft, BriefApproved, BriefAssigned:
		return true
	}
	return false
}

// Brief is a content plan for a keyword. Outline and SerpAnalysis are
// structured JSON blobs stored as text.
type Brief struct {
	ID                      int64       `json:"id" db:"id"`
	AccountID               int64       `json:"account_id" db:"account_id"`
	ProjectID               *int64      `json:"project_id,omitempty" db:"project_id"`
	KeywordID               *int64      `json:"keyword_id,omitempty" db:"keyword_id"`
	Title                   string      `json:"title" db:"title"`
	TargetKeyword           *string     `json:"target_keyword,omitempty" db:"target_keyword"`
	Outline                 *string     `json:"outline,omitempty" db:"outline"`
	SerpAnalysis            *string     `json:"serp_analysis,omitempty" db:"serp_analysis"`
	WordCountTarget         *int        `json:"word_count_target,omitempty" db:"word_count_target"`
	ToneGuidelines          *string     `json:"tone_guidelines,omitempty" db:"tone_guidelines"`
	InternalLinkSuggestions *string     `json:"internal_link_suggestions,omitempty" db:"internal_link_suggestions"`
	Status                  BriefStatus `json:"status" db:"status"`
	AssignedTo              *int64      `json:"assigned_to,omitempty" db:"assigned_to"`
	CreatedAt               time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at" db:"updated_at"`
}

// PostStatus is the content production pipeline state
// (brief_ready -> drafting -> review -> approved -> published -> indexed).
// Transitions are not validated here; any declared status may be written.
type PostStatus string

const (
	PostBriefReady PostStatus = "brief_ready"
	PostDrafting   PostStatus = "drafting"
	PostReview     PostStatus = "review"
	PostApproved   PostStatus = "approved"
	PostPublished  PostStatus = "published"
	PostIndexed    PostStatus = "indexed"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostBriefReady, PostDrafting, PostReview, PostApproved, PostPublished, PostIndexed:
		return true
	}
	return false
}

// Post is a content asset in production, originating from a brief.
type Post struct {
	ID              int64      `json:"id" db:"id"`
	AccountID       int64      `json:"account_id" db:"account_id"`
	ProjectID       *int64     `json:"project_id,omitempty" db:"project_id"`
	DomainID        *int64     `json:"domain_id,omitempty" db:"domain_id"`
	BriefID         *int64     `json:"brief_id,omitempty" db:"brief_id"`
	Slug            *string    `json:"slug,omitempty" db:"slug"`
	TargetKw        *string    `json:"target_kw,omitempty" db:"target_kw"`
	Outline         *string    `json:"outline,omitempty" db:"outline"`
	DraftURL        *string    `json:"draft_url,omitempty" db:"draft_url"`
	PublishURL      *string    `json:"publish_url,omitempty" db:"publish_url"`
	SerpTarget      *int       `json:"serp_target,omitempty" db:"serp_target"`
	CurrentPosition *int       `json:"current_position,omitempty" db:"current_position"`
	Status          PostStatus `json:"status" db:"status"`
	WordCount       *int       `json:"word_count,omitempty" db:"word_count"`
	AuthorID        *int64     `json:"author_id,omitempty" db:"author_id"`
	PublishedAt     *time.Time `json:"published_at,omitempty" db:"published_at"`
	IndexedAt       *time.Time `json:"indexed_at,omitempty" db:"indexed_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}
