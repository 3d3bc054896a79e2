package models

import "time"

// ProspectStatus is the outreach pipeline state
// (identified -> contacted -> replied -> negotiating -> accepted/rejected).
type ProspectStatus string

const (
	ProspectIdentified  ProspectStatus = "identified"
	ProspectContacted   ProspectStatus = "contacted"
	ProspectReplied     ProspectStatus = "replied"
	ProspectNegotiating ProspectStatus = "negotiating"
	ProspectAccepted    ProspectStatus = "accepted"
	ProspectRejected    ProspectStatus = "rejected"
)

func (s ProspectStatus) Valid() bool {
	switch s {
	case ProspectIdentified, ProspectContacted, ProspectReplied,
		ProspectNegotiating, ProspectAccepted, ProspectRejected:
		return true
	}
	return false
}

// Prospect is a link-building target site. DR is domain rating,
// TopicRelevance is 0-100.
type Prospect struct {
	ID               int64          `json:"id" db:"id"`
	AccountID        int64          `json:"account_id" db:"account_id"`
	ProjectID        *int64         `json:"project_id,omitempty" db:"project_id"`
	Domain           string         `json:"domain" db:"domain"`
	URL              *string        `json:"url,omitempty" db:"url"`
	DR               *int           `json:"dr,omitempty" db:"dr"`
	Traffic          *int           `json:"traffic,omitempty" db:"traffic"`
	TopicRelevance   *int           `json:"topic_relevance,omitempty" db:"topic_relevance"`
	ContactEmail     *string        `json:"contact_email,omitempty" db:"contact_email"`
	ContactName      *string        `json:"contact_name,omitempty" db:"contact_name"`
	Status           ProspectStatus `json:"status" db:"status"`
	OutreachTemplate *string        `json:"outreach_template,omitempty" db:"outreach_template"`
	LastContactedAt  *time.Time     `json:"last_contacted_at,omitempty" db:"last_contacted_at"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

// LinkStatus is the verification state of a backlink.
type LinkStatus string

const (
	LinkPending  LinkStatus = "pending"
	LinkLive     LinkStatus = "live"
	LinkRemoved  LinkStatus = "removed"
	LinkNofollow LinkStatus = "nofollow"
)

func (s LinkStatus) Valid() bool {
	switch s {
	case LinkPending, LinkLive, LinkRemoved, LinkNofollow:
		return true
	}
	return false
}

// LinkType categorizes how a backlink was obtained.
type LinkType string

const (
	LinkGuestPost LinkType = "guest_post"
	LinkEditorial LinkType = "editorial"
	LinkResource  LinkType = "resource"
	LinkDirectory LinkType = "directory"
	LinkOther     LinkType = "other"
)

func (t LinkType) Valid() bool {
	switch t {
	case LinkGuestPost, LinkEditorial, LinkResource, LinkDirectory, LinkOther:
		return true
	}
	return false
}

// Link is a backlink instance, re-checked periodically by an external job.
type Link struct {
	ID            int64      `json:"id" db:"id"`
	AccountID     int64      `json:"account_id" db:"account_id"`
	ProjectID     *int64     `json:"project_id,omitempty" db:"project_id"`
	ProspectID    *int64     `json:"prospect_id,omitempty" db:"prospect_id"`
	SourceURL     string     `json:"source_url" db:"source_url"`
	TargetURL     string     `json:"target_url" db:"target_url"`
	DR            *int       `json:"dr,omitempty" db:"dr"`
	Anchor        *string    `json:"anchor,omitempty" db:"anchor"`
	Status        LinkStatus `json:"status" db:"status"`
	LinkType      *LinkType  `json:"link_type,omitempty" db:"link_type"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty" db:"verified_at"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty" db:"last_checked_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
