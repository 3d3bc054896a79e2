package models

import "time"

// IssueSeverity ranks a technical SEO problem.
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityHigh     IssueSeverity = "high"
	SeverityMedium   IssueSeverity = "medium"
	SeverityLow      IssueSeverity = "low"
)

func (s IssueSeverity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// IssueStatus is the remediation state of an issue.
type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in_progress"
	IssueFixed      IssueStatus = "fixed"
	IssueIgnored    IssueStatus = "ignored"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case IssueOpen, IssueInProgress, IssueFixed, IssueIgnored:
		return true
	}
	return false
}

// Issue is a detected technical SEO problem on a domain, opened by the
// crawler and closed by an operator or auto-fix.
type Issue struct {
	ID             int64         `json:"id" db:"id"`
	DomainID       int64         `json:"domain_id" db:"domain_id"`
	PageID         *int64        `json:"page_id,omitempty" db:"page_id"`
	Severity       IssueSeverity `json:"severity" db:"severity"`
	RuleID         string        `json:"rule_id" db:"rule_id"`
	RuleName       *string       `json:"rule_name,omitempty" db:"rule_name"`
	Description    *string       `json:"description,omitempty" db:"description"`
	Status         IssueStatus   `json:"status" db:"status"`
	AutoFixable    bool          `json:"auto_fixable" db:"auto_fixable"`
	FirstSeen      time.Time     `json:"first_seen" db:"first_seen"`
	LastSeen       time.Time     `json:"last_seen" db:"last_seen"`
	FixedAt        *time.Time    `json:"fixed_at,omitempty" db:"fixed_at"`
	AssignedTaskID *int64        `json:"assigned_task_id,omitempty" db:"assigned_task_id"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}
