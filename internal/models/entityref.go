package models

import (
	"errors"
	"fmt"
)

// EntityKind tags which entity table an EntityRef points at.
type EntityKind string

const (
	KindAccount  EntityKind = "account"
	KindProject  EntityKind = "project"
	KindDomain   EntityKind = "domain"
	KindPage     EntityKind = "page"
	KindKeyword  EntityKind = "keyword"
	KindBrief    EntityKind = "brief"
	KindPost     EntityKind = "post"
	KindTask     EntityKind = "task"
	KindIssue    EntityKind = "issue"
	KindProspect EntityKind = "prospect"
	KindLink     EntityKind = "link"
	KindGBP      EntityKind = "gbp"
	KindInvoice  EntityKind = "invoice"
)

func (k EntityKind) Valid() bool {
	switch k {
	case KindAccount, KindProject, KindDomain, KindPage, KindKeyword, KindBrief,
		KindPost, KindTask, KindIssue, KindProspect, KindLink, KindGBP, KindInvoice:
		return true
	}
	return false
}

// ErrInvalidEntityRef is returned when an EntityRef fails validation.
var ErrInvalidEntityRef = errors.New("invalid entity reference")

// EntityRef is a typed reference to any entity: a kind tag plus identifier.
// It replaces the loose (relatedEntityType, relatedEntityId) column pair at
// the API boundary; repositories marshal it to the two columns on write.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   int64      `json:"id"`
}

// Validate checks the kind tag against the closed kind set and requires a
// positive identifier.
func (r EntityRef) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEntityRef, r.Kind)
	}
	if r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidEntityRef)
	}
	return nil
}
