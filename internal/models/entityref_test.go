package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRefValidate(t *testing.T) {
	tests := []struct {
		name    string
		ref     EntityRef
		wantErr bool
	}{
		{"valid post ref", EntityRef{Kind: KindPost, ID: 1}, false},
		{"valid invoice ref", EntityRef{Kind: KindInvoice, ID: 99}, false},
		{"unknown kind", EntityRef{Kind: "widget", ID: 1}, true},
		{"empty kind", EntityRef{ID: 1}, true},
		{"zero id", EntityRef{Kind: KindPost}, true},
		{"negative id", EntityRef{Kind: KindPost, ID: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEntityRef)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskFlattenAndResolveRelated(t *testing.T) {
	task := Task{Related: &EntityRef{Kind: KindIssue, ID: 7}}
	require.NoError(t, task.FlattenRelated())
	require.NotNil(t, task.RelatedEntityType)
	require.NotNil(t, task.RelatedEntityID)
	assert.Equal(t, "issue", *task.RelatedEntityType)
	assert.Equal(t, int64(7), *task.RelatedEntityID)

	task.Related = nil
	task.ResolveRelated()
	require.NotNil(t, task.Related)
	assert.Equal(t, KindIssue, task.Related.Kind)
	assert.Equal(t, int64(7), task.Related.ID)
}

func TestTaskFlattenNilRelatedClearsColumns(t *testing.T) {
	kind := "post"
	id := int64(3)
	task := Task{RelatedEntityType: &kind, RelatedEntityID: &id}

	require.NoError(t, task.FlattenRelated())
	assert.Nil(t, task.RelatedEntityType)
	assert.Nil(t, task.RelatedEntityID)
}

func TestTaskFlattenRejectsInvalidRef(t *testing.T) {
	task := Task{Related: &EntityRef{Kind: "widget", ID: 1}}
	assert.ErrorIs(t, task.FlattenRelated(), ErrInvalidEntityRef)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.False(t, Role("admin").Valid())

	assert.True(t, PostIndexed.Valid())
	assert.False(t, PostStatus("archived").Valid())

	assert.True(t, PageNotFound.Valid())
	assert.False(t, PageStatus("gone").Valid())

	assert.True(t, SeverityCritical.Valid())
	assert.False(t, IssueSeverity("blocker").Valid())

	assert.True(t, ProspectNegotiating.Valid())
	assert.False(t, ProspectStatus("ghosted").Valid())

	assert.True(t, WebhookProcessed.Valid())
	assert.False(t, WebhookEventStatus("done").Valid())
}
