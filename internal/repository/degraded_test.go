package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

// Without a configured database every read comes back empty and every write
// reports nothing written; none of them error.
func TestDegradedModeReadsAreEmpty(t *testing.T) {
	ctx := context.Background()
	store := unavailableStore()
	log := logger.NewNop()

	accounts, err := NewAccounts(store, log).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	account, err := NewAccounts(store, log).GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, account)

	domains, err := NewDomains(store, log).ListByAccount(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, domains)

	pages, err := NewPages(store, log).ListByDomain(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, pages)

	issues, err := NewIssues(store, log).ListCriticalOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues)

	tasks, err := NewTasks(store, log).ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	events, err := NewWebhookEvents(store, log).ListByAccount(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, events)

	trail, err := NewAuditLogs(store, log).ListByAccount(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, trail)
}

func TestDegradedModeWritesAreNoOps(t *testing.T) {
	ctx := context.Background()
	store := unavailableStore()
	log := logger.NewNop()

	account, err := NewAccounts(store, log).Create(ctx, &models.Account{Name: "Acme"})
	require.NoError(t, err)
	assert.Nil(t, account)

	domain, err := NewDomains(store, log).Upsert(ctx, &models.Domain{AccountID: 1, Domain: "acme.com"})
	require.NoError(t, err)
	assert.Nil(t, domain)

	issue, err := NewIssues(store, log).Insert(ctx, &models.Issue{DomainID: 1, RuleID: "missing-title"})
	require.NoError(t, err)
	assert.Nil(t, issue)

	event, duplicate, err := NewWebhookEvents(store, log).Insert(ctx, &models.WebhookEvent{
		Source: "stripe", EventType: "invoice.paid", PayloadJSON: "{}", Hash: "h",
	})
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.False(t, duplicate)

	entry, err := NewAuditLogs(store, log).Append(ctx, &models.AuditLog{Action: "account.create"})
	require.NoError(t, err)
	assert.Nil(t, entry)
}
