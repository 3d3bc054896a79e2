package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadycalls/opsbrain/internal/audit"
	"github.com/steadycalls/opsbrain/internal/auth"
	"github.com/steadycalls/opsbrain/internal/config"
	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/events"
	"github.com/steadycalls/opsbrain/internal/handlers"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/metrics"
	"github.com/steadycalls/opsbrain/internal/models"
	"github.com/steadycalls/opsbrain/internal/repository"
	"github.com/steadycalls/opsbrain/internal/webhooks"
)

func newTestRouter(t *testing.T, store *database.Store) (*gin.Engine, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0

	tokens, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	m := metrics.New()
	publisher := events.NewPublisher(nil, log)
	auditLogs := repository.NewAuditLogs(store, log)
	recorder := audit.NewRecorder(auditLogs, log)

	users := repository.NewUsers(store, log, "")
	accounts := repository.NewAccounts(store, log)
	projects := repository.NewProjects(store, log)
	domains := repository.NewDomains(store, log)
	pages := repository.NewPages(store, log)
	keywords := repository.NewKeywords(store, log)
	briefs := repository.NewBriefs(store, log)
	posts := repository.NewPosts(store, log)
	tasks := repository.NewTasks(store, log)
	issues := repository.NewIssues(store, log)
	prospects := repository.NewProspects(store, log)
	links := repository.NewLinks(store, log)
	emails := repository.NewEmails(store, log)
	gbps := repository.NewGBPs(store, log)
	calls := repository.NewCalls(store, log)
	invoices := repository.NewInvoices(store, log)
	webhookEvents := repository.NewWebhookEvents(store, log)
	subscriptions := repository.NewWebhookSubscriptions(store, log)
	deliveries := repository.NewWebhookDeliveryLogs(store, log)
	intake := webhooks.NewIntake(webhookEvents, publisher, log)

	router := New(Deps{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Metrics: m,
		Tokens:  tokens,

		Auth:         handlers.NewAuthHandler(users, tokens, recorder, log),
		Accounts:     handlers.NewAccountsHandler(accounts, projects, recorder, publisher, log),
		Domains:      handlers.NewDomainsHandler(domains, pages, recorder, publisher, log),
		Content:      handlers.NewContentHandler(keywords, briefs, posts, recorder, publisher, log),
		Tasks:        handlers.NewTasksHandler(tasks, recorder, publisher, log),
		Issues:       handlers.NewIssuesHandler(issues, recorder, publisher, log),
		LinkBuilding: handlers.NewLinkBuildingHandler(prospects, links, emails, recorder, publisher, log),
		GBPs:         handlers.NewGBPsHandler(gbps, calls, recorder, publisher, log),
		Billing:      handlers.NewBillingHandler(invoices, recorder, publisher, log),
		Webhooks:     handlers.NewWebhooksHandler(intake, webhookEvents, subscriptions, deliveries, m, log),
		Audit:        handlers.NewAuditHandler(auditLogs, log),
	})
	return router, tokens
}

func TestHealthReportsDegradedStore(t *testing.T) {
	router, _ := newTestRouter(t, database.NewUnavailable(logger.NewNop()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t, database.NewUnavailable(logger.NewNop()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignInDegradedStoreReturns503(t *testing.T) {
	router, _ := newTestRouter(t, database.NewUnavailable(logger.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin",
		strings.NewReader(`{"open_id":"oid-1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDegradedReadsReturnEmptyCollections(t *testing.T) {
	router, tokens := newTestRouter(t, database.NewUnavailable(logger.NewNop()))

	token, err := tokens.Issue(&models.User{ID: 1, OpenID: "oid-1", Role: models.RoleOwner})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestWebhookIntakeEndpoint(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	store := database.NewWithDB(db, logger.NewNop())
	router, _ := newTestRouter(t, store)

	rows := sqlmock.NewRows([]string{
		"id", "account_id", "source", "event_type", "payload_json", "hash", "received_at",
		"processed_at", "status", "attempts", "error",
	}).AddRow(int64(1), nil, "callrail", "call.completed", `{"n":1}`, "h",
		time.Now().UTC(), nil, "pending", 0, nil)
	mock.ExpectQuery(`INSERT INTO webhook_events`).WillReturnRows(rows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/callrail", strings.NewReader(`{"n":1}`))
	req.Header.Set("X-Event-Type", "call.completed")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookIntakeDuplicateAcknowledged(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	store := database.NewWithDB(db, logger.NewNop())
	router, _ := newTestRouter(t, store)

	mock.ExpectQuery(`INSERT INTO webhook_events`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/callrail", strings.NewReader(`{"n":1}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate")
}

func TestWebhookIntakeDegradedStoreReturns503(t *testing.T) {
	router, _ := newTestRouter(t, database.NewUnavailable(logger.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/callrail", strings.NewReader(`{"n":1}`))
	router.ServeHTTP(w, req)

	// The delivery was not kept, so the provider must see a retryable
	// failure rather than a duplicate acknowledgment.
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "duplicate")
}

func TestCreateIssueRecordsAuditEntry(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	store := database.NewWithDB(db, logger.NewNop())
	router, tokens := newTestRouter(t, store)

	token, err := tokens.Issue(&models.User{ID: 1, OpenID: "oid-1", Role: models.RoleOwner})
	require.NoError(t, err)

	now := time.Now().UTC()
	issueRows := sqlmock.NewRows([]string{
		"id", "domain_id", "page_id", "severity", "rule_id", "rule_name", "description", "status",
		"auto_fixable", "first_seen", "last_seen", "fixed_at", "assigned_task_id", "created_at", "updated_at",
	}).AddRow(int64(9), int64(3), nil, "medium", "missing-title", nil, nil, "open",
		false, now, now, nil, nil, now, now)
	mock.ExpectQuery(`INSERT INTO issues`).WillReturnRows(issueRows)

	auditRows := sqlmock.NewRows([]string{
		"id", "user_id", "account_id", "action", "entity_type", "entity_id", "details",
		"ip_address", "user_agent", "created_at",
	}).AddRow(int64(1), int64(1), nil, "issue.create", "issue", int64(9), nil, "192.0.2.1", "", now)
	mock.ExpectQuery(`INSERT INTO audit_logs`).WillReturnRows(auditRows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/domains/3/issues",
		strings.NewReader(`{"rule_id":"missing-title"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateKeywordStoreFailureIsServerError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	store := database.NewWithDB(db, logger.NewNop())
	router, tokens := newTestRouter(t, store)

	token, err := tokens.Issue(&models.User{ID: 1, OpenID: "oid-1", Role: models.RoleOwner})
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO keywords`).
		WillReturnError(errors.New(`pq: deadlock detected`))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/1/keywords",
		strings.NewReader(`{"keyword":"plumber near me"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	// A mid-query store failure is not the client's fault, and its text
	// stays out of the response.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestListPostsUnknownStatusIsBadRequest(t *testing.T) {
	router, tokens := newTestRouter(t, database.NewUnavailable(logger.NewNop()))

	token, err := tokens.Issue(&models.User{ID: 1, OpenID: "oid-1", Role: models.RoleOwner})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/1/posts?status=bogus", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
