// Package api assembles the gin router: middleware, health and metrics
// endpoints, and the versioned API surface.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/steadycalls/opsbrain/internal/auth"
	"github.com/steadycalls/opsbrain/internal/config"
	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/handlers"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/metrics"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config  *config.Config
	Log     logger.Logger
	Store   *database.Store
	Metrics *metrics.Metrics
	Tokens  *auth.Service

	Auth         *handlers.AuthHandler
	Accounts     *handlers.AccountsHandler
	Domains      *handlers.DomainsHandler
	Content      *handlers.ContentHandler
	Tasks        *handlers.TasksHandler
	Issues       *handlers.IssuesHandler
	LinkBuilding *handlers.LinkBuildingHandler
	GBPs         *handlers.GBPsHandler
	Billing      *handlers.BillingHandler
	Webhooks     *handlers.WebhooksHandler
	Audit        *handlers.AuditHandler
}

// New builds the router.
func New(deps Deps) *gin.Engine {
	if !deps.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(deps.Log))
	router.Use(deps.Metrics.GinMiddleware())
	router.Use(corsMiddleware(deps.Config.Server.CORSOrigins))

	router.GET("/health", healthHandler(deps.Store, deps.Metrics))
	router.GET("/metrics", deps.Metrics.Handler())

	// Provider-facing intake is unauthenticated; providers sign payloads,
	// they do not hold session tokens.
	router.POST("/webhooks/:source", deps.Webhooks.Receive)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/signin", deps.Auth.SignIn)

	protected := v1.Group("")
	protected.Use(auth.Middleware(deps.Tokens))
	{
		protected.GET("/auth/me", deps.Auth.Me)

		protected.GET("/accounts", deps.Accounts.List)
		protected.POST("/accounts", deps.Accounts.Create)
		protected.GET("/accounts/:id", deps.Accounts.Get)
		protected.GET("/accounts/:id/projects", deps.Accounts.ListProjects)
		protected.POST("/accounts/:id/projects", deps.Accounts.CreateProject)

		protected.GET("/domains", deps.Domains.List)
		protected.POST("/domains", deps.Domains.Upsert)
		protected.GET("/accounts/:id/domains", deps.Domains.ListByAccount)
		protected.GET("/domains/:id/pages", deps.Domains.ListPages)
		protected.POST("/domains/:id/pages", deps.Domains.UpsertPage)

		protected.GET("/accounts/:id/keywords", deps.Content.ListKeywords)
		protected.POST("/accounts/:id/keywords", deps.Content.CreateKeyword)
		protected.GET("/accounts/:id/briefs", deps.Content.ListBriefs)
		protected.POST("/accounts/:id/briefs", deps.Content.CreateBrief)
		protected.GET("/accounts/:id/posts", deps.Content.ListPosts)
		protected.POST("/accounts/:id/posts", deps.Content.CreatePost)

		protected.GET("/accounts/:id/tasks", deps.Tasks.ListByAccount)
		protected.POST("/accounts/:id/tasks", deps.Tasks.Create)
		protected.GET("/users/:id/tasks", deps.Tasks.ListByUser)

		protected.GET("/domains/:id/issues", deps.Issues.ListByDomain)
		protected.POST("/domains/:id/issues", deps.Issues.Create)
		protected.GET("/issues/critical", deps.Issues.ListCritical)

		protected.GET("/accounts/:id/prospects", deps.LinkBuilding.ListProspects)
		protected.POST("/accounts/:id/prospects", deps.LinkBuilding.CreateProspect)
		protected.GET("/accounts/:id/links", deps.LinkBuilding.ListLinks)
		protected.POST("/accounts/:id/links", deps.LinkBuilding.CreateLink)
		protected.GET("/prospects/:id/emails", deps.LinkBuilding.ListEmails)
		protected.POST("/prospects/:id/emails", deps.LinkBuilding.CreateEmail)

		protected.GET("/accounts/:id/gbps", deps.GBPs.ListByAccount)
		protected.POST("/accounts/:id/gbps", deps.GBPs.Create)
		protected.GET("/gbps/:id/calls", deps.GBPs.ListCalls)
		protected.POST("/gbps/:id/calls", deps.GBPs.CreateCall)

		protected.GET("/accounts/:id/invoices", deps.Billing.ListByAccount)
		protected.POST("/accounts/:id/invoices", deps.Billing.Create)

		protected.GET("/accounts/:id/webhook-events", deps.Webhooks.ListEvents)
		protected.GET("/accounts/:id/webhook-subscriptions", deps.Webhooks.ListSubscriptions)
		protected.POST("/accounts/:id/webhook-subscriptions", deps.Webhooks.CreateSubscription)
		protected.GET("/webhook-subscriptions/:id/deliveries", deps.Webhooks.ListDeliveries)

		protected.GET("/accounts/:id/audit-logs", deps.Audit.ListByAccount)
	}

	return router
}

func healthHandler(store *database.Store, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		available := store.Available(c.Request.Context())
		m.SetStoreAvailable(available)

		db := "available"
		if !available {
			db = "degraded"
		}
		// Degraded is still healthy: the service answers with empty reads.
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": db})
	}
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("duration", time.Since(start)),
			logger.String("client_ip", c.ClientIP()),
		)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Event-Type")
	cfg.AllowCredentials = len(origins) > 0
	return cors.New(cfg)
}
