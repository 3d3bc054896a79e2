package database

import (
	"context"
	"fmt"
)

// schema holds the DDL for every table, in dependency order. Enumerated
// fields are closed string sets enforced by CHECK constraints; values
// outside the declared sets are rejected by the store, not normalized here.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		open_id VARCHAR(64) NOT NULL UNIQUE,
		name TEXT,
		email VARCHAR(320),
		login_method VARCHAR(64),
		role VARCHAR(20) NOT NULL DEFAULT 'operator'
			CHECK (role IN ('owner', 'manager', 'operator', 'va', 'client_viewer')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_signed_in TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		company_name VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'active'
			CHECK (status IN ('active', 'paused', 'churned')),
		tier VARCHAR(20) NOT NULL DEFAULT 'basic'
			CHECK (tier IN ('basic', 'pro', 'enterprise')),
		owner_id BIGINT,
		billing_email VARCHAR(320),
		monthly_retainer BIGINT NOT NULL DEFAULT 0,
		gross_margin INT,
		settings TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS accounts_owner_idx ON accounts (owner_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'planning'
			CHECK (status IN ('planning', 'active', 'paused', 'completed')),
		start_date TIMESTAMPTZ,
		end_date TIMESTAMPTZ,
		budget BIGINT,
		spent_amount BIGINT NOT NULL DEFAULT 0,
		manager_id BIGINT,
		settings TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS projects_account_idx ON projects (account_id)`,
	`CREATE INDEX IF NOT EXISTS projects_manager_idx ON projects (manager_id)`,

	`CREATE TABLE IF NOT EXISTS domains (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		project_id BIGINT,
		domain VARCHAR(255) NOT NULL UNIQUE,
		cms VARCHAR(20) CHECK (cms IN ('wordpress', 'duda', 'ghl', 'custom')),
		api_key TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'active'
			CHECK (status IN ('active', 'inactive', 'pending')),
		crawl_frequency VARCHAR(20) DEFAULT 'daily'
			CHECK (crawl_frequency IN ('hourly', 'daily', 'weekly')),
		last_crawl_at TIMESTAMPTZ,
		total_pages INT NOT NULL DEFAULT 0,
		indexed_pages INT NOT NULL DEFAULT 0,
		technical_score INT CHECK (technical_score BETWEEN 0 AND 100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS domains_account_idx ON domains (account_id)`,
	`CREATE INDEX IF NOT EXISTS domains_project_idx ON domains (project_id)`,

	`CREATE TABLE IF NOT EXISTS pages (
		id BIGSERIAL PRIMARY KEY,
		domain_id BIGINT NOT NULL,
		url TEXT NOT NULL,
		url_hash VARCHAR(64) NOT NULL UNIQUE,
		status VARCHAR(20) NOT NULL DEFAULT 'live'
			CHECK (status IN ('live', '404', 'redirect', 'error')),
		cms VARCHAR(50),
		word_count INT,
		has_schema BOOLEAN NOT NULL DEFAULT FALSE,
		schema_types TEXT,
		internal_links INT NOT NULL DEFAULT 0,
		external_links INT NOT NULL DEFAULT 0,
		last_crawl_at TIMESTAMPTZ,
		indexed_at TIMESTAMPTZ,
		title TEXT,
		meta_description TEXT,
		h1 TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS pages_domain_idx ON pages (domain_id)`,
	`CREATE INDEX IF NOT EXISTS pages_status_idx ON pages (status)`,

	`CREATE TABLE IF NOT EXISTS keywords (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		project_id BIGINT,
		keyword VARCHAR(500) NOT NULL,
		search_volume INT,
		difficulty INT CHECK (difficulty BETWEEN 0 AND 100),
		cpc BIGINT,
		intent VARCHAR(20)
			CHECK (intent IN ('informational', 'navigational', 'commercial', 'transactional')),
		current_rank INT,
		target_rank INT,
		assigned_post_id BIGINT,
		status VARCHAR(20) NOT NULL DEFAULT 'researched'
			CHECK (status IN ('researched', 'assigned', 'ranking', 'achieved')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS keywords_account_idx ON keywords (account_id)`,
	`CREATE INDEX IF NOT EXISTS keywords_project_idx ON keywords (project_id)`,
	`CREATE INDEX IF NOT EXISTS keywords_status_idx ON keywords (status)`,

	`CREATE TABLE IF NOT EXISTS briefs (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		project_id BIGINT,
		keyword_id BIGINT,
		title VARCHAR(500) NOT NULL,
		target_keyword VARCHAR(500),
		outline TEXT,
		serp_analysis TEXT,
		word_count_target INT,
		tone_guidelines TEXT,
		internal_link_suggestions TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'draft'
			CHECK (status IN ('draft', 'approved', 'assigned')),
		assigned_to BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS briefs_account_idx ON briefs (account_id)`,
	`CREATE INDEX IF NOT EXISTS briefs_keyword_idx ON briefs (keyword_id)`,
	`CREATE INDEX IF NOT EXISTS briefs_status_idx ON briefs (status)`,

	`CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		project_id BIGINT,
		domain_id BIGINT,
		brief_id BIGINT,
		slug VARCHAR(500),
		target_kw VARCHAR(500),
		outline TEXT,
		draft_url TEXT,
		publish_url TEXT,
		serp_target INT,
		current_position INT,
		status VARCHAR(20) NOT NULL DEFAULT 'brief_ready'
			CHECK (status IN ('brief_ready', 'drafting', 'review', 'approved', 'published', 'indexed')),
		word_count INT,
		author_id BIGINT,
		published_at TIMESTAMPTZ,
		indexed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS posts_account_idx ON posts (account_id)`,
	`CREATE INDEX IF NOT EXISTS posts_domain_idx ON posts (domain_id)`,
	`CREATE INDEX IF NOT EXISTS posts_status_idx ON posts (status)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		project_id BIGINT,
		type VARCHAR(20) NOT NULL
			CHECK (type IN ('content', 'technical', 'link_building', 'client', 'admin')),
		title VARCHAR(500) NOT NULL,
		description TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'todo'
			CHECK (status IN ('todo', 'in_progress', 'review', 'blocked', 'completed')),
		priority VARCHAR(20) NOT NULL DEFAULT 'medium'
			CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
		owner_id BIGINT,
		assigned_to BIGINT,
		eta TIMESTAMPTZ,
		effort INT,
		cost_code VARCHAR(100),
		related_entity_type VARCHAR(100),
		related_entity_id BIGINT,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS tasks_account_idx ON tasks (account_id)`,
	`CREATE INDEX IF NOT EXISTS tasks_assigned_to_idx ON tasks (assigned_to)`,
	`CREATE INDEX IF NOT EXISTS tasks_status_idx ON tasks (status)`,

	`CREATE TABLE IF NOT EXISTS issues (
		id BIGSERIAL PRIMARY KEY,
		domain_id BIGINT NOT NULL,
		page_id BIGINT,
		severity VARCHAR(20) NOT NULL DEFAULT 'medium'
			CHECK (severity IN ('critical', 'high', 'medium', 'low')),
		rule_id VARCHAR(100) NOT NULL,
		rule_name VARCHAR(255),
		description TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'open'
			CHECK (status IN ('open', 'in_progress', 'fixed', 'ignored')),
		auto_fixable BOOLEAN NOT NULL DEFAULT FALSE,
		first_seen TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_seen TIMESTAMPTZ NOT NULL DEFAULT now(),
		fixed_at TIMESTAMPTZ,
		assigned_task_id BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS issues_domain_idx ON issues (domain_id)`,
	`CREATE INDEX IF NOT EXISTS issues_severity_idx ON issues (severity)`,
	`CREATE INDEX IF NOT EXISTS issues_status_idx ON issues (status)`,

	`CREATE TABLE IF NOT EXISTS prospects (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		project_id BIGINT,
		domain VARCHAR(255) NOT NULL,
		url TEXT,
		dr INT,
		traffic INT,
		topic_relevance INT CHECK (topic_relevance BETWEEN 0 AND 100),
		contact_email VARCHAR(320),
		contact_name VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'identified'
			CHECK (status IN ('identified', 'contacted', 'replied', 'negotiating', 'accepted', 'rejected')),
		outreach_template TEXT,
		last_contacted_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS prospects_account_idx ON prospects (account_id)`,
	`CREATE INDEX IF NOT EXISTS prospects_status_idx ON prospects (status)`,

	`CREATE TABLE IF NOT EXISTS links (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		project_id BIGINT,
		prospect_id BIGINT,
		source_url TEXT NOT NULL,
		target_url TEXT NOT NULL,
		dr INT,
		anchor TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'live', 'removed', 'nofollow')),
		link_type VARCHAR(20)
			CHECK (link_type IN ('guest_post', 'editorial', 'resource', 'directory', 'other')),
		verified_at TIMESTAMPTZ,
		last_checked_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS links_account_idx ON links (account_id)`,
	`CREATE INDEX IF NOT EXISTS links_prospect_idx ON links (prospect_id)`,
	`CREATE INDEX IF NOT EXISTS links_status_idx ON links (status)`,

	`CREATE TABLE IF NOT EXISTS gbps (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		project_id BIGINT,
		state VARCHAR(100),
		city VARCHAR(255),
		category VARCHAR(255),
		business_name VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'created', 'warming', 'active', 'suspended')),
		phone VARCHAR(50),
		gmail VARCHAR(320),
		gmail_password TEXT,
		gbp_url TEXT,
		verification_method VARCHAR(100),
		verified_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS gbps_account_idx ON gbps (account_id)`,
	`CREATE INDEX IF NOT EXISTS gbps_status_idx ON gbps (status)`,
	`CREATE INDEX IF NOT EXISTS gbps_location_idx ON gbps (state, city)`,

	`CREATE TABLE IF NOT EXISTS emails (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		prospect_id BIGINT,
		subject VARCHAR(500),
		body TEXT,
		from_email VARCHAR(320),
		to_email VARCHAR(320),
		status VARCHAR(20) NOT NULL DEFAULT 'draft'
			CHECK (status IN ('draft', 'sent', 'delivered', 'opened', 'replied', 'bounced')),
		sent_at TIMESTAMPTZ,
		opened_at TIMESTAMPTZ,
		replied_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS emails_account_idx ON emails (account_id)`,
	`CREATE INDEX IF NOT EXISTS emails_prospect_idx ON emails (prospect_id)`,

	`CREATE TABLE IF NOT EXISTS calls (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		gbp_id BIGINT,
		caller_phone VARCHAR(50),
		receiver_phone VARCHAR(50),
		duration INT,
		status VARCHAR(20) CHECK (status IN ('answered', 'missed', 'voicemail')),
		recording_url TEXT,
		transcription TEXT,
		lead_quality VARCHAR(20) CHECK (lead_quality IN ('hot', 'warm', 'cold', 'spam')),
		called_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS calls_account_idx ON calls (account_id)`,
	`CREATE INDEX IF NOT EXISTS calls_gbp_idx ON calls (gbp_id)`,
	`CREATE INDEX IF NOT EXISTS calls_called_at_idx ON calls (called_at)`,

	`CREATE TABLE IF NOT EXISTS invoices (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		invoice_number VARCHAR(100) NOT NULL UNIQUE,
		status VARCHAR(20) NOT NULL DEFAULT 'draft'
			CHECK (status IN ('draft', 'sent', 'paid', 'overdue', 'cancelled')),
		amount BIGINT NOT NULL,
		currency VARCHAR(3) NOT NULL DEFAULT 'USD',
		billing_period_start TIMESTAMPTZ,
		billing_period_end TIMESTAMPTZ,
		due_date TIMESTAMPTZ,
		paid_at TIMESTAMPTZ,
		line_items TEXT,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS invoices_account_idx ON invoices (account_id)`,
	`CREATE INDEX IF NOT EXISTS invoices_status_idx ON invoices (status)`,

	`CREATE TABLE IF NOT EXISTS webhook_events (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT,
		source VARCHAR(100) NOT NULL,
		event_type VARCHAR(255) NOT NULL,
		payload_json TEXT NOT NULL,
		hash VARCHAR(64) NOT NULL UNIQUE,
		received_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		processed_at TIMESTAMPTZ,
		status VARCHAR(20) NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'processing', 'processed', 'failed')),
		attempts INT NOT NULL DEFAULT 0,
		error TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS webhook_events_account_idx ON webhook_events (account_id)`,
	`CREATE INDEX IF NOT EXISTS webhook_events_source_idx ON webhook_events (source)`,
	`CREATE INDEX IF NOT EXISTS webhook_events_status_idx ON webhook_events (status)`,

	`CREATE TABLE IF NOT EXISTS webhook_subscriptions (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL,
		event VARCHAR(255) NOT NULL,
		target_url TEXT NOT NULL,
		secret TEXT NOT NULL,
		headers TEXT,
		filter_expr TEXT,
		retry_max INT NOT NULL DEFAULT 5,
		is_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS webhook_subscriptions_account_idx ON webhook_subscriptions (account_id)`,
	`CREATE INDEX IF NOT EXISTS webhook_subscriptions_event_idx ON webhook_subscriptions (event)`,

	`CREATE TABLE IF NOT EXISTS webhook_delivery_logs (
		id BIGSERIAL PRIMARY KEY,
		subscription_id BIGINT NOT NULL,
		event_id BIGINT,
		status_code INT,
		latency_ms INT,
		attempts INT NOT NULL DEFAULT 1,
		response_snippet TEXT,
		delivered_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS webhook_delivery_logs_subscription_idx ON webhook_delivery_logs (subscription_id)`,
	`CREATE INDEX IF NOT EXISTS webhook_delivery_logs_event_idx ON webhook_delivery_logs (event_id)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT,
		account_id BIGINT,
		action VARCHAR(255) NOT NULL,
		entity_type VARCHAR(100),
		entity_id BIGINT,
		details TEXT,
		ip_address VARCHAR(45),
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS audit_logs_user_idx ON audit_logs (user_id)`,
	`CREATE INDEX IF NOT EXISTS audit_logs_account_idx ON audit_logs (account_id)`,
	`CREATE INDEX IF NOT EXISTS audit_logs_created_at_idx ON audit_logs (created_at)`,
}

// Migrate applies the schema. A no-op when the store is unavailable, so
// startup never fails without a database.
func Migrate(ctx context.Context, store *Store) error {
	db, ok := store.Acquire(ctx)
	if !ok {
		return nil
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
