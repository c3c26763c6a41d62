package http

import (
	"github.com/mrlokans/library/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog CatalogService
	Books   BookGetter

	// Cover image caching, optional
	CoverCache CoverStore

	// Health checks, keyed by component name
	HealthChecks map[string]Pinger

	// Flash messages, optional
	Sessions *SessionManager

	// CSRF protection is enabled when the secret is non-empty
	CSRFSecret    []byte
	SecureCookies bool

	// UI overrides; embedded templates are used when TemplatesPath is empty
	TemplatesPath string
	StaticPath    string

	Metrics *metrics.Metrics

	// Application info
	Version string
}
