package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library/internal/cache"
	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/covers"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/metadata"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ catalog.Store = (*books.Repository)(nil)
var _ catalog.UnitOfWork = (*database.Database)(nil)

// =============================================================================
// Cover Lookup
// =============================================================================

var _ catalog.CoverLookup = (*metadata.GoogleBooksClient)(nil)
var _ catalog.CoverLookup = (*metadata.OpenLibraryClient)(nil)
var _ catalog.CoverLookup = metadata.Chain(nil)
var _ catalog.CoverLookup = (*metadata.CachedLookup)(nil)
var _ metadata.URLCache = (*cache.RedisCoverCache)(nil)

// =============================================================================
// Cover Images
// =============================================================================

var _ catalog.CoverInvalidator = (*covers.Cache)(nil)
var _ http.CoverStore = (*covers.Cache)(nil)

// =============================================================================
// HTTP Layer
// =============================================================================

var _ http.CatalogService = (*catalog.Service)(nil)
var _ http.BookGetter = (*catalog.Service)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ http.Pinger = (*cache.RedisCoverCache)(nil)
