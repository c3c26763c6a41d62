// Package interfaces holds compile-time checks that the concrete types
// satisfy the interfaces the catalog is assembled from.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - catalog.Store: per-transaction access to authors and books (internal/catalog/store.go)
//   - catalog.UnitOfWork: runs a function inside one transaction (internal/database/database.go)
//
// ## External Service Interfaces
//
//   - catalog.CoverLookup: ISBN to cover URL (internal/metadata)
//   - metadata.URLCache: resolved cover URL cache (internal/cache)
//
// ## HTTP Interfaces
//
//   - http.CatalogService, http.BookGetter, http.CoverStore, http.Pinger (internal/http/stores.go)
//
// # Adding a New Cover Provider
//
//  1. Implement LookupCover in internal/metadata/
//
//     func (c *IsbnDbClient) LookupCover(ctx context.Context, isbn string) (string, error)
//
//  2. Add a provider name to NewCoverLookup in internal/entrypoint.
//
//  3. Add a compile-time check to checks.go:
//
//     var _ catalog.CoverLookup = (*metadata.IsbnDbClient)(nil)
package interfaces
