// Package catalog holds the library's business rules: the search/sort query
// engine over the book list and the Service that adds authors and books and
// deletes books with the cascading author cleanup.
//
// # Units of work
//
// Every Service operation runs inside exactly one UnitOfWork call. The
// UnitOfWork hands the callback a Store bound to a single transaction and
// commits when the callback returns nil, rolling back otherwise. Cover
// lookups happen before the unit of work starts so no transaction is held
// open across a network call.
//
//	svc := catalog.NewService(db, lookup)
//	books, authors, err := svc.ListCatalog(ctx, "austen", catalog.SortByTitle)
package catalog
