// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, units of work
//	└── books/           # Author and book CRUD operations (catalog.Store)
//
// # Units of Work
//
// Database implements catalog.UnitOfWork. Each call to Do opens one
// transaction and hands the callback a books.Repository bound to it:
//
//	db, err := database.NewDatabase("./data/library.sqlite")
//	err = db.Do(ctx, func(ctx context.Context, store catalog.Store) error {
//		return store.DeleteBook(ctx, 10)
//	})
//
// SQLite is opened with BEGIN IMMEDIATE transactions and a busy timeout, so
// concurrent writers queue on the database lock rather than interleave.
// Foreign keys are enforced: a book cannot reference a missing author.
package database
