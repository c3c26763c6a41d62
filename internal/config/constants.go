package config

// Default paths and endpoints
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./data/library.sqlite"

	// DefaultGoogleBooksURL is the volumes endpoint used for cover lookups
	DefaultGoogleBooksURL = "https://www.googleapis.com/books/v1/volumes"

	// DefaultOpenLibraryURL is the base URL of the fallback cover provider
	DefaultOpenLibraryURL = "https://openlibrary.org"
)
