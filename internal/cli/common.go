package cli

import (
	"io"
	"os"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database"
)

// openService opens the catalog database for a one-shot command. Commands
// never look up covers.
func openService(dbPath string) (*catalog.Service, func() error, error) {
	db, err := database.NewDatabase(dbPath, database.WithLogLevel("silent"))
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewService(db, nil), db.Close, nil
}

func outputOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
