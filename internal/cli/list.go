package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/config"
)

// ListCommand prints the catalog, optionally filtered and sorted.
type ListCommand struct {
	DatabasePath string
	Search       string
	SortBy       string
	Authors      bool

	Out io.Writer
}

func NewListCommand() *ListCommand {
	return &ListCommand{}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")
	fs.StringVar(&cmd.Search, "search", "", "Only show books whose title or author contains this text")
	fs.StringVar(&cmd.SortBy, "sort", "title", "Sort books by 'title' or 'author'")
	fs.BoolVar(&cmd.Authors, "authors", false, "List authors instead of books")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the books in the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ListCommand) Run() error {
	service, closeDB, err := openService(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeDB()

	books, authors, err := service.ListCatalog(context.Background(), cmd.Search, catalog.ParseSortKey(cmd.SortBy))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(outputOrStdout(cmd.Out), 0, 4, 2, ' ', 0)
	if cmd.Authors {
		fmt.Fprintln(w, "ID\tNAME\tBORN\tDIED")
		for _, a := range authors {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", a.ID, a.Name, a.Birthdate, a.DateOfDeath)
		}
		return w.Flush()
	}

	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tYEAR\tISBN")
	for _, b := range books {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", b.ID, b.Title, b.DisplayAuthor(), b.PublicationYear, b.ISBN)
	}
	return w.Flush()
}
