package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/library/internal/config"
)

// DeleteBookCommand deletes a book, removing its author with the last book.
type DeleteBookCommand struct {
	DatabasePath string
	BookID       uint

	Out io.Writer
}

func NewDeleteBookCommand() *DeleteBookCommand {
	return &DeleteBookCommand{}
}

func (cmd *DeleteBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("delete-book", flag.ContinueOnError)

	var id uint64
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")
	fs.Uint64Var(&id, "id", 0, "ID of the book to delete (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s delete-book -id <book id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete a book. An author left without books is deleted too.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if id == 0 {
		return fmt.Errorf("required flag -id not provided")
	}
	cmd.BookID = uint(id)
	return nil
}

func (cmd *DeleteBookCommand) Run() error {
	service, closeDB, err := openService(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := service.DeleteBook(context.Background(), cmd.BookID)
	if err != nil {
		return err
	}

	out := outputOrStdout(cmd.Out)
	switch {
	case !result.BookDeleted:
		fmt.Fprintf(out, "Book %d not found, nothing deleted\n", cmd.BookID)
	case result.AuthorDeleted:
		fmt.Fprintf(out, "Deleted book %d and its author\n", cmd.BookID)
	default:
		fmt.Fprintf(out, "Deleted book %d\n", cmd.BookID)
	}
	return nil
}
