package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/library/internal/config"
)

// AddAuthorCommand creates an author from the command line.
type AddAuthorCommand struct {
	DatabasePath string
	Name         string
	Birthdate    string
	DateOfDeath  string

	Out io.Writer
}

func NewAddAuthorCommand() *AddAuthorCommand {
	return &AddAuthorCommand{}
}

func (cmd *AddAuthorCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-author", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")
	fs.StringVar(&cmd.Name, "name", "", "Author name (required)")
	fs.StringVar(&cmd.Birthdate, "born", "", "Birth date, free-form")
	fs.StringVar(&cmd.DateOfDeath, "died", "", "Date of death, free-form")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-author -name <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Name == "" {
		return fmt.Errorf("required flag -name not provided")
	}
	return nil
}

func (cmd *AddAuthorCommand) Run() error {
	service, closeDB, err := openService(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeDB()

	author, err := service.AddAuthor(context.Background(), cmd.Name, cmd.Birthdate, cmd.DateOfDeath)
	if err != nil {
		return err
	}

	fmt.Fprintf(outputOrStdout(cmd.Out), "Added author %q with id %d\n", author.Name, author.ID)
	return nil
}
