package entities

import "time"

// NoCover is stored in Book.BookCover when no cover image could be found.
const NoCover = "no cover"

// UnknownAuthor is displayed and sorted on for books without an author.
const UnknownAuthor = "Unknown"

type Author struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"index;size:256" json:"name"`
	Birthdate   string    `gorm:"size:64" json:"birthdate,omitempty"`     // Free-form, never parsed
	DateOfDeath string    `gorm:"size:64" json:"date_of_death,omitempty"` // Free-form, never parsed
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ISBN            string    `gorm:"index;size:20" json:"isbn"`
	Title           string    `gorm:"index;size:512" json:"title"`
	PublicationYear int       `json:"publication_year"`
	BookCover       string    `gorm:"size:2048" json:"book_cover"`
	AuthorID        *uint     `gorm:"index" json:"author_id"`
	Author          *Author   `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

// HasCover reports whether the book has a usable cover URL.
func (b Book) HasCover() bool {
	return b.BookCover != "" && b.BookCover != NoCover
}

// AuthorName returns the loaded author's name, or "" when the book has none.
func (b Book) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return b.Author.Name
}

// DisplayAuthor returns the author's name or UnknownAuthor.
func (b Book) DisplayAuthor() string {
	if b.Author == nil {
		return UnknownAuthor
	}
	return b.Author.Name
}
